package lane

import (
	"log/slog"

	"golang.org/x/sys/cpu"
)

// LogFeatures reports, once, which CPU features the lane kernels in this
// package are likely to benefit from. It never changes which code path
// runs: Go has no portable SIMD-intrinsics surface, so the kernels above
// are plain fixed-width loops and rely entirely on the compiler's own
// autovectorizer. This is purely an operational signal for whether that's
// likely to pay off on the current host.
func LogFeatures(log *slog.Logger) {
	if log == nil {
		return
	}
	switch {
	case cpu.X86.HasAVX2:
		log.Info("lane: host supports AVX2", "width_hint", 16)
	case cpu.X86.HasSSE41:
		log.Info("lane: host supports SSE4.1", "width_hint", 8)
	case cpu.ARM64.HasASIMD:
		log.Info("lane: host supports NEON/ASIMD", "width_hint", 8)
	default:
		log.Info("lane: no wide-SIMD feature detected, relying on scalar autovectorization")
	}
}
