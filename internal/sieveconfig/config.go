// Package sieveconfig centralizes the runtime knobs the reference
// implementation controlled with build-time macros (NO_SIMDDIVIDE_{S,M,L},
// NO_SIMD_{PLAINPRIME,TWINPRIME,SAFEPRIME}) and the PRIMES environment
// variable. Go has no preprocessor, so each axis becomes a small runtime
// registry instead of a set of #ifdef guards.
package sieveconfig

import (
	"fmt"
	"os"
	"strconv"

	"github.com/oisee/simdprime/internal/smallprime"
)

// EnabledSizes lists which table tiers this build supports. All three are
// enabled by default; a deployment that wants to drop a tier (mirroring
// NO_SIMDDIVIDE_L, say) can do so by editing this slice.
var EnabledSizes = []smallprime.Size{smallprime.S, smallprime.M, smallprime.L}

// EnabledModes lists which search flavors this build supports, mirroring
// NO_SIMD_PLAINPRIME / _TWINPRIME / _SAFEPRIME.
var EnabledModes = []string{"plain", "twin", "safe"}

// Validate reports an error if either axis has been emptied out, matching
// the reference's requirement that at least one size and one mode remain
// enabled.
func Validate() error {
	if len(EnabledSizes) == 0 {
		return fmt.Errorf("sieveconfig: no table sizes enabled")
	}
	if len(EnabledModes) == 0 {
		return fmt.Errorf("sieveconfig: no search modes enabled")
	}
	return nil
}

// DefaultTableSize returns the largest enabled tier, matching the
// reference's set_default_table_size behavior.
func DefaultTableSize() smallprime.Size {
	best := EnabledSizes[0]
	for _, sz := range EnabledSizes[1:] {
		if sz > best {
			best = sz
		}
	}
	return best
}

// TableSizeFromEnv reads the PRIMES environment variable, validating it
// against EnabledSizes, and falls back to DefaultTableSize if PRIMES is
// unset. An explicitly set but unsupported value is an error rather than a
// silent fallback.
func TableSizeFromEnv() (smallprime.Size, error) {
	v, ok := os.LookupEnv("PRIMES")
	if !ok || v == "" {
		return DefaultTableSize(), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("sieveconfig: PRIMES=%q is not a number: %w", v, err)
	}
	sz := smallprime.Size(n)
	for _, enabled := range EnabledSizes {
		if sz == enabled {
			return sz, nil
		}
	}
	return 0, fmt.Errorf("sieveconfig: PRIMES=%d is not an enabled table size (have %v)", n, EnabledSizes)
}

// ModeEnabled reports whether the named flavor ("plain", "twin", "safe") is
// enabled in this build.
func ModeEnabled(name string) bool {
	for _, m := range EnabledModes {
		if m == name {
			return true
		}
	}
	return false
}
