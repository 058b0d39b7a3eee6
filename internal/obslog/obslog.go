// Package obslog wraps log/slog the way the rest of the example pack does:
// a custom slog.Handler that writes every record to a log file and mirrors
// anything above debug level to stderr, so a long-running search leaves a
// durable trail without flooding an interactive terminal.
package obslog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler is a slog.Handler writing a simple "time level msg attrs" line to
// an underlying file, mirroring records above slog.LevelDebug to stderr.
type Handler struct {
	out   io.Writer
	h     slog.Handler
	mu    *sync.Mutex
	debug bool
}

// NewHandler builds a Handler writing to file (nil discards file output)
// with the given slog options. debug, if true, mirrors every record
// (including Debug) to stderr instead of only Info-and-above.
func NewHandler(file io.Writer, opts *slog.HandlerOptions, debug bool) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out:   file,
		h:     slog.NewTextHandler(file, opts),
		mu:    &sync.Mutex{},
		debug: debug,
	}
}

// New builds a *slog.Logger backed by a Handler writing to file.
func New(file io.Writer, debug bool) *slog.Logger {
	return slog.New(NewHandler(file, nil, debug))
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.debug || h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithAttrs(attrs), mu: h.mu, debug: h.debug}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithGroup(name), mu: h.mu, debug: h.debug}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	strs := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String() + ":", r.Message}
	r.Attrs(func(a slog.Attr) bool {
		strs = append(strs, a.String())
		return true
	})
	line := []byte(strings.Join(strs, " ") + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(line)
	}
	if h.debug || r.Level > slog.LevelDebug {
		_, err = os.Stderr.Write(line)
	}
	return err
}
