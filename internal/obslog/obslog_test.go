package obslog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Info("sieve started", "mode", "plain")
	if !strings.Contains(buf.String(), "sieve started") {
		t.Fatalf("log output missing message: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "mode") {
		t.Fatalf("log output missing attr: %q", buf.String())
	}
}

func TestWithAttrsPreservesHandlerConfig(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil, false)
	h2 := h.WithAttrs([]slog.Attr{slog.String("k", "v")})
	log := slog.New(h2)
	log.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("output missing message: %q", buf.String())
	}
}
