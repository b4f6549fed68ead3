package stride

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrInvalidArgument, ErrConfiguration, ErrOutOfRange, ErrResourceExhausted}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("Sentinel %v should not match %v", a, b)
			}
		}
	}
}

func TestSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("%w: step must be non-zero", ErrInvalidArgument)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("Wrapped sentinel not recognized by errors.Is")
	}
}

func TestNewLogger_Defaults(t *testing.T) {
	log := NewLogger(nil)
	if log == nil {
		t.Fatal("NewLogger(nil) returned nil")
	}
	if !log.Enabled(nil, slog.LevelInfo) {
		t.Error("Default logger should enable info level")
	}
}

func TestNewLogger_CustomHandler(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(slog.NewTextHandler(&buf, nil))
	log.Info("launch complete", "backend", "pool")
	if !bytes.Contains(buf.Bytes(), []byte("launch complete")) {
		t.Errorf("Log output missing message: %q", buf.String())
	}
}

func TestNoopLogger(t *testing.T) {
	log := NoopLogger()
	log.Error("should vanish")
	if log.Enabled(nil, slog.LevelError) {
		t.Error("Noop logger should not enable any level")
	}
}
