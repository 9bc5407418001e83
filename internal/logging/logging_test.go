package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"planify/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, false)
	logger.Debug("hidden")
	logger.Warn("shown", "op", "list")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be dropped: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "op=list") {
		t.Errorf("expected warn message with attrs, got %q", out)
	}

	buf.Reset()
	logging.New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestOrDiscard(t *testing.T) {
	logging.OrDiscard(nil).Error("dropped")
}
