package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected debug message to be suppressed, got: %s", buf.String())
	}

	New(&buf, true).Debug("visible", "feed", "world")
	out := buf.String()
	if !strings.Contains(out, "msg=visible") {
		t.Errorf("Expected debug message in output, got: %s", out)
	}
	if !strings.Contains(out, "feed=world") {
		t.Errorf("Expected key/value pair in output, got: %s", out)
	}
}
