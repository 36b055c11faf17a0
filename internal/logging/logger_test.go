package logging

import "testing"

func TestNew(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		logger, err := New(level, false)
		if err != nil {
			t.Errorf("level %q: %v", level, err)
			continue
		}
		logger.Sync()
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}
