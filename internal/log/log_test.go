package log

import (
	"bytes"
	"strings"
	"testing"
)

// withOutput redirects output and restores output and level after the test.
func withOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	saved := GetLevel()
	t.Cleanup(func() {
		SetOutput(prev)
		SetLevel(saved)
	})
	return &buf
}

func TestSetLevel(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("GetLevel() = %v, want %v", GetLevel(), LevelDebug)
	}
	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("GetLevel() = %v, want %v", GetLevel(), LevelError)
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	buf := withOutput(t)
	SetLevel(LevelInfo)

	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debug output at info level: %q", buf.String())
	}
}

func TestLevelsAndPrefixes(t *testing.T) {
	buf := withOutput(t)
	SetLevel(LevelDebug)

	Debug("d %s", "x")
	Info("i %d", 2)
	Warn("w")
	Error("e")

	want := "[DEBUG] d x\n[INFO] i 2\n[WARN] w\n[ERROR] e\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	buf := withOutput(t)
	SetLevel(LevelError + 4)

	Warn("dropped")
	Error("kept")
	if !strings.Contains(buf.String(), "kept") || strings.Contains(buf.String(), "dropped") {
		t.Errorf("output = %q", buf.String())
	}
}
