package logger

import (
	"io"
	"os"
	"strings"
	"testing"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerWritesComponentField(t *testing.T) {
	t.Setenv("APP_ENV", "")
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	SetLevel("info")
	l := NewZerologLogger("search")
	l.Infof("adopted candidate %d", 3)

	_ = w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	line := string(out)
	if !strings.Contains(line, `"component":"search"`) {
		t.Fatalf("component field missing: %s", line)
	}
	if !strings.Contains(line, "adopted candidate 3") {
		t.Fatalf("message missing: %s", line)
	}
}
