package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriterLoggerLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, LevelInfo)

	log.Debug("hidden")
	log.Info("stripped page", Int("page", 3), String("file", "in.pdf"))
	log.Error("save failed", Error("err", errors.New("disk full")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("debug event must be filtered at info level")
	}
	if !strings.Contains(out, `msg="stripped page" page=3 file=in.pdf`) {
		t.Fatalf("unexpected info line: %s", out)
	}
	if !strings.Contains(out, "level=error") || !strings.Contains(out, "err=disk full") {
		t.Fatalf("unexpected error line: %s", out)
	}
}

func TestWriterLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, LevelDebug).With(String("job", "a.pdf"))
	log.Info("start")
	if !strings.Contains(buf.String(), "job=a.pdf") {
		t.Fatalf("bound field missing: %s", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	var log Logger = NopLogger{}
	log.Info("ignored", Int("n", 1))
	if l2 := log.With(String("k", "v")); l2 != (NopLogger{}) {
		t.Fatal("NopLogger.With must return a NopLogger")
	}
}
