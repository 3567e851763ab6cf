package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupFormats(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Setup(&buf, "info", "json")
	slog.Debug("hidden")
	slog.Info("batch finished", "failed", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line emitted at info level: %s", out)
	}
	if !strings.Contains(out, `"msg":"batch finished"`) || !strings.Contains(out, `"failed":1`) {
		t.Fatalf("expected json output, got %s", out)
	}

	buf.Reset()
	Setup(&buf, "debug", "text").Debug("visible", "file", "a.csv")
	if !strings.Contains(buf.String(), "msg=visible file=a.csv") {
		t.Fatalf("expected text output, got %s", buf.String())
	}
}
