package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Loaded directory", "employees", 12)

	out := buf.String()
	for _, want := range []string{"Loaded directory", "employees=12", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf}
	p.success("Layout complete (%s profile)", "tablet")
	p.warn("grid fallback")
	p.file("out/chart.svg")
	p.keyValue("Title", "CTO")
	p.stats(4, 3, "tree", true)

	out := buf.String()
	for _, want := range []string{iconSuccess, "tablet profile", "grid fallback", "out/chart.svg", "CTO", "4 employees", "3 reporting lines", "cached"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 5 {
		t.Errorf("got %d lines, want 5", n)
	}
}

func TestFormatStatsFresh(t *testing.T) {
	got := formatStats(7, 0, "grid", false)
	if strings.Contains(got, "reporting lines") {
		t.Errorf("grid stats should omit edges: %q", got)
	}
	if !strings.Contains(got, "fresh") {
		t.Errorf("uncached stats should say fresh: %q", got)
	}
}
