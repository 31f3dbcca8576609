package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/facetgrid/pkg/cache"
)

var timestampPrefix = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `)

func TestVerboseSwitchesToDebug(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("resolving facets")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("resolving facets", "strategy", "entity")
	out := buf.String()
	if !strings.Contains(out, "resolving facets") || !strings.Contains(out, "strategy=entity") {
		t.Errorf("debug line missing after SetLogLevel: %q", out)
	}
	if !timestampPrefix.MatchString(out) {
		t.Errorf("log line should start with a HH:MM:SS.cc timestamp: %q", out)
	}
}

func TestNewCache(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)

	disabled, err := c.newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	if _, ok := disabled.(cache.NullCache); !ok {
		t.Errorf("--no-cache should give a NullCache, got %T", disabled)
	}

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	enabled, err := c.newCache(false)
	if err != nil {
		t.Fatalf("newCache(false) error: %v", err)
	}
	defer enabled.Close()
	if _, ok := enabled.(*cache.FileCache); !ok {
		t.Errorf("default cache should be a FileCache, got %T", enabled)
	}
}

func TestNewRunnerNoCache(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	r, err := c.newRunner(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Cache.(cache.NullCache); !ok {
		t.Errorf("runner cache = %T, want NullCache", r.Cache)
	}
	if r.Logger != c.Logger {
		t.Error("runner should log through the CLI logger")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	newProgress(c.Logger).done("Placed 4 facets")

	out := buf.String()
	if !regexp.MustCompile(`Placed 4 facets \(\d+m?s\)`).MatchString(out) {
		t.Errorf("progress line = %q, want message with elapsed time", out)
	}
}
