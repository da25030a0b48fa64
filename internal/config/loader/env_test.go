package loader

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvLoader(t *testing.T) {
	t.Setenv("PAIRJUMP_LOG_LEVEL", "debug")
	t.Setenv("PAIRJUMP_DISPATCHER_MAX_REPEAT_COUNT", "7")
	t.Setenv("PAIRJUMP_SERVE_WATCH_CONFIG", "off")
	t.Setenv("PAIRJUMP_ENABLE_METRICS", "true")
	t.Setenv("PAIRJUMP_CONFIG", "/tmp/ignored.toml")
	t.Setenv("PAIRJUMP_UNKNOWN_THING", "x")
	t.Setenv("OTHER_LOG_LEVEL", "error")

	l := NewEnvLoader("PAIRJUMP_", "log", "dispatcher", "serve")
	l.AddMapping("PAIRJUMP_ENABLE_METRICS", "dispatcher.enable_metrics")

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := map[string]any{
		"log": map[string]any{"level": "debug"},
		"dispatcher": map[string]any{
			"max_repeat_count": int64(7),
			"enable_metrics":   true,
		},
		"serve": map[string]any{"watch_config": false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader("PAIRJUMP_", "log", "serve")
	tests := []struct {
		env  string
		want string
		ok   bool
	}{
		{"PAIRJUMP_LOG_FORMAT", "log.format", true},
		{"PAIRJUMP_SERVE_DEBOUNCE_MS", "serve.debounce_ms", true},
		{"PAIRJUMP_LOG", "", false},
		{"PAIRJUMP_CONFIG", "", false},
	}
	for _, tt := range tests {
		got, ok := l.envToPath(tt.env)
		if got != tt.want || ok != tt.ok {
			t.Errorf("envToPath(%q) = %q, %v; want %q, %v", tt.env, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"No", false},
		{"42", int64(42)},
		{"1", int64(1)},
		{"json", "json"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}
