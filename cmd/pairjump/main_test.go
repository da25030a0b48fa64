package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with an empty config file and color off.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, nil, 0o644))

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", configPath, "--color", "off"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestExitCommand(t *testing.T) {
	out, err := execute(t, "f(a, b)\n", "exit", "-", "1:4", "1:1")
	require.NoError(t, err)
	assert.Equal(t, "1:8\n1:1\n", out)
}

func TestMotionCommandsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("x = [1, (2)]\n"), 0o644))

	tests := []struct {
		cmd  string
		pos  string
		want string
	}{
		{"exit", "1:10", "1:12\n"},
		{"enter", "1:13", "1:12\n"},
		{"exit-backward", "1:7", "1:5\n"},
		{"enter-forward", "1:1", "1:6\n"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			out, err := execute(t, "", tt.cmd, path, tt.pos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestExitCommandCountAndJSON(t *testing.T) {
	out, err := execute(t, "[(x)]", "exit", "-", "1:3", "--count", "2", "--format", "json")
	require.NoError(t, err)

	var got []positionResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 6, got[0].Column)
	require.NotNil(t, got[0].Moved)
	assert.True(t, *got[0].Moved)
}

func TestMotionCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad position", []string{"exit", "-", "x"}, "want LINE:COL"},
		{"zero line", []string{"exit", "-", "0:1"}, "line must be a positive number"},
		{"past last line", []string{"exit", "-", "9:1"}, "past the last line"},
		{"past line end", []string{"exit", "-", "1:20"}, "past the end of line 1"},
		{"bad format", []string{"exit", "-", "1:1", "--format", "xml"}, "unsupported format"},
		{"bad count", []string{"exit", "-", "1:1", "--count", "0"}, "--count must be at least 1"},
		{"missing file", []string{"exit", filepath.Join(t.TempDir(), "nope"), "1:1"}, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "(ab)", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScriptCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "jump.lua")
	require.NoError(t, os.WriteFile(script, []byte(`doc.dispatch("pair.exit")`), 0o644))

	out, err := execute(t, "a(b)c(d)", "script", script, "-", "1:3", "1:7")
	require.NoError(t, err)
	assert.Equal(t, "1:5\n1:9\n", out)
}

func TestServeCommand(t *testing.T) {
	out, err := execute(t, `{"id":1,"method":"pair.exit","text":"(a)","cursors":[{"line":0,"character":1}]}`+"\n", "serve", "--no-watch")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"status":"ok","cursors":[{"line":0,"character":3}]}`, strings.TrimSpace(out))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--format", "json")
	require.NoError(t, err)

	var got versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "pairjump", got.Tool)
	assert.Equal(t, version, got.Version)
}

func TestInvalidColorFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--color", "sometimes", "version"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --color")
}
