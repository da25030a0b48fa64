package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return memFileInfo(path), nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo string

func (f memFileInfo) Name() string       { return string(f) }
func (f memFileInfo) Size() int64        { return 0 }
func (f memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f memFileInfo) ModTime() time.Time { return time.Time{} }
func (f memFileInfo) IsDir() bool        { return false }
func (f memFileInfo) Sys() any           { return nil }

const tomlDoc = `
[log]
level = "debug"

[dispatcher]
max_repeat_count = 20

[keymap]
"Ctrl+Left" = "pair.exitBackward"

[plugins]
paths = ["a.lua", "b.lua"]
`

const yamlDoc = `
log:
  level: debug
dispatcher:
  max_repeat_count: 20
keymap:
  Ctrl+Left: pair.exitBackward
plugins:
  paths: [a.lua, b.lua]
`

func TestFileLoadersAgree(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/c.toml", tomlDoc)
	memfs.AddFile("/c.yaml", yamlDoc)

	fromTOML, err := NewTOMLLoaderWithFS(memfs, "/c.toml").Load()
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	fromYAML, err := NewYAMLLoaderWithFS(memfs, "/c.yaml").Load()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}

	want := map[string]any{
		"log":        map[string]any{"level": "debug"},
		"dispatcher": map[string]any{"max_repeat_count": int64(20)},
		"keymap":     map[string]any{"Ctrl+Left": "pair.exitBackward"},
		"plugins":    map[string]any{"paths": []any{"a.lua", "b.lua"}},
	}
	if diff := cmp.Diff(want, fromTOML); diff != "" {
		t.Errorf("toml mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	memfs := NewMemFS()
	for _, path := range []string{"/none.toml", "/none.yml"} {
		config, err := ForPath(memfs, path).Load()
		if err != nil || config != nil {
			t.Errorf("%s: got %v, %v; want nil, nil", path, config, err)
		}
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"config.toml": FormatTOML,
		"config.yaml": FormatYAML,
		"config.YML":  FormatYAML,
		"config":      FormatTOML,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestTOMLParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[log]\nlevel = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if !strings.Contains(perr.Error(), "line 2") {
		t.Errorf("Error() = %q", perr.Error())
	}
}

func TestYAMLParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("log:\n  level: [unclosed\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Path != "<reader>" {
		t.Errorf("Path = %q", perr.Path)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"log":    map[string]any{"level": "info", "format": "console"},
		"keymap": map[string]any{"Tab": "pair.exit"},
	}
	src := map[string]any{
		"log":    map[string]any{"level": "debug"},
		"keymap": map[string]any{"Backtab": "pair.enter"},
		"serve":  map[string]any{"watch_config": false},
	}

	got := DeepMerge(dst, src)

	want := map[string]any{
		"log":    map[string]any{"level": "debug", "format": "console"},
		"keymap": map[string]any{"Tab": "pair.exit", "Backtab": "pair.enter"},
		"serve":  map[string]any{"watch_config": false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DeepMerge mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepMergeReplacesNonMaps(t *testing.T) {
	got := DeepMerge(map[string]any{"a": map[string]any{"b": 1}}, map[string]any{"a": "flat"})
	if got["a"] != "flat" {
		t.Errorf("a = %v, want flat", got["a"])
	}
	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v", got)
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"plugins": map[string]any{"paths": []any{"a.lua"}},
	}
	dup := Clone(src)
	dup["plugins"].(map[string]any)["paths"].([]any)[0] = "changed"

	if src["plugins"].(map[string]any)["paths"].([]any)[0] != "a.lua" {
		t.Error("Clone shares nested slices with the source")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
