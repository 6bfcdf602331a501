package config

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
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

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
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
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestJSONLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/proj/.htmlvalidate.json", `{
  "extends": ["html-validate:recommended"],
  "rules": {
    "void-style": "error",
    "no-inline-style": "off"
  }
}`)

	loader := NewJSONLoaderWithFS(memfs, "/proj/.htmlvalidate.json")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rules, ok := config["rules"].(map[string]any)
	if !ok {
		t.Fatal("expected rules to be a map")
	}
	if rules["void-style"] != "error" {
		t.Errorf("void-style = %v, want 'error'", rules["void-style"])
	}
	if rules["no-inline-style"] != "off" {
		t.Errorf("no-inline-style = %v, want 'off'", rules["no-inline-style"])
	}

	extends, ok := config["extends"].([]any)
	if !ok || len(extends) != 1 {
		t.Fatalf("extends = %v, want one entry", config["extends"])
	}
}

func TestJSONLoader_LoadNonExistent(t *testing.T) {
	memfs := NewMemFS()
	loader := NewJSONLoaderWithFS(memfs, "/proj/.htmlvalidate.json")

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if config != nil {
		t.Error("expected nil config for non-existent file")
	}
}

func TestJSONLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/proj/.htmlvalidate.json", `{not valid json`)

	loader := NewJSONLoaderWithFS(memfs, "/proj/.htmlvalidate.json")
	_, err := loader.Load()
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if parseErr.Path != "/proj/.htmlvalidate.json" {
		t.Errorf("Path = %q, want /proj/.htmlvalidate.json", parseErr.Path)
	}
	if !strings.Contains(err.Error(), "/proj/.htmlvalidate.json") {
		t.Errorf("message %q should name the file", err.Error())
	}
}

func TestJSONLoader_LoadFromReader(t *testing.T) {
	loader := NewJSONLoader("/unused")
	config, err := loader.LoadFromReader(strings.NewReader(`{"root": true}`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["root"] != true {
		t.Errorf("root = %v, want true", config["root"])
	}
}

func TestProjectConfigPath(t *testing.T) {
	got := ProjectConfigPath("/home/user/site")
	if got != "/home/user/site/.htmlvalidate.json" {
		t.Errorf("ProjectConfigPath = %q", got)
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"rules": map[string]any{"a": "error"},
		"list":  []any{"x", map[string]any{"y": 1}},
	}

	dst := Clone(src)

	dst["rules"].(map[string]any)["a"] = "off"
	if src["rules"].(map[string]any)["a"] != "error" {
		t.Error("Clone should not share nested maps")
	}

	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
