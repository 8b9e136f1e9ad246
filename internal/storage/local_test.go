package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_Save(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := NewLocal(dir, "http://localhost/pictures")
	if err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}

	url, err := s.Save(context.Background(), "abc123", "image/png", strings.NewReader("picture-bytes"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if url != "http://localhost/pictures/abc123" {
		t.Fatalf("unexpected url: %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abc123"))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "picture-bytes" {
		t.Fatalf("unexpected file contents: %q", data)
	}
}

func TestNewLocal_CreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "pictures")

	if _, err := NewLocal(dir, "http://localhost/pictures"); err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be a directory", dir)
	}
}
