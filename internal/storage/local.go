package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create picture directory, %w", err)
	}

	return &LocalStore{
		Dir:     dir,
		BaseURL: baseURL,
	}, nil
}

func (s *LocalStore) Save(_ context.Context, key, _ string, r io.Reader) (string, error) {
	f, err := os.Create(filepath.Join(s.Dir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create picture file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write picture file, %w", err)
	}

	return s.BaseURL + "/" + key, nil
}
