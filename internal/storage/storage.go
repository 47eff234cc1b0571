package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage writes files under one directory. It never removes what it
// writes.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", baseDir, err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// SaveUnique writes data under a fresh name "<prefix><32 hex chars><ext>"
// and returns that name.
func (s *LocalStorage) SaveUnique(prefix, ext string, data []byte) (string, error) {
	name := prefix + strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	if err := s.write(name, bytes.NewReader(data), os.O_CREATE|os.O_EXCL|os.O_WRONLY); err != nil {
		return "", err
	}
	return name, nil
}

// SaveAs writes reader to the given name, replacing any previous file.
func (s *LocalStorage) SaveAs(name string, reader io.Reader) (string, error) {
	if err := s.write(name, reader, os.O_CREATE|os.O_TRUNC|os.O_WRONLY); err != nil {
		return "", err
	}
	return s.GetPath(name), nil
}

func (s *LocalStorage) GetPath(filename string) string {
	return filepath.Join(s.baseDir, filename)
}

func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) write(name string, reader io.Reader, flag int) error {
	fullPath := s.GetPath(name)

	file, err := os.OpenFile(fullPath, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
