package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// linkFile is swapped in tests to simulate filesystems without hard links.
var linkFile = os.Link

// FileBackend keeps each collection in <dir>/<collection>.json.
type FileBackend struct {
	dir string
}

var _ Backend = (*FileBackend)(nil)

func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the data directory.
func (b *FileBackend) Dir() string { return b.dir }

func (b *FileBackend) path(collection string) string {
	return filepath.Join(b.dir, collection+".json")
}

func (b *FileBackend) Load(_ context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(b.path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers never observe a half-written document.
func (b *FileBackend) Save(_ context.Context, collection string, data []byte) error {
	tmp, err := b.writeTemp(collection, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, b.path(collection)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

// Create hard-links a fully written temp file into place; the link fails if
// another caller got there first, which leaves their document intact. Where
// hard links are not supported it falls back to an exclusive create.
func (b *FileBackend) Create(_ context.Context, collection string, data []byte) error {
	tmp, err := b.writeTemp(collection, data)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	err = linkFile(tmp, b.path(collection))
	if err == nil || errors.Is(err, fs.ErrExist) {
		return nil
	}
	return b.createExclusive(collection, data)
}

func (b *FileBackend) createExclusive(collection string, data []byte) error {
	f, err := os.OpenFile(b.path(collection), os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("create file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

// Ping verifies the data directory exists (creating it if needed) and is a directory.
func (b *FileBackend) Ping(_ context.Context) error {
	if err := os.MkdirAll(b.dir, dirPerm); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	info, err := os.Stat(b.dir)
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir: %s is not a directory", b.dir)
	}
	return nil
}

func (b *FileBackend) writeTemp(collection string, data []byte) (string, error) {
	if err := os.MkdirAll(b.dir, dirPerm); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.CreateTemp(b.dir, "."+collection+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Chmod(filePerm); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return name, nil
}
