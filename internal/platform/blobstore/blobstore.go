// Package blobstore persists uploaded files (medical records and documents)
// under generated, collision-resistant names. It provides a filesystem
// implementation for the server and an in-memory implementation for tests.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrBlobNotFound    = errors.New("blob not found")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrTypeNotAllowed  = errors.New("file type is not allowed")
	ErrMissingFileName = errors.New("file name is required")
)

// MaxFileSize is the maximum allowed blob size in bytes (20 MB).
const MaxFileSize = 20 * 1024 * 1024

// AllowedExtensions lists upload file extensions accepted by the store.
var AllowedExtensions = map[string]bool{
	"txt":  true,
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// Ext returns the lower-cased extension of filename without the dot, or ""
// when the name has none.
func Ext(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToLower(ext)
}

// AllowedFile reports whether the filename carries an accepted extension.
func AllowedFile(filename string) bool {
	return AllowedExtensions[Ext(filename)]
}

// GenerateName derives a unique storage name that preserves the original
// extension, e.g. "5f0c...-xray.png".
func GenerateName(originalName string) string {
	base := filepath.Base(originalName)
	return uuid.New().String() + "-" + base
}

// Store is the contract for blob storage backends.
type Store interface {
	// Put saves content under name and returns the byte size written.
	Put(ctx context.Context, name string, content io.Reader) (int64, error)
	// Get opens the named blob for reading.
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes the named blob.
	Delete(ctx context.Context, name string) error
}

// ---------------------------------------------------------------------------
// Filesystem implementation
// ---------------------------------------------------------------------------

// FSStore stores blobs as files under a root directory.
type FSStore struct {
	root string
}

// NewFSStore creates the root directory if needed and returns a store over it.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root %s: %w", root, err)
	}
	return &FSStore{root: root}, nil
}

// path resolves name inside the root, rejecting traversal outside it.
func (s *FSStore) path(name string) (string, error) {
	if name == "" {
		return "", ErrMissingFileName
	}
	clean := filepath.Base(filepath.Clean(name))
	if clean == "." || clean == ".." {
		return "", ErrMissingFileName
	}
	return filepath.Join(s.root, clean), nil
}

func (s *FSStore) Put(_ context.Context, name string, content io.Reader) (int64, error) {
	p, err := s.path(name)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(p)
	if err != nil {
		return 0, fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		os.Remove(p)
		return 0, fmt.Errorf("write blob: %w", err)
	}
	if n > MaxFileSize {
		os.Remove(p)
		return 0, ErrFileTooLarge
	}
	return n, nil
}

func (s *FSStore) Get(_ context.Context, name string) (io.ReadCloser, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

func (s *FSStore) Delete(_ context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

// MemStore is a thread-safe, in-memory Store for tests and development.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemStore returns a ready-to-use MemStore.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (s *MemStore) Put(_ context.Context, name string, content io.Reader) (int64, error) {
	if name == "" {
		return 0, ErrMissingFileName
	}

	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return 0, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return 0, ErrFileTooLarge
	}

	s.mu.Lock()
	s.blobs[name] = data
	s.mu.Unlock()
	return int64(len(data)), nil
}

func (s *MemStore) Get(_ context.Context, name string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.blobs[name]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[name]; !ok {
		return ErrBlobNotFound
	}
	delete(s.blobs, name)
	return nil
}
