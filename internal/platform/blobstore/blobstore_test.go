package blobstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestAllowedFile(t *testing.T) {
	allowed := []string{"scan.pdf", "photo.PNG", "chart.jpeg", "notes.txt"}
	for _, name := range allowed {
		if !AllowedFile(name) {
			t.Errorf("expected %s to be allowed", name)
		}
	}
	denied := []string{"script.sh", "binary.exe", "archive.zip", "noext"}
	for _, name := range denied {
		if AllowedFile(name) {
			t.Errorf("expected %s to be denied", name)
		}
	}
}

func TestGenerateName_PreservesBase(t *testing.T) {
	name := GenerateName("../etc/xray.png")
	if !strings.HasSuffix(name, "-xray.png") {
		t.Errorf("expected base name suffix, got %s", name)
	}
	if strings.Contains(name, "..") {
		t.Errorf("generated name must not contain traversal: %s", name)
	}
	if name == GenerateName("../etc/xray.png") {
		t.Error("expected generated names to be unique")
	}
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	n, err := s.Put(ctx, "report.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Errorf("expected size 5, got %d", n)
	}

	rc, err := s.Get(ctx, "report.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "hello" {
		t.Errorf("unexpected content: %q", data)
	}

	if err := s.Delete(ctx, "report.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get(ctx, "report.txt"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "report.txt"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound on double delete, got %v", err)
	}
}

func TestMemStore_RoundTrip(t *testing.T) {
	testStore(t, NewMemStore())
}

func TestFSStore_RoundTrip(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testStore(t, s)
}

func TestPut_EmptyName(t *testing.T) {
	s := NewMemStore()
	if _, err := s.Put(context.Background(), "", strings.NewReader("x")); !errors.Is(err, ErrMissingFileName) {
		t.Errorf("expected ErrMissingFileName, got %v", err)
	}
}

func TestFSStore_RejectsTraversal(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Base() strips the directory part, so the write lands inside the root.
	if _, err := s.Put(context.Background(), "../../escape.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rc, err := s.Get(context.Background(), "escape.txt")
	if err != nil {
		t.Fatalf("expected sanitized name to resolve inside root: %v", err)
	}
	rc.Close()
}
