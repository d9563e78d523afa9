package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir, "/public/uploads/")
	ctx := context.Background()

	url, err := s.Put(ctx, "123-pic.png", "image/png", []byte("data"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if url != "/public/uploads/123-pic.png" {
		t.Errorf("url = %q, want /public/uploads/123-pic.png", url)
	}
	got, err := os.ReadFile(filepath.Join(dir, "123-pic.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q, want %q", got, "data")
	}

	if err := s.Delete(ctx, "123-pic.png"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "123-pic.png")); !os.IsNotExist(err) {
		t.Error("file should be gone")
	}
}

func TestLocalPutCreatesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir, "/public/uploads")
	ctx := context.Background()

	url, err := s.Put(ctx, "thumbs/123-pic.jpg", "image/jpeg", []byte("thumb"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if url != "/public/uploads/thumbs/123-pic.jpg" {
		t.Errorf("url = %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "thumbs", "123-pic.jpg")); err != nil {
		t.Errorf("nested file missing: %v", err)
	}
}

func TestLocalDeleteMissingIsNoop(t *testing.T) {
	s := NewLocal(t.TempDir(), "/public/uploads")
	if err := s.Delete(context.Background(), "never-existed.png"); err != nil {
		t.Errorf("Delete on missing file should not error, got %v", err)
	}
}
