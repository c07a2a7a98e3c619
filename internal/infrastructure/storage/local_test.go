package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalStore_UploadAndOpen(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	rel, err := s.UploadBytes(context.Background(), "worker-photos", "andi.JPG", []byte("img-bytes"))
	if err != nil {
		t.Fatalf("UploadBytes: %v", err)
	}
	if !strings.HasPrefix(rel, "worker-photos/") || !strings.HasSuffix(rel, ".jpg") {
		t.Fatalf("relative path = %q", rel)
	}

	f, err := s.Open(rel)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	b, _ := io.ReadAll(f)
	if string(b) != "img-bytes" {
		t.Fatalf("content = %q", b)
	}
}

func TestLocalStore_OpenRefusesTraversal(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	// The leading-slash Clean pins the path under base, so this resolves to
	// <base>/etc/passwd which does not exist.
	if _, err := s.Open("../../etc/passwd"); err == nil {
		t.Fatal("expected error opening traversal path")
	}
}
