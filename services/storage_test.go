package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalFileStoreSave(t *testing.T) {
	root := t.TempDir()
	store := &LocalFileStore{Root: root, BaseURL: "http://files.test"}

	url, err := store.Save("user-7/manuscripts", "My Paper (final).pdf", []byte("pdf-bytes"), "application/pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefix := "http://files.test/uploads/user-7/manuscripts/"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("unexpected url: %s", url)
	}
	stored := strings.TrimPrefix(url, prefix)
	if strings.ContainsAny(stored, "() ") {
		t.Fatalf("stored name not sanitized: %s", stored)
	}

	data, err := os.ReadFile(filepath.Join(root, "user-7", "manuscripts", stored))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestLocalFileStoreDistinctNames(t *testing.T) {
	root := t.TempDir()
	store := &LocalFileStore{Root: root, BaseURL: "http://files.test"}

	first, err := store.Save("p", "paper.pdf", []byte("a"), "application/pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Save("p", "paper.pdf", []byte("b"), "application/pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct stored names for same filename")
	}
}

func TestLocalFileStoreRejectsEmptyBuffer(t *testing.T) {
	store := &LocalFileStore{Root: t.TempDir(), BaseURL: "http://files.test"}
	if _, err := store.Save("p", "paper.pdf", nil, "application/pdf"); err == nil {
		t.Fatalf("expected error for empty buffer")
	}
}
