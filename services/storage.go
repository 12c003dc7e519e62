package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"journal-review-api/utils"
)

// FileStore persists an uploaded file buffer and returns a durable public URL
// for it. Paths are namespaced by a logical prefix such as
// "user-7/manuscripts".
type FileStore interface {
	Save(prefix, filename string, data []byte, contentType string) (string, error)
}

// LocalFileStore writes files below the configured upload directory and
// serves them from the /uploads static route.
type LocalFileStore struct {
	Root    string
	BaseURL string
}

// NewLocalFileStore builds a store from UPLOAD_PATH and PUBLIC_BASE_URL with
// the same defaults the server startup uses.
func NewLocalFileStore() *LocalFileStore {
	root := os.Getenv("UPLOAD_PATH")
	if root == "" {
		root = "./uploads"
	}
	base := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &LocalFileStore{Root: root, BaseURL: base}
}

func (s *LocalFileStore) Save(prefix, filename string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file buffer")
	}

	dir := filepath.Join(s.Root, filepath.FromSlash(prefix))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// Collision-resistant stored name: millisecond timestamp plus a short
	// random nonce in front of the sanitized original name.
	nonce := uuid.NewString()[:8]
	stored := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), nonce, utils.SanitizeFilename(filename))

	if err := os.WriteFile(filepath.Join(dir, stored), data, 0o644); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/uploads/%s/%s", s.BaseURL, prefix, stored)
	return url, nil
}
