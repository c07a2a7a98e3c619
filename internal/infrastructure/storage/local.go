package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"simlok-backend/pkg/id"
)

// Uploader abstracts where uploaded files land, so handlers don't care
// whether storage is a local disk or something remote.
type Uploader interface {
	UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error)
}

// LocalStore keeps uploads under a base directory on disk. Returned paths
// are relative to the base so they stay valid across deployments.
type LocalStore struct {
	base string
}

func NewLocalStore(base string) (*LocalStore, error) {
	if base == "" {
		return nil, errors.New("storage: empty base dir")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{base: base}, nil
}

func (s *LocalStore) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	rel := filepath.Join(sanitize(folder), id.NewID32()+ext)
	abs := filepath.Join(s.base, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, b, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// Open resolves a previously returned relative path, refusing traversal
// outside the base directory.
func (s *LocalStore) Open(rel string) (*os.File, error) {
	abs := filepath.Join(s.base, filepath.Clean("/"+rel))
	if !strings.HasPrefix(abs, s.base) {
		return nil, errors.New("storage: path escapes base dir")
	}
	return os.Open(abs)
}

func sanitize(folder string) string {
	folder = strings.Trim(filepath.Clean("/"+folder), "/")
	if folder == "" {
		folder = "misc"
	}
	return folder
}
