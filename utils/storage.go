package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DocumentStore persists uploaded professional documents and returns an
// opaque reference to them.
type DocumentStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// LocalStore writes documents under Dir with random file names.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Delete removes a document previously returned by Save. References outside
// Dir are ignored.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if filepath.Dir(filepath.Clean(ref)) != filepath.Clean(s.Dir) {
		return fmt.Errorf("reference %q is not in %s", ref, s.Dir)
	}
	err := os.Remove(ref)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
