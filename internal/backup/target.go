package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/antara/internal/filex"
)

// Target is a place snapshots are written to and read from.
type Target interface {
	Put(ctx context.Context, name string, data []byte) (location string, err error)
	Get(ctx context.Context, name string) ([]byte, error)
}

// DirTarget stores snapshots as files in a local directory.
type DirTarget struct {
	Dir string
}

func (d DirTarget) Put(_ context.Context, name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(d.Dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := filex.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Get reads name from the directory. An absolute name or one containing a
// separator is read as a path.
func (d DirTarget) Get(_ context.Context, name string) ([]byte, error) {
	path := name
	if filepath.Base(name) == name {
		path = filepath.Join(d.Dir, name)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup %s: %w", path, err)
	}
	return b, nil
}
