package main

import (
	"fmt"
	"os"

	"github.com/revelaction/depdist/storage"
	"github.com/revelaction/depdist/storage/filesystem"
	"github.com/revelaction/depdist/storage/sqlite/zombiezen"
)

// NewDocRepository selects the storage backend for path: a directory is
// served by the filesystem store, a file by the SQLite store.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}
