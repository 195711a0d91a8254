package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/odsearch/internal/storage"
)

// BlobShard creates a file storage for the given directory.
func BlobShard(dir string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewJsonBlob(dir, shard), nil
	}
}

// Blob is a json file storage implementation.
type Blob struct {
	dir string
}

// NewJsonBlob creates a new blob storage at the given path.
func NewJsonBlob(dir string, shard string) *Blob {
	return &Blob{dir: filepath.Join(storage.DefaultDir, dir, shard)}
}

func (b *Blob) fileName(k storage.Key) string {
	return filepath.Join(b.dir, fmt.Sprintf("%s.json", k.Path()))
}

func (b *Blob) Store(k storage.Key, value interface{}) error {
	if err := os.MkdirAll(b.dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not make dir %s: %w", b.dir, err)
	}

	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal '%+v': %w", k, err)
	}

	p := b.fileName(k)
	if err := os.WriteFile(p, bb, 0644); err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}
	return nil
}

func (b *Blob) Load(k storage.Key, value interface{}) error {
	p := b.fileName(k)

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read file '%s': %w", p, storage.NotFoundErr)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("could not unmarshal key '%+v': %w", k, storage.CouldNotLoadErr)
	}
	return nil
}
