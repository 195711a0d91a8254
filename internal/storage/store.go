package storage

import (
	"errors"
	"fmt"
)

const (
	ResultsDir = "results"
)

var (
	// DefaultDir can be adjusted for the tests
	DefaultDir = "file-storage"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

// Key is the storage key for a search artefact.
type Key struct {
	Run   string `json:"run"`
	Label string `json:"label"`
}

func (k Key) Path() string {
	return fmt.Sprintf("%s_%s", k.Run, k.Label)
}

type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// VoidStorage is a noop storage
type VoidStorage struct {
}

func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}

func (d VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

func (d VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
}

// VoidShard creates a new noop shard
func VoidShard() Shard {
	return func(shard string) (Persistence, error) {
		return NewVoidStorage(), nil
	}
}
