package json

import (
	"errors"
	"testing"

	"github.com/drakos74/odsearch/internal/storage"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestBlob_StoreLoad(t *testing.T) {

	storage.DefaultDir = t.TempDir()

	shard := BlobShard("test")
	store, err := shard(storage.ResultsDir)
	assert.NoError(t, err)

	k := storage.Key{Run: "run-1", Label: "leaderboard"}
	in := payload{Name: "ecod", Score: 0.97}

	assert.NoError(t, store.Store(k, in))

	var out payload
	assert.NoError(t, store.Load(k, &out))
	assert.Equal(t, in, out)

}

func TestBlob_LoadMissing(t *testing.T) {

	storage.DefaultDir = t.TempDir()

	store := NewJsonBlob("test", storage.ResultsDir)
	var out payload
	err := store.Load(storage.Key{Run: "nope", Label: "nope"}, &out)
	assert.True(t, errors.Is(err, storage.NotFoundErr))

}
