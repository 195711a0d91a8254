package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage(t *testing.T) {

	store, err := LocalShard()("results")
	assert.NoError(t, err)

	k := Key{Run: "run-1", Label: "result"}
	assert.NoError(t, store.Store(k, map[string]float64{"score": 0.9}))

	out := make(map[string]float64)
	assert.NoError(t, store.Load(k, &out))
	assert.Equal(t, 0.9, out["score"])

	err = store.Load(Key{Run: "other"}, &out)
	assert.True(t, errors.Is(err, NotFoundErr))

	assert.NoError(t, VoidStorage{}.Store(k, "whatever"))
	err = VoidStorage{}.Load(k, &out)
	assert.True(t, errors.Is(err, NotFoundErr))

}

func TestVoidShard(t *testing.T) {

	store, err := VoidShard()("anything")
	assert.NoError(t, err)

	k := Key{Run: "run-1", Label: "result"}
	assert.NoError(t, store.Store(k, "whatever"))

	var out string
	err = store.Load(k, &out)
	assert.True(t, errors.Is(err, NotFoundErr))

}
