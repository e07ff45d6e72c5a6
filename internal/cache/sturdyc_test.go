package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetDelete(t *testing.T) {
	store := New(100, 8, time.Minute, 10)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Set("k", "value")
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	store.Delete("k")
	_, ok = store.Get("k")
	assert.False(t, ok)
}

func TestStore_OverwriteIsLastWriteWins(t *testing.T) {
	store := New(100, 8, time.Minute, 10)

	store.Set("k", 1)
	store.Set("k", 2)

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}
