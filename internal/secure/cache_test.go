package secure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGet(t *testing.T) {
	c := NewCacheStore(t.TempDir(), zerolog.Nop())

	c.Put("home/events", []byte(`[{"id":1}]`), time.Minute)

	assert.Equal(t, []byte(`[{"id":1}]`), c.Get("home/events"))
	assert.Nil(t, c.Get("home/bulletins"))
}

func TestCacheExpiry(t *testing.T) {
	c := NewCacheStore(t.TempDir(), zerolog.Nop())

	c.Put("stale", []byte("old"), -time.Second)

	assert.Nil(t, c.Get("stale"))
}

func TestCacheRemove(t *testing.T) {
	c := NewCacheStore(t.TempDir(), zerolog.Nop())

	c.Put("a", []byte("1"), time.Minute)
	c.Remove("a")

	assert.Nil(t, c.Get("a"))
}

func TestCachePurge(t *testing.T) {
	c := NewCacheStore(t.TempDir(), zerolog.Nop())

	c.Put("a", []byte("1"), time.Minute)
	c.Put("b", []byte("2"), time.Minute)

	c.Purge()

	assert.Nil(t, c.Get("a"))
	assert.Nil(t, c.Get("b"))
}

func TestCacheDegradedIsNoOp(t *testing.T) {
	// A file where the cache directory should be makes the database
	// unopenable; every operation must still be safe.
	dir := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0600))
	c := NewCacheStore(dir, zerolog.Nop())

	c.Put("k", []byte("v"), time.Minute)
	assert.Nil(t, c.Get("k"))
	c.Purge()
}
