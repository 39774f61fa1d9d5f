package secure

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// cacheEntry is a cached API response row.
type cacheEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// CacheStore caches non-sensitive API responses in a local SQLite
// database so list screens render before the network answers. The
// database opens lazily on first use; when it cannot be opened the
// store degrades to a no-op rather than failing requests.
type CacheStore struct {
	dir string
	log zerolog.Logger

	initOnce sync.Once
	db       *gorm.DB
}

// NewCacheStore returns a CacheStore backed by a database under dir.
func NewCacheStore(dir string, log zerolog.Logger) *CacheStore {
	return &CacheStore{dir: dir, log: log}
}

func (c *CacheStore) init() *gorm.DB {
	c.initOnce.Do(func() {
		if err := os.MkdirAll(c.dir, 0700); err != nil {
			c.log.Debug().Err(err).Msg("response cache unavailable, running without it")
			return
		}
		db, err := gorm.Open(sqlite.Open(filepath.Join(c.dir, "cache.db")), &gorm.Config{
			Logger: gormlogger.Discard,
		})
		if err != nil {
			c.log.Debug().Err(err).Msg("response cache unavailable, running without it")
			return
		}
		if err := db.AutoMigrate(&cacheEntry{}); err != nil {
			c.log.Debug().Err(err).Msg("response cache migration failed, running without it")
			return
		}
		c.db = db
	})
	return c.db
}

// Put stores a value under key with a time-to-live. Degraded stores
// drop the write silently.
func (c *CacheStore) Put(key string, value []byte, ttl time.Duration) {
	db := c.init()
	if db == nil {
		return
	}
	entry := cacheEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
		UpdatedAt: time.Now(),
	}
	if err := db.Save(&entry).Error; err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Get returns the cached value for key, or nil when absent, expired,
// or the store is degraded.
func (c *CacheStore) Get(key string) []byte {
	db := c.init()
	if db == nil {
		return nil
	}
	var entry cacheEntry
	if err := db.First(&entry, "key = ?", key).Error; err != nil {
		return nil
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = db.Delete(&cacheEntry{}, "key = ?", key).Error
		return nil
	}
	return entry.Value
}

// Remove drops a single cached entry.
func (c *CacheStore) Remove(key string) {
	db := c.init()
	if db == nil {
		return
	}
	if err := db.Delete(&cacheEntry{}, "key = ?", key).Error; err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

// Purge removes every cached entry. Called on logout so the next user
// on the device sees no residual data.
func (c *CacheStore) Purge() {
	db := c.init()
	if db == nil {
		return
	}
	if err := db.Where("1 = 1").Delete(&cacheEntry{}).Error; err != nil {
		c.log.Debug().Err(err).Msg("cache purge failed")
	}
}
