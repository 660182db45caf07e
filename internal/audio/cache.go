package audio

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// SoundCache keeps decoded sounds so a repeated alarm is not decoded
// again. Entries are keyed by source name (file path or builtin name).
// Safe for concurrent use.
type SoundCache struct {
	entries *lru.Cache[string, *Sound]
	log     *logger.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewSoundCache creates a cache holding at most size sounds. Sizes below
// one are raised to one.
func NewSoundCache(size int, log *logger.Logger) *SoundCache {
	if size < 1 {
		size = 1
	}
	entries, err := lru.NewWithEvict(size, func(name string, _ *Sound) {
		log.Debug("evicted %s", name)
	})
	if err != nil {
		// Only returned for non-positive sizes, excluded above.
		panic(err)
	}
	return &SoundCache{entries: entries, log: log}
}

// Load returns the cached sound for name, or calls decode and caches its
// result. Decode errors are not cached.
func (c *SoundCache) Load(name string, decode func() (*Sound, error)) (*Sound, error) {
	if snd, ok := c.entries.Get(name); ok {
		c.hits.Add(1)
		c.log.Debug("hit %s", name)
		return snd, nil
	}

	c.misses.Add(1)
	snd, err := decode()
	if err != nil {
		return nil, err
	}
	c.entries.Add(name, snd)
	c.log.Debug("stored %s (%s)", name, snd.Duration())
	return snd, nil
}

// Forget drops name from the cache.
func (c *SoundCache) Forget(name string) {
	c.entries.Remove(name)
}

// Stats returns hit and miss counts.
func (c *SoundCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
