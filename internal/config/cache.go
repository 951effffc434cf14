package config

import "sync"

// Loader resolves a settings snapshot. [Load] is the production loader.
type Loader func() (*Settings, error)

// Cache holds at most one resolved [Settings] snapshot.
//
// The first call to [Cache.Get] runs the loader; every later call, from any
// goroutine, returns the same pointer (or the same error) without running it
// again. Concurrent first calls block until the single resolution finishes.
type Cache struct {
	once     sync.Once
	load     Loader
	settings *Settings
	err      error
}

// NewCache returns an empty cache that resolves through load.
func NewCache(load Loader) *Cache {
	return &Cache{load: load}
}

// Get returns the cached snapshot, resolving it on first use.
func (c *Cache) Get() (*Settings, error) {
	c.once.Do(func() {
		c.settings, c.err = c.load()
	})

	return c.settings, c.err
}

var defaultCache = NewCache(func() (*Settings, error) {
	return Load()
})

// Get returns the process-wide settings snapshot, resolved with [Load] and
// default options on first use.
func Get() (*Settings, error) {
	return defaultCache.Get()
}

// MustGet is like [Get] but panics when resolution fails.
func MustGet() *Settings {
	settings, err := Get()
	if err != nil {
		panic(err)
	}

	return settings
}
