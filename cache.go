package rregex

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps recently compiled patterns so that callers compiling the same
// pattern repeatedly, such as a batch run over many inputs, pay for
// compilation once. A Cache is safe for concurrent use.
//
// Example:
//
//	cache, _ := rregex.NewCache(128)
//	re, err := cache.Compile(`\d+`)
type Cache struct {
	config  Config
	regexes *lru.Cache[string, *Regex]
	sets    *lru.Cache[string, *RegexSet]
}

// NewCache creates a cache holding up to size patterns and size sets,
// compiled with the default configuration. size must be positive.
func NewCache(size int) (*Cache, error) {
	return NewCacheWithConfig(size, DefaultConfig())
}

// NewCacheWithConfig is like NewCache with a custom engine configuration.
func NewCacheWithConfig(size int, config Config) (*Cache, error) {
	regexes, err := lru.New[string, *Regex](size)
	if err != nil {
		return nil, err
	}
	sets, err := lru.New[string, *RegexSet](size)
	if err != nil {
		return nil, err
	}
	return &Cache{config: config, regexes: regexes, sets: sets}, nil
}

// Compile returns the cached Regex for pattern, compiling it on a miss.
// Compile errors are not cached.
func (c *Cache) Compile(pattern string) (*Regex, error) {
	if re, ok := c.regexes.Get(pattern); ok {
		return re, nil
	}
	re, err := CompileWithConfig(pattern, c.config)
	if err != nil {
		return nil, err
	}
	c.regexes.Add(pattern, re)
	return re, nil
}

// Set returns the cached RegexSet for patterns, building it on a miss.
func (c *Cache) Set(patterns []string) (*RegexSet, error) {
	key := setKey(patterns)
	if set, ok := c.sets.Get(key); ok {
		return set, nil
	}
	set, err := NewSetWithConfig(patterns, c.config)
	if err != nil {
		return nil, err
	}
	c.sets.Add(key, set)
	return set, nil
}

// Len returns the number of cached patterns, sets excluded.
func (c *Cache) Len() int {
	return c.regexes.Len()
}

// Purge drops every cached pattern and set.
func (c *Cache) Purge() {
	c.regexes.Purge()
	c.sets.Purge()
}

// setKey encodes patterns with a length prefix on each, so that no two
// pattern lists share a key.
func setKey(patterns []string) string {
	var b strings.Builder
	for _, p := range patterns {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}
