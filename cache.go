package memcheck

import (
	"regexp"
	"sync"

	"github.com/golang/groupcache/lru"
)

// regexCacheSize bounds the number of remembered path matches
const regexCacheSize = 1 << 12

type regexCacheKey struct {
	Re  *regexp.Regexp
	Str string
}

// MatchCache remembers regexp match results on file paths. Directory walks
// and exclusion rules test the same paths against the same patterns many
// times. It is safe for concurrent use.
type MatchCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewMatchCache creates a cache holding at most size results.
func NewMatchCache(size int) *MatchCache {
	return &MatchCache{cache: lru.New(size)}
}

// Match returns re.MatchString(s), computing it only on a miss.
func (c *MatchCache) Match(re *regexp.Regexp, s string) bool {
	key := regexCacheKey{Re: re, Str: s}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache.Get(key); ok {
		return v.(bool)
	}
	res := re.MatchString(s)
	c.cache.Add(key, res)
	return res
}

// Len returns the number of cached results.
func (c *MatchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// GlobalCache is the match cache shared by path exclusions and source
// discovery.
var GlobalCache = NewMatchCache(regexCacheSize)

// RegexMatchWithCache returns the result of re.MatchString(s), using
// GlobalCache to store previous results.
func RegexMatchWithCache(re *regexp.Regexp, s string) bool {
	return GlobalCache.Match(re, s)
}
