// Package translation holds the in-process result cache and the streaming
// relay that feeds it.
package translation

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// Cache maps (user, content fingerprint, target language) to the last fully
// assembled translation. Entries never expire on their own; the cache is
// bounded only by an explicit clear or a process restart.
//
// The key is namespaced by the requesting user: identical input from two
// users never shares an entry. Sharing would leak one user's paid output to
// another.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// cacheKey derives the entry key. The content fingerprint is a truncated
// SHA-256 — collision-acceptable, it only needs to distinguish documents,
// not certify them.
func cacheKey(username string, content string, targetLanguage string) string {
	sum := sha256.Sum256([]byte(content))
	return username + "|" + hex.EncodeToString(sum[:16]) + "|" + strings.ToLower(targetLanguage)
}

func (c *Cache) Get(username string, content string, targetLanguage string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.entries[cacheKey(username, content, targetLanguage)]
	return text, ok
}

func (c *Cache) Put(username string, content string, targetLanguage string, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(username, content, targetLanguage)] = text
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}

func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
