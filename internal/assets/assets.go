// Package assets caches decoded material textures so groups and reloads
// that reference the same image share one decode.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/vitrine/internal/engine/texture"
)

// Cache is an in-memory cache of decoded texture images keyed by their
// cleaned path.
type Cache struct {
	mu     sync.Mutex
	images map[string]*image.RGBA

	// Stats
	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]*image.RGBA),
	}
}

// Image returns the decoded texture at path, reading and decoding it on
// the first request.
func (c *Cache) Image(path string) (*image.RGBA, error) {
	path = filepath.Clean(path)

	c.mu.Lock()
	img, ok := c.images[path]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture %s: %w", path, err)
	}
	img, err = texture.Decode(data, path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = make(map[string]*image.RGBA)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
