package field

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/feranick/gwyddion-py3-sub000/internal/tiff"
)

type cacheKey struct {
	path string
	dir  int
	opts Options
}

// Cache keeps recently decoded fields, keyed by file, directory and options.
// It is safe for concurrent use. Cached fields are shared and must not be
// modified.
type Cache struct {
	lru *lru.Cache
}

// NewCache creates a cache holding up to size fields.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("field cache: %w", err)
	}
	return &Cache{lru: c}, nil
}

// Load returns the field for directory dir of the file at path, decoding it
// on a miss.
func (c *Cache) Load(path string, dir int, opts Options) (*Field, error) {
	key := cacheKey{path: path, dir: dir, opts: opts}
	if v, ok := c.lru.Get(key); ok {
		return v.(*Field), nil
	}

	f, err := tiff.Load(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	f.AllowCompressed(opts.AllowCompressed)

	fld, err := Read(f, dir, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.lru.Add(key, fld)
	return fld, nil
}

// Len returns the number of cached fields.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge drops every cached field.
func (c *Cache) Purge() { c.lru.Purge() }
