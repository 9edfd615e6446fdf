// Package cache provides the bounded LRU the engine uses to keep recently
// shown fields, so that returning to a window with the same size and tint
// restores pixels instead of evaluating them again.
//
//	c := cache.New[key, []byte](8)
//	c.Set(k, pix)
//	pix, ok := c.Get(k)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
