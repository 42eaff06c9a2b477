// Package cache provides a generic, goroutine-safe LRU cache with optional
// per-entry expiry. Search results are cached here for the page revalidate
// window.
package cache
