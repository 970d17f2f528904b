// Package cache provides result caching for planner operations.
//
// Engine calls are pure functions of a board and a request, so their results
// can be cached by content hash. The package offers three backends behind
// one interface:
//   - [FileCache]: JSON files under ~/.cache/gridpack for CLI use
//   - [RedisCache]: shared cache for API servers
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so that every caller hashes requests the
// same way; [NewScopedKeyer] prefixes keys for per-tenant isolation.
package cache

import (
	"context"
	"strings"
	"time"
)

// Default time-to-live for cached results.
const (
	TTLPlacement = 24 * time.Hour
	TTLRepair    = 24 * time.Hour
	TTLSnap      = time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// PlacementKeyOpts are the request parameters that affect a placement result.
type PlacementKeyOpts struct {
	Width  int     `json:"w"`
	Height int     `json:"h"`
	SnapX  float64 `json:"sx,omitempty"`
	SnapY  float64 `json:"sy,omitempty"`
	Snap   bool    `json:"snap,omitempty"`
}

// RepairKeyOpts are the request parameters that affect a repair result.
type RepairKeyOpts struct {
	Policy string `json:"policy"`
}

// Keyer builds cache keys for planner results.
type Keyer interface {
	PlacementKey(boardHash string, opts PlacementKeyOpts) string
	RepairKey(boardHash string, opts RepairKeyOpts) string
	SnapKey(dimsHash string, x, y float64) string
}

// DefaultKeyer hashes request options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlacementKey returns "place:<hash>" for a board and requested size.
func (DefaultKeyer) PlacementKey(boardHash string, opts PlacementKeyOpts) string {
	return hashKey("place", boardHash, opts)
}

// RepairKey returns "repair:<hash>" for a board and unplaceable policy.
func (DefaultKeyer) RepairKey(boardHash string, opts RepairKeyOpts) string {
	return hashKey("repair", boardHash, opts)
}

// SnapKey returns "snap:<hash>" for a grid and query point.
func (DefaultKeyer) SnapKey(dimsHash string, x, y float64) string {
	return hashKey("snap", dimsHash, x, y)
}

// KeyType returns the kind of a key produced by a Keyer ("place", "repair",
// "snap"), ignoring any scope prefix.
func KeyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return "other"
	}
	head := key[:i]
	return head[strings.LastIndexByte(head, ':')+1:]
}

// =============================================================================
// NullCache
// =============================================================================

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
