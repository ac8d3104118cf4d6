package dialect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache is the interface for caching translated statements.
// Users should implement this interface with their preferred caching solution
// (e.g., Redis, Memcached, in-memory).
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// PlanKey identifies one translation. Two keys with the same string form
// always translate identically, so cached plans never go stale short of a
// dialect version change.
type PlanKey struct {
	Vendor  Vendor
	Version Version
	SQL     string
	Opts    QueryOptions
}

// String returns the string representation of the plan key. Every field of
// QueryOptions participates, so two requests share a key only when they
// translate identically.
func (k PlanKey) String() string {
	lock := k.Opts.Lock
	return fmt.Sprintf("%s:%s:%d:%d:%d:%s:%t:%t:%d:%s:%s",
		k.Vendor, k.Version, k.Opts.Limit, k.Opts.Offset,
		lock.Mode, strings.Join(lock.Of, ","), lock.NoWait, lock.SkipLocked, lock.Wait,
		strings.Join(k.Opts.Hints, ","), k.SQL)
}

// cachedPlan is the msgpack-encoded cache value.
type cachedPlan struct {
	SQL      string `msgpack:"sql"`
	FollowOn bool   `msgpack:"follow_on"`
}

// CachedTranslator memoizes query translations in a Cache. Translation is
// pure, so a hit is always equivalent to re-translating; cache failures fall
// back to translation and are never surfaced.
type CachedTranslator struct {
	t     *Translator
	cache Cache
	ttl   time.Duration
}

// NewCachedTranslator wraps t with cache. A zero ttl caches forever.
func NewCachedTranslator(t *Translator, cache Cache, ttl time.Duration) *CachedTranslator {
	return &CachedTranslator{t: t, cache: cache, ttl: ttl}
}

// Query translates sql under opts, consulting the cache first. The second
// result reports whether the translated query needs follow-on locking.
func (c *CachedTranslator) Query(ctx context.Context, sql string, opts QueryOptions) (string, bool, error) {
	key := PlanKey{
		Vendor:  c.t.d.vendor,
		Version: c.t.d.version,
		SQL:     sql,
		Opts:    opts,
	}.String()
	if raw, err := c.cache.Get(ctx, key); err == nil && raw != nil {
		var plan cachedPlan
		if err := msgpack.Unmarshal(raw, &plan); err == nil {
			return plan.SQL, plan.FollowOn, nil
		}
	}
	translated, err := c.t.Query(sql, opts)
	if err != nil {
		return "", false, err
	}
	plan := cachedPlan{
		SQL:      translated,
		FollowOn: c.t.RequiresFollowOnLocking(sql, opts),
	}
	if raw, err := msgpack.Marshal(plan); err == nil {
		// Best effort: a failed store only costs the next translation.
		_ = c.cache.Set(ctx, key, raw, c.ttl)
	}
	return plan.SQL, plan.FollowOn, nil
}

// Invalidate drops every cached plan for one vendor.
func (c *CachedTranslator) Invalidate(ctx context.Context) error {
	return c.cache.DeletePrefix(ctx, string(c.t.d.vendor)+":")
}
