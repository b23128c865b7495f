// Package cache is a tag-addressable, memory-bounded, TTL'd in-process
// cache for computed analytics views.
//
// Entries expire lazily on read and are evicted one at a time under
// pressure: a set over either ceiling evicts the single least recently
// accessed entry and then proceeds, so ceilings are soft and new data
// is never silently dropped
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/zoobzio/clockz"
	"golang.org/x/sync/errgroup"

	"gearbox/internal/core/shopname"
)

// construction defaults
const (
	DefaultMaxEntries = 100
	DefaultMaxBytes   = 50 << 20
	DefaultTTL        = 10 * time.Minute

	warmConcurrency = 4
)

// Config bounds one cache instance
type Config struct {
	MaxEntries int
	MaxBytes   int64
	TTL        time.Duration
}

// withDefaults fills unset fields; zero means "use the default", so a
// caller cannot accidentally build an unbounded cache
func (c Config) withDefaults() Config {
	if c.MaxEntries <= 0 {
		c.MaxEntries = DefaultMaxEntries
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	return c
}

// Option tunes cache construction
type Option func(*options)

type options struct {
	clock clockz.Clock
	log   zerolog.Logger
}

// WithClock injects the time source; tests drive TTL with a fake clock
func WithClock(c clockz.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger used for warming and size-estimate noise
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

type entry[V any] struct {
	value        V
	createdAt    time.Time
	lastAccessed time.Time
	hits         int64
	size         int64
	tags         []string
}

// Cache is safe for concurrent use; every operation runs as one atomic
// unit under the mutex, including the multi-step set/evict path
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	bytes   int64

	maxEntries int
	maxBytes   int64
	ttl        time.Duration

	clock clockz.Clock
	log   zerolog.Logger

	hits      int64
	misses    int64
	evictions int64
}

// New builds a cache with the given bounds
func New[V any](cfg Config, opts ...Option) *Cache[V] {
	o := options{clock: clockz.RealClock, log: zerolog.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	cfg = cfg.withDefaults()
	return &Cache[V]{
		entries:    make(map[string]*entry[V]),
		maxEntries: cfg.MaxEntries,
		maxBytes:   cfg.MaxBytes,
		ttl:        cfg.TTL,
		clock:      o.clock,
		log:        o.log,
	}
}

// Get returns the cached value for k. An entry past its TTL counts as
// a miss and is deleted on the spot; there is no background sweep
func (c *Cache[V]) Get(k Key) (V, bool) {
	var zero V
	ks := k.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ks]
	if !ok {
		c.misses++
		return zero, false
	}
	now := c.clock.Now()
	if now.Sub(e.createdAt) > c.ttl {
		c.removeLocked(ks, e)
		c.misses++
		return zero, false
	}
	c.hits++
	e.hits++
	e.lastAccessed = now
	return e.value, true
}

// Set stores v under k, evicting at most one LRU entry first if the
// cache is at its entry or byte ceiling. A set still over budget after
// that single eviction is accepted anyway
func (c *Cache[V]) Set(k Key, v V) {
	ks := k.String()
	size := c.estimateSize(ks, v)

	c.mu.Lock()
	defer c.mu.Unlock()

	projected := c.bytes + size
	atCount := false
	if old, ok := c.entries[ks]; ok {
		projected -= old.size
	} else {
		atCount = len(c.entries) >= c.maxEntries
	}
	if atCount || projected > c.maxBytes {
		c.evictOneLocked()
	}

	// the eviction may have taken the key being replaced
	if old, ok := c.entries[ks]; ok {
		c.bytes -= old.size
	}
	now := c.clock.Now()
	c.entries[ks] = &entry[V]{
		value:        v,
		createdAt:    now,
		lastAccessed: now,
		size:         size,
		tags:         k.Tags(),
	}
	c.bytes += size
}

// evictOneLocked removes the least-recently-accessed entry. Linear
// scan; the entry ceiling keeps the map small enough that a linked
// list is not worth the bookkeeping
func (c *Cache[V]) evictOneLocked() {
	var victim string
	var victimEntry *entry[V]
	for ks, e := range c.entries {
		if victimEntry == nil || e.lastAccessed.Before(victimEntry.lastAccessed) {
			victim, victimEntry = ks, e
		}
	}
	if victimEntry == nil {
		return
	}
	c.removeLocked(victim, victimEntry)
	c.evictions++
}

func (c *Cache[V]) removeLocked(ks string, e *entry[V]) {
	delete(c.entries, ks)
	c.bytes -= e.size
}

// estimateSize approximates an entry's memory cost as twice its JSON
// length, mirroring wide-character storage cost. Unmarshalable values
// are stored with size 0 rather than rejected
func (c *Cache[V]) estimateSize(ks string, v V) int64 {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Debug().Str("key", ks).Err(err).Msg("cache size estimate failed")
		return 0
	}
	return 2 * int64(len(b))
}

// Reason classifies what triggered an invalidation
type Reason string

// Invalidation reasons
const (
	ReasonCreate Reason = "create"
	ReasonUpdate Reason = "update"
	ReasonDelete Reason = "delete"
	ReasonManual Reason = "manual"
)

// dataChange reports whether the reason implies underlying data moved,
// which stales every aggregate and date-ranged view regardless of shop
func (r Reason) dataChange() bool {
	return r == ReasonCreate || r == ReasonUpdate || r == ReasonDelete
}

// Event describes one invalidation request. Transient; never stored
type Event struct {
	Reason   Reason
	Shops    []string
	Statuses []string
	At       time.Time
}

// tagSet expands the event into the tags it implicates
func (ev Event) tagSet() map[string]struct{} {
	tags := make(map[string]struct{})
	for _, s := range ev.Shops {
		tags[shopTagPrefix+shopname.GroupKey(s)] = struct{}{}
	}
	for _, s := range ev.Statuses {
		tags[statusTagPrefix+strings.ToUpper(strings.TrimSpace(s))] = struct{}{}
	}
	if ev.Reason.dataChange() {
		tags[TagGlobal] = struct{}{}
		tags[TagHasDateRange] = struct{}{}
	}
	return tags
}

// Invalidate removes every entry whose tag set intersects the event's
// implicated tags and returns the removed count
func (c *Cache[V]) Invalidate(ev Event) int {
	want := ev.tagSet()
	if len(want) == 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for ks, e := range c.entries {
		for _, t := range e.tags {
			if _, hit := want[t]; hit {
				c.removeLocked(ks, e)
				removed++
				break
			}
		}
	}
	return removed
}

// InvalidateAll clears the cache unconditionally and returns the
// number of entries dropped
func (c *Cache[V]) InvalidateAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*entry[V])
	c.bytes = 0
	return n
}

// Warm eagerly populates the given keys. Per-key compute failures are
// logged and skipped; warming never fails as a whole
func (c *Cache[V]) Warm(ctx context.Context, keys []Key, compute func(context.Context, Key) (V, error)) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, k := range keys {
		g.Go(func() error {
			v, err := compute(ctx, k)
			if err != nil {
				c.log.Warn().Str("key", k.String()).Err(err).Msg("cache warm skipped")
				return nil
			}
			c.Set(k, v)
			return nil
		})
	}
	_ = g.Wait()
}

// Stats is a point-in-time snapshot of cache behavior
type Stats struct {
	Hits        int64         `json:"hits"`
	Misses      int64         `json:"misses"`
	HitRate     float64       `json:"hit_rate"`
	Entries     int           `json:"entries"`
	Evictions   int64         `json:"evictions"`
	MemoryBytes int64         `json:"memory_bytes"`
	OldestAge   time.Duration `json:"oldest_age"`
	NewestAge   time.Duration `json:"newest_age"`
	AverageAge  time.Duration `json:"average_age"`
}

// Stats reports counters and entry-age aggregates
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		Entries:     len(c.entries),
		Evictions:   c.evictions,
		MemoryBytes: c.bytes,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	if len(c.entries) == 0 {
		return s
	}

	now := c.clock.Now()
	var sum time.Duration
	first := true
	for _, e := range c.entries {
		age := now.Sub(e.createdAt)
		sum += age
		if first || age > s.OldestAge {
			s.OldestAge = age
		}
		if first || age < s.NewestAge {
			s.NewestAge = age
		}
		first = false
	}
	s.AverageAge = sum / time.Duration(len(c.entries))
	return s
}
