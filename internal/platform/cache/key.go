package cache

import (
	"sort"
	"strings"

	"gearbox/internal/core/shopname"
)

// Tag vocabulary. Tags are the invalidation unit: every entry carries
// the tags its key implies, and invalidation removes entries whose tag
// set intersects the event's
const (
	TagGlobal       = "type:global"
	TagShop         = "type:shop"
	TagShopList     = "type:shopList"
	TagStatus       = "type:status"
	TagDateRange    = "type:dateRange"
	TagHasDateRange = "hasDateRange"

	shopTagPrefix   = "shop:"
	statusTagPrefix = "status:"
)

// Key identifies a cached value. It is a closed set of kinds so key
// assembly and tag derivation cannot drift apart; equivalent queries
// must serialize to the same string (normalized names, sorted lists)
type Key interface {
	// String returns the deterministic storage key
	String() string
	// Tags returns the invalidation tags the key implies
	Tags() []string

	sealedKey()
}

// GlobalKey addresses the whole-fleet aggregate view
type GlobalKey struct{}

func (GlobalKey) String() string { return "global" }
func (GlobalKey) Tags() []string { return []string{TagGlobal} }
func (GlobalKey) sealedKey()     {}

// ShopKey addresses a single shop's profile by raw name; the name is
// normalized so spelling variants collide
type ShopKey struct {
	Name string
}

func (k ShopKey) String() string { return "shop:" + shopname.GroupKey(k.Name) }
func (k ShopKey) Tags() []string {
	return []string{TagShop, shopTagPrefix + shopname.GroupKey(k.Name)}
}
func (ShopKey) sealedKey() {}

// ShopListKey addresses a multi-shop comparison view. Names are
// normalized and sorted so order of mention does not fragment the cache
type ShopListKey struct {
	Names []string
}

func (k ShopListKey) normalized() []string {
	out := make([]string, len(k.Names))
	for i, n := range k.Names {
		out[i] = shopname.GroupKey(n)
	}
	sort.Strings(out)
	return out
}

func (k ShopListKey) String() string {
	return "shops:" + strings.Join(k.normalized(), ",")
}

func (k ShopListKey) Tags() []string {
	norm := k.normalized()
	tags := make([]string, 0, len(norm)+1)
	tags = append(tags, TagShopList)
	for _, n := range norm {
		tags = append(tags, shopTagPrefix+n)
	}
	return tags
}
func (ShopListKey) sealedKey() {}

// StatusKey addresses a per-status rollup
type StatusKey struct {
	Status string
}

func (k StatusKey) norm() string   { return strings.ToUpper(strings.TrimSpace(k.Status)) }
func (k StatusKey) String() string { return "status:" + k.norm() }
func (k StatusKey) Tags() []string {
	return []string{TagStatus, statusTagPrefix + k.norm()}
}
func (StatusKey) sealedKey() {}

// DateRangeKey addresses a date-bounded view. Ranged views go stale on
// any data change, so they carry the hasDateRange tag
type DateRangeKey struct {
	Start string // YYYY-MM-DD
	End   string
}

func (k DateRangeKey) String() string { return "range:" + k.Start + ":" + k.End }
func (k DateRangeKey) Tags() []string {
	return []string{TagDateRange, TagHasDateRange}
}
func (DateRangeKey) sealedKey() {}
