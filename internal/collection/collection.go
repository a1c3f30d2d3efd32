// Package collection is the engine behind every list view: it fetches a
// resource collection, keeps it in memory, re-sorts it by a chosen field and
// slices it into pages. Projects, Tasks and Users all run on the same
// controller, parameterized by field accessors and fetch/delete functions.
package collection

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Field describes one sortable column of an item type. Date fields compare
// as parsed times; everything else compares case-insensitively as text.
type Field[T any] struct {
	Key   string
	Label string
	Value func(T) string
	Date  bool
}

// SortState is reset only when a controller is constructed (fresh page
// mount), never on data refresh.
type SortState struct {
	Key string
	Dir Direction
}

// PageSizes is the fixed items-per-page option set.
var PageSizes = []int{5, 10, 20, 50}

const DefaultPageSize = 5

// Controller owns one mounted view's collection, sort state and pagination
// state. It is not safe for concurrent use; all mutation happens on the
// event loop of the view that owns it.
type Controller[T any] struct {
	fields []Field[T]
	id     func(T) string
	fetch  func(ctx context.Context) ([]T, error)
	remove func(ctx context.Context, id string) error

	items   []T
	sort    SortState
	page    int
	perPage int

	// gen guards against a slow fetch from an earlier load (or an earlier
	// mount of the same logical view) landing on top of newer data.
	gen uint64
}

type Config[T any] struct {
	Fields []Field[T]
	ID     func(T) string
	Fetch  func(ctx context.Context) ([]T, error)
	// Remove deletes one item server-side. Nil disables Remove.
	Remove func(ctx context.Context, id string) error
	// PerPage must be one of PageSizes; anything else falls back to the
	// default.
	PerPage int
}

func New[T any](cfg Config[T]) *Controller[T] {
	perPage := DefaultPageSize
	if validPageSize(cfg.PerPage) {
		perPage = cfg.PerPage
	}
	return &Controller[T]{
		fields:  cfg.Fields,
		id:      cfg.ID,
		fetch:   cfg.Fetch,
		remove:  cfg.Remove,
		sort:    SortState{Dir: Asc},
		page:    1,
		perPage: perPage,
	}
}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}

// BeginLoad invalidates any in-flight fetch and returns the generation the
// next Apply must present. The fetch itself runs wherever the caller wants
// (a tea.Cmd in the TUI, inline in the CLI).
func (c *Controller[T]) BeginLoad() uint64 {
	c.gen++
	return c.gen
}

// Apply installs a fetch result. Results from a stale generation are
// dropped: a view that reloaded (or remounted) must never see an older
// response overwrite a newer one. On error the collection becomes empty and
// the view degrades to an error line, not a crash.
func (c *Controller[T]) Apply(gen uint64, items []T, err error) bool {
	if gen != c.gen {
		return false
	}
	if err != nil {
		c.items = nil
	} else {
		// Server order is kept as-is; the sort state survives a refresh
		// but is not implicitly re-applied.
		c.items = items
	}
	c.clampPage()
	return true
}

// StartLoad is BeginLoad plus the fetch closure, for event-loop callers
// that must run the network call off the loop and Apply the result back on
// it.
func (c *Controller[T]) StartLoad(ctx context.Context) (uint64, func() ([]T, error)) {
	gen := c.BeginLoad()
	fetch := c.fetch
	return gen, func() ([]T, error) {
		if fetch == nil {
			return nil, nil
		}
		return fetch(ctx)
	}
}

// Reset gives the controller fresh-mount semantics: sort back to unsorted
// ascending, page 1, no items. Bumping the generation here is what keeps a
// slow response from a previous mount of the same logical view from landing
// on the remounted one.
func (c *Controller[T]) Reset() {
	c.gen++
	c.items = nil
	c.sort = SortState{Dir: Asc}
	c.page = 1
}

// Load fetches synchronously: BeginLoad, fetch, Apply. CLI call sites use
// this; the TUI splits the steps across a command and its message.
func (c *Controller[T]) Load(ctx context.Context) error {
	gen := c.BeginLoad()
	if c.fetch == nil {
		c.Apply(gen, nil, nil)
		return nil
	}
	items, err := c.fetch(ctx)
	c.Apply(gen, items, err)
	return err
}

// Field returns the declared field for key.
func (c *Controller[T]) Field(key string) (Field[T], bool) {
	for _, f := range c.fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field[T]{}, false
}

func (c *Controller[T]) Fields() []Field[T] { return c.fields }

// SortBy applies the sort transition (same key toggles direction, a new key
// starts ascending) and stably re-sorts the whole collection. Sorting and
// pagination compose: the full collection is ordered first, Slice cuts the
// page afterwards.
func (c *Controller[T]) SortBy(key string) bool {
	f, ok := c.Field(key)
	if !ok {
		return false
	}
	if c.sort.Key == key && c.sort.Dir == Asc {
		c.sort.Dir = Desc
	} else {
		c.sort = SortState{Key: key, Dir: Asc}
	}

	asc := c.sort.Dir == Asc
	if f.Date {
		sort.SliceStable(c.items, func(i, j int) bool {
			a, b := parseWhen(f.Value(c.items[i])), parseWhen(f.Value(c.items[j]))
			if asc {
				return a.Before(b)
			}
			return b.Before(a)
		})
	} else {
		sort.SliceStable(c.items, func(i, j int) bool {
			a := strings.ToLower(f.Value(c.items[i]))
			b := strings.ToLower(f.Value(c.items[j]))
			if asc {
				return a < b
			}
			return b < a
		})
	}
	return true
}

// parseWhen is deliberately forgiving: backends emit a few ISO variants, and
// a missing or unparseable date sorts as the lowest value rather than
// erroring.
func parseWhen(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (c *Controller[T]) Sort() SortState { return c.sort }

func (c *Controller[T]) Len() int { return len(c.items) }

// TotalPages is never below 1, even for an empty collection.
func (c *Controller[T]) TotalPages() int {
	n := (len(c.items) + c.perPage - 1) / c.perPage
	if n < 1 {
		return 1
	}
	return n
}

func (c *Controller[T]) Page() int    { return c.page }
func (c *Controller[T]) PerPage() int { return c.perPage }

// SetPage clamps into [1, TotalPages].
func (c *Controller[T]) SetPage(n int) {
	c.page = n
	c.clampPage()
}

// SetPerPage accepts only the fixed option set and resets to page 1.
func (c *Controller[T]) SetPerPage(n int) bool {
	if !validPageSize(n) {
		return false
	}
	c.perPage = n
	c.page = 1
	return true
}

func (c *Controller[T]) clampPage() {
	if max := c.TotalPages(); c.page > max {
		c.page = max
	}
	if c.page < 1 {
		c.page = 1
	}
}

// Slice returns the current page of the sorted collection. Empty collection
// means an empty slice, never an error.
func (c *Controller[T]) Slice() []T {
	start := (c.page - 1) * c.perPage
	if start >= len(c.items) {
		return nil
	}
	end := start + c.perPage
	if end > len(c.items) {
		end = len(c.items)
	}
	return c.items[start:end]
}

// Items returns the full collection in its current order.
func (c *Controller[T]) Items() []T { return c.items }

// Find returns the item with the given id.
func (c *Controller[T]) Find(id string) (T, bool) {
	var zero T
	if c.id == nil {
		return zero, false
	}
	for _, it := range c.items {
		if c.id(it) == id {
			return it, true
		}
	}
	return zero, false
}

// Remove deletes the item server-side, then drops it locally on success (no
// re-fetch) and re-clamps the page so the view never points past the new
// last page. On failure the collection is untouched and the server's detail
// comes back to the caller.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	if err := c.RemoveRemote(ctx, id); err != nil {
		return err
	}
	c.Discard(id)
	return nil
}

// RemoveRemote is the server-side half of Remove, safe to call off the
// event loop; it never touches local state. Callers Discard the item on
// their own loop once the result comes back.
func (c *Controller[T]) RemoveRemote(ctx context.Context, id string) error {
	if c.remove == nil {
		return errors.New("collection: remove not supported")
	}
	return c.remove(ctx, id)
}

// Discard drops one item from the in-memory collection by identity and
// re-clamps the page. It is the local half of Remove, split out so async
// call sites can delete over the wire first and mutate state on their own
// event loop.
func (c *Controller[T]) Discard(id string) {
	if c.id == nil {
		return
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if c.id(it) != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.clampPage()
}
