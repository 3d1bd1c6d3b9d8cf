package controller

import (
	"context"
	"log"
	"maps"
	"net/url"
	"sync"
	"time"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/pricing"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/selection"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

type State string

const (
	StateIdle      State = "idle"
	StateResolving State = "resolving"
	StateResolved  State = "resolved"
	StateFailed    State = "failed"
)

// Snapshot is the consistent view every subscribed surface renders from.
// Products is already post-processed (price filtered and sorted).
type Snapshot struct {
	State     State
	Selection selection.Selection
	Products  []types.Product
	Facets    resolve.Filters
	Err       error
}

// Subscriber receives a snapshot after every published mutation.
type Subscriber func(Snapshot)

// Navigator receives navigation-state writes when the shopper picks a
// subcategory, making the view bookmarkable. Only category and subcategory
// are ever written.
type Navigator interface {
	NavChanged(values url.Values)
}

const defaultResolveTimeout = 10 * time.Second

type Options struct {
	Registry *taxonomy.Registry
	Resolver resolve.Resolver
	// Navigator may be nil when no surface owns a URL bar.
	Navigator Navigator
	// ResolveTimeout bounds how long the controller stays in resolving.
	// Zero means the 10s default.
	ResolveTimeout time.Duration
}

// Controller is the single source of truth for the browsing session. All
// three UI surfaces mutate through it and render from its snapshots, so
// they can never diverge.
type Controller struct {
	mu       sync.Mutex
	registry *taxonomy.Registry
	resolver resolve.Resolver
	nav      Navigator
	timeout  time.Duration

	sel    selection.Selection
	state  State
	seq    uint64
	raw    []types.Product
	facets resolve.Filters
	err    error

	subs    map[int]Subscriber
	nextSub int

	// pubMu serializes snapshot delivery so no surface can observe an
	// older snapshot after a newer one.
	pubMu     sync.Mutex
	pubGen    uint64
	delivered uint64
}

func New(opts Options) *Controller {
	timeout := opts.ResolveTimeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	return &Controller{
		registry: opts.Registry,
		resolver: opts.Resolver,
		nav:      opts.Navigator,
		timeout:  timeout,
		sel:      selection.New(),
		state:    StateIdle,
		raw:      []types.Product{},
		facets:   resolve.EmptyFilters(),
		subs:     map[int]Subscriber{},
	}
}

// Subscribe registers a render surface. The returned function removes it.
// The subscriber immediately receives the current snapshot unless a newer
// publish already reached it first.
func (c *Controller) Subscribe(fn Subscriber) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	snap := c.snapshotLocked()
	gen := c.pubGen
	c.mu.Unlock()

	c.pubMu.Lock()
	if gen >= c.delivered {
		fn(snap)
	}
	c.pubMu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:     c.state,
		Selection: c.sel,
		Products:  pricing.Derive(c.raw, c.sel.Price, c.sel.Sort),
		Facets:    c.facets,
		Err:       c.err,
	}
}

func (c *Controller) publishLocked() (uint64, Snapshot, []Subscriber) {
	c.pubGen++
	snap := c.snapshotLocked()
	subs := make([]Subscriber, 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return c.pubGen, snap, subs
}

// publish delivers one snapshot to the given subscribers. Delivery is
// serialized and a snapshot superseded before its turn is dropped, so
// subscribers always see publishes in generation order.
func (c *Controller) publish(gen uint64, snap Snapshot, subs []Subscriber) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	if gen <= c.delivered {
		return
	}
	c.delivered = gen
	for _, fn := range subs {
		fn(snap)
	}
}

// Mount seeds the selection from navigation state and starts the first
// resolution.
func (c *Controller) Mount(nav url.Values) {
	c.mu.Lock()
	c.sel = selection.DecodeNav(nav, c.registry)
	c.startResolveLocked()
	gen, snap, subs := c.publishLocked()
	c.mu.Unlock()
	c.publish(gen, snap, subs)
}

// HandleNavChange reacts to an external navigation change. Moving to a
// different category or subcategory resets brand, spec, price and sort,
// re-seeds the taxonomic part of the selection and resolves again.
func (c *Controller) HandleNavChange(nav url.Values) {
	c.mu.Lock()
	next := selection.DecodeNav(nav, c.registry)
	sameTarget := maps.Equal(c.sel.Categories, next.Categories) &&
		maps.Equal(c.sel.Subcategories, next.Subcategories)
	if sameTarget {
		c.mu.Unlock()
		return
	}
	c.sel = next
	c.state = StateIdle
	c.startResolveLocked()
	gen, snap, subs := c.publishLocked()
	c.mu.Unlock()
	c.publish(gen, snap, subs)
}

func (c *Controller) ToggleCategory(value string) {
	c.mutate(func(sel selection.Selection) selection.Selection {
		return selection.ToggleCategory(sel, value, c.registry)
	})
}

// ToggleSubcategory also writes the chosen subcategory back into navigation
// state so the view becomes shareable.
func (c *Controller) ToggleSubcategory(value string) {
	c.mu.Lock()
	next := selection.ToggleSubcategory(c.sel, value, c.registry)
	triggers := selection.TriggersResolution(c.sel, next)
	c.sel = next
	if triggers {
		c.startResolveLocked()
	}
	nav := selection.EncodeNav(c.sel)
	gen, snap, subs := c.publishLocked()
	navigator := c.nav
	c.mu.Unlock()

	if navigator != nil {
		navigator.NavChanged(nav)
	}
	c.publish(gen, snap, subs)
}

func (c *Controller) ToggleBrand(value string) {
	c.mutate(func(sel selection.Selection) selection.Selection {
		return selection.ToggleBrand(sel, value)
	})
}

func (c *Controller) ToggleSpecValue(key, value string) {
	c.mutate(func(sel selection.Selection) selection.Selection {
		return selection.ToggleSpecValue(sel, key, value)
	})
}

// SetPriceRange never causes a round trip, the post-processor recomputes
// the displayed list from the products already held.
func (c *Controller) SetPriceRange(min, max *float64) {
	c.mutateLocal(func(sel selection.Selection) selection.Selection {
		return selection.SetPriceRange(sel, min, max)
	})
}

func (c *Controller) SetSort(sort types.Sort) {
	c.mutateLocal(func(sel selection.Selection) selection.Selection {
		return selection.SetSort(sel, sort)
	})
}

// ClearAll resets every filter except the navigation seed.
func (c *Controller) ClearAll(preserve selection.Preserve) {
	c.mutate(func(selection.Selection) selection.Selection {
		return selection.ClearAll(preserve, c.registry)
	})
}

func (c *Controller) mutate(apply func(selection.Selection) selection.Selection) {
	c.mu.Lock()
	next := apply(c.sel)
	triggers := selection.TriggersResolution(c.sel, next)
	c.sel = next
	if triggers {
		c.startResolveLocked()
	}
	gen, snap, subs := c.publishLocked()
	c.mu.Unlock()
	c.publish(gen, snap, subs)
}

func (c *Controller) mutateLocal(apply func(selection.Selection) selection.Selection) {
	c.mu.Lock()
	c.sel = apply(c.sel)
	if c.state != StateResolving {
		c.state = StateResolved
	}
	gen, snap, subs := c.publishLocked()
	c.mu.Unlock()
	c.publish(gen, snap, subs)
}

// startResolveLocked issues a new resolution tagged with the next sequence
// number. There is no transport-level cancellation of the previous request,
// a superseded response is simply discarded when it arrives.
func (c *Controller) startResolveLocked() {
	c.seq++
	seq := c.seq
	c.state = StateResolving
	req := c.sel.Request()
	go c.resolve(seq, req)
}

func (c *Controller) resolve(seq uint64, req *resolve.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	res, err := c.resolver.Resolve(ctx, req)

	c.mu.Lock()
	if seq != c.seq {
		// A newer request was issued while this one was in flight.
		latest := c.seq
		c.mu.Unlock()
		log.Printf("discarding stale resolution %d (latest %d)", seq, latest)
		return
	}
	if err != nil {
		log.Printf("resolution %d failed: %v", seq, err)
		c.state = StateFailed
		c.raw = []types.Product{}
		c.facets = resolve.EmptyFilters()
		c.err = err
	} else {
		c.state = StateResolved
		c.raw = res.Products
		c.facets = res.Filters
		c.err = nil
	}
	gen, snap, subs := c.publishLocked()
	c.mu.Unlock()
	c.publish(gen, snap, subs)
}
