package fold

import "slices"

// DefaultCacheWindow is the index distance within which active panes are
// kept rather than evicted for reuse.
const DefaultCacheWindow = 2

// PaneCache maps page indices to panes and recycles panes that fell out of
// use. It is not safe for concurrent use; all calls happen on the thread
// that drives rotation updates.
type PaneCache struct {
	window    int
	active    map[int]*Pane
	pool      []*Pane // FIFO of detached panes
	allocated int

	// newPane allocates a fresh pane when nothing can be reused.
	newPane func() *Pane
	// onEvict, when set, observes farthest-pane evictions.
	onEvict func(p *Pane, from, to int)
}

// NewPaneCache creates an empty cache. A window below zero uses
// DefaultCacheWindow.
func NewPaneCache(window int) *PaneCache {
	if window < 0 {
		window = DefaultCacheWindow
	}
	return &PaneCache{
		window:  window,
		active:  make(map[int]*Pane),
		newPane: func() *Pane { return NewPane(0, 0) },
	}
}

// Acquire returns the pane bound to index, creating or recycling one when
// needed. Indices outside [0, provider.Count()) return nil.
//
// Resolution order: the active pane for index; the oldest pooled pane; the
// active pane farthest from index when that distance exceeds the window;
// a newly allocated pane.
func (c *PaneCache) Acquire(index int, provider Provider) *Pane {
	if provider == nil || index < 0 || index >= provider.Count() {
		return nil
	}
	if p, ok := c.active[index]; ok {
		return p
	}

	var p *Pane
	if len(c.pool) > 0 {
		p = c.pool[0]
		copy(c.pool, c.pool[1:])
		c.pool[len(c.pool)-1] = nil
		c.pool = c.pool[:len(c.pool)-1]
	}

	if p == nil {
		farthest := index
		for pos := range c.active {
			dp := absInt(index - pos)
			df := absInt(index - farthest)
			if dp > df || (dp == df && pos < farthest) {
				farthest = pos
			}
		}
		if absInt(farthest-index) > c.window {
			p = c.active[farthest]
			delete(c.active, farthest)
			p.unbind()
			if c.onEvict != nil {
				c.onEvict(p, farthest, index)
			}
		}
	}

	if p == nil {
		p = c.newPane()
		c.allocated++
	}

	s := provider.Bind(index)
	if s == nil {
		panic("fold: provider returned nil surface")
	}
	p.bind(index, s)
	c.active[index] = p
	return p
}

// Active returns the pane currently bound to index, if any.
func (c *PaneCache) Active(index int) (*Pane, bool) {
	p, ok := c.active[index]
	return p, ok
}

// ReleaseAll unbinds every active pane and moves it to the pool in index
// order.
func (c *PaneCache) ReleaseAll() {
	keys := make([]int, 0, len(c.active))
	for pos := range c.active {
		keys = append(keys, pos)
	}
	slices.Sort(keys)
	for _, pos := range keys {
		p := c.active[pos]
		p.unbind()
		c.pool = append(c.pool, p)
		delete(c.active, pos)
	}
}

// Panes calls fn for every active pane.
func (c *PaneCache) Panes(fn func(p *Pane)) {
	for _, p := range c.active {
		fn(p)
	}
}

// Len returns the number of active panes.
func (c *PaneCache) Len() int { return len(c.active) }

// Pooled returns the number of detached panes waiting for reuse.
func (c *PaneCache) Pooled() int { return len(c.pool) }

// Allocated returns how many panes the cache has ever created.
func (c *PaneCache) Allocated() int { return c.allocated }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
