package fold

import (
	"math"
)

// Foldable owns the single continuous fold rotation of a pane sequence.
// Rotation 180*k shows page k flat; values in between fold page k's bottom
// half up over page k+1.
//
// A Foldable is driven from one goroutine (the game loop): gestures, Update
// and Draw must not be called concurrently.
type Foldable struct {
	cfg      Config
	provider Provider
	count    int

	rotation    float64
	minRotation float64
	maxRotation float64
	w, h        int

	cache         *PaneCache
	first, second *Pane // draw order: first is drawn first
	shading       Shading

	settle  *settleAnim
	gesture gestureState

	// Pointer input and synthetic injection.
	pointer     pointerState
	injectQueue []syntheticPointerEvent
	clock       float64 // seconds since creation, advanced by Update

	runner *Runner

	// Snapshots queued for the end of the next Draw.
	SnapshotDir    string
	SnapshotFormat SnapshotFormat
	snapshotQueue  []string

	pool  canvasPool
	mesh  meshBuffers
	debug bool

	// OnRotationChange, when set, is called after every accepted rotation
	// update.
	OnRotationChange func(RotationEvent)
	// OnPaneRotation, when set, is called for each pane whose local rotation
	// was just updated.
	OnPaneRotation func(p *Pane, index int)

	// Internal hooks for the two-pane unfold transition.
	paneHook     func(p *Pane, index int)
	rotationHook func()
}

// New creates a Foldable with no content. Zero Config fields take defaults.
func New(cfg Config) *Foldable {
	cfg = cfg.withDefaults()
	f := &Foldable{
		cfg:         cfg,
		cache:       NewPaneCache(cfg.CacheWindow),
		SnapshotDir: "snapshots",
		debug:       cfg.Debug,
	}
	f.cache.newPane = func() *Pane {
		p := NewPane(f.w, f.h)
		p.SetAutoScale(f.cfg.AutoScale)
		return p
	}
	f.cache.onEvict = func(p *Pane, from, to int) {
		f.debugf("cache: evicted pane %d for %d", from, to)
	}
	f.shading = NewSimpleShading(cfg.ShadowMaxAlpha)
	return f
}

// Config returns the effective configuration.
func (f *Foldable) Config() Config { return f.cfg }

// SetDebugMode enables or disables [fold] diagnostics on stderr.
func (f *Foldable) SetDebugMode(enabled bool) {
	f.debug = enabled
}

// SetShading replaces the shading hook used while halves rotate. Nil
// disables shading.
func (f *Foldable) SetShading(s Shading) {
	f.shading = s
}

// SetAutoScale toggles auto-scaling on every current and future pane.
func (f *Foldable) SetAutoScale(enabled bool) {
	f.cfg.AutoScale = enabled
	f.cache.Panes(func(p *Pane) { p.SetAutoScale(enabled) })
	for _, p := range f.cache.pool {
		p.SetAutoScale(enabled)
	}
}

// SetProvider replaces the content provider and rebuilds all panes.
func (f *Foldable) SetProvider(p Provider) {
	f.provider = p
	f.Invalidate()
}

// Provider returns the current content provider.
func (f *Foldable) Provider() Provider { return f.provider }

// Invalidate is the data-set-changed entry point: it re-reads the item
// count, recomputes the rotation bounds, releases every pane binding and
// re-applies the current rotation.
func (f *Foldable) Invalidate() {
	f.count = 0
	if f.provider != nil {
		f.count = max(f.provider.Count(), 0)
	}
	f.minRotation = 0
	if f.count == 0 {
		f.maxRotation = 0
	} else {
		f.maxRotation = 180 * float64(f.count-1)
	}

	f.cache.ReleaseAll()
	f.debugf("invalidate: %d items, rotation bounds [%.0f, %.0f]", f.count, f.minRotation, f.maxRotation)

	f.SetRotation(f.rotation)
}

// SetSize sets the pane size in pixels. Gesture distances are measured
// against this height.
func (f *Foldable) SetSize(w, h int) {
	f.w, f.h = w, h
	f.cache.Panes(func(p *Pane) { p.SetSize(w, h) })
	for _, p := range f.cache.pool {
		p.SetSize(w, h)
	}
}

// Size returns the pane size in pixels.
func (f *Foldable) Size() (w, h int) { return f.w, f.h }

// Count returns the number of items at the last invalidation.
func (f *Foldable) Count() int { return f.count }

// FoldRotation returns the current global rotation in degrees.
func (f *Foldable) FoldRotation() float64 { return f.rotation }

// MinRotation returns the lower rotation bound (always 0).
func (f *Foldable) MinRotation() float64 { return f.minRotation }

// MaxRotation returns 180*(count-1), or 0 with no items.
func (f *Foldable) MaxRotation() float64 { return f.maxRotation }

// PageIndex returns the index of the page currently folding away.
func (f *Foldable) PageIndex() int { return int(f.rotation / 180) }

// LocalRotation returns the rotation within the current page, in [0, 180).
func (f *Foldable) LocalRotation() float64 { return math.Mod(f.rotation, 180) }

// DrawOrder returns the panes to draw, bottom-most first. Either may be nil.
func (f *Foldable) DrawOrder() (first, second *Pane) { return f.first, f.second }

// Pane returns the active pane for index, if one is bound.
func (f *Foldable) Pane(index int) (*Pane, bool) { return f.cache.Active(index) }

// Cache returns the pane cache.
func (f *Foldable) Cache() *PaneCache { return f.cache }

// SetRotation sets the global rotation programmatically.
func (f *Foldable) SetRotation(rotation float64) {
	f.UpdateRotation(rotation, false)
}

// UpdateRotation clamps rotation into [MinRotation, MaxRotation], derives
// the page index and local rotation, and updates the current and next panes.
// A user-driven update cancels any running settle animation first.
// Setting the current value again still recomputes everything.
func (f *Foldable) UpdateRotation(rotation float64, fromUser bool) {
	if fromUser {
		f.cancelSettle()
	}

	rotation = math.Min(math.Max(f.minRotation, rotation), f.maxRotation)
	f.rotation = rotation

	index := int(rotation / 180)
	local := math.Mod(rotation, 180)

	var current, next *Pane
	if index < f.count {
		current = f.acquire(index)
	}
	if index+1 < f.count {
		next = f.acquire(index + 1)
	}

	if current != nil {
		current.SetFoldRotation(local)
		f.paneRotated(current, index)
	}
	if next != nil {
		next.SetFoldRotation(local - 180)
		f.paneRotated(next, index+1)
	}

	// The pane rotating toward the viewer must be drawn last.
	if local <= 90 {
		f.first, f.second = next, current
	} else {
		f.first, f.second = current, next
	}

	if f.OnRotationChange != nil {
		f.OnRotationChange(RotationEvent{Rotation: rotation, FromUser: fromUser})
	}
	if f.rotationHook != nil {
		f.rotationHook()
	}
}

func (f *Foldable) acquire(index int) *Pane {
	p := f.cache.Acquire(index, f.provider)
	if p == nil {
		return nil
	}
	if w, h := p.Size(); w != f.w || h != f.h {
		p.SetSize(f.w, f.h)
	}
	if f.debug {
		f.debugCheckCache()
	}
	return p
}

func (f *Foldable) paneRotated(p *Pane, index int) {
	if f.paneHook != nil {
		f.paneHook(p, index)
	}
	if f.OnPaneRotation != nil {
		f.OnPaneRotation(p, index)
	}
}

// Update advances one frame of dt seconds: scripted steps, pointer input,
// then the settle animation. Call it from the game's Update.
func (f *Foldable) Update(dt float32) {
	f.clock += float64(dt)
	if f.runner != nil {
		f.runner.step(f)
	}
	f.processInput(dt)
	f.advanceSettle(dt)
}
