// Package fold is a page-folding animation engine for [Ebitengine].
//
// A [Foldable] shows a sequence of pages as a continuous fold: rotation 0
// shows page 0 flat, rotation 180 shows page 1 flat, and everything in
// between folds the bottom half of one page up over the next. Pages come
// from a [Provider]; each visible page is bound to a recycled [Pane] from a
// bounded [PaneCache].
//
// The rotation is driven three ways: programmatically with
// [Foldable.SetRotation], by gestures (a vertical drag of half the pane
// height turns one page, releases settle to the nearest page, flings to
// the adjacent one), and by a linear settle animation advanced from
// [Foldable.Update].
//
//	f := fold.New(fold.DefaultConfig())
//	f.SetSize(480, 640)
//	f.SetProvider(provider)
//
//	func (g *Game) Update() error        { g.f.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.f.Draw(s) }
//
// # Unfold transition
//
// [Unfoldable] is a two-page Foldable that morphs a small cover view into a
// large details view. Unfold starts the transition, FoldBack reverses it,
// and a [FoldingListener] observes the unfolding, unfolded, folding-back and
// folded-back states.
//
// # Geometry
//
// The per-half math ([HalfRotation], [HalfVisible], [ClipRect],
// [ClippingFactor], [ShadingIntensity]) is exported as pure functions so
// custom renderers can reuse it.
//
// # Tooling
//
// [LoadConfig] reads YAML tuning with FOLD_ environment overrides,
// [LoadScript] plays scripted drags and rotations, and [Foldable.Snapshot]
// writes PNG or WebP captures. SetDebugMode prints [fold] diagnostics to
// stderr.
//
// [Ebitengine]: https://ebitengine.org
package fold
