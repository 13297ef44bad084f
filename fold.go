package fold

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default shading color.
var ColorBlack = Color{0, 0, 0, 1}

// Vec2 is a 2D vector used for translations and sizes.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used to draw solid rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(Color{1, 1, 1, 1}.toRGBA())
}

// Rect is an axis-aligned rectangle in screen space. The origin is at the
// top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Gravity selects which half of a pane a sub-surface represents.
type Gravity uint8

const (
	GravityTop    Gravity = iota // rows above the hinge
	GravityBottom                // rows below the hinge
)

// String returns "top" or "bottom".
func (g Gravity) String() string {
	if g == GravityTop {
		return "top"
	}
	return "bottom"
}

// TransitionState is the phase of a cover/details unfold transition.
type TransitionState uint8

const (
	StateIdle        TransitionState = iota // no transition observed yet
	StateUnfolding                          // rotation increasing toward 180
	StateUnfolded                           // rotation reached 180
	StateFoldingBack                        // rotation decreasing toward 0
	StateFoldedBack                         // rotation returned to 0; views released
)

var transitionStateNames = [...]string{
	StateIdle:        "idle",
	StateUnfolding:   "unfolding",
	StateUnfolded:    "unfolded",
	StateFoldingBack: "folding-back",
	StateFoldedBack:  "folded-back",
}

func (s TransitionState) String() string {
	if int(s) < len(transitionStateNames) {
		return transitionStateNames[s]
	}
	return "unknown"
}

// GestureKind identifies a derived gesture event.
type GestureKind uint8

const (
	GestureDown    GestureKind = iota // pointer pressed; resets nothing by itself
	GestureScroll                     // pointer moved while pressed
	GestureRelease                    // pointer released
	GestureFling                      // velocity-driven fling with no drag session
)

// RotationEvent is delivered to OnRotationChange after every accepted
// rotation update.
type RotationEvent struct {
	Rotation float64
	FromUser bool
}
