package geom

import (
	"fmt"
	"math"
)

// Bounds is an axis-aligned rectangle. Y grows downward.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultBounds is used when a chart is laid out without explicit bounds.
var DefaultBounds = Bounds{Width: 640, Height: 480}

// NewBounds returns a rectangle, clamping negative dimensions to zero.
func NewBounds(x, y, width, height float64) Bounds {
	return Bounds{X: x, Y: y, Width: math.Max(0, width), Height: math.Max(0, height)}
}

func (b Bounds) Top() float64    { return b.Y }
func (b Bounds) Bottom() float64 { return b.Y + b.Height }
func (b Bounds) Left() float64   { return b.X }
func (b Bounds) Right() float64  { return b.X + b.Width }

// IsZero reports whether b has no area and sits at the origin.
func (b Bounds) IsZero() bool { return b == Bounds{} }

// Edge returns the coordinate of side p.
func (b Bounds) Edge(p Position) float64 {
	switch p {
	case Top:
		return b.Top()
	case Right:
		return b.Right()
	case Bottom:
		return b.Bottom()
	case Left:
		return b.Left()
	}
	return 0
}

// Pad shrinks b inward by the amount given for each side.
func (b Bounds) Pad(p Padding) Bounds {
	top, right, bottom, left := p[Top], p[Right], p[Bottom], p[Left]
	return NewBounds(b.X+left, b.Y+top, b.Width-left-right, b.Height-top-bottom)
}

// Expand grows b outward by the amount given for each side.
func (b Bounds) Expand(p Padding) Bounds {
	top, right, bottom, left := p[Top], p[Right], p[Bottom], p[Left]
	return NewBounds(b.X-left, b.Y-top, b.Width+left+right, b.Height+top+bottom)
}

func (b Bounds) PadTop(v float64) Bounds    { return b.Pad(Padding{Top: v}) }
func (b Bounds) PadRight(v float64) Bounds  { return b.Pad(Padding{Right: v}) }
func (b Bounds) PadBottom(v float64) Bounds { return b.Pad(Padding{Bottom: v}) }
func (b Bounds) PadLeft(v float64) Bounds   { return b.Pad(Padding{Left: v}) }

// Contains reports whether o lies entirely within b.
func (b Bounds) Contains(o Bounds) bool {
	const eps = 1e-9
	return o.Left() >= b.Left()-eps && o.Right() <= b.Right()+eps &&
		o.Top() >= b.Top()-eps && o.Bottom() <= b.Bottom()+eps
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%.1f,%.1f %.1fx%.1f)", b.X, b.Y, b.Width, b.Height)
}
