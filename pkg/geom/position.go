package geom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Position names one of the four sides of a rectangle.
type Position string

const (
	Top    Position = "top"
	Right  Position = "right"
	Bottom Position = "bottom"
	Left   Position = "left"
)

// Positions lists all sides in a fixed order (top, right, bottom, left).
var Positions = []Position{Top, Right, Bottom, Left}

// IsValid reports whether p is one of the four known sides.
func (p Position) IsValid() bool {
	return p == Top || p == Right || p == Bottom || p == Left
}

// IsHorizontal reports whether an axis at p runs horizontally.
func (p Position) IsHorizontal() bool { return p == Top || p == Bottom }

func (p Position) bit() Edges {
	switch p {
	case Top:
		return 1 << 0
	case Right:
		return 1 << 1
	case Bottom:
		return 1 << 2
	case Left:
		return 1 << 3
	}
	return 0
}

// Edges is a set of positions. The zero value is the empty set.
type Edges uint8

// EdgesOf builds a set from the given positions.
func EdgesOf(ps ...Position) Edges {
	var e Edges
	for _, p := range ps {
		e |= p.bit()
	}
	return e
}

// Has reports whether p is in the set.
func (e Edges) Has(p Position) bool { return p.bit() != 0 && e&p.bit() != 0 }

// With returns the set with p added.
func (e Edges) With(p Position) Edges { return e | p.bit() }

// Len returns the number of positions in the set.
func (e Edges) Len() int {
	n := 0
	for _, p := range Positions {
		if e.Has(p) {
			n++
		}
	}
	return n
}

// List returns the members in [Positions] order.
func (e Edges) List() []Position {
	out := make([]Position, 0, 4)
	for _, p := range Positions {
		if e.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (e Edges) String() string {
	parts := make([]string, 0, 4)
	for _, p := range e.List() {
		parts = append(parts, string(p))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// MarshalJSON encodes the set as a list of side names.
func (e Edges) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, 4)
	for _, p := range e.List() {
		names = append(names, string(p))
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of side names.
func (e *Edges) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out Edges
	for _, n := range names {
		p := Position(n)
		if !p.IsValid() {
			return fmt.Errorf("unknown position %q", n)
		}
		out = out.With(p)
	}
	*e = out
	return nil
}

// Padding maps sides to amounts. Missing sides count as zero.
type Padding map[Position]float64

// Get returns the amount for p, or zero.
func (p Padding) Get(pos Position) float64 { return p[pos] }

// Has reports whether an amount was recorded for pos, even a zero one.
func (p Padding) Has(pos Position) bool {
	_, ok := p[pos]
	return ok
}

// MoveBottomToTop folds a non-zero bottom amount into top.
//
// A shared bottom axis is drawn once above the first row of panels rather than
// once below the last row, so its gutter belongs to the top edge. The receiver
// is not modified.
func (p Padding) MoveBottomToTop() Padding {
	out := make(Padding, len(p))
	for k, v := range p {
		out[k] = v
	}
	if b := p[Bottom]; b != 0 {
		out[Top] = p[Top] + b
		delete(out, Bottom)
	}
	return out
}
