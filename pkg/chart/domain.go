package chart

import (
	"fmt"
	"math"
)

// Domain is a numeric interval. The zero value is invalid (no data).
type Domain struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid bool    `json:"valid"`
}

// NewDomain returns a valid domain spanning a and b in either order.
func NewDomain(a, b float64) Domain {
	if a > b {
		a, b = b, a
	}
	return Domain{Min: a, Max: b, Valid: true}
}

// Include widens d to contain v. NaN and infinite values are ignored.
func (d Domain) Include(v float64) Domain {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return d
	}
	if !d.Valid {
		return Domain{Min: v, Max: v, Valid: true}
	}
	return Domain{Min: math.Min(d.Min, v), Max: math.Max(d.Max, v), Valid: true}
}

// Union returns the smallest domain containing d and o. Invalid operands are skipped.
func (d Domain) Union(o Domain) Domain {
	switch {
	case !o.Valid:
		return d
	case !d.Valid:
		return o
	}
	return Domain{Min: math.Min(d.Min, o.Min), Max: math.Max(d.Max, o.Max), Valid: true}
}

// Span returns Max-Min, or 0 for an invalid domain.
func (d Domain) Span() float64 {
	if !d.Valid {
		return 0
	}
	return d.Max - d.Min
}

func (d Domain) String() string {
	if !d.Valid {
		return "[]"
	}
	return fmt.Sprintf("[%g, %g]", d.Min, d.Max)
}

// Extent returns the union of all valid domains. It is invalid when none are.
func Extent(domains ...Domain) Domain {
	var out Domain
	for _, d := range domains {
		out = out.Union(d)
	}
	return out
}
