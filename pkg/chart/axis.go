package chart

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/facetgrid/pkg/geom"
)

// Text metrics used to estimate axis sizes without a font backend.
const (
	tickFontRatio  = 0.7 // tick label size relative to the base font
	labelFontRatio = 0.9 // axis title size relative to the base font
	charWidthRatio = 0.6 // average glyph advance in em
	tickPadding    = 5.0 // gap between tick labels and the plot area
	labelPadding   = 5.0 // gap between the axis title and tick labels
	maxStepSearch  = 64  // bound on the tick step search
	floatDigits    = 12  // significant digits kept when snapping tick values
	defaultVTicks  = 6   // default tick cap on vertical axes
	defaultHTicks  = 10  // default tick cap on horizontal axes
)

// Axis is a measured chart axis.
type Axis interface {
	// Position is the chart edge the axis is drawn on.
	Position() geom.Position
	// Config is the configuration the axis was built with.
	Config() AxisConfig
	// Domain is the data domain with user min/max applied.
	Domain() Domain
	// Ticks returns the tick values in ascending order.
	Ticks() []float64
	// TickLabels returns the formatted tick values.
	TickLabels() []string
	// Size is the space the axis occupies perpendicular to its edge.
	Size() float64
	// Clone returns an independent copy.
	Clone() Axis
	// UpdateDomainPreservingUserSettings returns a copy measured against
	// domain, keeping user-set min and max.
	UpdateDomainPreservingUserSettings(domain Domain) Axis
}

// AxisKind selects how tick values are rendered.
type AxisKind int

const (
	// NumericKind formats values as numbers.
	NumericKind AxisKind = iota
	// TimeKind formats values as plain integer times such as years.
	TimeKind
	// PercentKind formats values as percentages.
	PercentKind
)

// NumericAxis is the [Axis] implementation used by all chart kinds.
type NumericAxis struct {
	position geom.Position
	config   AxisConfig
	kind     AxisKind
	fontSize float64
	data     Domain
}

// NewAxis builds an axis on position for the given data domain.
func NewAxis(position geom.Position, config AxisConfig, kind AxisKind, fontSize float64, data Domain) *NumericAxis {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &NumericAxis{position: position, config: config, kind: kind, fontSize: fontSize, data: data}
}

func (a *NumericAxis) Position() geom.Position { return a.position }
func (a *NumericAxis) Config() AxisConfig      { return a.config }
func (a *NumericAxis) Kind() AxisKind          { return a.kind }

// Domain returns the data domain with user min and max applied.
func (a *NumericAxis) Domain() Domain {
	return applyUserBounds(a.data, a.config)
}

func (a *NumericAxis) Clone() Axis {
	c := *a
	return &c
}

func (a *NumericAxis) UpdateDomainPreservingUserSettings(domain Domain) Axis {
	c := *a
	c.data = domain
	return &c
}

func (a *NumericAxis) Ticks() []float64 {
	d := a.Domain()
	if a.config.IsLog() {
		return logTicks(d, a.config.TickLimit(a.defaultTicks()))
	}
	return linearTicks(d, a.config.TickLimit(a.defaultTicks()), a.config.IsNice() && a.kind != TimeKind)
}

func (a *NumericAxis) TickLabels() []string {
	ticks := a.Ticks()
	labels := make([]string, len(ticks))
	for i, v := range ticks {
		switch a.kind {
		case TimeKind:
			labels[i] = strconv.Itoa(int(math.Round(v)))
		case PercentKind:
			labels[i] = FormatTick(v, a.config.IsCompact()) + "%"
		default:
			labels[i] = FormatTick(v, a.config.IsCompact())
		}
	}
	return labels
}

// Size estimates the axis footprint. Horizontal axes need one line of tick
// labels, vertical axes the widest tick label. A configured MinSize acts as a
// floor; hidden axes take no space.
func (a *NumericAxis) Size() float64 {
	if a.config.IsHidden() {
		return 0
	}
	tickFont := a.fontSize * tickFontRatio
	var size float64
	if a.position.IsHorizontal() {
		size = tickFont + tickPadding
	} else {
		widest := 0
		for _, l := range a.TickLabels() {
			widest = max(widest, utf8.RuneCountInString(l))
		}
		size = float64(widest)*tickFont*charWidthRatio + tickPadding
	}
	if a.config.Label != "" {
		size += a.fontSize*labelFontRatio + labelPadding
	}
	if a.config.MinSize != nil {
		size = math.Max(size, *a.config.MinSize)
	}
	return size
}

func (a *NumericAxis) defaultTicks() int {
	if a.position.IsHorizontal() {
		return defaultHTicks
	}
	return defaultVTicks
}

func applyUserBounds(d Domain, c AxisConfig) Domain {
	if c.Min == nil && c.Max == nil {
		return d
	}
	if !d.Valid {
		if c.Min != nil && c.Max != nil {
			return NewDomain(*c.Min, *c.Max)
		}
		return d
	}
	lo, hi := d.Min, d.Max
	if c.Min != nil {
		lo = *c.Min
	}
	if c.Max != nil {
		hi = *c.Max
	}
	return NewDomain(lo, hi)
}

// ===== Tick generation =====

func linearTicks(d Domain, maxTicks int, nice bool) []float64 {
	if !d.Valid {
		return nil
	}
	if d.Span() == 0 {
		return []float64{d.Min}
	}
	maxTicks = max(maxTicks, 2)
	step, ok := tickStep(d, maxTicks, nice)
	if !ok {
		return []float64{d.Min, d.Max}
	}
	lo, hi := tickRange(d, step, nice)
	ticks := make([]float64, 0, int(hi-lo)+1)
	for i := lo; i <= hi; i++ {
		ticks = append(ticks, snap(i*step))
	}
	return ticks
}

// tickStep returns the smallest 1-2-5 step producing at most maxTicks ticks.
func tickStep(d Domain, maxTicks int, nice bool) (float64, bool) {
	exp := math.Floor(math.Log10(d.Span() / float64(maxTicks)))
	for range maxStepSearch {
		base := math.Pow(10, exp)
		for _, m := range [...]float64{1, 2, 5} {
			step := m * base
			lo, hi := tickRange(d, step, nice)
			if n := int(hi-lo) + 1; n <= maxTicks && n > 0 {
				return step, true
			}
		}
		exp++
	}
	return 0, false
}

func tickRange(d Domain, step float64, nice bool) (lo, hi float64) {
	const eps = 1e-9
	if nice {
		return math.Floor(d.Min/step + eps), math.Ceil(d.Max/step - eps)
	}
	return math.Ceil(d.Min/step - eps), math.Floor(d.Max/step + eps)
}

func logTicks(d Domain, maxTicks int) []float64 {
	if !d.Valid || d.Max <= 0 {
		return nil
	}
	lo := d.Min
	if lo <= 0 {
		lo = math.Min(1, d.Max)
	}
	const eps = 1e-9
	e0 := math.Floor(math.Log10(lo) + eps)
	e1 := math.Ceil(math.Log10(d.Max) - eps)
	if e0 == e1 {
		return []float64{snap(math.Pow(10, e0))}
	}
	maxTicks = max(maxTicks, 2)
	n := int(e1-e0) + 1
	stride := 1
	for (n+stride-1)/stride > maxTicks {
		stride++
	}
	var ticks []float64
	for e := e0; e <= e1; e += float64(stride) {
		ticks = append(ticks, snap(math.Pow(10, e)))
	}
	return ticks
}

// snap removes floating point noise from a computed tick value.
func snap(v float64) float64 {
	s := strconv.FormatFloat(v, 'g', floatDigits, 64)
	out, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v
	}
	return out
}
