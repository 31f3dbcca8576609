package chart

import (
	"github.com/matzehuels/facetgrid/pkg/errors"
)

// TypeName identifies a chart kind.
type TypeName string

const (
	LineChart   TypeName = "LineChart"
	ScatterPlot TypeName = "ScatterPlot"
	StackedArea TypeName = "StackedArea"
	StackedBar  TypeName = "StackedBar"
	DiscreteBar TypeName = "DiscreteBar"
)

// DefaultType is used for empty or unknown chart type names.
const DefaultType = LineChart

// DefaultFontSize is the base font size when a manager sets none.
const DefaultFontSize = 16.0

// FacetStrategy decides how data is split into facets.
type FacetStrategy string

const (
	FacetNone   FacetStrategy = "none"
	FacetEntity FacetStrategy = "entity"
	FacetColumn FacetStrategy = "column"
)

// ParseFacetStrategy validates s. The empty string means [FacetNone].
func ParseFacetStrategy(s string) (FacetStrategy, error) {
	switch FacetStrategy(s) {
	case "", FacetNone:
		return FacetNone, nil
	case FacetEntity, FacetColumn:
		return FacetStrategy(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidFacetStrategy, "invalid facet strategy: %q (must be one of: none, entity, column)", s)
}

// SeriesStrategy decides whether a chart draws one series per entity or per column.
type SeriesStrategy string

const (
	SeriesEntity SeriesStrategy = "entity"
	SeriesColumn SeriesStrategy = "column"
)

// ScaleType is the axis scale.
type ScaleType string

const (
	ScaleLinear ScaleType = "linear"
	ScaleLog    ScaleType = "log"
)

// ParseScaleType validates s. The empty string means unset.
func ParseScaleType(s string) (ScaleType, error) {
	switch ScaleType(s) {
	case "", ScaleLinear, ScaleLog:
		return ScaleType(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid scale type: %q (must be one of: linear, log)", s)
}

// FacetAxisRange controls whether facets share an axis domain.
type FacetAxisRange string

const (
	AxisRangeIndependent FacetAxisRange = "independent"
	AxisRangeShared      FacetAxisRange = "shared"
)

// ParseFacetAxisRange validates s. The empty string means unset.
func ParseFacetAxisRange(s string) (FacetAxisRange, error) {
	switch FacetAxisRange(s) {
	case "", AxisRangeIndependent, AxisRangeShared:
		return FacetAxisRange(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid facet axis range: %q (must be one of: independent, shared)", s)
}
