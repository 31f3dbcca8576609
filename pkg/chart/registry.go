package chart

import (
	"slices"

	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/geom"
)

// Constructor builds a chart of one kind.
type Constructor func(bounds geom.Bounds, m Manager) Chart

// Registry maps chart type names to constructors.
type Registry struct {
	ctors map[TypeName]Constructor
}

// NewRegistry returns a registry with all built-in chart kinds.
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[TypeName]Constructor)}
	r.Register(LineChart, NewLineChart)
	r.Register(ScatterPlot, NewScatterPlot)
	r.Register(StackedArea, NewStackedArea)
	r.Register(StackedBar, NewStackedBar)
	r.Register(DiscreteBar, NewDiscreteBar)
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry of built-in kinds. It must not be
// modified after startup.
func Default() *Registry { return defaultRegistry }

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name TypeName, ctor Constructor) {
	r.ctors[name] = ctor
}

// Has reports whether name is registered.
func (r *Registry) Has(name TypeName) bool {
	_, ok := r.ctors[name]
	return ok
}

// Resolve returns name if registered, otherwise [DefaultType].
func (r *Registry) Resolve(name TypeName) TypeName {
	if r.Has(name) {
		return name
	}
	return DefaultType
}

// New builds a chart of kind name, falling back to [DefaultType].
func (r *Registry) New(name TypeName, bounds geom.Bounds, m Manager) Chart {
	if ctor, ok := r.ctors[name]; ok {
		return ctor(bounds, m)
	}
	return r.ctors[DefaultType](bounds, m)
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []TypeName {
	names := make([]TypeName, 0, len(r.ctors))
	for n := range r.ctors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ParseTypeName validates s against the built-in kinds. The empty string
// means [DefaultType].
func ParseTypeName(s string) (TypeName, error) {
	if s == "" {
		return DefaultType, nil
	}
	if !defaultRegistry.Has(TypeName(s)) {
		return "", errors.New(errors.ErrCodeInvalidChartType, "unknown chart type: %q (must be one of: %v)", s, defaultRegistry.Names())
	}
	return TypeName(s), nil
}
