// Package chart defines chart configuration and the measurement-only chart kinds
// the facet engine uses to size axes.
//
// # Manager configuration
//
// A [Manager] carries everything a chart needs: the table, the selection, the
// y/x/color/size column slugs, flags such as relative mode, and per-axis
// [AxisConfig]. Configurations cascade with [Manager.Merge]: every field set on
// the overriding layer wins, unset fields fall through. Optional flags are
// pointers so that an explicit false can override an inherited true:
//
//	base := chart.Manager{YAxisConfig: chart.AxisConfig{Nice: chart.Bool(true)}}
//	facet := chart.Manager{YAxisConfig: chart.AxisConfig{Nice: chart.Bool(false)}}
//	merged := base.Merge(facet) // YAxisConfig.Nice == false
//
// Values behind pointers are never mutated after construction, so merged
// configurations may share them.
//
// # Axes and charts
//
// An [Axis] exposes its edge [geom.Position], data [Domain] and the space it
// needs ([Axis.Size]). [Axis.UpdateDomainPreservingUserSettings] recomputes the
// size for a new domain while keeping user-set bounds.
//
// A [Chart] is built from bounds and a manager purely to read its axes; nothing
// in this package draws. Chart kinds are looked up by [TypeName] in a
// [Registry], which falls back to [DefaultType] for unknown names.
package chart
