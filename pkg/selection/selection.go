// Package selection tracks the ordered set of entities a chart shows.
package selection

import (
	"encoding/json"
	"slices"
)

// Array is an ordered, de-duplicated list of selected entity names.
// The zero value is an empty selection.
type Array struct {
	names []string
}

// New returns a selection of the given names, dropping later duplicates.
func New(names ...string) *Array {
	a := &Array{}
	a.Add(names...)
	return a
}

// SelectedEntityNames returns the names in selection order.
func (a *Array) SelectedEntityNames() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.names)
}

// Len returns the number of selected entities.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// Has reports whether name is selected.
func (a *Array) Has(name string) bool {
	return a != nil && slices.Contains(a.names, name)
}

// Add appends names that are not yet selected.
func (a *Array) Add(names ...string) {
	for _, n := range names {
		if !slices.Contains(a.names, n) {
			a.names = append(a.names, n)
		}
	}
}

// Remove deselects names.
func (a *Array) Remove(names ...string) {
	a.names = slices.DeleteFunc(a.names, func(n string) bool {
		return slices.Contains(names, n)
	})
}

// Clone returns an independent copy.
func (a *Array) Clone() *Array {
	return New(a.SelectedEntityNames()...)
}

// MarshalJSON encodes the selection as a list of names.
func (a *Array) MarshalJSON() ([]byte, error) {
	names := a.SelectedEntityNames()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of names, dropping duplicates.
func (a *Array) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*a = *New(names...)
	return nil
}
