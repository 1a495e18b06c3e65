package search

import "fmt"

// Binder accumulates positional query parameters during predicate
// construction. The Nth value added corresponds exactly to the Nth
// placeholder token emitted, so one Binder instance must be shared
// across the whole predicate-build phase of a single search call.
type Binder struct {
	args []interface{}
}

// NewBinder creates an empty parameter binder
func NewBinder() *Binder {
	return &Binder{}
}

// Add appends a value to the parameter list and returns its 1-based
// positional placeholder token (SQLite ?N form)
func (b *Binder) Add(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("?%d", len(b.args))
}

// Args returns the accumulated parameter list in bind order
func (b *Binder) Args() []interface{} {
	return b.args
}

// Len returns the number of bound parameters
func (b *Binder) Len() int {
	return len(b.args)
}
