package ui

// Deferred is a write-buffered value. Writes are staged with Set and only
// become visible through Get after Apply, which the owning component calls
// once per tick.
type Deferred[T any] struct {
	value   T
	pending T
	staged  bool
	equal   func(a, b T) bool
}

// NewDeferred creates a cell that compares values with ==.
func NewDeferred[T comparable](v T) Deferred[T] {
	return Deferred[T]{value: v, equal: func(a, b T) bool { return a == b }}
}

// NewDeferredFunc creates a cell with a custom equality. A nil equal treats
// every write as a change.
func NewDeferredFunc[T any](v T, equal func(a, b T) bool) Deferred[T] {
	return Deferred[T]{value: v, equal: equal}
}

func (d *Deferred[T]) same(a, b T) bool {
	return d.equal != nil && d.equal(a, b)
}

// Get returns the committed value.
func (d *Deferred[T]) Get() T {
	return d.value
}

// Pending returns the staged value, if any.
func (d *Deferred[T]) Pending() (T, bool) {
	return d.pending, d.staged
}

// Set stages v. Staging the committed value drops any earlier pending write,
// so the last intent of the tick wins.
func (d *Deferred[T]) Set(v T) {
	if d.same(d.value, v) {
		var zero T
		d.pending, d.staged = zero, false
		return
	}
	d.pending, d.staged = v, true
}

// ForceSet commits v immediately and discards any pending write.
// It reports whether the committed value changed.
func (d *Deferred[T]) ForceSet(v T) bool {
	changed := !d.same(d.value, v)
	var zero T
	d.value, d.pending, d.staged = v, zero, false
	return changed
}

// Modify stages fn applied to a copy of the committed value.
func (d *Deferred[T]) Modify(fn func(T) T) {
	d.Set(fn(d.value))
}

// Apply commits the pending value. It returns false when nothing was staged
// or the staged value turned out equal to the committed one.
func (d *Deferred[T]) Apply() bool {
	if !d.staged {
		return false
	}
	v := d.pending
	var zero T
	d.pending, d.staged = zero, false
	if d.same(d.value, v) {
		return false
	}
	d.value = v
	return true
}
