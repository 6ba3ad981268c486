package gltf

// refState tags which of the three states a Ref is in: never present in the
// source document, present as an unresolved index, or resolved to a live
// pointer into the owning Document's collection.
type refState uint8

const (
	refUnset refState = iota
	refPending
	refResolved
)

// Ref is a non-owning reference into one of a Document's collections.
//
// The C reference encodes "no value yet" / "deferred index" / "resolved
// pointer" into a single pointer-sized slot by storing index+1 and treating
// 0 as absent (spec.md §4.5, §9). That trick only exists because C has no
// sum types. Ref is the tagged-union spec.md §9's design notes recommend
// instead: the walker sets it to a pending index, and the resolver (C6)
// either upgrades it to a resolved pointer or leaves it unset — there is no
// encoding to get wrong.
type Ref[T any] struct {
	state  refState
	index  int
	target *T
}

// pendingRef returns a Ref recording a deferred index read straight off the
// wire, before the target collection has necessarily been materialized.
func pendingRef[T any](index int) Ref[T] {
	return Ref[T]{state: refPending, index: index}
}

// IsSet reports whether the source document set this reference at all
// (pending or resolved).
func (r Ref[T]) IsSet() bool {
	return r.state != refUnset
}

// IsResolved reports whether the resolver has converted this reference into
// a live pointer.
func (r Ref[T]) IsResolved() bool {
	return r.state == refResolved
}

// Index returns the deferred index this reference was parsed with. The
// index is kept after resolution, so it also names the resolved target's
// position in its collection; callers normally want Get.
func (r Ref[T]) Index() int {
	return r.index
}

// Get returns the resolved target and true, or (nil, false) if this
// reference is unset or has not yet been resolved.
func (r Ref[T]) Get() (*T, bool) {
	if r.state != refResolved {
		return nil, false
	}
	return r.target, true
}

// resolve upgrades a pending reference to a resolved pointer into
// collection. The caller (resolve.go) has already bounds-checked index.
func (r *Ref[T]) resolve(target *T) {
	r.state = refResolved
	r.target = target
}
