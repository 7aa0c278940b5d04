/* Released under an MIT-style license. See LICENSE. */

package main

// Heap is the dense, append-only value store every Location indexes
// into. Cells below NumLiterals (tracked by the owning State) are the
// literal prefix: permanent allocations the collector never reclaims.
type Heap []Value

// Alloc appends v and returns the Location it now occupies.
func (h *Heap) Alloc(v Value) Location {
	*h = append(*h, v)
	return Location(len(*h) - 1)
}

func (h Heap) Get(loc Location) Value { return h[loc] }

func (h Heap) Set(loc Location, v Value) { h[loc] = v }

func (h Heap) Len() int { return len(h) }
