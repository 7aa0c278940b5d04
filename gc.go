/* Released under an MIT-style license. See LICENSE. */

package main

// collectGarbage runs one mark-sweep-compact cycle over s.Heap and
// returns the number of cells reclaimed. It mirrors the original's
// _gc(): mark from the roots, compact live cells down over the
// reclaimed space (never touching the literal prefix), then rewrite
// every Location the interpreter still holds through the relocation
// map the compaction produced.
func collectGarbage(s *State) int {
	visited := markLive(s)
	removed, reloc := sweepAndCompact(s, visited)
	relocate(s, reloc)
	return removed
}

// markLive computes the transitive closure of every location reachable
// from a root: each frame's environment, each layer's locals, and the
// current result cursor. A closure value is the only thing that can
// lead to further locations, through the environment it captured.
func markLive(s *State) map[Location]bool {
	visited := make(map[Location]bool)
	var trace func(Location)
	trace = func(loc Location) {
		if visited[loc] {
			return
		}
		visited[loc] = true
		v := s.Heap.Get(loc)
		if v.Tag == TagClosure {
			for _, b := range v.Closure.Env {
				trace(b.Loc)
			}
		}
	}
	for _, layer := range s.Stack {
		if layer.Frame {
			for _, b := range *layer.Env {
				trace(b.Loc)
			}
		}
		for _, loc := range layer.Local {
			trace(loc)
		}
	}
	trace(s.Result)
	return visited
}

// sweepAndCompact shifts every live cell above the literal prefix down
// to fill the gaps left by dead ones, recording where each surviving
// cell moved to. Cells in the literal prefix are never visited or
// moved: they are permanent roots outside the mark set by convention.
func sweepAndCompact(s *State, visited map[Location]bool) (int, map[Location]Location) {
	reloc := make(map[Location]Location)
	n := s.Heap.Len()
	i, j := s.NumLiterals, s.NumLiterals
	for j < n {
		if visited[Location(j)] {
			if i < j {
				s.Heap[i] = s.Heap[j]
				reloc[Location(j)] = Location(i)
			}
			i++
		}
		j++
	}
	s.Heap = s.Heap[:i]
	return n - i, reloc
}

// relocate rewrites every Location the interpreter still holds — stack
// environments and locals, the result cursor, and every closure's
// captured environment still on the heap — through reloc. A location
// with no entry in reloc did not move.
func relocate(s *State, reloc map[Location]Location) {
	fix := func(loc Location) Location {
		if to, ok := reloc[loc]; ok {
			return to
		}
		return loc
	}
	for i := range s.Stack {
		layer := &s.Stack[i]
		if layer.Frame {
			for j := range *layer.Env {
				(*layer.Env)[j].Loc = fix((*layer.Env)[j].Loc)
			}
		}
		for j := range layer.Local {
			layer.Local[j] = fix(layer.Local[j])
		}
	}
	s.Result = fix(s.Result)
	// Two heap cells can hold the same *ClosureValue: stepLetrec's
	// write-back (eval.go) copies a Value from the initializer's cell
	// into the binder's cell, and a Value's Closure field is a pointer,
	// so the copy aliases rather than duplicates the captured Env. Fixing
	// up the same Env twice through a relocation chain (e.g. 2->1->0)
	// would double-apply the shift, so each ClosureValue is fixed once
	// regardless of how many heap cells currently point at it.
	seen := make(map[*ClosureValue]bool)
	for i := range s.Heap {
		if s.Heap[i].Tag == TagClosure {
			cv := s.Heap[i].Closure
			if seen[cv] {
				continue
			}
			seen[cv] = true
			for j := range cv.Env {
				cv.Env[j].Loc = fix(cv.Env[j].Loc)
			}
		}
	}
}
