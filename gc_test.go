/* Released under an MIT-style license. See LICENSE. */

package main

import "testing"

func TestCollectGarbageCompactsAndRelocates(t *testing.T) {
	s := &State{NumLiterals: 0}

	// three garbage cells nobody references
	s.Heap.Alloc(integerValue(100))
	s.Heap.Alloc(integerValue(101))
	s.Heap.Alloc(integerValue(102))

	// one live cell, reachable only through the result cursor
	liveLoc := s.Heap.Alloc(integerValue(42))

	baseEnv := Env{}
	s.Stack = Stack{{Env: &baseEnv, Expr: nil, Frame: true}}
	s.Result = liveLoc

	removed := collectGarbage(s)
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}
	if s.Heap.Len() != 1 {
		t.Fatalf("heap length = %d, want 1", s.Heap.Len())
	}
	if got := s.Heap.Get(s.Result); got.Int != 42 {
		t.Fatalf("result cell = %+v, want Int 42", got)
	}
}

func TestCollectGarbagePreservesLiteralPrefix(t *testing.T) {
	s := &State{}
	s.Heap.Alloc(integerValue(1)) // literal
	s.Heap.Alloc(integerValue(2)) // literal
	s.NumLiterals = 2

	s.Heap.Alloc(integerValue(999)) // garbage, above the prefix

	baseEnv := Env{}
	s.Stack = Stack{{Env: &baseEnv, Expr: nil, Frame: true}}
	s.Result = 0 // points into the literal prefix; never visited by mark

	removed := collectGarbage(s)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if s.Heap.Len() != 2 {
		t.Fatalf("heap length = %d, want 2 (literal prefix preserved)", s.Heap.Len())
	}
	if s.Heap.Get(0).Int != 1 || s.Heap.Get(1).Int != 2 {
		t.Fatalf("literal prefix contents changed: %+v", s.Heap)
	}
}

func TestCollectGarbageTracesClosureEnvironment(t *testing.T) {
	s := &State{NumLiterals: 0}

	capturedLoc := s.Heap.Alloc(integerValue(7))
	// garbage between the captured value and the closure
	s.Heap.Alloc(integerValue(-1))

	capturedEnv := Env{{Name: "x", Loc: capturedLoc}}
	fun := &LambdaExpr{Params: nil, Body: &VariableExpr{Name: "x"}}
	closureLoc := s.Heap.Alloc(closureValue(capturedEnv, fun))

	baseEnv := Env{}
	s.Stack = Stack{{Env: &baseEnv, Expr: nil, Frame: true}}
	s.Result = closureLoc

	removed := collectGarbage(s)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	final := s.Heap.Get(s.Result)
	if final.Tag != TagClosure {
		t.Fatalf("result is no longer a closure: %+v", final)
	}
	if got := s.Heap.Get(final.Closure.Env[0].Loc); got.Int != 7 {
		t.Fatalf("closure's captured binding was not relocated correctly: %+v", got)
	}
}

// TestCollectGarbageDoesNotDoubleRelocateAliasedClosure reproduces the
// aliasing stepLetrec's write-back creates: copying a Value whose
// Closure field is a pointer leaves two heap cells sharing one
// ClosureValue. A relocation chain long enough to touch the same
// Location twice (here 2->1->0) must shift that shared Env exactly
// once no matter how many live cells point at it.
func TestCollectGarbageDoesNotDoubleRelocateAliasedClosure(t *testing.T) {
	s := &State{NumLiterals: 0}

	s.Heap.Alloc(integerValue(999)) // idx0: garbage, opens the gap the chain needs
	s.Heap.Alloc(integerValue(100)) // idx1: live, reachable through the base env
	s.Heap.Alloc(integerValue(7))   // idx2: live, reachable only through the closure's Env
	aliasLoc := s.Heap.Alloc(closureValue(Env{{Name: "x", Loc: 2}}, &LambdaExpr{Body: &VariableExpr{Name: "x"}}))
	closureVal := s.Heap.Get(aliasLoc)
	otherLoc := s.Heap.Alloc(closureVal) // idx4: same *ClosureValue as idx3, aliased by value copy

	baseEnv := Env{{Name: "live1", Loc: 1}}
	s.Stack = Stack{
		{Env: &baseEnv, Expr: nil, Frame: true},
		{Env: &baseEnv, Local: []Location{otherLoc}},
	}
	s.Result = aliasLoc

	collectGarbage(s)

	final := s.Heap.Get(s.Result)
	if final.Tag != TagClosure {
		t.Fatalf("result is no longer a closure: %+v", final)
	}
	if got := s.Heap.Get(final.Closure.Env[0].Loc); got.Int != 7 {
		t.Fatalf("aliased closure's captured binding was corrupted by double relocation: %+v", got)
	}
}
