/* Released under an MIT-style license. See LICENSE. */

package main

import "strconv"

// PreallocateLiterals walks the tree top-down and gives every integer
// and string literal a permanent heap location before evaluation
// starts, mirroring the original's preAllocate traversal run right
// after computeTail in the State constructor. Locations handed out
// here are never reclaimed by the collector; the caller records
// heap.Len() right after this call as the literal-prefix boundary.
//
// The original hands std::stoi's parse failure straight to an
// uncaught C++ exception ("TODO: exceptions" in its own source); this
// implementation reports it as a sema error instead of crashing, since
// a malformed literal is a static defect in the program text, not a
// runtime condition.
func PreallocateLiterals(root Expr, heap *Heap) {
	switch n := root.(type) {
	case *IntegerExpr:
		v, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil {
			fail(SemaError, "invalid integer literal", n.Pos)
		}
		n.Loc = heap.Alloc(integerValue(v))
	case *StringExpr:
		n.Loc = heap.Alloc(stringValue(unquoteString(n.Text)))
	case *VariableExpr:
		// no literal to allocate
	case *LambdaExpr:
		for _, p := range n.Params {
			PreallocateLiterals(p, heap)
		}
		PreallocateLiterals(n.Body, heap)
	case *LetrecExpr:
		for i := range n.Names {
			PreallocateLiterals(n.Names[i], heap)
			PreallocateLiterals(n.Inits[i], heap)
		}
		PreallocateLiterals(n.Body, heap)
	case *IfExpr:
		PreallocateLiterals(n.Cond, heap)
		PreallocateLiterals(n.Then, heap)
		PreallocateLiterals(n.Else, heap)
	case *SequenceExpr:
		for _, sub := range n.Exprs {
			PreallocateLiterals(sub, heap)
		}
	case *IntrinsicCallExpr:
		for _, a := range n.Args {
			PreallocateLiterals(a, heap)
		}
	case *ExprCallExpr:
		PreallocateLiterals(n.Callee, heap)
		for _, a := range n.Args {
			PreallocateLiterals(a, heap)
		}
	case *AtExpr:
		PreallocateLiterals(n.Var, heap)
		PreallocateLiterals(n.Body, heap)
	default:
		panic("unrecognized AST node in PreallocateLiterals")
	}
}
