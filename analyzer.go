/* Released under an MIT-style license. See LICENSE. */

package main

// Analyze runs the three static passes the original runs in its State
// constructor, in the same order: reject duplicate binder names
// top-down, compute free-variable sets bottom-up, then compute tail
// flags top-down starting from a non-tail root.
func Analyze(root Expr) {
	checkDuplicates(root)
	computeFreeVars(root)
	computeTail(root, false)
}

// checkDuplicates walks every Lambda and Letrec node and rejects a
// binder list that repeats a name — the interpreter has no notion of
// which occurrence should win, so it is a static error instead.
func checkDuplicates(e Expr) {
	switch n := e.(type) {
	case *LambdaExpr:
		seen := map[string]bool{}
		for _, v := range n.Params {
			if seen[v.Name] {
				fail(SemaError, "duplicate parameter names", n.Pos)
			}
			seen[v.Name] = true
		}
		checkDuplicates(n.Body)
	case *LetrecExpr:
		seen := map[string]bool{}
		for _, v := range n.Names {
			if seen[v.Name] {
				fail(SemaError, "duplicate binding names", n.Pos)
			}
			seen[v.Name] = true
		}
		for _, init := range n.Inits {
			checkDuplicates(init)
		}
		checkDuplicates(n.Body)
	case *IfExpr:
		checkDuplicates(n.Cond)
		checkDuplicates(n.Then)
		checkDuplicates(n.Else)
	case *SequenceExpr:
		for _, sub := range n.Exprs {
			checkDuplicates(sub)
		}
	case *IntrinsicCallExpr:
		for _, a := range n.Args {
			checkDuplicates(a)
		}
	case *ExprCallExpr:
		checkDuplicates(n.Callee)
		for _, a := range n.Args {
			checkDuplicates(a)
		}
	case *AtExpr:
		checkDuplicates(n.Body)
	}
}

// computeFreeVars fills in every node's FreeVars set bottom-up: a leaf
// contributes what it directly references, an interior node unions its
// children's free variables and then removes whatever it binds itself.
func computeFreeVars(e Expr) map[string]bool {
	switch n := e.(type) {
	case *IntegerExpr:
		n.SetFreeVars(map[string]bool{})
	case *StringExpr:
		n.SetFreeVars(map[string]bool{})
	case *VariableExpr:
		n.SetFreeVars(map[string]bool{n.Name: true})
	case *LambdaExpr:
		body := computeFreeVars(n.Body)
		free := cloneSet(body)
		for _, p := range n.Params {
			delete(free, p.Name)
		}
		n.SetFreeVars(free)
	case *LetrecExpr:
		free := computeFreeVars(n.Body)
		free = cloneSet(free)
		for _, init := range n.Inits {
			unionInto(free, computeFreeVars(init))
		}
		for _, v := range n.Names {
			delete(free, v.Name)
		}
		n.SetFreeVars(free)
	case *IfExpr:
		free := map[string]bool{}
		unionInto(free, computeFreeVars(n.Cond))
		unionInto(free, computeFreeVars(n.Then))
		unionInto(free, computeFreeVars(n.Else))
		n.SetFreeVars(free)
	case *SequenceExpr:
		free := map[string]bool{}
		for _, sub := range n.Exprs {
			unionInto(free, computeFreeVars(sub))
		}
		n.SetFreeVars(free)
	case *IntrinsicCallExpr:
		free := map[string]bool{}
		for _, a := range n.Args {
			unionInto(free, computeFreeVars(a))
		}
		n.SetFreeVars(free)
	case *ExprCallExpr:
		free := map[string]bool{}
		unionInto(free, computeFreeVars(n.Callee))
		for _, a := range n.Args {
			unionInto(free, computeFreeVars(a))
		}
		n.SetFreeVars(free)
	case *AtExpr:
		free := cloneSet(computeFreeVars(n.Body))
		delete(free, n.Var.Name)
		n.SetFreeVars(free)
	default:
		panic("unrecognized AST node in computeFreeVars")
	}
	return e.FreeVars()
}

func cloneSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	unionInto(out, m)
	return out
}

func unionInto(dst, src map[string]bool) {
	for k := range src {
		dst[k] = true
	}
}

// computeTail assigns each node's own Tail flag to parentTail, then
// threads tail position into children per node kind. This matches the
// original's computeTail exactly, including the one case that looks
// surprising: a lambda's body is always analyzed in tail position
// (true), regardless of whether the lambda expression itself sits in
// tail position, because the body is the last thing that runs in the
// frame created when the closure is later called — a fact about that
// future call, not about where the lambda literal appears now.
func computeTail(e Expr, parentTail bool) {
	e.SetTail(parentTail)
	switch n := e.(type) {
	case *IntegerExpr, *StringExpr, *VariableExpr:
		// no children
	case *LambdaExpr:
		for _, p := range n.Params {
			computeTail(p, false)
		}
		computeTail(n.Body, true)
	case *LetrecExpr:
		for i := range n.Names {
			computeTail(n.Names[i], false)
			computeTail(n.Inits[i], false)
		}
		computeTail(n.Body, parentTail)
	case *IfExpr:
		computeTail(n.Cond, false)
		computeTail(n.Then, parentTail)
		computeTail(n.Else, parentTail)
	case *SequenceExpr:
		last := len(n.Exprs) - 1
		for i, sub := range n.Exprs {
			if i == last {
				computeTail(sub, parentTail)
			} else {
				computeTail(sub, false)
			}
		}
	case *IntrinsicCallExpr:
		for _, a := range n.Args {
			computeTail(a, false)
		}
	case *ExprCallExpr:
		computeTail(n.Callee, false)
		for _, a := range n.Args {
			computeTail(a, false)
		}
	case *AtExpr:
		computeTail(n.Var, false)
		computeTail(n.Body, false)
	default:
		panic("unrecognized AST node in computeTail")
	}
}
