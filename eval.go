/* Released under an MIT-style license. See LICENSE. */

package main

import "bufio"

// State is one running interpreter: its heap, its explicit control
// stack, the literal-prefix boundary the collector must never cross,
// and the cursor pointing at the most recently produced value. A
// nested .eval call constructs an entirely independent State sharing
// only the I/O streams of its parent.
type State struct {
	Heap        Heap
	Stack       Stack
	NumLiterals int
	Result      Location

	In  *bufio.Reader
	Out *bufio.Writer
}

// NewState lexes, parses, and statically analyzes source, preallocates
// its literals, and sets up the base frame and the program's root
// layer — exactly the sequence the original's State constructor runs.
func NewState(source string, in *bufio.Reader, out *bufio.Writer) *State {
	root := Parse(Lex(source))
	Analyze(root)

	var heap Heap
	PreallocateLiterals(root, &heap)
	numLiterals := heap.Len()

	baseEnv := Env{}
	var stack Stack
	// the main frame, which TCO can never unwind past
	stack.push(Layer{Env: &baseEnv, Expr: nil, Frame: true})
	// the program's root expression, sharing the main frame's env
	stack.push(Layer{Env: &baseEnv, Expr: root})

	return &State{
		Heap:        heap,
		Stack:       stack,
		NumLiterals: numLiterals,
		In:          in,
		Out:         out,
	}
}

// Execute runs Step to completion, running the collector between steps
// whenever the heap has grown past a live-proportional threshold. The
// threshold policy — start at NumLiterals+64, then twice the live
// count after every collection — is taken verbatim from the original's
// execute().
func (s *State) Execute() {
	threshold := s.NumLiterals + 64
	for s.Step() {
		total := s.Heap.Len()
		if total > threshold {
			removed := collectGarbage(s)
			live := total - removed
			threshold = live * 2
		}
	}
}

// Step advances the machine by one sub-step of whatever expression sits
// atop Stack, returning false once the base frame is reached with
// nothing left above it. Every branch below mirrors one dynamic_cast
// case of the original's step(), pc value for pc value.
func (s *State) Step() bool {
	layer := s.Stack.top()
	if layer.Expr == nil {
		return false
	}

	switch n := layer.Expr.(type) {
	case *IntegerExpr:
		s.Result = n.Loc
		s.Stack.pop()

	case *StringExpr:
		s.Result = n.Loc
		s.Stack.pop()

	case *VariableExpr:
		loc, ok := layer.Env.Lookup(n.Name)
		if !ok {
			s.fatal("undefined variable "+n.Name, n.Pos)
		}
		s.Result = loc
		s.Stack.pop()

	case *LambdaExpr:
		env := layer.Env.Capture(n.FreeVars())
		s.Result = s.Heap.Alloc(closureValue(env, n))
		s.Stack.pop()

	case *LetrecExpr:
		s.stepLetrec(layer, n)

	case *IfExpr:
		s.stepIf(layer, n)

	case *SequenceExpr:
		s.stepSequence(layer, n)

	case *IntrinsicCallExpr:
		s.stepIntrinsicCall(layer, n)

	case *ExprCallExpr:
		s.stepExprCall(layer, n)

	case *AtExpr:
		s.stepAt(layer, n)

	default:
		s.fatal("unrecognized AST node", layer.Expr.SourcePos())
	}
	return true
}

func (s *State) stepLetrec(layer *Layer, n *LetrecExpr) {
	k := len(n.Names)
	// unified write-back: the initializer that just finished (if any)
	// overwrites its binding's placeholder in place, so any closure
	// captured earlier that holds that location sees the real value.
	if layer.PC > 1 && layer.PC <= k+1 {
		name := n.Names[layer.PC-2].Name
		loc, ok := layer.Env.Lookup(name)
		if !ok {
			s.fatal("undefined variable "+name, n.Pos)
		}
		s.Heap.Set(loc, s.Heap.Get(s.Result))
	}
	switch {
	case layer.PC == 0:
		layer.PC++
		for _, v := range n.Names {
			*layer.Env = append(*layer.Env, Binding{Name: v.Name, Loc: s.Heap.Alloc(voidValue())})
		}
	case layer.PC <= k:
		layer.PC++
		s.Stack.push(Layer{Env: layer.Env, Expr: n.Inits[layer.PC-2]})
	case layer.PC == k+1:
		layer.PC++
		s.Stack.push(Layer{Env: layer.Env, Expr: n.Body})
	default:
		// this layer can never be tail-call-elided: it owns k bindings
		// that must be popped back off the shared environment first.
		*layer.Env = (*layer.Env)[:len(*layer.Env)-k]
		s.Stack.pop()
	}
}

func (s *State) stepIf(layer *Layer, n *IfExpr) {
	switch layer.PC {
	case 0:
		layer.PC++
		s.Stack.push(Layer{Env: layer.Env, Expr: n.Cond})
	case 1:
		layer.PC++
		cond := s.Heap.Get(s.Result)
		if cond.Tag != TagInteger {
			s.fatal("wrong cond type", n.Pos)
		}
		if cond.Int != 0 {
			s.Stack.push(Layer{Env: layer.Env, Expr: n.Then})
		} else {
			s.Stack.push(Layer{Env: layer.Env, Expr: n.Else})
		}
	default:
		s.Stack.pop()
	}
}

func (s *State) stepSequence(layer *Layer, n *SequenceExpr) {
	if layer.PC < len(n.Exprs) {
		layer.PC++
		s.Stack.push(Layer{Env: layer.Env, Expr: n.Exprs[layer.PC-1]})
		return
	}
	// the sequence's value is whatever its last sub-expression left behind
	s.Stack.pop()
}

func (s *State) stepIntrinsicCall(layer *Layer, n *IntrinsicCallExpr) {
	if layer.PC > 0 && layer.PC <= len(n.Args) {
		layer.Local = append(layer.Local, s.Result)
	}
	if layer.PC < len(n.Args) {
		layer.PC++
		s.Stack.push(Layer{Env: layer.Env, Expr: n.Args[layer.PC-1]})
		return
	}
	v := s.callIntrinsic(n.Pos, n.Name, layer.Local)
	s.Result = s.Heap.Alloc(v)
	s.Stack.pop()
}

func (s *State) stepExprCall(layer *Layer, n *ExprCallExpr) {
	argN := len(n.Args)
	if layer.PC > 2 && layer.PC <= argN+2 {
		layer.Local = append(layer.Local, s.Result)
	}
	switch {
	case layer.PC == 0:
		layer.PC++
		s.Stack.push(Layer{Env: layer.Env, Expr: n.Callee})
	case layer.PC == 1:
		layer.PC++
		// inherited callee location
		layer.Local = append(layer.Local, s.Result)
	case layer.PC <= argN+1:
		layer.PC++
		s.Stack.push(Layer{Env: layer.Env, Expr: n.Args[layer.PC-3]})
	case layer.PC == argN+2:
		layer.PC++
		s.call(layer, n)
	default:
		// no need to update Result: inherited from the callee body
		s.Stack.pop()
	}
}

func (s *State) call(layer *Layer, n *ExprCallExpr) {
	calleeLoc := layer.Local[0]
	callee := s.Heap.Get(calleeLoc)
	if callee.Tag != TagClosure {
		s.fatal("calling a non-callable", n.Pos)
	}
	closure := callee.Closure
	if len(layer.Local)-1 != len(closure.Fun.Params) {
		s.fatal("wrong number of arguments", n.Pos)
	}
	nArgs := len(closure.Fun.Params)
	// lexical scope: start from the env captured where the closure was defined
	newEnv := make(Env, len(closure.Env), len(closure.Env)+nArgs)
	copy(newEnv, closure.Env)
	for i, p := range closure.Fun.Params {
		// closure calls pass arguments by location, not by value
		newEnv = append(newEnv, Binding{Name: p.Name, Loc: layer.Local[i+1]})
	}
	if n.Tail {
		for !s.Stack.top().Frame {
			s.Stack.pop()
		}
		s.Stack.pop() // the frame itself: this call replaces it, not extends it
	}
	s.Stack.push(Layer{Env: &newEnv, Expr: closure.Fun.Body, Frame: true})
}

func (s *State) stepAt(layer *Layer, n *AtExpr) {
	if layer.PC == 0 {
		layer.PC++
		s.Stack.push(Layer{Env: layer.Env, Expr: n.Body})
		return
	}
	v := s.Heap.Get(s.Result)
	if v.Tag != TagClosure {
		s.fatal("@ wrong type", n.Pos)
	}
	loc, ok := v.Closure.Env.Lookup(n.Var.Name)
	if !ok {
		s.fatal("undefined variable "+n.Var.Name, n.Pos)
	}
	// access by reference: the result is the closure's own binding, live
	s.Result = loc
	s.Stack.pop()
}

// fatal reports a runtime error the way the original's _errorStack()
// followed by panic("runtime", ...) does: the stack trace is captured
// at the point of failure, oldest frame first, and carried on the
// error itself rather than written to stderr immediately.
//
// spec.md §6 describes the trace as newest-first; frameTrace below
// intentionally orders it oldest-first instead, matching the original
// interpreter's _getFrameSLs rather than §6. See DESIGN.md's Open
// Question decisions for the reasoning; this is a deliberate spec
// deviation, not a bug.
func (s *State) fatal(msg string, pos Pos) {
	panic(&InterpreterError{Kind: RuntimeError, Msg: msg, Pos: pos, Trace: s.frameTrace()})
}

func (s *State) frameTrace() []Pos {
	var trace []Pos
	for _, layer := range s.Stack {
		if !layer.Frame {
			continue
		}
		if layer.Expr == nil {
			trace = append(trace, Pos{Line: 1, Col: 1})
			continue
		}
		trace = append(trace, layer.Expr.SourcePos())
	}
	return trace
}
