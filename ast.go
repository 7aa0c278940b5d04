/* Released under an MIT-style license. See LICENSE. */

package main

import "fmt"

// Pos identifies a location in source text, 1-indexed on both axes, the
// same convention the original walks its SourceStream with.
type Pos struct {
	Line int
	Col  int
}

// String renders a Pos the way runtime and static errors embed it:
// "(SourceLocation L C)", or "(SourceLocation N/A)" for a synthetic
// position (the base stack frame has none).
func (p Pos) String() string {
	if p.Line <= 0 || p.Col <= 0 {
		return "(SourceLocation N/A)"
	}
	return fmt.Sprintf("(SourceLocation %d %d)", p.Line, p.Col)
}

// Expr is any node in the parsed expression tree. Every concrete node
// embeds exprBase, which carries the three properties every node needs
// regardless of shape: its source position, its statically computed
// free-variable set, and whether it sits in tail position.
type Expr interface {
	SourcePos() Pos
	FreeVars() map[string]bool
	SetFreeVars(map[string]bool)
	IsTail() bool
	SetTail(bool)
}

type exprBase struct {
	Pos  Pos
	Free map[string]bool
	Tail bool
}

func (b *exprBase) SourcePos() Pos                    { return b.Pos }
func (b *exprBase) FreeVars() map[string]bool         { return b.Free }
func (b *exprBase) SetFreeVars(vars map[string]bool)  { b.Free = vars }
func (b *exprBase) IsTail() bool                      { return b.Tail }
func (b *exprBase) SetTail(t bool)                    { b.Tail = t }

// IntegerExpr is an integer literal. Loc is filled in by the literal
// preallocator before evaluation begins and never changes afterward.
type IntegerExpr struct {
	exprBase
	Text string
	Loc  Location
}

// StringExpr is a string literal, still holding its raw quoted text
// from the lexer; Loc holds the unquoted value once preallocated.
type StringExpr struct {
	exprBase
	Text string
	Loc  Location
}

// VariableExpr names a binding to resolve against the current environment.
type VariableExpr struct {
	exprBase
	Name string
}

// LambdaExpr is a function literal: a parameter list plus a body.
// Evaluating a LambdaExpr never runs Body; it only captures free
// variables into a closure.
type LambdaExpr struct {
	exprBase
	Params []*VariableExpr
	Body   Expr
}

// LetrecExpr binds a group of mutually visible names, in order, to the
// results of their initializers, then evaluates Body in that scope.
type LetrecExpr struct {
	exprBase
	Names []*VariableExpr
	Inits []Expr
	Body  Expr
}

// IfExpr branches on an integer condition: nonzero takes Then, zero
// takes Else. Any other value type is a runtime error.
type IfExpr struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

// SequenceExpr evaluates each of Exprs in order; its value is the last.
// The parser rejects an empty sequence.
type SequenceExpr struct {
	exprBase
	Exprs []Expr
}

// IntrinsicCallExpr invokes one of the closed set of `.`-prefixed
// primitives with fully evaluated arguments.
type IntrinsicCallExpr struct {
	exprBase
	Name string
	Args []Expr
}

// ExprCallExpr calls a closure value produced by evaluating Callee with
// the evaluated Args. The only node whose Tail flag is consulted during
// evaluation; it drives tail-call elimination.
type ExprCallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// AtExpr evaluates Expr to a closure and looks up Var inside that
// closure's captured environment instead of the current one, giving a
// program "access by reference" into a closure's private bindings.
type AtExpr struct {
	exprBase
	Var  *VariableExpr
	Body Expr
}
