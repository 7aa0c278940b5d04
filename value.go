/* Released under an MIT-style license. See LICENSE. */

package main

import "strconv"

// Location is an index into the heap. The zero Location is valid (it
// addresses the heap's first cell); there is no sentinel "null"
// location, since every reference a running program can observe was
// produced by an allocation.
type Location int

// Tag identifies which alternative of Value is populated. Order fixes
// the result of the .type intrinsic: Void=0, Integer=1, String=2,
// Closure=3. The original's own .type only distinguishes Void and
// Integer from "everything else"; this implementation gives Closure
// its own tag instead of folding it into String's, since a program
// checking "is this callable" needs that distinction and the spec
// leaves the closure tag implementation-defined.
type Tag int

const (
	TagVoid Tag = iota
	TagInteger
	TagString
	TagClosure
)

// Value is a tagged union over the four runtime value kinds. Only one
// of Int, Str, Closure is meaningful at a time, selected by Tag; this
// mirrors std::variant<Void, Integer, String, Closure> without Go
// needing a variant type of its own.
type Value struct {
	Tag     Tag
	Int     int64
	Str     string
	Closure *ClosureValue
}

// ClosureValue pairs a captured environment with the lambda it closes
// over. It is the only Value alternative that holds outgoing heap
// references (through Env), which is what makes it the only thing the
// garbage collector has to trace through.
type ClosureValue struct {
	Env Env
	Fun *LambdaExpr
}

func voidValue() Value           { return Value{Tag: TagVoid} }
func integerValue(v int64) Value { return Value{Tag: TagInteger, Int: v} }
func stringValue(s string) Value { return Value{Tag: TagString, Str: s} }

func closureValue(env Env, fun *LambdaExpr) Value {
	return Value{Tag: TagClosure, Closure: &ClosureValue{Env: env, Fun: fun}}
}

// String renders a Value the way the original's valueToString does:
// <void>, the decimal integer, the quoted string, or a closure's
// defining location.
func (v Value) String() string {
	switch v.Tag {
	case TagVoid:
		return "<void>"
	case TagInteger:
		return strconv.FormatInt(v.Int, 10)
	case TagString:
		return quoteString(v.Str)
	case TagClosure:
		return "<closure evaluated at " + v.Closure.Fun.SourcePos().String() + ">"
	default:
		panic("unrecognized value tag")
	}
}
