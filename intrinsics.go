/* Released under an MIT-style license. See LICENSE. */

package main

import "strconv"

// callIntrinsic dispatches a `.`-prefixed primitive over its already
// evaluated argument locations, mirroring the original's
// _callIntrinsic if/else-if chain one intrinsic at a time. Every
// branch starts by checking arity and argument types with typecheck,
// exactly the way the original's templated _typecheck<Alt...> gates
// every case before touching the heap.
func (s *State) callIntrinsic(pos Pos, name string, args []Location) Value {
	switch name {
	case ".void":
		s.typecheck(pos, args)
		return voidValue()
	case ".+":
		a, b := s.wantInts(pos, args)
		return integerValue(a + b)
	case ".-":
		a, b := s.wantInts(pos, args)
		return integerValue(a - b)
	case ".*":
		a, b := s.wantInts(pos, args)
		return integerValue(a * b)
	case "./":
		a, b := s.wantInts(pos, args)
		if b == 0 {
			s.fatal("division by zero", pos)
		}
		return integerValue(a / b)
	case ".%":
		a, b := s.wantInts(pos, args)
		if b == 0 {
			s.fatal("division by zero", pos)
		}
		return integerValue(a % b)
	case ".<":
		a, b := s.wantInts(pos, args)
		return boolValue(a < b)
	case ".<=":
		a, b := s.wantInts(pos, args)
		return boolValue(a <= b)
	case ".>":
		a, b := s.wantInts(pos, args)
		return boolValue(a > b)
	case ".>=":
		a, b := s.wantInts(pos, args)
		return boolValue(a >= b)
	case ".=":
		a, b := s.wantInts(pos, args)
		return boolValue(a == b)
	case "./=":
		a, b := s.wantInts(pos, args)
		return boolValue(a != b)
	case ".and":
		a, b := s.wantInts(pos, args)
		return boolValue(a != 0 && b != 0)
	case ".or":
		a, b := s.wantInts(pos, args)
		return boolValue(a != 0 || b != 0)
	case ".not":
		s.typecheck(pos, args, TagInteger)
		return boolValue(s.Heap.Get(args[0]).Int == 0)
	case ".s+":
		a, b := s.wantStrs(pos, args)
		return stringValue(a + b)
	case ".s<":
		a, b := s.wantStrs(pos, args)
		return boolValue(a < b)
	case ".s<=":
		a, b := s.wantStrs(pos, args)
		return boolValue(a <= b)
	case ".s>":
		a, b := s.wantStrs(pos, args)
		return boolValue(a > b)
	case ".s>=":
		a, b := s.wantStrs(pos, args)
		return boolValue(a >= b)
	case ".s=":
		a, b := s.wantStrs(pos, args)
		return boolValue(a == b)
	case ".s/=":
		a, b := s.wantStrs(pos, args)
		return boolValue(a != b)
	case ".s||":
		s.typecheck(pos, args, TagString)
		return integerValue(int64(len(s.Heap.Get(args[0]).Str)))
	case ".s[]":
		s.typecheck(pos, args, TagString, TagInteger, TagInteger)
		str := s.Heap.Get(args[0]).Str
		n := len(str)
		l := int(s.Heap.Get(args[1]).Int)
		r := int(s.Heap.Get(args[2]).Int)
		if !((0 <= l && l < n) && (0 <= r && r < n) && l <= r) {
			s.fatal("invalid substring range", pos)
		}
		return stringValue(str[l:r])
	case ".quote":
		s.typecheck(pos, args, TagString)
		return stringValue(quoteString(s.Heap.Get(args[0]).Str))
	case ".unquote":
		s.typecheck(pos, args, TagString)
		return stringValue(unquoteString(s.Heap.Get(args[0]).Str))
	case ".s->i":
		s.typecheck(pos, args, TagString)
		v, err := strconv.ParseInt(s.Heap.Get(args[0]).Str, 10, 64)
		if err != nil {
			s.fatal("invalid integer string", pos)
		}
		return integerValue(v)
	case ".i->s":
		s.typecheck(pos, args, TagInteger)
		return stringValue(strconv.FormatInt(s.Heap.Get(args[0]).Int, 10))
	case ".type":
		s.typecheck(pos, args, tagAny)
		return integerValue(int64(s.Heap.Get(args[0]).Tag))
	case ".eval":
		s.typecheck(pos, args, TagString)
		return s.evalNested(pos, s.Heap.Get(args[0]).Str)
	case ".getchar":
		s.typecheck(pos, args)
		return s.getchar()
	case ".getint":
		s.typecheck(pos, args)
		return s.getint()
	case ".putstr":
		s.typecheck(pos, args, TagString)
		s.Out.WriteString(s.Heap.Get(args[0]).Str)
		return voidValue()
	case ".flush":
		s.typecheck(pos, args)
		s.Out.Flush()
		return voidValue()
	default:
		s.fatal("unrecognized intrinsic call", pos)
	}
	panic("unreachable")
}

func boolValue(b bool) Value {
	if b {
		return integerValue(1)
	}
	return integerValue(0)
}

// tagAny is a sentinel accepted by typecheck for an argument whose
// type is deliberately unconstrained, used only by .type.
const tagAny Tag = -1

// typecheck enforces both arity and, for each position that isn't
// tagAny, the expected Tag — the Go analogue of the original's
// requires-constrained _typecheck<Alt...> template.
func (s *State) typecheck(pos Pos, args []Location, want ...Tag) {
	if len(args) != len(want) {
		s.fatal("type error on intrinsic call", pos)
	}
	for i, tag := range want {
		if tag == tagAny {
			continue
		}
		if s.Heap.Get(args[i]).Tag != tag {
			s.fatal("type error on intrinsic call", pos)
		}
	}
}

func (s *State) wantInts(pos Pos, args []Location) (int64, int64) {
	s.typecheck(pos, args, TagInteger, TagInteger)
	return s.Heap.Get(args[0]).Int, s.Heap.Get(args[1]).Int
}

func (s *State) wantStrs(pos Pos, args []Location) (string, string) {
	s.typecheck(pos, args, TagString, TagString)
	return s.Heap.Get(args[0]).Str, s.Heap.Get(args[1]).Str
}

// getchar reads one byte from In, returning Void at end of input the
// way the original returns Void() on std::cin.eof().
func (s *State) getchar() Value {
	b, err := s.In.ReadByte()
	if err != nil {
		return voidValue()
	}
	return stringValue(string(b))
}

// getint reads a whitespace-delimited integer from In, returning Void
// if the stream is exhausted or the next token doesn't parse, the way
// the original returns Void() when the `>>` extraction fails.
func (s *State) getint() Value {
	var b []byte
	for {
		c, err := s.In.ReadByte()
		if err != nil {
			if len(b) == 0 {
				return voidValue()
			}
			break
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if len(b) == 0 {
				continue
			}
			break
		}
		b = append(b, c)
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return voidValue()
	}
	return integerValue(v)
}

// evalNested runs prog as a fresh, independent interpreter sharing
// this State's I/O streams, then copies its scalar result back into
// this heap — the metacircular .eval intrinsic. A nested program whose
// final value is a Closure fails instead of being transplanted: doing
// so would require copying its entire captured-environment graph
// across two independent heaps, and nothing in this language needs
// that capability.
func (s *State) evalNested(pos Pos, prog string) Value {
	nested := NewState(prog, s.In, s.Out)
	nested.Execute()
	v := nested.Heap.Get(nested.Result)
	if v.Tag == TagClosure {
		s.fatal("eval result is a closure", pos)
	}
	return v
}
