/* Released under an MIT-style license. See LICENSE. */

package main

import "testing"

func TestLexBasicTokens(t *testing.T) {
	tokens := Lex(`(.+ 1 x) "hi" { } @ lambda`)
	want := []struct {
		kind TokenKind
		text string
	}{
		{TokSymbol, "("},
		{TokIntrinsic, ".+"},
		{TokInteger, "1"},
		{TokIdent, "x"},
		{TokSymbol, ")"},
		{TokString, `"hi"`},
		{TokSymbol, "{"},
		{TokSymbol, "}"},
		{TokSymbol, "@"},
		{TokIdent, "lambda"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Text != w.text {
			t.Errorf("token %d: got {%v %q}, want {%v %q}", i, tokens[i].Kind, tokens[i].Text, w.kind, w.text)
		}
	}
}

func TestLexSignedIntegers(t *testing.T) {
	for _, src := range []string{"-5", "+5", "0", "123"} {
		tokens := Lex(src)
		if len(tokens) != 1 || tokens[0].Kind != TokInteger || tokens[0].Text != src {
			t.Errorf("Lex(%q) = %v, want single integer token", src, tokens)
		}
	}
}

func TestLexCommentIsSkipped(t *testing.T) {
	tokens := Lex("1 # a comment\n2")
	if len(tokens) != 2 || tokens[0].Text != "1" || tokens[1].Text != "2" {
		t.Fatalf("got %v", tokens)
	}
}

func TestLexIncompleteIntegerFails(t *testing.T) {
	defer expectLexerError(t, "incomplete integer literal")
	Lex("-")
}

func TestLexIncompleteStringFails(t *testing.T) {
	defer expectLexerError(t, "incomplete string literal")
	Lex(`"unterminated`)
}

func TestLexUnsupportedCharacterFails(t *testing.T) {
	defer expectLexerErrorKind(t, LexerError)
	Lex("\x01")
}

func expectLexerError(t *testing.T, wantMsg string) {
	t.Helper()
	r := recover()
	if r == nil {
		t.Fatalf("expected a panic, got none")
	}
	ierr, ok := r.(*InterpreterError)
	if !ok {
		t.Fatalf("expected *InterpreterError, got %T: %v", r, r)
	}
	if ierr.Kind != LexerError {
		t.Fatalf("got kind %v, want LexerError", ierr.Kind)
	}
	if ierr.Msg != wantMsg {
		t.Fatalf("got message %q, want %q", ierr.Msg, wantMsg)
	}
}

func expectLexerErrorKind(t *testing.T, kind ErrorKind) {
	t.Helper()
	r := recover()
	if r == nil {
		t.Fatalf("expected a panic, got none")
	}
	ierr, ok := r.(*InterpreterError)
	if !ok || ierr.Kind != kind {
		t.Fatalf("got %v, want kind %v", r, kind)
	}
}
