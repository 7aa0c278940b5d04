/* Released under an MIT-style license. See LICENSE. */

package main

import "testing"

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	cases := []string{"", "hello", `has "quotes" and \backslash`, "tab\there", "newline\nhere"}
	for _, s := range cases {
		got := unquoteString(quoteString(s))
		if got != s {
			t.Errorf("round trip of %q produced %q", s, got)
		}
	}
}

func TestUnquoteRejectsMalformedInput(t *testing.T) {
	for _, s := range []string{``, `"`, `no quotes`, `"unterminated\`} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("unquoteString(%q) did not fail", s)
				}
			}()
			unquoteString(s)
		}()
	}
}

func TestValueStringForms(t *testing.T) {
	if got := voidValue().String(); got != "<void>" {
		t.Errorf("void renders as %q", got)
	}
	if got := integerValue(-7).String(); got != "-7" {
		t.Errorf("integer renders as %q", got)
	}
	if got := stringValue(`a"b`).String(); got != `"a\"b"` {
		t.Errorf("string renders as %q", got)
	}
}
