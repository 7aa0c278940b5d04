/* Released under an MIT-style license. See LICENSE. */

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// usage declares exactly one positional argument, SCRIPT. docopt
// prints this text to stderr and returns an error for any other
// invocation shape, satisfying the "usage + non-zero exit on any
// other arity" contract without this package hand-rolling flag
// parsing, the way the teacher's internal/system/options wraps
// docopt.ParseDoc for its own CLI.
const usage = `stepvm

Usage:
  stepvm SCRIPT

Arguments:
  SCRIPT  path to a source file to run.
`

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	path, err := opts.String("SCRIPT")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(run(path))
}

// run loads and executes one program, returning the process exit
// status. Its single defer+recover is this interpreter's only
// recovery point, mirroring the teacher's own pattern of converting
// any panic into a reported, fatal failure right before main returns:
// there is no nested recovery anywhere in the lexer, parser, analyzer,
// or evaluator, so every error kind ends up here exactly once.
func run(path string) (code int) {
	styled := isatty.IsTerminal(os.Stderr.Fd())

	defer func() {
		if r := recover(); r != nil {
			reportFatal(r, styled)
			code = 1
		}
	}()

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s does not exist.\n", path)
		return 1
	}

	in := bufio.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)

	state := NewState(string(source), in, out)
	state.Execute()
	out.Flush()

	fmt.Println("<end-of-stdout>")
	fmt.Println(state.Heap.Get(state.Result).String())
	return 0
}

// reportFatal prints whatever the recovered panic was, in the shape
// the original's caught std::runtime_error is printed in main(): a
// runtime error's stack trace first (oldest frame first), then the
// "[<kind> error <pos>] <msg>" message itself. styled only toggles a
// minimal ANSI severity prefix when stderr is a terminal; the message
// text itself never changes.
func reportFatal(r interface{}, styled bool) {
	ierr, ok := r.(*InterpreterError)
	if !ok {
		fmt.Fprintln(os.Stderr, r)
		return
	}
	if len(ierr.Trace) > 0 {
		fmt.Fprint(os.Stderr, writeTrace(ierr.Trace))
	}
	if styled {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", ierr.Error())
	} else {
		fmt.Fprintln(os.Stderr, ierr.Error())
	}
}
