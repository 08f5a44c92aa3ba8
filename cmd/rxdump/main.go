// Command rxdump compiles a pattern and prints its disassembly. It is the
// manual-inspection counterpart to the original's command-line timing
// harness (spec §1): compile and dump only, no test-file tokenizer, no
// timing loop — those remain external collaborators.
package main

import (
	"fmt"
	"os"

	"github.com/sentra-lang/uregex"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <pattern>\n", os.Args[0])
		os.Exit(2)
	}

	prog, err := uregex.Compile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(prog.Print())
}
