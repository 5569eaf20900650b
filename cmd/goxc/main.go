// Command goxc is the GoxLang toolchain: lexer, parser, semantic checker,
// IR generator, and stack-machine interpreter, exposed as a cobra CLI.
package main

import (
	"os"

	"github.com/cwbudde/goxlang/cmd/goxc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
