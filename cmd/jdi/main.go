// Command jdi renders the JDI greeting page from the command line or over
// HTTP, and encodes JDI messages.
package main

import (
	"fmt"
	"io"
	"os"
)

// Version is overridden at build time.
var Version = "dev"

func main() {
	if err := execute(os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the CLI with the provided args and streams.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = Version
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}
