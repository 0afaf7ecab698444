// Command xscheck is a CLI front-end over the checker package: it reads
// one or more XS files, seeds the prelude, runs the type checker, and
// reports the resulting diagnostics as colored text or JSON.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
