// Command serralheria manages metalwork quotes: it serves the quoting API and
// offers the same operations from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
