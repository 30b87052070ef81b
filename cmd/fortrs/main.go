// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"gitlab.com/fisherprime/fortrs/cmd/fortrs/cmd"
	"gitlab.com/fisherprime/fortrs/errkind"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Every cause, outermost first.
		for _, cause := range errkind.Chain(err) {
			fmt.Fprintln(os.Stderr, cause)
		}
		os.Exit(1)
	}
}
