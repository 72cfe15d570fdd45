// buildwise is an offline front end to the estimation engine.
//
// Usage:
//
//	buildwise estimate --area 1000 --floors 1 --quality standard --country India --currency INR
//	buildwise materials --area 1000 --floors 1
//	buildwise convert --amount 100 --from USD --to INR
//	buildwise rates
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
