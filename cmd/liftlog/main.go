package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags "-X main.version=vX.X.X"
// If not set, defaults to "dev" for local development builds
var version = "dev"

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
