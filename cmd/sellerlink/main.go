// Package main is the entry point for the sellerlink server.
package main

import (
	"os"

	"github.com/donaldgifford/sellerlink/cmd/sellerlink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
