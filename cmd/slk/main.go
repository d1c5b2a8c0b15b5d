// Package main is the entry point for the slk CLI client.
package main

import (
	"github.com/donaldgifford/sellerlink/cmd/slk/cmd"
)

func main() {
	cmd.Execute()
}
