package main

import (
	"os"

	"github.com/spectra-io/client/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
