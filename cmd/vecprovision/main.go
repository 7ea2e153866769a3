package main

import (
	"os"

	"github.com/kailas-cloud/vecprovision/internal/transport/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
