package main

import (
	"os"

	"github.com/raysh454/segmentd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
