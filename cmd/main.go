package main

import (
	"os"

	"github.com/renato145/interactive-class/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
