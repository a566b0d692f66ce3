package main

import (
	"os"

	"github.com/deppfellow/lvr-calculator/cmd/lvr/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
