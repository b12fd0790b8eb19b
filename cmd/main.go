package main

import (
	"os"

	"github.com/BHARGAV-S54/code-battle/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
