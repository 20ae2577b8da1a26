package main

import (
	"os"

	"expy/cmd/expy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
