package main

import (
	"os"

	"github.com/abhisek/linguaflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
