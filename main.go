package main

import (
	"os"

	"github.com/jbaptistec/shiftplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
