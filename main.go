package main

import (
	"os"

	"github.com/raj-tembe/learn-with-ai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
