package main

import (
	"os"

	"github.com/ssr-dev/ssr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
