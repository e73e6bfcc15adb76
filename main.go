package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/bayer-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bayer: %v\n", err)
		os.Exit(1)
	}
}
