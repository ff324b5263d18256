package main

import (
	"fmt"
	"os"

	"github.com/chiquitav2/user-console/cmd/console/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Operation failures were already shown as notifications
		if !cmd.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
