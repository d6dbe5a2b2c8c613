// Command calma runs the mood tracking and well-being service.
package main

import (
	"os"

	"github.com/calma-app/calma/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
