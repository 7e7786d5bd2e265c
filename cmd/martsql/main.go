package main

import (
	"os"

	"github.com/martsql/martsql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
