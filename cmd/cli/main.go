package main

import (
	"fmt"
	"os"

	"github.com/finova-data/finova-client/pkg/runtime/terminal"
	"github.com/finova-data/finova-client/pkg/services/config"
)

func main() {
	registry, err := config.NewRegistry(config.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
