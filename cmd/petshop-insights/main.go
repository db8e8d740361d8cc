// Package main is the entry point for petshop-insights.
package main

import (
	"fmt"
	"os"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
