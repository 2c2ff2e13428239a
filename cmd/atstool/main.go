// Package main is the maintenance tool of the ats backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atstool",
	Short: "ATS backend maintenance tool",
	Long:  "Maintenance commands run against the ats backend database and configuration.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
