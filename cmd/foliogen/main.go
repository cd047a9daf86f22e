package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "foliogen",
	Short: "Foliogen: generate a portfolio website from a CV",
	Long: `Foliogen turns a CV document into a self-contained portfolio website
using two local language models: a reasoning model extracts the CV into
structured data, and a coding model renders that data as a single HTML page.

Usage:
  foliogen generate <cv.pdf> [flags]`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
