package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "docingest",
	Short: "Ingest documents into a normalized representation",
	Long: `docingest converts plain text, Markdown, HTML, and JSON documents into a
normalized intermediate representation, repairs common extraction
artifacts, and reports what was changed.`,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("docingest %s\n", version))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
