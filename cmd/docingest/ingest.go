package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/docforge"
)

var (
	title         string
	outPath       string
	sanitize      bool
	extractAssets bool
	mergeShort    bool
	splitSections bool
	anchors       bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a file and print its IR as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ing := configure(docforge.Open(args[0]))

		doc, warnings, err := ing.IR()
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)
		return writeJSON(doc)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Ingest and clean a file, reporting repairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ing := configure(docforge.Open(args[0]))

		res, warnings, err := ing.Cleaned()
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)
		printAudit(cmd.ErrOrStderr(), res.Audit, res.Summary)
		return writeJSON(res.Document)
	},
}

var mapCmd = &cobra.Command{
	Use:   "map <file>",
	Short: "Run the full pipeline and print the internal document model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ing := configure(docforge.Open(args[0]))

		doc, warnings, err := ing.Document()
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)
		return writeJSON(doc)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show a structural summary of an ingested file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ing := configure(docforge.Open(args[0]))

		doc, warnings, err := ing.IR()
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)
		printSummary(cmd.OutOrStdout(), args[0], doc)
		return nil
	},
}

// configure applies the shared flags to an ingester chain.
func configure(ing *docforge.Ingester) *docforge.Ingester {
	if title != "" {
		ing = ing.Title(title)
	}
	if sanitize {
		ing = ing.Sanitize()
	}
	if extractAssets {
		ing = ing.ExtractAssets()
	}
	if mergeShort {
		ing = ing.MergeShortParagraphs()
	}
	if splitSections {
		ing = ing.SplitSections()
	}
	if anchors {
		ing = ing.GenerateAnchors()
	}
	return ing
}

func writeJSON(v any) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{ingestCmd, cleanCmd, mapCmd, inspectCmd} {
		c.Flags().StringVarP(&title, "title", "t", "", "Document title override")
		c.Flags().BoolVar(&sanitize, "sanitize", false, "Sanitize untrusted HTML input")
		c.Flags().BoolVar(&extractAssets, "assets", false, "Extract MIME types and dimensions for embedded images")
		c.Flags().BoolVar(&mergeShort, "merge-short", false, "Coalesce runs of short paragraphs")
		c.Flags().BoolVar(&splitSections, "split-sections", false, "Split into one section per level-1 heading")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{ingestCmd, cleanCmd, mapCmd} {
		c.Flags().StringVarP(&outPath, "output", "o", "", "Write JSON to file instead of stdout")
	}
	mapCmd.Flags().BoolVar(&anchors, "anchors", false, "Generate heading anchors")
}
