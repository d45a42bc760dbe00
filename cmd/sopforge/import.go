package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sopforge/sopforge/internal/importer"
)

var importOutput string

var importCmd = &cobra.Command{
	Use:   "import <document>",
	Short: "Import an existing document into a YAML skeleton",
	Long: `Import an existing document (docx, pdf, md, html, txt) and produce a
YAML skeleton with its headings and content filled in. Header fields the
source document cannot supply are emitted as TBD placeholders for manual
completion.

Examples:
  sopforge import legacy-sop.docx                 # Writes legacy-sop.yaml
  sopforge import procedure.pdf -o draft.yaml
  sopforge import notes.md -o -                   # Write to stdout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		path := args[0]
		imp, err := importer.ForFile(path)
		if err != nil {
			return err
		}
		if p, ok := imp.(*importer.PDFImporter); ok {
			p.FallbackPdftotext = cfg.PDFFallbackPdftotext
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		draft, err := imp.Import(f, filepath.Base(path))
		if err != nil {
			return err
		}
		log.Debug("import parsed", "file", path, "sections", len(draft.Sections))

		out, err := importer.MarshalSkeleton(draft)
		if err != nil {
			return err
		}

		if importOutput == "-" {
			_, err := os.Stdout.Write(out)
			return err
		}
		outPath := importOutput
		if outPath == "" {
			outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".yaml"
		}
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "output path (default: source name with .yaml, - for stdout)")

	rootCmd.AddCommand(importCmd)
}
