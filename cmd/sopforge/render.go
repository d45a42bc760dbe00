package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/loader"
	"github.com/sopforge/sopforge/internal/render"
	"github.com/sopforge/sopforge/internal/tree"
)

var (
	renderFormat   string
	renderOutput   string
	renderTemplate string
)

var renderCmd = &cobra.Command{
	Use:   "render <document.yaml>",
	Short: "Render a YAML document to an output format",
	Long: `Render a structured YAML document to a formatted artifact.

Examples:
  sopforge render sop.yaml                          # Markdown to sop-title.md
  sopforge render sop.yaml --format docx            # Word document
  sopforge render sop.yaml --format html -o out.html
  sopforge render sop.yaml -o -                     # Write to stdout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		dec := newDecomposer(log)

		root, err := loader.LoadFile(args[0])
		if err != nil {
			return err
		}
		canonical := tree.Normalizer{Rule: dec.Rule, Log: log}.Apply(root)

		doc, err := document.FromTree(canonical)
		if err != nil {
			return err
		}
		if err := doc.Validate(); err != nil {
			return err
		}

		templatePath := renderTemplate
		if templatePath == "" {
			templatePath = cfg.TemplatePath
		}
		template, err := render.LoadTemplate(templatePath)
		if err != nil {
			return err
		}

		r, err := render.ForFormat(renderFormat, dec, render.Options{Template: template})
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := r.Render(&buf, doc); err != nil {
			return err
		}

		if renderOutput == "-" {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}

		outPath := renderOutput
		if outPath == "" {
			base := document.Slugify(doc.Title)
			if base == "" {
				base = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			outPath = base + render.Extension(renderFormat)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "markdown", "output format: markdown, html, text, docx")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output path (default: derived from document title, - for stdout)")
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "custom markdown template file")

	rootCmd.AddCommand(renderCmd)
}
