package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/loader"
	"github.com/sopforge/sopforge/internal/tree"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document.yaml>",
	Short: "Check a YAML document against the controlled-document schema",
	Args:  cobra.ExactArgs(1),
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

		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%q, %d procedure sections)\n",
			args[0], doc.Title, len(doc.Procedure))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
