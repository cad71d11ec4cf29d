// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Format raw text offline and print the operations",
	Long: `Format runs the document formatter on raw text read from file, or from
stdin when no file is given, and prints the insert text, the ordered style
operations and the per-line report as YAML (or JSON with --json). Nothing is
sent to any service.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func runFormat(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	asJSON, _ := cmd.Flags().GetBool("json")

	var (
		raw []byte
		err error
	)
	if len(args) == 1 && args[0] != "-" {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	f, err := newFormatter(loadConfig().Format)
	if err != nil {
		return err
	}
	res, err := f.Format(title, string(raw))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	} else {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}

	for _, s := range res.Skipped() {
		fmt.Fprintf(os.Stderr, "skipped line %d: %s\n", s.Index, s.Reason)
	}
	return nil
}

func init() {
	formatCmd.Flags().String("title", "Untitled", "document title")
	formatCmd.Flags().Bool("json", false, "print JSON instead of YAML")

	rootCmd.AddCommand(formatCmd)
}
