// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/promptdoc/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List or export published documents",
	Long: `History lists the most recently published documents, newest first.
Pass a record ID to show one document, or --export to write every record
as YAML to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	export, _ := cmd.Flags().GetBool("export")

	store, err := history.Open(loadConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if export {
		return store.Export(ctx, out)
	}

	if len(args) == 1 {
		doc, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "ID:       %s\n", doc.ID)
		fmt.Fprintf(out, "Title:    %s\n", doc.Title)
		fmt.Fprintf(out, "Kind:     %s\n", doc.Kind)
		fmt.Fprintf(out, "Topic:    %s\n", doc.Topic)
		fmt.Fprintf(out, "URL:      %s\n", doc.URL)
		fmt.Fprintf(out, "Lines:    %d (%d unstyled)\n", doc.Lines, doc.Skipped)
		fmt.Fprintf(out, "Created:  %s\n", doc.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	}

	docs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(os.Stderr, "No documents published yet.")
		return nil
	}
	for i, d := range docs {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, d.Kind, d.Title)
		fmt.Fprintf(out, "   %s  %s\n", d.CreatedAt.Local().Format("2006-01-02 15:04"), d.URL)
		fmt.Fprintf(out, "   id: %s\n", d.ID)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of documents to list")
	historyCmd.Flags().Bool("export", false, "write all records as YAML")

	rootCmd.AddCommand(historyCmd)
}
