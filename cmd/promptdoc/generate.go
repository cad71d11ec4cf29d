// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/promptdoc/internal/publish"
	"github.com/pdiddy/promptdoc/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a document with the chat model and publish it",
	Long: `Generate renders the prompt for the chosen kind, asks the chat model for
text, formats the reply and publishes it as a new Google Doc. The document
link is printed on stdout and the document is recorded in history.

The xAI key comes from --api-key, PROMPTDOC_AI_API_KEY or .secrets/xai-api-key.
Google credentials come from .secrets/google-client-secret.json and
.secrets/google-token.json.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	title, _ := cmd.Flags().GetString("title")
	kindName, _ := cmd.Flags().GetString("kind")
	noShare, _ := cmd.Flags().GetBool("no-share")

	kind, err := types.ParseDocumentKind(kindName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := loadConfig()
	if noShare {
		cfg.Docs.Share = false
	}
	p, closeFn, err := newPublisher(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer closeFn()

	doc, err := p.Publish(ctx, publish.Request{Kind: kind, Topic: topic, Title: title})
	if err != nil {
		return err
	}

	if doc.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d lines inserted without styling\n", doc.Skipped, doc.Lines)
	}
	fmt.Println(doc.URL)
	return nil
}

func init() {
	generateCmd.Flags().String("topic", "", "topic of the document (required)")
	generateCmd.Flags().String("title", "", "document title (default derived from the topic)")
	generateCmd.Flags().String("kind", string(types.KindAgreement), "document kind: agreement or essay")
	generateCmd.Flags().String("api-key", "", "xAI API key")
	generateCmd.Flags().String("model", "", "chat model identifier")
	generateCmd.Flags().String("base-url", "", "chat API base URL")
	generateCmd.Flags().Int("max-tokens", 0, "maximum completion tokens")
	generateCmd.Flags().Bool("no-share", false, "do not grant public read access")
	_ = generateCmd.MarkFlagRequired("topic")

	bindFlags(generateCmd.Flags())
	rootCmd.AddCommand(generateCmd)
}
