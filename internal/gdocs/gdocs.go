// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gdocs creates documents, replays formatter output into them and
// shares them, using the Google Docs and Drive APIs.
package gdocs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/pdiddy/promptdoc/internal/formatter"
	"github.com/pdiddy/promptdoc/pkg/types"
)

// DefaultMaxBatch caps the number of requests sent in one batchUpdate call.
const DefaultMaxBatch = 500

// URLPrefix is prepended to a document ID to form its link.
const URLPrefix = "https://docs.google.com/document/d/"

// Service is the document service the publisher drives.
type Service interface {
	// Create makes an empty document and returns its ID.
	Create(ctx context.Context, title string) (string, error)

	// BatchApply inserts the result text and replays its operations in order.
	BatchApply(ctx context.Context, docID string, res *formatter.Result) error

	// Share grants anyone-with-the-link read access and returns the link.
	Share(ctx context.Context, docID string) (string, error)
}

// GoogleService implements Service with the Docs and Drive APIs.
type GoogleService struct {
	docs     *docs.Service
	drive    *drive.Service
	maxBatch int
	logger   *slog.Logger
}

// NewGoogleService builds a service from a stored OAuth token. The
// interactive consent flow is not run; the token file must already exist.
func NewGoogleService(ctx context.Context, cfg types.DocsConfig, logger *slog.Logger) (*GoogleService, error) {
	client, err := oauthClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewGoogleServiceWithOptions(ctx, logger, option.WithHTTPClient(client))
}

// NewGoogleServiceWithOptions builds a service from explicit client options.
// Tests use it to point both APIs at a local server.
func NewGoogleServiceWithOptions(ctx context.Context, logger *slog.Logger, opts ...option.ClientOption) (*GoogleService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating docs client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}
	return &GoogleService{docs: docsSvc, drive: driveSvc, maxBatch: DefaultMaxBatch, logger: logger}, nil
}

func oauthClient(ctx context.Context, cfg types.DocsConfig) (*http.Client, error) {
	if cfg.ClientSecretFile == "" || cfg.TokenFile == "" {
		return nil, fmt.Errorf("google credentials not configured (add .secrets/google-client-secret.json and .secrets/google-token.json)")
	}
	secret, err := os.ReadFile(cfg.ClientSecretFile)
	if err != nil {
		return nil, fmt.Errorf("reading client secret %s: %w", cfg.ClientSecretFile, err)
	}
	conf, err := google.ConfigFromJSON(secret, docs.DocumentsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret: %w", err)
	}
	tok, err := readToken(cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	return conf.Client(ctx, tok), nil
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening token %s: %w", path, err)
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decoding token %s: %w", path, err)
	}
	return &tok, nil
}

// Create makes an empty document titled title.
func (g *GoogleService) Create(ctx context.Context, title string) (string, error) {
	doc, err := g.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating document: %w", err)
	}
	g.logger.Debug("document created", "doc_id", doc.DocumentId, "title", title)
	return doc.DocumentId, nil
}

// BatchApply sends the converted requests in order, splitting them into
// batches of at most maxBatch.
func (g *GoogleService) BatchApply(ctx context.Context, docID string, res *formatter.Result) error {
	reqs, err := Requests(res)
	if err != nil {
		return err
	}
	for start := 0; start < len(reqs); start += g.maxBatch {
		end := min(start+g.maxBatch, len(reqs))
		_, err := g.docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
			Requests: reqs[start:end],
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("applying requests %d-%d to %s: %w", start, end-1, docID, err)
		}
	}
	g.logger.Debug("document formatted", "doc_id", docID, "requests", len(reqs))
	return nil
}

// Share grants public read access.
func (g *GoogleService) Share(ctx context.Context, docID string) (string, error) {
	_, err := g.drive.Permissions.Create(docID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("sharing document %s: %w", docID, err)
	}
	return DocumentURL(docID), nil
}

// DocumentURL returns the link for a document ID.
func DocumentURL(docID string) string {
	return URLPrefix + docID
}
