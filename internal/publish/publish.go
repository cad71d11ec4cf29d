// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish runs the generate-format-publish pipeline: render a
// prompt, ask the chat backend for text, format it, then create, fill and
// share a document and record it in history.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/promptdoc/internal/chat"
	"github.com/pdiddy/promptdoc/internal/formatter"
	"github.com/pdiddy/promptdoc/internal/gdocs"
	"github.com/pdiddy/promptdoc/internal/metrics"
	"github.com/pdiddy/promptdoc/pkg/types"
)

// ErrEmptyTopic is returned when a request has no topic.
var ErrEmptyTopic = errors.New("topic is required")

// Recorder stores published documents. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, doc *types.PublishedDoc) error
}

// Request describes one document to generate.
type Request struct {
	Kind  types.DocumentKind
	Topic string

	// Title overrides the title derived from the topic.
	Title string
}

// Config wires the publisher's collaborators. History, Metrics and Logger
// are optional.
type Config struct {
	Chat      chat.Backend
	Docs      gdocs.Service
	Formatter *formatter.Formatter
	History   Recorder
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	// Share grants public read access to each new document.
	Share bool
}

// Publisher runs the pipeline. Each Publish call is independent.
type Publisher struct {
	cfg Config
}

// New returns a Publisher. Chat and Docs are required.
func New(cfg Config) (*Publisher, error) {
	if cfg.Chat == nil {
		return nil, fmt.Errorf("publisher requires a chat backend")
	}
	if cfg.Docs == nil {
		return nil, fmt.Errorf("publisher requires a document service")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.New(formatter.Options{})
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Publisher{cfg: cfg}, nil
}

// Publish generates, formats and publishes one document. A history failure
// is logged and does not fail the call.
func (p *Publisher) Publish(ctx context.Context, req Request) (*types.PublishedDoc, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	kind := req.Kind
	if kind == "" {
		kind = types.KindAgreement
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = chat.DefaultTitle(kind, topic)
	}
	log := p.cfg.Logger.With("kind", string(kind), "title", title)

	prompt, err := chat.RenderPrompt(kind, topic)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	completion, err := p.cfg.Chat.Complete(ctx, prompt)
	if err != nil {
		return nil, p.fail(metrics.StageChat, fmt.Errorf("generating text: %w", err))
	}
	p.cfg.Metrics.ObserveStage(metrics.StageChat, start)
	log.Info("text generated", "request_id", completion.RequestID, "model", completion.Model,
		"tokens", completion.Usage.TotalTokens)

	start = time.Now()
	res, err := p.cfg.Formatter.Format(title, stripMarkup(completion.Text))
	if err != nil {
		return nil, p.fail(metrics.StageFormat, fmt.Errorf("formatting text: %w", err))
	}
	p.cfg.Metrics.ObserveStage(metrics.StageFormat, start)
	skipped := res.Skipped()
	for _, s := range skipped {
		log.Warn("line left unstyled", "line", s.Index, "reason", s.Reason)
	}

	start = time.Now()
	docID, err := p.cfg.Docs.Create(ctx, title)
	if err != nil {
		return nil, p.fail(metrics.StageCreate, err)
	}
	p.cfg.Metrics.ObserveStage(metrics.StageCreate, start)

	start = time.Now()
	if err := p.cfg.Docs.BatchApply(ctx, docID, res); err != nil {
		return nil, p.fail(metrics.StageApply, err)
	}
	p.cfg.Metrics.ObserveStage(metrics.StageApply, start)

	url := gdocs.DocumentURL(docID)
	if p.cfg.Share {
		start = time.Now()
		url, err = p.cfg.Docs.Share(ctx, docID)
		if err != nil {
			return nil, p.fail(metrics.StageShare, err)
		}
		p.cfg.Metrics.ObserveStage(metrics.StageShare, start)
	}

	doc := &types.PublishedDoc{
		DocID:   docID,
		Kind:    kind,
		Topic:   topic,
		Title:   title,
		URL:     url,
		Lines:   len(res.Lines),
		Skipped: len(skipped),
	}
	p.cfg.Metrics.Publish(string(kind), len(skipped))

	if p.cfg.History != nil {
		start = time.Now()
		if err := p.cfg.History.Record(ctx, doc); err != nil {
			p.cfg.Metrics.Fail(metrics.StageRecord)
			log.Error("recording history", "doc_id", docID, "error", err)
		} else {
			p.cfg.Metrics.ObserveStage(metrics.StageRecord, start)
		}
	}

	log.Info("document published", "doc_id", docID, "url", url, "lines", doc.Lines, "skipped", doc.Skipped)
	return doc, nil
}

func (p *Publisher) fail(stage string, err error) error {
	p.cfg.Metrics.Fail(stage)
	p.cfg.Logger.Error("publish failed", "stage", stage, "error", err)
	return err
}
