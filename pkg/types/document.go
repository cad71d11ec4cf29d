// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// DocumentKind selects the prompt used to generate a document.
type DocumentKind string

const (
	KindAgreement DocumentKind = "agreement"
	KindEssay     DocumentKind = "essay"
)

// ParseDocumentKind validates a kind name. The empty string selects
// KindAgreement.
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch DocumentKind(s) {
	case "":
		return KindAgreement, nil
	case KindAgreement, KindEssay:
		return DocumentKind(s), nil
	default:
		return "", fmt.Errorf("unknown document kind %q (want %s or %s)", s, KindAgreement, KindEssay)
	}
}

// PublishedDoc records one generated and published document.
type PublishedDoc struct {
	// ID is the local record identifier (UUID).
	ID string `json:"id" yaml:"id"`

	// DocID is the document service's identifier.
	DocID string `json:"doc_id" yaml:"doc_id"`

	// Kind is the prompt kind used.
	Kind DocumentKind `json:"kind" yaml:"kind"`

	// Topic is the user-supplied topic.
	Topic string `json:"topic" yaml:"topic"`

	// Title is the document title.
	Title string `json:"title" yaml:"title"`

	// URL is the shareable link.
	URL string `json:"url" yaml:"url"`

	// Lines is the number of formatted source lines.
	Lines int `json:"lines" yaml:"lines"`

	// Skipped is the number of lines left unstyled.
	Skipped int `json:"skipped" yaml:"skipped"`

	// CreatedAt is when the document was published.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
