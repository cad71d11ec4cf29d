// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// stripMarkup removes HTML tags the model sometimes emits inline
// (<b>, <br>, <p>) and decodes entities, leaving plain text for the
// formatter. Text without a '<' is returned unchanged.
func stripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	return html.UnescapeString(stripPolicy.Sanitize(s))
}
