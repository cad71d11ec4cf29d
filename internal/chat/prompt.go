// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chat

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/promptdoc/pkg/types"
)

// agreementPromptTmpl asks for a one-page agreement whose lines the
// formatter recognises: a title line, "Clause N" lines and signature lines.
var agreementPromptTmpl = template.Must(template.New("agreement").Parse(`Create a one-page settlement agreement for {{.Topic}}. Use a professional yet conversational tone, polished but approachable with a dash of wit and clarity. Include a centered title, introductory paragraph, numbered clauses (e.g., Clause 1, Clause 2), and signature lines for both parties. Ensure the agreement is concise, fits on one page, and includes all necessary legal details while maintaining readability.`))

// essayPromptTmpl asks for an essay using the markup the formatter styles:
// headings, a quote and a two-column table.
var essayPromptTmpl = template.Must(template.New("essay").Parse(`Write a 600-word essay on {{.Topic}}. Use a professional yet conversational tone, polished but approachable with a dash of wit and clarity. Include # for a title, ## for subheadings, *text* for bold, > for a quote, and a table | Benefit | Impact | for 3 benefits. Ensure the table has a header row followed by exactly 3 rows of benefits.`))

var promptTemplates = map[types.DocumentKind]*template.Template{
	types.KindAgreement: agreementPromptTmpl,
	types.KindEssay:     essayPromptTmpl,
}

// RenderPrompt executes the prompt template for kind with topic.
func RenderPrompt(kind types.DocumentKind, topic string) (string, error) {
	tmpl, ok := promptTemplates[kind]
	if !ok {
		return "", fmt.Errorf("no prompt for document kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Topic string }{Topic: topic}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DefaultTitle derives a document title from the topic when the user gave
// none.
func DefaultTitle(kind types.DocumentKind, topic string) string {
	topic = strings.TrimSpace(topic)
	switch kind {
	case types.KindEssay:
		return capitalize(topic) + " Essay"
	default:
		first := topic
		if fields := strings.Fields(topic); len(fields) > 0 {
			first = fields[0]
		}
		return "Settlement Agreement: " + first
	}
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
