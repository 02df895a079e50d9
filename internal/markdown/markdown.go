// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown converts Markdown source into sanitized HTML for the
// public site. Every rendered fragment passes through the sanitizer; raw
// author HTML never reaches a response unfiltered.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
	"unicode"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// ExcerptMaxRunes bounds the auto-generated excerpt length.
const ExcerptMaxRunes = 200

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	),
)

// sanitizer allows the usual user-generated-content tags plus the class
// attributes chroma emits on pre/code/span for syntax highlighting.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)).OnElements("pre", "code", "span", "div")
	return p
}()

// Render converts Markdown source to sanitized HTML. Highlighting failures
// inside goldmark degrade to plain code blocks; a converter error degrades
// to escaped plaintext so a bad document can never take the page down.
func Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(source) + "</pre>") //nolint:gosec // escaped above
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized above
}

var (
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markupRe     = regexp.MustCompile(`[#>*_~\-]+`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Summarize reduces Markdown to a short plain-text excerpt: formatting
// stripped, whitespace collapsed, truncated on a word boundary. Returns
// nil when the source reduces to nothing.
func Summarize(source string) *string {
	text := codeFenceRe.ReplaceAllString(source, " ")
	text = imageRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = markupRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) > ExcerptMaxRunes {
		cut := ExcerptMaxRunes
		for cut > 0 && !unicode.IsSpace(runes[cut-1]) {
			cut--
		}
		if cut == 0 {
			cut = ExcerptMaxRunes
		}
		text = strings.TrimSpace(string(runes[:cut]))
	}
	return &text
}
