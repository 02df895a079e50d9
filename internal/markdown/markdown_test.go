// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderBasic(t *testing.T) {
	html := string(Render("# Title\n\nSome **bold** text."))

	if !strings.Contains(html, "<h1") {
		t.Errorf("expected h1 in output, got %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected strong tag, got %q", html)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	cases := []string{
		"hello <script>alert('xss')</script> world",
		"[click](javascript:alert(1))",
		`<img src="x" onerror="alert(1)">`,
	}
	for _, src := range cases {
		html := string(Render(src))
		if strings.Contains(html, "script") && strings.Contains(html, "alert") {
			t.Errorf("script survived sanitization: %q -> %q", src, html)
		}
		if strings.Contains(html, "onerror") || strings.Contains(html, "javascript:") {
			t.Errorf("dangerous attribute survived: %q -> %q", src, html)
		}
	}
}

func TestRenderHighlightsCode(t *testing.T) {
	src := "```go\nfunc main() {}\n```"
	html := string(Render(src))

	if !strings.Contains(html, "<pre") || !strings.Contains(html, "<code") {
		t.Fatalf("expected pre/code block, got %q", html)
	}
	// chroma emits span elements with classes when highlighting succeeds
	if !strings.Contains(html, "<span") {
		t.Errorf("expected highlighted spans, got %q", html)
	}
}

func TestRenderUnknownLanguage(t *testing.T) {
	src := "```nosuchlang\nplain text here\n```"
	html := string(Render(src))

	if !strings.Contains(html, "plain text here") {
		t.Errorf("code content lost for unknown language: %q", html)
	}
}

func TestSummarize(t *testing.T) {
	t.Run("strips formatting", func(t *testing.T) {
		got := Summarize("# Heading\n\nSome **bold** and [a link](https://example.com).")
		if got == nil {
			t.Fatal("Summarize returned nil")
		}
		for _, forbidden := range []string{"#", "**", "](", "https://example.com"} {
			if strings.Contains(*got, forbidden) {
				t.Errorf("excerpt contains %q: %q", forbidden, *got)
			}
		}
		if !strings.Contains(*got, "Heading") || !strings.Contains(*got, "a link") {
			t.Errorf("excerpt lost text: %q", *got)
		}
	})

	t.Run("drops code fences", func(t *testing.T) {
		got := Summarize("Intro.\n\n```go\nfunc secret() {}\n```\n\nOutro.")
		if got == nil {
			t.Fatal("Summarize returned nil")
		}
		if strings.Contains(*got, "secret") {
			t.Errorf("code fence content in excerpt: %q", *got)
		}
	})

	t.Run("truncates on word boundary", func(t *testing.T) {
		long := strings.Repeat("lorem ipsum dolor ", 50)
		got := Summarize(long)
		if got == nil {
			t.Fatal("Summarize returned nil")
		}
		if n := utf8.RuneCountInString(*got); n > ExcerptMaxRunes {
			t.Errorf("excerpt length = %d runes, want <= %d", n, ExcerptMaxRunes)
		}
		if strings.HasSuffix(*got, " ") {
			t.Errorf("excerpt has trailing space: %q", *got)
		}
		// No mid-word cut
		words := strings.Fields(*got)
		last := words[len(words)-1]
		if last != "lorem" && last != "ipsum" && last != "dolor" {
			t.Errorf("excerpt cut mid-word: %q", last)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		for _, src := range []string{"", "   \n\t", "```\ncode only\n```"} {
			if got := Summarize(src); got != nil {
				t.Errorf("Summarize(%q) = %q, want nil", src, *got)
			}
		}
	})
}
