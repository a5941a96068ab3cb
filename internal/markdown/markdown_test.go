// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "headings",
			input:    "# One\n## Two\n### Three",
			contains: []string{"<h1", ">One</h1>", "<h2", "<h3"},
		},
		{
			name:     "emphasis",
			input:    "**bold** and *italic*",
			contains: []string{"<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:     "blockquote",
			input:    "> quoted",
			contains: []string{"<blockquote>"},
		},
		{
			name:     "literal newline becomes break",
			input:    "first\nsecond",
			contains: []string{"<br"},
		},
		{
			name:     "raw html escaped",
			input:    "<script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output %q missing %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output %q must not contain %q", got, bad)
				}
			}
		})
	}
}

func TestHighlight(t *testing.T) {
	got, err := Highlight(`console.log("<b>")`, "javascript")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(got, "<pre") {
		t.Errorf("expected <pre> wrapper, got %q", got)
	}
	if strings.Contains(got, "<b>") {
		t.Errorf("source must be escaped, got %q", got)
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	got, err := Highlight("x := 1", "no-such-language")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(got, "x := 1") {
		t.Errorf("expected source text in output, got %q", got)
	}
}
