// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"html"
	"strings"

	"learnpress/internal/markdown"
)

// HTML renders a resolved block as a bare HTML fragment. Styling is left to
// the consumer; fragments only carry semantic elements and data attributes.
func HTML(v Value) (string, error) {
	switch b := v.(type) {
	case Text:
		out, err := markdown.ToHTML(b.Markdown)
		if err != nil {
			return "", fmt.Errorf("render text block: %w", err)
		}
		return `<div class="block-text">` + out + `</div>`, nil

	case Heading:
		return fmt.Sprintf("<h%d>%s</h%d>", b.Level, html.EscapeString(b.Text), b.Level), nil

	case Code:
		out, err := markdown.Highlight(b.Source, b.Language)
		if err != nil {
			out = "<pre><code>" + html.EscapeString(b.Source) + "</code></pre>"
		}
		return fmt.Sprintf(`<figure class="block-code" data-language="%s">%s</figure>`,
			html.EscapeString(b.Language), out), nil

	case Image:
		var sb strings.Builder
		fmt.Fprintf(&sb, `<figure class="block-image"><img src="%s" alt="%s" loading="lazy">`,
			html.EscapeString(b.URL), html.EscapeString(b.Alt))
		if b.Caption != nil {
			fmt.Fprintf(&sb, "<figcaption>%s</figcaption>", html.EscapeString(*b.Caption))
		}
		sb.WriteString("</figure>")
		return sb.String(), nil

	case List:
		tag := "ul"
		if b.Style == ListOrdered {
			tag = "ol"
		}
		var sb strings.Builder
		sb.WriteString("<" + tag + ">")
		if b.Error != "" {
			fmt.Fprintf(&sb, `<li class="block-error">%s</li>`, html.EscapeString(b.Error))
		}
		for _, item := range b.Items {
			fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(item))
		}
		sb.WriteString("</" + tag + ">")
		return sb.String(), nil

	case Callout:
		return fmt.Sprintf(`<aside class="block-callout" data-variant="%s"><p>%s</p></aside>`,
			b.Variant, html.EscapeString(b.Text)), nil

	case Math:
		return fmt.Sprintf(`<div class="block-math" data-display="%s">%s</div>`,
			b.Display, html.EscapeString(b.LaTeX)), nil

	case Video:
		return fmt.Sprintf(`<div class="block-video"><iframe src="%s" allowfullscreen `+
			`allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" `+
			`frameborder="0"></iframe></div>`, html.EscapeString(b.EmbedURL)), nil

	case Unknown:
		return fmt.Sprintf(`<div class="block-unknown">%s</div>`, html.EscapeString(b.Marker)), nil
	}
	return "", fmt.Errorf("render block: unsupported value %T", v)
}
