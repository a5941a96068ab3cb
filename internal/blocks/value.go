// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Value is a resolved block. The concrete type is one of Text, Heading,
// Code, Image, List, Callout, Math, Video or Unknown.
type Value interface {
	Kind() Kind
	value()
}

// Text is markdown-subset prose.
type Text struct {
	Type     Kind   `json:"type"`
	Markdown string `json:"markdown"`
}

// Heading is a section title inside a lesson.
type Heading struct {
	Type  Kind   `json:"type"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Code is a source snippet.
type Code struct {
	Type     Kind   `json:"type"`
	Source   string `json:"source"`
	Language string `json:"language"`
}

// Image references a picture by URL.
type Image struct {
	Type    Kind    `json:"type"`
	URL     string  `json:"url"`
	Alt     string  `json:"alt"`
	Caption *string `json:"caption,omitempty"`
}

// ListStyle selects bullets or numbering.
type ListStyle string

const (
	ListUnordered ListStyle = "unordered"
	ListOrdered   ListStyle = "ordered"
)

// InvalidListMarker is reported when a LIST payload is not a JSON array.
const InvalidListMarker = "Invalid list format"

// List is a flat list of items. When the stored payload does not parse,
// Items is empty and Error carries InvalidListMarker.
type List struct {
	Type  Kind      `json:"type"`
	Items []string  `json:"items"`
	Style ListStyle `json:"style"`
	Error string    `json:"error,omitempty"`
}

// CalloutVariant is the tone of a callout.
type CalloutVariant string

const (
	CalloutInfo    CalloutVariant = "info"
	CalloutWarning CalloutVariant = "warning"
	CalloutSuccess CalloutVariant = "success"
	CalloutDanger  CalloutVariant = "danger"
)

// Callout is a highlighted note. NOTE blocks resolve to a Callout with
// Legacy set.
type Callout struct {
	Type    Kind           `json:"type"`
	Text    string         `json:"text"`
	Variant CalloutVariant `json:"variant"`
	Legacy  bool           `json:"legacy,omitempty"`
}

// MathDisplay selects block or inline typesetting.
type MathDisplay string

const (
	MathBlock  MathDisplay = "block"
	MathInline MathDisplay = "inline"
)

// Math is a LaTeX expression without $$ delimiters.
type Math struct {
	Type    Kind        `json:"type"`
	LaTeX   string      `json:"latex"`
	Display MathDisplay `json:"display"`
}

// Video platforms recognised by embed resolution.
const (
	PlatformYouTube = "youtube"
	PlatformVimeo   = "vimeo"
)

// Video is an embeddable video. Platform is empty when the URL is not a
// recognised host, in which case EmbedURL equals URL.
type Video struct {
	Type     Kind   `json:"type"`
	URL      string `json:"url"`
	EmbedURL string `json:"embed_url"`
	Platform string `json:"platform,omitempty"`
}

// Unknown is a stored block whose tag is not a known kind. It keeps the raw
// content so nothing is silently dropped.
type Unknown struct {
	Type    Kind   `json:"type"`
	Content string `json:"content"`
	Marker  string `json:"marker"`
}

func (v Text) Kind() Kind    { return v.Type }
func (v Heading) Kind() Kind { return v.Type }
func (v Code) Kind() Kind    { return v.Type }
func (v Image) Kind() Kind   { return v.Type }
func (v List) Kind() Kind    { return v.Type }
func (v Callout) Kind() Kind { return v.Type }
func (v Math) Kind() Kind    { return v.Type }
func (v Video) Kind() Kind   { return v.Type }
func (v Unknown) Kind() Kind { return v.Type }

func (Text) value()    {}
func (Heading) value() {}
func (Code) value()    {}
func (Image) value()   {}
func (List) value()    {}
func (Callout) value() {}
func (Math) value()    {}
func (Video) value()   {}
func (Unknown) value() {}

// Read-time defaults.
const (
	DefaultHeadingLevel = 2
	DefaultLanguage     = "javascript"
	DefaultAlt          = "Content"
)

// Resolve dispatches on the tag, then interprets metadata for that kind only.
// Metadata that is absent, not a JSON object, or holds fields of the wrong
// type falls back to the kind's defaults; Resolve never fails.
func Resolve(tag, content string, metadata json.RawMessage) Value {
	kind := ParseKind(tag)
	md := parseMeta(metadata)

	switch kind {
	case KindText:
		return Text{Type: kind, Markdown: content}
	case KindHeading:
		return Heading{Type: kind, Text: content, Level: headingLevel(md)}
	case KindCode:
		return Code{Type: kind, Source: content, Language: md.str("language", DefaultLanguage)}
	case KindImage:
		img := Image{Type: kind, URL: content, Alt: md.str("alt", DefaultAlt)}
		if c := md.str("caption", ""); c != "" {
			img.Caption = &c
		}
		return img
	case KindList:
		return resolveList(kind, content, md)
	case KindCallout, KindNote:
		return Callout{
			Type:    kind,
			Text:    content,
			Variant: calloutVariant(md.str("variant", "")),
			Legacy:  kind == KindNote,
		}
	case KindMath:
		display := MathBlock
		if md.str("display", "") == string(MathInline) {
			display = MathInline
		}
		return Math{Type: kind, LaTeX: StripMathDelimiters(content), Display: display}
	case KindVideo:
		embed, platform := EmbedURL(content)
		return Video{Type: kind, URL: content, EmbedURL: embed, Platform: platform}
	}
	return Unknown{Type: kind, Content: content, Marker: "Unknown Block Type: " + string(kind)}
}

type meta map[string]any

func parseMeta(raw json.RawMessage) meta {
	if len(raw) == 0 {
		return meta{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return meta{}
	}
	return m
}

// str returns a non-empty string field, or def.
func (m meta) str(key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

// integer accepts JSON numbers and numeric strings.
func (m meta) integer(key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// headingLevel clamps into [1,6]. Absent, zero or non-numeric means 2.
func headingLevel(m meta) int {
	level, ok := m.integer("level")
	if !ok || level == 0 {
		return DefaultHeadingLevel
	}
	return min(max(level, 1), 6)
}

func calloutVariant(s string) CalloutVariant {
	switch v := CalloutVariant(s); v {
	case CalloutInfo, CalloutWarning, CalloutSuccess, CalloutDanger:
		return v
	}
	return CalloutInfo
}

func resolveList(kind Kind, content string, m meta) List {
	style := ListUnordered
	if m.str("style", "") == string(ListOrdered) {
		style = ListOrdered
	}
	list := List{Type: kind, Items: []string{}, Style: style}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil || raw == nil {
		list.Error = InvalidListMarker
		return list
	}
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			list.Items = append(list.Items, s)
			continue
		}
		list.Items = append(list.Items, string(r))
	}
	return list
}

var (
	mathOpen  = regexp.MustCompile(`^\$\$\s*`)
	mathClose = regexp.MustCompile(`\s*\$\$$`)
)

// StripMathDelimiters removes a leading and trailing $$ pair left over from
// older content.
func StripMathDelimiters(latex string) string {
	latex = mathOpen.ReplaceAllString(latex, "")
	latex = mathClose.ReplaceAllString(latex, "")
	return strings.TrimSpace(latex)
}

var (
	youtubeID = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/watch\?v=|youtube\.com/embed/)([^&?]+)`)
	vimeoID   = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// EmbedURL maps a YouTube or Vimeo link onto its canonical player URL.
// Unrecognised URLs are returned unchanged with an empty platform.
func EmbedURL(url string) (embed, platform string) {
	if url == "" {
		return "", ""
	}
	if m := youtubeID.FindStringSubmatch(url); m != nil {
		return "https://www.youtube.com/embed/" + m[1], PlatformYouTube
	}
	if m := vimeoID.FindStringSubmatch(url); m != nil {
		return "https://player.vimeo.com/video/" + m[1], PlatformVimeo
	}
	return url, ""
}
