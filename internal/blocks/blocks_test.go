// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in    string
		want  Kind
		known bool
	}{
		{"TEXT", KindText, true},
		{"text", KindText, true},
		{"  Heading ", KindHeading, true},
		{"note", KindNote, true},
		{"quiz", Kind("QUIZ"), false},
		{"", Kind(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseKind(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.known, got.Known())
		})
	}
}

func TestResolveHeadingLevel(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
		want     int
	}{
		{"absent", "", 2},
		{"null", "null", 2},
		{"zero", `{"level":0}`, 2},
		{"in range", `{"level":4}`, 4},
		{"too high", `{"level":9}`, 6},
		{"negative", `{"level":-3}`, 1},
		{"numeric string", `{"level":"3"}`, 3},
		{"garbage string", `{"level":"big"}`, 2},
		{"metadata not an object", `[1,2]`, 2},
		{"broken json", `{"level":`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Resolve("HEADING", "Intro", json.RawMessage(tt.metadata))
			h, ok := v.(Heading)
			require.True(t, ok, "got %T", v)
			require.Equal(t, tt.want, h.Level)
			require.Equal(t, "Intro", h.Text)
		})
	}
}

func TestResolveCodeLanguage(t *testing.T) {
	c := Resolve("code", "print(1)", nil).(Code)
	require.Equal(t, DefaultLanguage, c.Language)

	c = Resolve("CODE", "print(1)", json.RawMessage(`{"language":"python"}`)).(Code)
	require.Equal(t, "python", c.Language)

	c = Resolve("CODE", "x", json.RawMessage(`{"language":42}`)).(Code)
	require.Equal(t, DefaultLanguage, c.Language)
}

func TestResolveImage(t *testing.T) {
	img := Resolve("IMAGE", "/a.png", nil).(Image)
	require.Equal(t, "/a.png", img.URL)
	require.Equal(t, DefaultAlt, img.Alt)
	require.Nil(t, img.Caption)

	img = Resolve("IMAGE", "/a.png", json.RawMessage(`{"alt":"A cat","caption":"Figure 1"}`)).(Image)
	require.Equal(t, "A cat", img.Alt)
	require.NotNil(t, img.Caption)
	require.Equal(t, "Figure 1", *img.Caption)
}

func TestResolveList(t *testing.T) {
	l := Resolve("LIST", `["a","b"]`, nil).(List)
	require.Equal(t, ListUnordered, l.Style)
	require.Equal(t, []string{"a", "b"}, l.Items)
	require.Empty(t, l.Error)

	l = Resolve("LIST", `["x"]`, json.RawMessage(`{"style":"ordered"}`)).(List)
	require.Equal(t, ListOrdered, l.Style)

	l = Resolve("LIST", `[1, "two", true]`, nil).(List)
	require.Equal(t, []string{"1", "two", "true"}, l.Items)
}

func TestResolveListInvalidPayload(t *testing.T) {
	for _, content := range []string{"not json", `{"a":1}`, "null", ""} {
		t.Run(content, func(t *testing.T) {
			l := Resolve("LIST", content, nil).(List)
			require.Empty(t, l.Items)
			require.NotNil(t, l.Items)
			require.Equal(t, InvalidListMarker, l.Error)
		})
	}
}

func TestResolveCallout(t *testing.T) {
	tests := []struct {
		tag, metadata string
		want          CalloutVariant
		legacy        bool
	}{
		{"CALLOUT", "", CalloutInfo, false},
		{"CALLOUT", `{"variant":"warning"}`, CalloutWarning, false},
		{"CALLOUT", `{"variant":"danger"}`, CalloutDanger, false},
		{"CALLOUT", `{"variant":"purple"}`, CalloutInfo, false},
		{"NOTE", `{"variant":"success"}`, CalloutSuccess, true},
		{"note", "", CalloutInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.tag+tt.metadata, func(t *testing.T) {
			c := Resolve(tt.tag, "Heads up", json.RawMessage(tt.metadata)).(Callout)
			require.Equal(t, tt.want, c.Variant)
			require.Equal(t, tt.legacy, c.Legacy)
		})
	}
}

func TestResolveMath(t *testing.T) {
	m := Resolve("MATH", "$$ E = mc^2 $$", nil).(Math)
	require.Equal(t, "E = mc^2", m.LaTeX)
	require.Equal(t, MathBlock, m.Display)

	m = Resolve("MATH", `\frac{a}{b}`, json.RawMessage(`{"display":"inline"}`)).(Math)
	require.Equal(t, `\frac{a}{b}`, m.LaTeX)
	require.Equal(t, MathInline, m.Display)
}

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in, want, platform string
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", PlatformYouTube},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10", "https://www.youtube.com/embed/dQw4w9WgXcQ", PlatformYouTube},
		{"https://www.youtube.com/embed/abc123?start=5", "https://www.youtube.com/embed/abc123", PlatformYouTube},
		{"https://vimeo.com/76979871", "https://player.vimeo.com/video/76979871", PlatformVimeo},
		{"https://example.com/talk.mp4", "https://example.com/talk.mp4", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, platform := EmbedURL(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.platform, platform)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	v := Resolve("quiz", "Q1?", nil)
	u, ok := v.(Unknown)
	require.True(t, ok, "got %T", v)
	require.Equal(t, Kind("QUIZ"), u.Kind())
	require.Equal(t, "Q1?", u.Content)
	require.Equal(t, "Unknown Block Type: QUIZ", u.Marker)
}

func TestResolveEveryKnownKind(t *testing.T) {
	for _, k := range Kinds {
		v := Resolve(string(k), "x", nil)
		require.Equal(t, k, v.Kind())
		_, unknown := v.(Unknown)
		require.False(t, unknown, "kind %s resolved to Unknown", k)
	}
}

func TestResolvedValueJSON(t *testing.T) {
	raw, err := json.Marshal(Resolve("VIDEO", "https://vimeo.com/1", nil))
	require.NoError(t, err)
	require.JSONEq(t,
		`{"type":"VIDEO","url":"https://vimeo.com/1","embed_url":"https://player.vimeo.com/video/1","platform":"vimeo"}`,
		string(raw))
}

func TestDefaultContent(t *testing.T) {
	for _, k := range Kinds {
		c, ok := DefaultContent(k)
		if k == KindVideo {
			require.False(t, ok)
			continue
		}
		require.True(t, ok, "kind %s", k)
		require.NotEmpty(t, c.Content)
		if len(c.Metadata) > 0 {
			require.True(t, json.Valid(c.Metadata), "kind %s metadata", k)
		}
	}

	list, _ := DefaultContent(KindList)
	l := Resolve("LIST", list.Content, list.Metadata).(List)
	require.Equal(t, []string{"Item 1", "Item 2"}, l.Items)

	_, ok := DefaultContent(Kind("QUIZ"))
	require.False(t, ok)
}

func TestHTML(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		content  string
		metadata string
		contains []string
		excludes []string
	}{
		{name: "text markdown", tag: "TEXT", content: "**hi**", contains: []string{"<strong>hi</strong>"}},
		{name: "heading clamped", tag: "HEADING", content: "Top", metadata: `{"level":12}`, contains: []string{"<h6>Top</h6>"}},
		{name: "heading escaped", tag: "HEADING", content: "<b>x</b>", contains: []string{"&lt;b&gt;"}, excludes: []string{"<b>"}},
		{name: "code", tag: "CODE", content: "let a = 1", metadata: `{"language":"javascript"}`, contains: []string{`data-language="javascript"`, "<pre"}},
		{name: "image", tag: "IMAGE", content: "/cat.png", metadata: `{"caption":"Cat"}`, contains: []string{`src="/cat.png"`, `alt="Content"`, "<figcaption>Cat</figcaption>"}},
		{name: "ordered list", tag: "LIST", content: `["a","b"]`, metadata: `{"style":"ordered"}`, contains: []string{"<ol>", "<li>a</li>", "<li>b</li>"}},
		{name: "invalid list", tag: "LIST", content: "nope", contains: []string{"<ul>", InvalidListMarker}},
		{name: "callout", tag: "CALLOUT", content: "Careful", metadata: `{"variant":"warning"}`, contains: []string{`data-variant="warning"`, "Careful"}},
		{name: "math", tag: "MATH", content: "$$x^2$$", contains: []string{`data-display="block"`, "x^2"}, excludes: []string{"$$"}},
		{name: "video", tag: "VIDEO", content: "https://youtu.be/abc", contains: []string{`src="https://www.youtube.com/embed/abc"`}},
		{name: "unknown", tag: "poll", content: "?", contains: []string{"Unknown Block Type: POLL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := HTML(Resolve(tt.tag, tt.content, json.RawMessage(tt.metadata)))
			require.NoError(t, err)
			for _, want := range tt.contains {
				require.True(t, strings.Contains(out, want), "output %q missing %q", out, want)
			}
			for _, bad := range tt.excludes {
				require.False(t, strings.Contains(out, bad), "output %q must not contain %q", out, bad)
			}
		})
	}
}
