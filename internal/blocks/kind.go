// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks defines the closed set of lesson content block kinds and
// resolves a stored block (type tag, content string, schemaless metadata) into
// a typed Value with every per-kind default applied.
//
// Records are stored sparse. Defaults are applied on read, in Resolve, so
// changing a default never requires rewriting rows.
package blocks

import (
	"encoding/json"
	"strings"
)

// Kind is a content block type tag.
type Kind string

const (
	KindText    Kind = "TEXT"
	KindHeading Kind = "HEADING"
	KindCode    Kind = "CODE"
	KindImage   Kind = "IMAGE"
	KindList    Kind = "LIST"
	KindCallout Kind = "CALLOUT"
	KindNote    Kind = "NOTE" // legacy alias of CALLOUT
	KindMath    Kind = "MATH"
	KindVideo   Kind = "VIDEO"
)

// MaxKindLen is the longest tag, in characters, a block can be stored with.
const MaxKindLen = 40

// Kinds lists every known kind in editor order.
var Kinds = []Kind{
	KindText, KindHeading, KindCode, KindImage, KindList,
	KindCallout, KindNote, KindMath, KindVideo,
}

// ParseKind normalises a tag from input. Tags are case-insensitive; the
// result is the trimmed upper-case form, known or not.
func ParseKind(s string) Kind {
	return Kind(strings.ToUpper(strings.TrimSpace(s)))
}

// Known reports whether k is one of the supported kinds.
func (k Kind) Known() bool {
	switch k {
	case KindText, KindHeading, KindCode, KindImage, KindList,
		KindCallout, KindNote, KindMath, KindVideo:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Creation holds the content and metadata a new block gets when the author
// supplies none.
type Creation struct {
	Content  string
	Metadata json.RawMessage
}

// DefaultContent returns the editor placeholder for a new block of kind k.
// ok is false for kinds that have no placeholder (VIDEO and unknown tags),
// in which case content must be supplied.
func DefaultContent(k Kind) (Creation, bool) {
	switch k {
	case KindText:
		return Creation{Content: "New text content"}, true
	case KindHeading:
		return Creation{Content: "New Heading", Metadata: json.RawMessage(`{"level":2}`)}, true
	case KindCode:
		return Creation{Content: `// console.log("Hello")`, Metadata: json.RawMessage(`{"language":"javascript"}`)}, true
	case KindImage:
		return Creation{Content: "https://placehold.co/600x400", Metadata: json.RawMessage(`{"caption":"Image caption","alt":"Image description"}`)}, true
	case KindList:
		return Creation{Content: `["Item 1", "Item 2"]`, Metadata: json.RawMessage(`{"style":"unordered"}`)}, true
	case KindCallout:
		return Creation{Content: "Info message", Metadata: json.RawMessage(`{"variant":"info"}`)}, true
	case KindNote:
		return Creation{Content: "Note text"}, true
	case KindMath:
		return Creation{Content: "E = mc^2", Metadata: json.RawMessage(`{"display":"block"}`)}, true
	}
	return Creation{}, false
}
