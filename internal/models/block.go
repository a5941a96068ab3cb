// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"learnpress/internal/blocks"
	"learnpress/internal/ordering"
)

// ContentBlock is one typed piece of a lesson. Type is the block kind tag,
// Content is interpreted per kind and Metadata is optional schemaless JSON.
// Use Resolve to get the typed view with defaults applied.
type ContentBlock struct {
	ID        uuid.UUID       `json:"id"`
	LessonID  uuid.UUID       `json:"lesson_id"`
	Type      string          `json:"type"`
	Content   string          `json:"content"`
	Metadata  json.RawMessage `json:"metadata"`
	Order     int             `json:"order"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SortKey implements ordering.Ordered.
func (b ContentBlock) SortKey() ordering.Key {
	return ordering.Key{Order: b.Order, CreatedAt: b.CreatedAt, ID: b.ID}
}

// Resolve returns the typed block value.
func (b ContentBlock) Resolve() blocks.Value {
	return blocks.Resolve(b.Type, b.Content, b.Metadata)
}

// BlockPatch is a partial update of a block: only the non-nil fields are
// merged.
type BlockPatch struct {
	Type     *string
	Content  *string
	Metadata *json.RawMessage
	Order    *int
}

// Apply copies the supplied fields onto b. Type is normalised the same way
// as on create.
func (p BlockPatch) Apply(b *ContentBlock) {
	if p.Type != nil {
		b.Type = blocks.ParseKind(*p.Type).String()
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.Metadata != nil {
		b.Metadata = NormalizeMetadata(*p.Metadata)
	}
	if p.Order != nil {
		b.Order = *p.Order
	}
}

// NormalizeMetadata maps an empty or JSON null payload to nil so it is
// stored as SQL NULL.
func NormalizeMetadata(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	return raw
}
