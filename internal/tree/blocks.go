// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"learnpress/internal/apperr"
	"learnpress/internal/blocks"
	"learnpress/internal/models"
	"learnpress/internal/ordering"
)

// CreateBlock adds a content block to the lesson. The tag is stored
// upper-cased; unknown tags are accepted. When Content is omitted the kind's
// editor placeholder is used, together with its placeholder metadata if
// Metadata is omitted too. Kinds without a placeholder require Content.
func (s *Service) CreateBlock(ctx context.Context, lessonID uuid.UUID, in models.BlockPatch) (*models.ContentBlock, error) {
	if blank(in.Type) {
		return nil, apperr.Validation("block", "type is required")
	}
	kind := blocks.ParseKind(*in.Type)
	if err := checkKindLen(kind); err != nil {
		return nil, err
	}
	if !kind.Known() {
		s.log.Warn("storing block with unknown type", "lesson_id", lessonID, "type", kind)
	}

	b := &models.ContentBlock{LessonID: lessonID, Type: kind.String()}
	switch {
	case in.Content != nil:
		b.Content = *in.Content
		if in.Metadata != nil {
			b.Metadata = models.NormalizeMetadata(*in.Metadata)
		}
	default:
		def, ok := blocks.DefaultContent(kind)
		if !ok {
			return nil, apperr.Validation("block", "content is required")
		}
		b.Content = def.Content
		b.Metadata = def.Metadata
		if in.Metadata != nil {
			b.Metadata = models.NormalizeMetadata(*in.Metadata)
		}
	}
	if err := validateMetadata(b.Metadata); err != nil {
		return nil, err
	}

	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	if lesson == nil {
		return nil, apperr.NotFound(EntityLesson)
	}

	pos, err := s.blockOrder.Place(ctx, lessonID, in.Order)
	if err != nil {
		return nil, err
	}
	b.Order = pos
	if err := s.blocks.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create content block: %w", err)
	}
	return b, nil
}

// UpdateBlock merges patch into the block.
func (s *Service) UpdateBlock(ctx context.Context, id uuid.UUID, patch models.BlockPatch) (*models.ContentBlock, error) {
	if patch.Type != nil {
		if blank(patch.Type) {
			return nil, apperr.Validation("block", "type must not be empty")
		}
		if err := checkKindLen(blocks.ParseKind(*patch.Type)); err != nil {
			return nil, err
		}
	}
	if patch.Metadata != nil {
		if err := validateMetadata(models.NormalizeMetadata(*patch.Metadata)); err != nil {
			return nil, err
		}
	}
	if patch.Order != nil {
		if err := ordering.CheckOrder(EntityBlock, *patch.Order); err != nil {
			return nil, err
		}
	}
	b, err := s.blocks.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find content block: %w", err)
	}
	if b == nil {
		return nil, apperr.NotFound(EntityBlock)
	}
	patch.Apply(b)
	if err := s.blocks.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update content block: %w", err)
	}
	if patch.Order != nil {
		if err := s.blockOrder.Observe(ctx, b.LessonID, b.Order); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// DeleteBlock removes a single block.
func (s *Service) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	ok, err := s.blocks.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete content block: %w", err)
	}
	if !ok {
		return apperr.NotFound(EntityBlock)
	}
	return nil
}

// ReorderBlocks applies the items one by one. See ordering.Set.Reorder.
func (s *Service) ReorderBlocks(ctx context.Context, items []ordering.Item) error {
	return s.blockOrder.Reorder(ctx, items)
}

func checkKindLen(k blocks.Kind) error {
	if utf8.RuneCountInString(k.String()) > blocks.MaxKindLen {
		return apperr.Validation("block", fmt.Sprintf("type must be at most %d characters", blocks.MaxKindLen))
	}
	return nil
}

// validateMetadata only checks that the payload is well-formed JSON so the
// store can hold it. Its shape is interpreted per kind on read.
func validateMetadata(raw json.RawMessage) error {
	if raw != nil && !json.Valid(raw) {
		return apperr.Validation("block", "metadata must be valid JSON")
	}
	return nil
}
