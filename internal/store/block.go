// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"learnpress/internal/models"
)

const blockColumns = `id, lesson_id, type, content, metadata, "order", created_at, updated_at`

// blockRow mirrors content_blocks. metadata is scanned as bytes so SQL NULL
// maps to nil.
type blockRow struct {
	ID        uuid.UUID `db:"id"`
	LessonID  uuid.UUID `db:"lesson_id"`
	Type      string    `db:"type"`
	Content   string    `db:"content"`
	Metadata  []byte    `db:"metadata"`
	Order     int       `db:"order"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r blockRow) model() models.ContentBlock {
	return models.ContentBlock{
		ID:        r.ID,
		LessonID:  r.LessonID,
		Type:      r.Type,
		Content:   r.Content,
		Metadata:  models.NormalizeMetadata(json.RawMessage(r.Metadata)),
		Order:     r.Order,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// metadataArg turns a metadata payload into a query argument, NULL when
// absent.
func metadataArg(raw json.RawMessage) any {
	if raw == nil {
		return nil
	}
	return string(raw)
}

// BlockStore handles content block persistence and block order within a
// lesson.
type BlockStore struct {
	siblingTable
	db *sqlx.DB
}

// NewBlockStore creates a new BlockStore with the given database connection.
func NewBlockStore(db *sqlx.DB) *BlockStore {
	return &BlockStore{
		siblingTable: siblingTable{db: db, parent: "lessons", child: "content_blocks", parentKey: "lesson_id", seq: "block_seq"},
		db:           db,
	}
}

// FindByID retrieves a block by its UUID. Returns nil if not found.
func (s *BlockStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ContentBlock, error) {
	var row blockRow
	err := s.db.GetContext(ctx, &row, `SELECT `+blockColumns+` FROM content_blocks WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content block by id: %w", err)
	}
	b := row.model()
	return &b, nil
}

// ListByLesson returns the lesson's blocks in read order.
func (s *BlockStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.ContentBlock, error) {
	var rows []blockRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+blockColumns+`
		FROM content_blocks
		WHERE lesson_id = $1
		ORDER BY "order", created_at, id
	`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("list content blocks: %w", err)
	}
	out := make([]models.ContentBlock, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

// Create inserts b and fills in its generated ID and timestamps.
func (s *BlockStore) Create(ctx context.Context, b *models.ContentBlock) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO content_blocks (lesson_id, type, content, metadata, "order")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, b.LessonID, b.Type, b.Content, metadataArg(b.Metadata), b.Order,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create content block: %w", err)
	}
	return nil
}

// Update writes the mutable columns of b.
func (s *BlockStore) Update(ctx context.Context, b *models.ContentBlock) error {
	err := s.db.QueryRowxContext(ctx, `
		UPDATE content_blocks SET
			type = $2, content = $3, metadata = $4, "order" = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, b.ID, b.Type, b.Content, metadataArg(b.Metadata), b.Order,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update content block: %w", err)
	}
	return nil
}

// Delete removes one block.
func (s *BlockStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := deleteByID(ctx, s.db, "content_blocks", id)
	if err != nil {
		return false, fmt.Errorf("delete content block: %w", err)
	}
	return ok, nil
}
