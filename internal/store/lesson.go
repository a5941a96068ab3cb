// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"learnpress/internal/models"
)

const lessonColumns = `l.id, l.section_id, l.title, l.slug, l.type, l.content, l.video_url,
	l.duration, l."order", l.is_free, l.created_at, l.updated_at`

// LessonStore handles lesson persistence and lesson order within a section.
type LessonStore struct {
	siblingTable
	db *sqlx.DB
}

// NewLessonStore creates a new LessonStore with the given database connection.
func NewLessonStore(db *sqlx.DB) *LessonStore {
	return &LessonStore{
		siblingTable: siblingTable{db: db, parent: "sections", child: "lessons", parentKey: "section_id", seq: "lesson_seq"},
		db:           db,
	}
}

// FindByID retrieves a lesson by its UUID. Returns nil if not found.
func (s *LessonStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	l := &models.Lesson{}
	err := s.db.GetContext(ctx, l, `SELECT `+lessonColumns+` FROM lessons l WHERE l.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find lesson by id: %w", err)
	}
	return l, nil
}

// ListBySection returns the section's lessons in read order.
func (s *LessonStore) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	err := s.db.SelectContext(ctx, &lessons, `
		SELECT `+lessonColumns+`
		FROM lessons l
		WHERE l.section_id = $1
		ORDER BY l."order", l.created_at, l.id
	`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list lessons by section: %w", err)
	}
	return lessons, nil
}

// ListByCourse returns every lesson of the course, sections first in their
// read order, then lessons in theirs.
func (s *LessonStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	err := s.db.SelectContext(ctx, &lessons, `
		SELECT `+lessonColumns+`
		FROM lessons l
		JOIN sections s ON s.id = l.section_id
		WHERE s.course_id = $1
		ORDER BY s."order", s.created_at, s.id, l."order", l.created_at, l.id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons by course: %w", err)
	}
	return lessons, nil
}

// Create inserts l and fills in its generated ID and timestamps. A duplicate
// slug fails with the driver's unique violation.
func (s *LessonStore) Create(ctx context.Context, l *models.Lesson) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO lessons (section_id, title, slug, type, content, video_url, duration, "order", is_free)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, l.SectionID, l.Title, l.Slug, l.Type, l.Content, l.VideoURL, l.Duration, l.Order, l.IsFree,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

// Update writes the mutable columns of l.
func (s *LessonStore) Update(ctx context.Context, l *models.Lesson) error {
	err := s.db.QueryRowxContext(ctx, `
		UPDATE lessons SET
			title = $2, slug = $3, type = $4, content = $5, video_url = $6,
			duration = $7, "order" = $8, is_free = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, l.ID, l.Title, l.Slug, l.Type, l.Content, l.VideoURL, l.Duration, l.Order, l.IsFree,
	).Scan(&l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	return nil
}

// Delete removes the lesson and its blocks.
func (s *LessonStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := deleteByID(ctx, s.db, "lessons", id)
	if err != nil {
		return false, fmt.Errorf("delete lesson: %w", err)
	}
	return ok, nil
}
