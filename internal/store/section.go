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

const sectionColumns = `id, course_id, title, "order", created_at, updated_at`

// SectionStore handles section persistence and section order within a
// course.
type SectionStore struct {
	siblingTable
	db *sqlx.DB
}

// NewSectionStore creates a new SectionStore with the given database connection.
func NewSectionStore(db *sqlx.DB) *SectionStore {
	return &SectionStore{
		siblingTable: siblingTable{db: db, parent: "courses", child: "sections", parentKey: "course_id", seq: "section_seq"},
		db:           db,
	}
}

// FindByID retrieves a section by its UUID. Returns nil if not found.
func (s *SectionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	sec := &models.Section{}
	err := s.db.GetContext(ctx, sec, `SELECT `+sectionColumns+` FROM sections WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find section by id: %w", err)
	}
	return sec, nil
}

// ListByCourse returns the course's sections in read order.
func (s *SectionStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	sections := []models.Section{}
	err := s.db.SelectContext(ctx, &sections, `
		SELECT `+sectionColumns+`
		FROM sections
		WHERE course_id = $1
		ORDER BY "order", created_at, id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// Create inserts sec and fills in its generated ID and timestamps.
func (s *SectionStore) Create(ctx context.Context, sec *models.Section) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO sections (course_id, title, "order")
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, sec.CourseID, sec.Title, sec.Order).Scan(&sec.ID, &sec.CreatedAt, &sec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}

// Update writes the mutable columns of sec.
func (s *SectionStore) Update(ctx context.Context, sec *models.Section) error {
	err := s.db.QueryRowxContext(ctx, `
		UPDATE sections SET title = $2, "order" = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, sec.ID, sec.Title, sec.Order).Scan(&sec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return nil
}

// Delete removes the section together with its lessons and their blocks.
func (s *SectionStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := deleteByID(ctx, s.db, "sections", id)
	if err != nil {
		return false, fmt.Errorf("delete section: %w", err)
	}
	return ok, nil
}
