// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"learnpress/internal/models"
)

const courseColumns = `id, title, slug, description, price, is_published,
	author_name, author_avatar, rating, rating_count, level, created_at, updated_at`

// CourseStore handles course persistence.
type CourseStore struct {
	db *sqlx.DB
}

// NewCourseStore creates a new CourseStore with the given database connection.
func NewCourseStore(db *sqlx.DB) *CourseStore {
	return &CourseStore{db: db}
}

// List returns one page of courses, newest first, and the total number of
// courses matching the filter.
func (s *CourseStore) List(ctx context.Context, q models.CourseQuery) ([]models.Course, int, error) {
	var (
		where []string
		args  []any
	)
	switch q.Published {
	case models.PublishedAll:
	case models.PublishedDrafts:
		where = append(where, "is_published = FALSE")
	default:
		where = append(where, "is_published = TRUE")
	}
	if q.Q != "" {
		args = append(args, "%"+escapeLike(q.Q)+"%")
		where = append(where, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM courses `+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	args = append(args, q.Limit, q.Offset())
	query := fmt.Sprintf(`SELECT %s FROM courses %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		courseColumns, clause, len(args)-1, len(args))

	courses := []models.Course{}
	if err := s.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	return courses, total, nil
}

// FindByID retrieves a course by its UUID. Returns nil if not found.
func (s *CourseStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.findOne(ctx, "id", id)
}

// FindBySlug retrieves a course by slug regardless of publication. Returns
// nil if not found.
func (s *CourseStore) FindBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return s.findOne(ctx, "slug", slug)
}

func (s *CourseStore) findOne(ctx context.Context, column string, value any) (*models.Course, error) {
	c := &models.Course{}
	err := s.db.GetContext(ctx, c, `SELECT `+courseColumns+` FROM courses WHERE `+column+` = $1`, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find course by %s: %w", column, err)
	}
	return c, nil
}

// Create inserts c and fills in its generated ID and timestamps.
func (s *CourseStore) Create(ctx context.Context, c *models.Course) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO courses (title, slug, description, price, is_published,
		                     author_name, author_avatar, rating, rating_count, level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, c.Title, c.Slug, c.Description, c.Price, c.IsPublished,
		c.AuthorName, c.AuthorAvatar, c.Rating, c.RatingCount, c.Level,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update writes every column of c and refreshes UpdatedAt.
func (s *CourseStore) Update(ctx context.Context, c *models.Course) error {
	err := s.db.QueryRowxContext(ctx, `
		UPDATE courses SET
			title = $2, slug = $3, description = $4, price = $5, is_published = $6,
			author_name = $7, author_avatar = $8, rating = $9, rating_count = $10,
			level = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, c.ID, c.Title, c.Slug, c.Description, c.Price, c.IsPublished,
		c.AuthorName, c.AuthorAvatar, c.Rating, c.RatingCount, c.Level,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes the course; sections, lessons and blocks go with it
// through the foreign key cascade.
func (s *CourseStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := deleteByID(ctx, s.db, "courses", id)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	return ok, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
