// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tree

import (
	"context"

	"github.com/google/uuid"

	"learnpress/internal/models"
	"learnpress/internal/ordering"
)

// The repositories below are implemented by internal/store for Postgres and
// for memory. Lookups return (nil, nil) when the row does not exist. Delete
// reports whether a row was removed, and cascades to every descendant.
// List methods return rows in read order: order, created_at, id ascending.

// CourseRepository persists courses.
type CourseRepository interface {
	List(ctx context.Context, q models.CourseQuery) ([]models.Course, int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	FindBySlug(ctx context.Context, slug string) (*models.Course, error)
	Create(ctx context.Context, c *models.Course) error
	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// SectionRepository persists sections and their order within a course.
type SectionRepository interface {
	ordering.Store
	FindByID(ctx context.Context, id uuid.UUID) (*models.Section, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error)
	Create(ctx context.Context, s *models.Section) error
	Update(ctx context.Context, s *models.Section) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// LessonRepository persists lessons and their order within a section.
type LessonRepository interface {
	ordering.Store
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	ListBySection(ctx context.Context, sectionID uuid.UUID) ([]models.Lesson, error)
	// ListByCourse returns every lesson of the course grouped by section in
	// section read order, each group in lesson read order.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
	Create(ctx context.Context, l *models.Lesson) error
	Update(ctx context.Context, l *models.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BlockRepository persists content blocks and their order within a lesson.
type BlockRepository interface {
	ordering.Store
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContentBlock, error)
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.ContentBlock, error)
	Create(ctx context.Context, b *models.ContentBlock) error
	Update(ctx context.Context, b *models.ContentBlock) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Repositories bundles the four levels for NewService.
type Repositories struct {
	Courses  CourseRepository
	Sections SectionRepository
	Lessons  LessonRepository
	Blocks   BlockRepository
}
