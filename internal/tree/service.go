// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tree implements the course content tree:
// Course -> Section -> Lesson -> ContentBlock.
//
// The Service enforces that parents exist before children are created,
// assigns sibling order through internal/ordering, and relies on the
// repositories to cascade deletes. Slug uniqueness is left to the store; a
// duplicate surfaces as a plain write error.
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"learnpress/internal/apperr"
	"learnpress/internal/logger"
	"learnpress/internal/models"
	"learnpress/internal/ordering"
)

// Entity names used in NotFound errors.
const (
	EntityCourse  = "Course"
	EntitySection = "Section"
	EntityLesson  = "Lesson"
	EntityBlock   = "Content block"
)

// Service exposes every content tree operation.
type Service struct {
	courses  CourseRepository
	sections SectionRepository
	lessons  LessonRepository
	blocks   BlockRepository

	sectionOrder *ordering.Set
	lessonOrder  *ordering.Set
	blockOrder   *ordering.Set

	log *logger.Logger
}

// NewService wires the repositories into a Service.
func NewService(repos Repositories, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With("component", "tree")
	return &Service{
		courses:      repos.Courses,
		sections:     repos.Sections,
		lessons:      repos.Lessons,
		blocks:       repos.Blocks,
		sectionOrder: ordering.New(repos.Sections, EntityCourse, EntitySection, log),
		lessonOrder:  ordering.New(repos.Lessons, EntitySection, EntityLesson, log),
		blockOrder:   ordering.New(repos.Blocks, EntityLesson, EntityBlock, log),
		log:          log,
	}
}

// --- Courses ---

// ListCourses returns one page of courses, newest first.
func (s *Service) ListCourses(ctx context.Context, q models.CourseQuery) (*models.CoursePage, error) {
	q = q.Normalize()
	courses, total, err := s.courses.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return models.NewCoursePage(courses, q, total), nil
}

// CreateCourse creates a course. Title and Slug are required; every other
// field falls back to its column default.
func (s *Service) CreateCourse(ctx context.Context, in models.CoursePatch) (*models.Course, error) {
	if blank(in.Title) {
		return nil, apperr.Validation("course", "title is required")
	}
	if blank(in.Slug) {
		return nil, apperr.Validation("course", "slug is required")
	}
	if err := validateCoursePatch(in); err != nil {
		return nil, err
	}

	c := models.NewCourse(*in.Title, *in.Slug)
	in.Apply(c)
	if err := s.courses.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.log.Info("course created", "id", c.ID, "slug", c.Slug)
	return c, nil
}

// UpdateCourse merges patch into the course.
func (s *Service) UpdateCourse(ctx context.Context, id uuid.UUID, patch models.CoursePatch) (*models.Course, error) {
	if err := validateCoursePatch(patch); err != nil {
		return nil, err
	}
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFound(EntityCourse)
	}
	patch.Apply(c)
	if err := s.courses.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return c, nil
}

// DeleteCourse removes the course with all its sections, lessons and blocks.
func (s *Service) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	ok, err := s.courses.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if !ok {
		return apperr.NotFound(EntityCourse)
	}
	s.log.Info("course deleted", "id", id)
	return nil
}

func validateCoursePatch(p models.CoursePatch) error {
	switch {
	case p.Title != nil && blank(p.Title):
		return apperr.Validation("course", "title must not be empty")
	case p.Slug != nil && blank(p.Slug):
		return apperr.Validation("course", "slug must not be empty")
	case p.Price != nil && *p.Price < 0:
		return apperr.Validation("course", "price must not be negative")
	case p.Level != nil && !p.Level.Valid():
		return apperr.Validation("course", "level must be one of Beginner, Intermediate, Advanced")
	}
	return nil
}

// --- Sections ---

// CreateSection appends a section to the course, or places it at order when
// one is given.
func (s *Service) CreateSection(ctx context.Context, courseID uuid.UUID, title string, order *int) (*models.Section, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("section", "title is required")
	}
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, apperr.NotFound(EntityCourse)
	}

	pos, err := s.sectionOrder.Place(ctx, courseID, order)
	if err != nil {
		return nil, err
	}
	sec := &models.Section{CourseID: courseID, Title: title, Order: pos}
	if err := s.sections.Create(ctx, sec); err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return sec, nil
}

// UpdateSection merges patch into the section.
func (s *Service) UpdateSection(ctx context.Context, id uuid.UUID, patch models.SectionPatch) (*models.Section, error) {
	if patch.Title != nil && blank(patch.Title) {
		return nil, apperr.Validation("section", "title must not be empty")
	}
	if patch.Order != nil {
		if err := ordering.CheckOrder(EntitySection, *patch.Order); err != nil {
			return nil, err
		}
	}
	sec, err := s.sections.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find section: %w", err)
	}
	if sec == nil {
		return nil, apperr.NotFound(EntitySection)
	}
	patch.Apply(sec)
	if err := s.sections.Update(ctx, sec); err != nil {
		return nil, fmt.Errorf("update section: %w", err)
	}
	if patch.Order != nil {
		if err := s.sectionOrder.Observe(ctx, sec.CourseID, sec.Order); err != nil {
			return nil, err
		}
	}
	return sec, nil
}

// DeleteSection removes the section with its lessons and their blocks.
func (s *Service) DeleteSection(ctx context.Context, id uuid.UUID) error {
	ok, err := s.sections.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	if !ok {
		return apperr.NotFound(EntitySection)
	}
	return nil
}

// ReorderSections applies the items one by one. See ordering.Set.Reorder.
func (s *Service) ReorderSections(ctx context.Context, items []ordering.Item) error {
	return s.sectionOrder.Reorder(ctx, items)
}

// --- Lessons ---

// CreateLesson adds a lesson under the section. Title and Slug are required;
// Type defaults to "text".
func (s *Service) CreateLesson(ctx context.Context, sectionID uuid.UUID, in models.LessonPatch) (*models.Lesson, error) {
	if blank(in.Title) {
		return nil, apperr.Validation("lesson", "title is required")
	}
	if blank(in.Slug) {
		return nil, apperr.Validation("lesson", "slug is required")
	}
	if err := validateLessonPatch(in); err != nil {
		return nil, err
	}
	sec, err := s.sections.FindByID(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("find section: %w", err)
	}
	if sec == nil {
		return nil, apperr.NotFound(EntitySection)
	}

	pos, err := s.lessonOrder.Place(ctx, sectionID, in.Order)
	if err != nil {
		return nil, err
	}
	l := &models.Lesson{SectionID: sectionID, Type: models.LessonText}
	in.Apply(l)
	if l.Type == "" {
		l.Type = models.LessonText
	}
	l.Order = pos
	if err := s.lessons.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	return l, nil
}

// FindLesson returns the bare lesson row.
func (s *Service) FindLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	l, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	if l == nil {
		return nil, apperr.NotFound(EntityLesson)
	}
	return l, nil
}

// UpdateLesson merges patch into the lesson. Only supplied fields change.
func (s *Service) UpdateLesson(ctx context.Context, id uuid.UUID, patch models.LessonPatch) (*models.Lesson, error) {
	if err := validateLessonPatch(patch); err != nil {
		return nil, err
	}
	l, err := s.FindLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(l)
	if err := s.lessons.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	if patch.Order != nil {
		if err := s.lessonOrder.Observe(ctx, l.SectionID, l.Order); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// DeleteLesson removes the lesson and its blocks.
func (s *Service) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	ok, err := s.lessons.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if !ok {
		return apperr.NotFound(EntityLesson)
	}
	return nil
}

// ReorderLessons applies the items one by one. See ordering.Set.Reorder.
func (s *Service) ReorderLessons(ctx context.Context, items []ordering.Item) error {
	return s.lessonOrder.Reorder(ctx, items)
}

func validateLessonPatch(p models.LessonPatch) error {
	switch {
	case p.Title != nil && blank(p.Title):
		return apperr.Validation("lesson", "title must not be empty")
	case p.Slug != nil && blank(p.Slug):
		return apperr.Validation("lesson", "slug must not be empty")
	case p.Duration != nil && *p.Duration < 0:
		return apperr.Validation("lesson", "duration must not be negative")
	case p.Order != nil:
		return ordering.CheckOrder(EntityLesson, *p.Order)
	}
	return nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
