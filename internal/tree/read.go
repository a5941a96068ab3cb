// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tree

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"learnpress/internal/apperr"
	"learnpress/internal/blocks"
	"learnpress/internal/models"
)

// CourseTree is a course with its ordered sections and, nested, their
// ordered lessons. Blocks are not included.
type CourseTree struct {
	models.Course
	Sections []SectionTree `json:"sections"`
}

// SectionTree is a section with its ordered lessons.
type SectionTree struct {
	models.Section
	Lessons []models.Lesson `json:"lessons"`
}

// BlockView is a stored block plus its resolved value, and the rendered
// fragment when HTML was requested.
type BlockView struct {
	models.ContentBlock
	Resolved blocks.Value `json:"resolved"`
	HTML     string       `json:"html,omitempty"`
}

// SectionRef is the breadcrumb parent of a lesson.
type SectionRef struct {
	models.Section
	Course models.Course `json:"course"`
}

// LessonRef identifies a neighbouring lesson.
type LessonRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

// Navigation places a lesson within the whole course, counting lessons
// across sections in read order. Position is 1-based; Progress is the share
// of lessons before this one, in percent.
type Navigation struct {
	Prev     *LessonRef `json:"prev"`
	Next     *LessonRef `json:"next"`
	Position int        `json:"position"`
	Total    int        `json:"total"`
	Progress int        `json:"progress"`
}

// LessonDetail is the full lesson read.
type LessonDetail struct {
	models.Lesson
	Blocks     []BlockView `json:"content_blocks"`
	Section    SectionRef  `json:"section"`
	Navigation Navigation  `json:"navigation"`
}

// ReadOptions tweaks GetLesson.
type ReadOptions struct {
	// HTML renders every block into BlockView.HTML.
	HTML bool
}

// GetCourseByID returns the course tree. Publication is not checked.
func (s *Service) GetCourseByID(ctx context.Context, id uuid.UUID) (*CourseTree, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFound(EntityCourse)
	}
	return s.buildTree(ctx, c)
}

// GetCourseBySlug returns the course tree. Publication is not checked.
func (s *Service) GetCourseBySlug(ctx context.Context, slug string) (*CourseTree, error) {
	c, err := s.courses.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find course by slug: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFound(EntityCourse)
	}
	return s.buildTree(ctx, c)
}

func (s *Service) buildTree(ctx context.Context, c *models.Course) (*CourseTree, error) {
	sections, err := s.sections.ListByCourse(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	lessons, err := s.lessons.ListByCourse(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	bySection := make(map[uuid.UUID][]models.Lesson, len(sections))
	for _, l := range lessons {
		bySection[l.SectionID] = append(bySection[l.SectionID], l)
	}

	t := &CourseTree{Course: *c, Sections: make([]SectionTree, 0, len(sections))}
	for _, sec := range sections {
		ls := bySection[sec.ID]
		if ls == nil {
			ls = []models.Lesson{}
		}
		t.Sections = append(t.Sections, SectionTree{Section: sec, Lessons: ls})
	}
	return t, nil
}

// GetLesson returns the lesson with its ordered, resolved blocks, the
// section and course it belongs to, and its place in the course.
func (s *Service) GetLesson(ctx context.Context, id uuid.UUID, opts ReadOptions) (*LessonDetail, error) {
	l, err := s.FindLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	sec, err := s.sections.FindByID(ctx, l.SectionID)
	if err != nil {
		return nil, fmt.Errorf("find section: %w", err)
	}
	if sec == nil {
		return nil, apperr.NotFound(EntitySection)
	}
	c, err := s.courses.FindByID(ctx, sec.CourseID)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFound(EntityCourse)
	}

	stored, err := s.blocks.ListByLesson(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("list content blocks: %w", err)
	}
	views := make([]BlockView, 0, len(stored))
	for _, b := range stored {
		v := BlockView{ContentBlock: b, Resolved: b.Resolve()}
		if opts.HTML {
			out, err := blocks.HTML(v.Resolved)
			if err != nil {
				s.log.Warn("render block failed", "block_id", b.ID, "type", b.Type, "error", err)
			}
			v.HTML = out
		}
		views = append(views, v)
	}

	siblings, err := s.lessons.ListByCourse(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return &LessonDetail{
		Lesson:     *l,
		Blocks:     views,
		Section:    SectionRef{Section: *sec, Course: *c},
		Navigation: navigate(siblings, l.ID),
	}, nil
}

func navigate(all []models.Lesson, id uuid.UUID) Navigation {
	nav := Navigation{Total: len(all)}
	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nav
	}
	nav.Position = idx + 1
	nav.Progress = int(math.Round(float64(idx) / float64(len(all)) * 100))
	if idx > 0 {
		nav.Prev = ref(all[idx-1])
	}
	if idx < len(all)-1 {
		nav.Next = ref(all[idx+1])
	}
	return nav
}

func ref(l models.Lesson) *LessonRef {
	return &LessonRef{ID: l.ID, Title: l.Title, Slug: l.Slug}
}
