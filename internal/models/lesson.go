// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"learnpress/internal/ordering"
)

// LessonType is informational; it does not restrict which blocks a lesson
// may contain.
type LessonType string

const (
	LessonText  LessonType = "text"
	LessonVideo LessonType = "video"
	LessonQuiz  LessonType = "quiz"
)

// Lesson belongs to a section and owns an ordered list of content blocks.
// Slugs are unique across all courses.
type Lesson struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	SectionID uuid.UUID  `json:"section_id" db:"section_id"`
	Title     string     `json:"title" db:"title"`
	Slug      string     `json:"slug" db:"slug"`
	Type      LessonType `json:"type" db:"type"`
	Content   *string    `json:"content" db:"content"`
	VideoURL  *string    `json:"video_url" db:"video_url"`
	Duration  int        `json:"duration" db:"duration"`
	Order     int        `json:"order" db:"order"`
	IsFree    bool       `json:"is_free" db:"is_free"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// SortKey implements ordering.Ordered.
func (l Lesson) SortKey() ordering.Key {
	return ordering.Key{Order: l.Order, CreatedAt: l.CreatedAt, ID: l.ID}
}

// LessonPatch is a partial update of a lesson.
type LessonPatch struct {
	Title    *string
	Slug     *string
	Type     *LessonType
	Content  *string
	VideoURL *string
	Duration *int
	Order    *int
	IsFree   *bool
}

// Apply copies the supplied fields onto l.
func (p LessonPatch) Apply(l *Lesson) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Slug != nil {
		l.Slug = *p.Slug
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.Content != nil {
		l.Content = p.Content
	}
	if p.VideoURL != nil {
		l.VideoURL = p.VideoURL
	}
	if p.Duration != nil {
		l.Duration = *p.Duration
	}
	if p.Order != nil {
		l.Order = *p.Order
	}
	if p.IsFree != nil {
		l.IsFree = *p.IsFree
	}
}
