// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"learnpress/internal/ordering"
)

// Section groups lessons inside a course.
type Section struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CourseID  uuid.UUID `json:"course_id" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Order     int       `json:"order" db:"order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SortKey implements ordering.Ordered.
func (s Section) SortKey() ordering.Key {
	return ordering.Key{Order: s.Order, CreatedAt: s.CreatedAt, ID: s.ID}
}

// SectionPatch is a partial update of a section.
type SectionPatch struct {
	Title *string
	Order *int
}

// Apply copies the supplied fields onto s.
func (p SectionPatch) Apply(s *Section) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Order != nil {
		s.Order = *p.Order
	}
}
