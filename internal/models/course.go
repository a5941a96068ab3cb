// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseLevel is the difficulty label shown on a course card.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

// Valid reports whether l is one of the known levels.
func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// DefaultAuthorName is used when a course is created without an author.
const DefaultAuthorName = "Admin"

// Course is the root of the content tree. It owns an ordered list of
// sections; deleting it deletes everything below.
type Course struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Title        string      `json:"title" db:"title"`
	Slug         string      `json:"slug" db:"slug"`
	Description  string      `json:"description" db:"description"`
	Price        int         `json:"price" db:"price"`
	IsPublished  bool        `json:"is_published" db:"is_published"`
	AuthorName   string      `json:"author_name" db:"author_name"`
	AuthorAvatar *string     `json:"author_avatar" db:"author_avatar"`
	Rating       float64     `json:"rating" db:"rating"`
	RatingCount  int         `json:"rating_count" db:"rating_count"`
	Level        CourseLevel `json:"level" db:"level"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// NewCourse returns an unsaved course with every column default applied.
func NewCourse(title, slug string) *Course {
	return &Course{
		Title:      title,
		Slug:       slug,
		AuthorName: DefaultAuthorName,
		Level:      LevelBeginner,
	}
}

// CoursePatch is a partial update. Nil fields are left unchanged.
type CoursePatch struct {
	Title        *string
	Slug         *string
	Description  *string
	Price        *int
	IsPublished  *bool
	AuthorName   *string
	AuthorAvatar *string
	Rating       *float64
	RatingCount  *int
	Level        *CourseLevel
}

// Apply copies the supplied fields onto c.
func (p CoursePatch) Apply(c *Course) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.IsPublished != nil {
		c.IsPublished = *p.IsPublished
	}
	if p.AuthorName != nil {
		c.AuthorName = *p.AuthorName
	}
	if p.AuthorAvatar != nil {
		c.AuthorAvatar = p.AuthorAvatar
	}
	if p.Rating != nil {
		c.Rating = *p.Rating
	}
	if p.RatingCount != nil {
		c.RatingCount = *p.RatingCount
	}
	if p.Level != nil {
		c.Level = *p.Level
	}
}

// PublishFilter selects which courses a listing returns.
type PublishFilter string

const (
	PublishedOnly   PublishFilter = "published"
	PublishedAll    PublishFilter = "all"
	PublishedDrafts PublishFilter = "drafts"
)

// ParsePublishFilter reads the ?published= query value. "all" lists
// everything, "false" or "drafts" lists unpublished courses, anything else
// (including empty) keeps the public default.
func ParsePublishFilter(s string) PublishFilter {
	switch s {
	case "all":
		return PublishedAll
	case "false", "drafts":
		return PublishedDrafts
	}
	return PublishedOnly
}

// Listing defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// CourseQuery describes one page of the course listing.
type CourseQuery struct {
	Page      int
	Limit     int
	Q         string
	Published PublishFilter
}

// Normalize fills zero values with defaults and caps the page size.
func (q CourseQuery) Normalize() CourseQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Published == "" {
		q.Published = PublishedOnly
	}
	return q
}

// Offset is the number of rows skipped before the page.
func (q CourseQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Matches reports whether c passes the publication filter.
func (f PublishFilter) Matches(c *Course) bool {
	switch f {
	case PublishedAll:
		return true
	case PublishedDrafts:
		return !c.IsPublished
	}
	return c.IsPublished
}

// PageMeta is the pagination block of a listing response.
type PageMeta struct {
	Page     int `json:"page"`
	Limit    int `json:"limit"`
	Total    int `json:"total"`
	LastPage int `json:"last_page"`
}

// CoursePage is one page of courses, newest first.
type CoursePage struct {
	Data []Course `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NewCoursePage builds the page envelope. LastPage is ceil(total/limit),
// so an empty listing reports zero pages.
func NewCoursePage(data []Course, q CourseQuery, total int) *CoursePage {
	if data == nil {
		data = []Course{}
	}
	last := 0
	if q.Limit > 0 {
		last = (total + q.Limit - 1) / q.Limit
	}
	return &CoursePage{
		Data: data,
		Meta: PageMeta{Page: q.Page, Limit: q.Limit, Total: total, LastPage: last},
	}
}
