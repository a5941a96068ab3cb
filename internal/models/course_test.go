// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"testing"
)

// TestNewCourseDefaults verifies the column defaults a new course starts with.
func TestNewCourseDefaults(t *testing.T) {
	c := NewCourse("T", "t")
	if c.Price != 0 || c.IsPublished || c.Rating != 0 || c.RatingCount != 0 {
		t.Errorf("unexpected numeric/flag defaults: %+v", c)
	}
	if c.Level != LevelBeginner {
		t.Errorf("Level = %q, want %q", c.Level, LevelBeginner)
	}
	if c.AuthorName != DefaultAuthorName {
		t.Errorf("AuthorName = %q, want %q", c.AuthorName, DefaultAuthorName)
	}
	if c.Description != "" || c.AuthorAvatar != nil {
		t.Errorf("expected empty description and nil avatar")
	}
}

func TestCourseLevelValid(t *testing.T) {
	tests := []struct {
		level CourseLevel
		want  bool
	}{
		{LevelBeginner, true},
		{LevelIntermediate, true},
		{LevelAdvanced, true},
		{CourseLevel("beginner"), false},
		{CourseLevel(""), false},
	}
	for _, tt := range tests {
		if got := tt.level.Valid(); got != tt.want {
			t.Errorf("CourseLevel(%q).Valid() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

// TestCoursePatchApply verifies only supplied fields change.
func TestCoursePatchApply(t *testing.T) {
	c := NewCourse("Go", "go")
	c.Description = "keep me"

	title := "Go in Depth"
	published := true
	CoursePatch{Title: &title, IsPublished: &published}.Apply(c)

	if c.Title != title || !c.IsPublished {
		t.Errorf("patched fields not applied: %+v", c)
	}
	if c.Slug != "go" || c.Description != "keep me" || c.Level != LevelBeginner {
		t.Errorf("unpatched fields changed: %+v", c)
	}
}

func TestParsePublishFilter(t *testing.T) {
	tests := []struct {
		in   string
		want PublishFilter
	}{
		{"", PublishedOnly},
		{"true", PublishedOnly},
		{"all", PublishedAll},
		{"false", PublishedDrafts},
		{"drafts", PublishedDrafts},
		{"ALL", PublishedOnly},
	}
	for _, tt := range tests {
		if got := ParsePublishFilter(tt.in); got != tt.want {
			t.Errorf("ParsePublishFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPublishFilterMatches(t *testing.T) {
	pub := &Course{IsPublished: true}
	draft := &Course{}
	tests := []struct {
		filter     PublishFilter
		pub, draft bool
	}{
		{PublishedOnly, true, false},
		{PublishedAll, true, true},
		{PublishedDrafts, false, true},
	}
	for _, tt := range tests {
		if got := tt.filter.Matches(pub); got != tt.pub {
			t.Errorf("%s.Matches(published) = %v", tt.filter, got)
		}
		if got := tt.filter.Matches(draft); got != tt.draft {
			t.Errorf("%s.Matches(draft) = %v", tt.filter, got)
		}
	}
}

func TestCourseQueryNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   CourseQuery
		want CourseQuery
	}{
		{"zero", CourseQuery{}, CourseQuery{Page: 1, Limit: 10, Published: PublishedOnly}},
		{"kept", CourseQuery{Page: 3, Limit: 25, Published: PublishedAll}, CourseQuery{Page: 3, Limit: 25, Published: PublishedAll}},
		{"capped", CourseQuery{Page: 1, Limit: 1000}, CourseQuery{Page: 1, Limit: MaxLimit, Published: PublishedOnly}},
		{"negative", CourseQuery{Page: -2, Limit: -1}, CourseQuery{Page: 1, Limit: 10, Published: PublishedOnly}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewCoursePageLastPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 20, 5},
	}
	for _, tt := range tests {
		p := NewCoursePage(nil, CourseQuery{Page: 1, Limit: tt.limit}, tt.total)
		if p.Meta.LastPage != tt.want {
			t.Errorf("total=%d limit=%d: LastPage = %d, want %d", tt.total, tt.limit, p.Meta.LastPage, tt.want)
		}
		if p.Data == nil {
			t.Error("Data must be an empty slice, not nil")
		}
	}
}

// TestCoursePageJSON pins the listing envelope field names.
func TestCoursePageJSON(t *testing.T) {
	raw, err := json.Marshal(NewCoursePage(nil, CourseQuery{Page: 2, Limit: 5}, 7))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"data":[],"meta":{"page":2,"limit":5,"total":7,"last_page":2}}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}
