// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"

	"learnpress/internal/models"
)

func memCourse(t *testing.T, m *Memory, slug string, published bool) *models.Course {
	t.Helper()
	c := models.NewCourse("Course "+slug, slug)
	c.IsPublished = published
	if err := m.Courses().Create(context.Background(), c); err != nil {
		t.Fatalf("create course: %v", err)
	}
	return c
}

func TestMemoryCourseSlugUnique(t *testing.T) {
	m := NewMemory()
	memCourse(t, m, "go", false)

	err := m.Courses().Create(context.Background(), models.NewCourse("Again", "go"))
	if !IsUniqueViolation(err) {
		t.Errorf("expected duplicate slug, got %v", err)
	}

	other := memCourse(t, m, "rust", false)
	other.Slug = "go"
	if err := m.Courses().Update(context.Background(), other); !IsUniqueViolation(err) {
		t.Errorf("expected duplicate slug on update, got %v", err)
	}
}

func TestMemoryCourseList(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	a := memCourse(t, m, "intro-go", true)
	b := memCourse(t, m, "advanced-go", false)
	c := memCourse(t, m, "intro-rust", true)

	tests := []struct {
		name  string
		q     models.CourseQuery
		want  []uuid.UUID
		total int
	}{
		{"published newest first", models.CourseQuery{}, []uuid.UUID{c.ID, a.ID}, 2},
		{"all", models.CourseQuery{Published: models.PublishedAll}, []uuid.UUID{c.ID, b.ID, a.ID}, 3},
		{"drafts", models.CourseQuery{Published: models.PublishedDrafts}, []uuid.UUID{b.ID}, 1},
		{"query case-insensitive", models.CourseQuery{Q: "GO", Published: models.PublishedAll}, []uuid.UUID{b.ID, a.ID}, 2},
		{"second page", models.CourseQuery{Page: 2, Limit: 2, Published: models.PublishedAll}, []uuid.UUID{a.ID}, 3},
		{"past the end", models.CourseQuery{Page: 9, Limit: 2, Published: models.PublishedAll}, nil, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := m.Courses().List(ctx, tt.q.Normalize())
			if err != nil {
				t.Fatal(err)
			}
			if total != tt.total {
				t.Errorf("total = %d, want %d", total, tt.total)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("row %d = %s, want %s", i, got[i].Slug, tt.want[i])
				}
			}
		})
	}
}

func TestMemoryCounterAndSetOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	c := memCourse(t, m, "c", false)
	sections := m.Sections()

	for want := 1; want <= 3; want++ {
		got, found, err := sections.NextOrder(ctx, c.ID)
		if err != nil || !found || got != want {
			t.Fatalf("NextOrder = %d, %v, %v; want %d", got, found, err, want)
		}
	}
	if err := sections.RaiseOrder(ctx, c.ID, 8); err != nil {
		t.Fatal(err)
	}
	if got, _, _ := sections.NextOrder(ctx, c.ID); got != 9 {
		t.Errorf("NextOrder after raise = %d, want 9", got)
	}
	if _, found, _ := sections.NextOrder(ctx, uuid.New()); found {
		t.Error("NextOrder on missing course reported found")
	}

	s := &models.Section{CourseID: c.ID, Title: "S", Order: 1}
	if err := sections.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	parent, found, err := sections.SetOrder(ctx, s.ID, 5)
	if err != nil || !found || parent != c.ID {
		t.Errorf("SetOrder = %s, %v, %v", parent, found, err)
	}
	got, _ := sections.FindByID(ctx, s.ID)
	if got.Order != 5 {
		t.Errorf("Order = %d, want 5", got.Order)
	}
}

func TestMemoryConcurrentAppendsAreDistinct(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	c := memCourse(t, m, "c", false)

	const n = 50
	orders := make(chan int, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, _, err := m.Sections().NextOrder(ctx, c.ID)
			if err != nil {
				t.Error(err)
			}
			orders <- o
		}()
	}
	wg.Wait()
	close(orders)

	seen := map[int]bool{}
	for o := range orders {
		if seen[o] {
			t.Fatalf("order %d handed out twice", o)
		}
		seen[o] = true
	}
	if len(seen) != n {
		t.Errorf("got %d distinct orders, want %d", len(seen), n)
	}
}

func TestMemoryCreateRequiresParent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.Sections().Create(ctx, &models.Section{CourseID: uuid.New(), Title: "x"}); err == nil {
		t.Error("section under missing course must fail")
	}
	if err := m.Lessons().Create(ctx, &models.Lesson{SectionID: uuid.New(), Title: "x", Slug: "x"}); err == nil {
		t.Error("lesson under missing section must fail")
	}
	if err := m.Blocks().Create(ctx, &models.ContentBlock{LessonID: uuid.New(), Type: "TEXT"}); err == nil {
		t.Error("block under missing lesson must fail")
	}
}

func TestMemoryCascadeDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	c := memCourse(t, m, "c", false)
	keep := memCourse(t, m, "keep", false)

	var lessonIDs, blockIDs []uuid.UUID
	for _, course := range []*models.Course{c, keep} {
		s := &models.Section{CourseID: course.ID, Title: "S"}
		if err := m.Sections().Create(ctx, s); err != nil {
			t.Fatal(err)
		}
		l := &models.Lesson{SectionID: s.ID, Title: "L", Slug: "l-" + course.Slug}
		if err := m.Lessons().Create(ctx, l); err != nil {
			t.Fatal(err)
		}
		b := &models.ContentBlock{LessonID: l.ID, Type: "TEXT", Content: "x"}
		if err := m.Blocks().Create(ctx, b); err != nil {
			t.Fatal(err)
		}
		lessonIDs = append(lessonIDs, l.ID)
		blockIDs = append(blockIDs, b.ID)
	}

	ok, err := m.Courses().Delete(ctx, c.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	if l, _ := m.Lessons().FindByID(ctx, lessonIDs[0]); l != nil {
		t.Error("lesson survived course delete")
	}
	if b, _ := m.Blocks().FindByID(ctx, blockIDs[0]); b != nil {
		t.Error("block survived course delete")
	}
	if l, _ := m.Lessons().FindByID(ctx, lessonIDs[1]); l == nil {
		t.Error("other course's lesson was removed")
	}
	if b, _ := m.Blocks().FindByID(ctx, blockIDs[1]); b == nil {
		t.Error("other course's block was removed")
	}

	ok, err = m.Courses().Delete(ctx, c.ID)
	if err != nil || ok {
		t.Errorf("second Delete = %v, %v; want false", ok, err)
	}
}

func TestMemoryBlockMetadataIsCopied(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	c := memCourse(t, m, "c", false)
	s := &models.Section{CourseID: c.ID, Title: "S"}
	_ = m.Sections().Create(ctx, s)
	l := &models.Lesson{SectionID: s.ID, Title: "L", Slug: "l"}
	_ = m.Lessons().Create(ctx, l)

	meta := json.RawMessage(`{"level":2}`)
	b := &models.ContentBlock{LessonID: l.ID, Type: "HEADING", Content: "x", Metadata: meta}
	if err := m.Blocks().Create(ctx, b); err != nil {
		t.Fatal(err)
	}
	meta[2] = 'X'

	got, _ := m.Blocks().FindByID(ctx, b.ID)
	if string(got.Metadata) != `{"level":2}` {
		t.Errorf("stored metadata changed through caller slice: %s", got.Metadata)
	}
}
