// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"learnpress/internal/models"
	"learnpress/internal/ordering"
)

// Memory keeps the whole content tree in process. It honours the same
// contract as the Postgres stores: unique slugs, per-parent order counters
// and cascading deletes. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	courses  map[uuid.UUID]*courseRec
	sections map[uuid.UUID]*sectionRec
	lessons  map[uuid.UUID]*lessonRec
	blocks   map[uuid.UUID]models.ContentBlock
	last     time.Time
}

type courseRec struct {
	models.Course
	seq int
}

type sectionRec struct {
	models.Section
	seq int
}

type lessonRec struct {
	models.Lesson
	seq int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		courses:  make(map[uuid.UUID]*courseRec),
		sections: make(map[uuid.UUID]*sectionRec),
		lessons:  make(map[uuid.UUID]*lessonRec),
		blocks:   make(map[uuid.UUID]models.ContentBlock),
	}
}

// Courses returns the course repository view.
func (m *Memory) Courses() *MemoryCourses { return &MemoryCourses{m} }

// Sections returns the section repository view.
func (m *Memory) Sections() *MemorySections { return &MemorySections{m} }

// Lessons returns the lesson repository view.
func (m *Memory) Lessons() *MemoryLessons { return &MemoryLessons{m} }

// Blocks returns the content block repository view.
func (m *Memory) Blocks() *MemoryBlocks { return &MemoryBlocks{m} }

// tick returns a timestamp strictly after the previous one so creation
// order is always recoverable from created_at. Caller holds mu.
func (m *Memory) tick() time.Time {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(m.last) {
		now = m.last.Add(time.Microsecond)
	}
	m.last = now
	return now
}

// deleteLesson removes a lesson and its blocks. Caller holds mu.
func (m *Memory) deleteLesson(id uuid.UUID) {
	for bid, b := range m.blocks {
		if b.LessonID == id {
			delete(m.blocks, bid)
		}
	}
	delete(m.lessons, id)
}

// deleteSection removes a section and everything below it. Caller holds mu.
func (m *Memory) deleteSection(id uuid.UUID) {
	for lid, l := range m.lessons {
		if l.SectionID == id {
			m.deleteLesson(lid)
		}
	}
	delete(m.sections, id)
}

func cloneJSON(raw []byte) []byte {
	if raw == nil {
		return nil
	}
	return bytes.Clone(raw)
}

// --- courses ---

// MemoryCourses is the in-memory course repository.
type MemoryCourses struct{ m *Memory }

// List filters, sorts newest first and pages in memory.
func (r *MemoryCourses) List(_ context.Context, q models.CourseQuery) ([]models.Course, int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	needle := strings.ToLower(q.Q)
	var matched []models.Course
	for _, c := range r.m.courses {
		if !q.Published.Matches(&c.Course) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.Title), needle) {
			continue
		}
		matched = append(matched, c.Course)
	}
	slices.SortFunc(matched, func(a, b models.Course) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(b.ID[:], a.ID[:])
	})

	total := len(matched)
	start := min(q.Offset(), total)
	end := min(start+q.Limit, total)
	return slices.Clone(matched[start:end]), total, nil
}

// FindByID returns nil if the course does not exist.
func (r *MemoryCourses) FindByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if c, ok := r.m.courses[id]; ok {
		out := c.Course
		return &out, nil
	}
	return nil, nil
}

// FindBySlug returns nil if no course has the slug.
func (r *MemoryCourses) FindBySlug(_ context.Context, slug string) (*models.Course, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, c := range r.m.courses {
		if c.Slug == slug {
			out := c.Course
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryCourses) slugTaken(slug string, except uuid.UUID) bool {
	for id, c := range r.m.courses {
		if id != except && c.Slug == slug {
			return true
		}
	}
	return false
}

// Create stores c with a fresh ID and timestamps.
func (r *MemoryCourses) Create(_ context.Context, c *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.slugTaken(c.Slug, uuid.Nil) {
		return ErrDuplicateSlug
	}
	c.ID = uuid.New()
	c.CreatedAt = r.m.tick()
	c.UpdatedAt = c.CreatedAt
	r.m.courses[c.ID] = &courseRec{Course: *c}
	return nil
}

// Update overwrites the stored course, keeping its section counter.
func (r *MemoryCourses) Update(_ context.Context, c *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec, ok := r.m.courses[c.ID]
	if !ok {
		return errNoRow
	}
	if r.slugTaken(c.Slug, c.ID) {
		return ErrDuplicateSlug
	}
	c.CreatedAt = rec.CreatedAt
	c.UpdatedAt = r.m.tick()
	rec.Course = *c
	return nil
}

// Delete removes the course and cascades to its sections.
func (r *MemoryCourses) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.courses[id]; !ok {
		return false, nil
	}
	for sid, s := range r.m.sections {
		if s.CourseID == id {
			r.m.deleteSection(sid)
		}
	}
	delete(r.m.courses, id)
	return true, nil
}

// --- sections ---

// MemorySections is the in-memory section repository.
type MemorySections struct{ m *Memory }

func (r *MemorySections) NextOrder(_ context.Context, parentID uuid.UUID) (int, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.courses[parentID]
	if !ok {
		return 0, false, nil
	}
	c.seq++
	return c.seq, true, nil
}

func (r *MemorySections) RaiseOrder(_ context.Context, parentID uuid.UUID, order int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if c, ok := r.m.courses[parentID]; ok {
		c.seq = max(c.seq, order)
	}
	return nil
}

func (r *MemorySections) SetOrder(_ context.Context, childID uuid.UUID, order int) (uuid.UUID, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sections[childID]
	if !ok {
		return uuid.Nil, false, nil
	}
	s.Order = order
	s.UpdatedAt = r.m.tick()
	return s.CourseID, true, nil
}

// FindByID returns nil if the section does not exist.
func (r *MemorySections) FindByID(_ context.Context, id uuid.UUID) (*models.Section, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if s, ok := r.m.sections[id]; ok {
		out := s.Section
		return &out, nil
	}
	return nil, nil
}

// ListByCourse returns the course's sections in read order.
func (r *MemorySections) ListByCourse(_ context.Context, courseID uuid.UUID) ([]models.Section, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []models.Section{}
	for _, s := range r.m.sections {
		if s.CourseID == courseID {
			out = append(out, s.Section)
		}
	}
	ordering.Sort(out)
	return out, nil
}

// Create stores sec under an existing course.
func (r *MemorySections) Create(_ context.Context, sec *models.Section) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.courses[sec.CourseID]; !ok {
		return errForeignKey
	}
	sec.ID = uuid.New()
	sec.CreatedAt = r.m.tick()
	sec.UpdatedAt = sec.CreatedAt
	r.m.sections[sec.ID] = &sectionRec{Section: *sec}
	return nil
}

// Update writes the mutable fields of sec.
func (r *MemorySections) Update(_ context.Context, sec *models.Section) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec, ok := r.m.sections[sec.ID]
	if !ok {
		return errNoRow
	}
	rec.Title = sec.Title
	rec.Order = sec.Order
	rec.UpdatedAt = r.m.tick()
	*sec = rec.Section
	return nil
}

// Delete removes the section and cascades to its lessons.
func (r *MemorySections) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.sections[id]; !ok {
		return false, nil
	}
	r.m.deleteSection(id)
	return true, nil
}

// --- lessons ---

// MemoryLessons is the in-memory lesson repository.
type MemoryLessons struct{ m *Memory }

func (r *MemoryLessons) NextOrder(_ context.Context, parentID uuid.UUID) (int, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sections[parentID]
	if !ok {
		return 0, false, nil
	}
	s.seq++
	return s.seq, true, nil
}

func (r *MemoryLessons) RaiseOrder(_ context.Context, parentID uuid.UUID, order int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.sections[parentID]; ok {
		s.seq = max(s.seq, order)
	}
	return nil
}

func (r *MemoryLessons) SetOrder(_ context.Context, childID uuid.UUID, order int) (uuid.UUID, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l, ok := r.m.lessons[childID]
	if !ok {
		return uuid.Nil, false, nil
	}
	l.Order = order
	l.UpdatedAt = r.m.tick()
	return l.SectionID, true, nil
}

// FindByID returns nil if the lesson does not exist.
func (r *MemoryLessons) FindByID(_ context.Context, id uuid.UUID) (*models.Lesson, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if l, ok := r.m.lessons[id]; ok {
		out := l.Lesson
		return &out, nil
	}
	return nil, nil
}

// ListBySection returns the section's lessons in read order.
func (r *MemoryLessons) ListBySection(_ context.Context, sectionID uuid.UUID) ([]models.Lesson, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return r.bySection(sectionID), nil
}

func (r *MemoryLessons) bySection(sectionID uuid.UUID) []models.Lesson {
	out := []models.Lesson{}
	for _, l := range r.m.lessons {
		if l.SectionID == sectionID {
			out = append(out, l.Lesson)
		}
	}
	ordering.Sort(out)
	return out
}

// ListByCourse returns the course's lessons grouped by section in read order.
func (r *MemoryLessons) ListByCourse(_ context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var sections []models.Section
	for _, s := range r.m.sections {
		if s.CourseID == courseID {
			sections = append(sections, s.Section)
		}
	}
	ordering.Sort(sections)

	out := []models.Lesson{}
	for _, s := range sections {
		out = append(out, r.bySection(s.ID)...)
	}
	return out, nil
}

func (r *MemoryLessons) slugTaken(slug string, except uuid.UUID) bool {
	for id, l := range r.m.lessons {
		if id != except && l.Slug == slug {
			return true
		}
	}
	return false
}

// Create stores l under an existing section. Slugs are unique across all
// lessons.
func (r *MemoryLessons) Create(_ context.Context, l *models.Lesson) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.sections[l.SectionID]; !ok {
		return errForeignKey
	}
	if r.slugTaken(l.Slug, uuid.Nil) {
		return ErrDuplicateSlug
	}
	l.ID = uuid.New()
	l.CreatedAt = r.m.tick()
	l.UpdatedAt = l.CreatedAt
	r.m.lessons[l.ID] = &lessonRec{Lesson: *l}
	return nil
}

// Update overwrites the stored lesson, keeping its block counter.
func (r *MemoryLessons) Update(_ context.Context, l *models.Lesson) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec, ok := r.m.lessons[l.ID]
	if !ok {
		return errNoRow
	}
	if r.slugTaken(l.Slug, l.ID) {
		return ErrDuplicateSlug
	}
	l.SectionID = rec.SectionID
	l.CreatedAt = rec.CreatedAt
	l.UpdatedAt = r.m.tick()
	rec.Lesson = *l
	return nil
}

// Delete removes the lesson and its blocks.
func (r *MemoryLessons) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.lessons[id]; !ok {
		return false, nil
	}
	r.m.deleteLesson(id)
	return true, nil
}

// --- blocks ---

// MemoryBlocks is the in-memory content block repository.
type MemoryBlocks struct{ m *Memory }

func (r *MemoryBlocks) NextOrder(_ context.Context, parentID uuid.UUID) (int, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l, ok := r.m.lessons[parentID]
	if !ok {
		return 0, false, nil
	}
	l.seq++
	return l.seq, true, nil
}

func (r *MemoryBlocks) RaiseOrder(_ context.Context, parentID uuid.UUID, order int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if l, ok := r.m.lessons[parentID]; ok {
		l.seq = max(l.seq, order)
	}
	return nil
}

func (r *MemoryBlocks) SetOrder(_ context.Context, childID uuid.UUID, order int) (uuid.UUID, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.blocks[childID]
	if !ok {
		return uuid.Nil, false, nil
	}
	b.Order = order
	b.UpdatedAt = r.m.tick()
	r.m.blocks[childID] = b
	return b.LessonID, true, nil
}

// FindByID returns nil if the block does not exist.
func (r *MemoryBlocks) FindByID(_ context.Context, id uuid.UUID) (*models.ContentBlock, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if b, ok := r.m.blocks[id]; ok {
		b.Metadata = cloneJSON(b.Metadata)
		return &b, nil
	}
	return nil, nil
}

// ListByLesson returns the lesson's blocks in read order.
func (r *MemoryBlocks) ListByLesson(_ context.Context, lessonID uuid.UUID) ([]models.ContentBlock, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []models.ContentBlock{}
	for _, b := range r.m.blocks {
		if b.LessonID == lessonID {
			b.Metadata = cloneJSON(b.Metadata)
			out = append(out, b)
		}
	}
	ordering.Sort(out)
	return out, nil
}

// Create stores b under an existing lesson.
func (r *MemoryBlocks) Create(_ context.Context, b *models.ContentBlock) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.lessons[b.LessonID]; !ok {
		return errForeignKey
	}
	b.ID = uuid.New()
	b.CreatedAt = r.m.tick()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	stored.Metadata = cloneJSON(b.Metadata)
	r.m.blocks[b.ID] = stored
	return nil
}

// Update writes the mutable fields of b.
func (r *MemoryBlocks) Update(_ context.Context, b *models.ContentBlock) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec, ok := r.m.blocks[b.ID]
	if !ok {
		return errNoRow
	}
	rec.Type = b.Type
	rec.Content = b.Content
	rec.Metadata = cloneJSON(b.Metadata)
	rec.Order = b.Order
	rec.UpdatedAt = r.m.tick()
	r.m.blocks[b.ID] = rec
	b.UpdatedAt = rec.UpdatedAt
	return nil
}

// Delete removes one block.
func (r *MemoryBlocks) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.blocks[id]; !ok {
		return false, nil
	}
	delete(r.m.blocks, id)
	return true, nil
}
