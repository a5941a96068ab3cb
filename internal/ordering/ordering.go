// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ordering maintains the integer order of children that share one
// parent: sections within a course, lessons within a section and blocks
// within a lesson. The three levels use the same Set, each over its own Store.
package ordering

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"learnpress/internal/apperr"
	"learnpress/internal/logger"
)

// Store is the per-level persistence the Set needs. Every parent row keeps a
// sequence counter holding the highest order allocated or observed among its
// children.
type Store interface {
	// NextOrder atomically increments the parent's counter and returns the
	// new value. found is false when the parent does not exist.
	NextOrder(ctx context.Context, parentID uuid.UUID) (order int, found bool, err error)
	// RaiseOrder sets the parent's counter to max(counter, order).
	RaiseOrder(ctx context.Context, parentID uuid.UUID, order int) error
	// SetOrder writes order on a single child and returns its parent.
	// found is false when the child does not exist.
	SetOrder(ctx context.Context, childID uuid.UUID, order int) (parentID uuid.UUID, found bool, err error)
}

// MaxOrder is the highest order a caller may set. It leaves one INTEGER
// value above it so the next append still fits the order columns.
const MaxOrder = math.MaxInt32 - 1

// Item is one entry of a bulk reorder request.
type Item struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Order int       `json:"order" validate:"min=0,max=2147483646"`
}

// CheckOrder rejects explicit orders above MaxOrder.
func CheckOrder(entity string, order int) error {
	if order > MaxOrder {
		return apperr.Validation(entity, fmt.Sprintf("order must be at most %d", MaxOrder))
	}
	return nil
}

// Set assigns and rewrites sibling order for one level of the tree.
type Set struct {
	store  Store
	parent string
	child  string
	log    *logger.Logger
}

// New returns a Set over store. parent and child name the entities in
// NotFound errors ("Course", "Section").
func New(store Store, parent, child string, log *logger.Logger) *Set {
	if log == nil {
		log = logger.NewNop()
	}
	return &Set{store: store, parent: parent, child: child, log: log}
}

// Append allocates the order for a new child created without one. The value
// is strictly greater than every order the parent has handed out or seen, so
// the child sorts last even after siblings were deleted.
func (s *Set) Append(ctx context.Context, parentID uuid.UUID) (int, error) {
	order, found, err := s.store.NextOrder(ctx, parentID)
	if err != nil {
		return 0, fmt.Errorf("allocate %s order: %w", s.child, err)
	}
	if !found {
		return 0, apperr.NotFound(s.parent)
	}
	if order > math.MaxInt32 {
		return 0, apperr.Validation(s.child, "no order left under this "+strings.ToLower(s.parent))
	}
	return order, nil
}

// Place returns the order a new child should be written with: explicit when
// the caller supplied one, the next appended value otherwise.
func (s *Set) Place(ctx context.Context, parentID uuid.UUID, explicit *int) (int, error) {
	if explicit == nil {
		return s.Append(ctx, parentID)
	}
	if err := s.Observe(ctx, parentID, *explicit); err != nil {
		return 0, err
	}
	return *explicit, nil
}

// Observe records that order is now in use under parentID so later appends
// land after it. Orders above MaxOrder are rejected.
func (s *Set) Observe(ctx context.Context, parentID uuid.UUID, order int) error {
	if err := CheckOrder(s.child, order); err != nil {
		return err
	}
	if err := s.store.RaiseOrder(ctx, parentID, order); err != nil {
		return fmt.Errorf("raise %s order: %w", s.child, err)
	}
	return nil
}

// SetExplicitOrder overrides the order of an existing child. Duplicate
// values among siblings are accepted; reads break ties deterministically.
func (s *Set) SetExplicitOrder(ctx context.Context, childID uuid.UUID, order int) error {
	if err := CheckOrder(s.child, order); err != nil {
		return err
	}
	parentID, found, err := s.store.SetOrder(ctx, childID, order)
	if err != nil {
		return fmt.Errorf("set %s order: %w", s.child, err)
	}
	if !found {
		return apperr.NotFound(s.child)
	}
	return s.Observe(ctx, parentID, order)
}

// Reorder applies items one at a time, in request order. It is not atomic:
// when item N fails, items before it stay applied and the rest are skipped.
// Items are not checked for sharing a parent or forming a permutation.
func (s *Set) Reorder(ctx context.Context, items []Item) error {
	if dups := Duplicates(items); len(dups) > 0 {
		s.log.Warn("reorder batch repeats order values", "entity", s.child, "orders", dups)
	}
	for i, it := range items {
		if err := s.SetExplicitOrder(ctx, it.ID, it.Order); err != nil {
			s.log.Warn("reorder stopped", "entity", s.child, "item", i+1, "applied", i, "error", err)
			return fmt.Errorf("reorder item %d: %w", i+1, err)
		}
	}
	return nil
}

// Duplicates returns order values that appear more than once in items,
// ascending.
func Duplicates(items []Item) []int {
	seen := make(map[int]int, len(items))
	for _, it := range items {
		seen[it.Order]++
	}
	var dups []int
	for order, n := range seen {
		if n > 1 {
			dups = append(dups, order)
		}
	}
	slices.Sort(dups)
	return dups
}

// Key is the read-order key of a child: order, then creation time, then id.
type Key struct {
	Order     int
	CreatedAt time.Time
	ID        uuid.UUID
}

// Ordered is implemented by every sibling entity.
type Ordered interface {
	SortKey() Key
}

// Compare orders two keys the way the stores order rows.
func Compare(a, b Key) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return slices.Compare(a.ID[:], b.ID[:])
}

// Sort sorts siblings into read order in place.
func Sort[T Ordered](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(a.SortKey(), b.SortKey())
	})
}
