// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ordering

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"learnpress/internal/apperr"
)

type fakeStore struct {
	seq      map[uuid.UUID]int
	children map[uuid.UUID]uuid.UUID // child -> parent
	orders   map[uuid.UUID]int
	failNext error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seq:      map[uuid.UUID]int{},
		children: map[uuid.UUID]uuid.UUID{},
		orders:   map[uuid.UUID]int{},
	}
}

func (f *fakeStore) addParent() uuid.UUID {
	id := uuid.New()
	f.seq[id] = 0
	return id
}

func (f *fakeStore) addChild(parent uuid.UUID, order int) uuid.UUID {
	id := uuid.New()
	f.children[id] = parent
	f.orders[id] = order
	return id
}

func (f *fakeStore) NextOrder(_ context.Context, parentID uuid.UUID) (int, bool, error) {
	if f.failNext != nil {
		return 0, false, f.failNext
	}
	n, ok := f.seq[parentID]
	if !ok {
		return 0, false, nil
	}
	f.seq[parentID] = n + 1
	return n + 1, true, nil
}

func (f *fakeStore) RaiseOrder(_ context.Context, parentID uuid.UUID, order int) error {
	if n, ok := f.seq[parentID]; ok && order > n {
		f.seq[parentID] = order
	}
	return nil
}

func (f *fakeStore) SetOrder(_ context.Context, childID uuid.UUID, order int) (uuid.UUID, bool, error) {
	parent, ok := f.children[childID]
	if !ok {
		return uuid.Nil, false, nil
	}
	f.orders[childID] = order
	return parent, true, nil
}

func TestAppendProducesOneToN(t *testing.T) {
	st := newFakeStore()
	set := New(st, "Course", "Section", nil)
	parent := st.addParent()

	for want := 1; want <= 5; want++ {
		got, err := set.Append(context.Background(), parent)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestAppendMissingParent(t *testing.T) {
	set := New(newFakeStore(), "Lesson", "ContentBlock", nil)

	_, err := set.Append(context.Background(), uuid.New())
	require.True(t, apperr.IsNotFound(err))
	require.EqualError(t, err, "Lesson not found")
}

func TestAppendStoreFailureIsWrapped(t *testing.T) {
	st := newFakeStore()
	st.failNext = errors.New("connection reset")
	set := New(st, "Course", "Section", nil)

	_, err := set.Append(context.Background(), uuid.New())
	require.ErrorIs(t, err, st.failNext)
	require.False(t, apperr.IsNotFound(err))
}

func TestPlaceExplicitRaisesCounter(t *testing.T) {
	st := newFakeStore()
	set := New(st, "Section", "Lesson", nil)
	parent := st.addParent()
	explicit := 10

	got, err := set.Place(context.Background(), parent, &explicit)
	require.NoError(t, err)
	require.Equal(t, 10, got)

	next, err := set.Place(context.Background(), parent, nil)
	require.NoError(t, err)
	require.Equal(t, 11, next)
}

func TestPlaceExplicitLowerDoesNotLowerCounter(t *testing.T) {
	st := newFakeStore()
	set := New(st, "Section", "Lesson", nil)
	parent := st.addParent()
	ctx := context.Background()

	for range 3 {
		_, err := set.Append(ctx, parent)
		require.NoError(t, err)
	}
	low := 1
	_, err := set.Place(ctx, parent, &low)
	require.NoError(t, err)

	next, err := set.Append(ctx, parent)
	require.NoError(t, err)
	require.Equal(t, 4, next)
}

func TestReorderAppliesEveryItem(t *testing.T) {
	st := newFakeStore()
	set := New(st, "Course", "Section", nil)
	parent := st.addParent()
	a := st.addChild(parent, 1)
	b := st.addChild(parent, 2)

	err := set.Reorder(context.Background(), []Item{{ID: a, Order: 5}, {ID: b, Order: 3}})
	require.NoError(t, err)
	require.Equal(t, 5, st.orders[a])
	require.Equal(t, 3, st.orders[b])
	require.Equal(t, 5, st.seq[parent])
}

func TestReorderStopsAtMissingItem(t *testing.T) {
	st := newFakeStore()
	set := New(st, "Lesson", "ContentBlock", nil)
	parent := st.addParent()
	a := st.addChild(parent, 1)
	c := st.addChild(parent, 3)

	err := set.Reorder(context.Background(), []Item{
		{ID: a, Order: 9},
		{ID: uuid.New(), Order: 8},
		{ID: c, Order: 7},
	})
	require.True(t, apperr.IsNotFound(err))
	require.Contains(t, err.Error(), "reorder item 2")
	require.Equal(t, 9, st.orders[a], "items before the failure stay applied")
	require.Equal(t, 3, st.orders[c], "items after the failure are skipped")
}

func TestReorderEmptyIsNoop(t *testing.T) {
	set := New(newFakeStore(), "Course", "Section", nil)
	require.NoError(t, set.Reorder(context.Background(), nil))
}

func TestDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  []int
	}{
		{name: "none", items: []Item{{Order: 1}, {Order: 2}}},
		{name: "one pair", items: []Item{{Order: 2}, {Order: 1}, {Order: 2}}, want: []int{2}},
		{name: "sorted result", items: []Item{{Order: 4}, {Order: 3}, {Order: 4}, {Order: 3}}, want: []int{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Duplicates(tt.items))
		})
	}
}

type sibling struct {
	name string
	key  Key
}

func (s sibling) SortKey() Key { return s.key }

func TestSortTieBreak(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lowID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	items := []sibling{
		{name: "late", key: Key{Order: 1, CreatedAt: base.Add(time.Minute), ID: lowID}},
		{name: "second", key: Key{Order: 2, CreatedAt: base, ID: lowID}},
		{name: "early-high", key: Key{Order: 1, CreatedAt: base, ID: highID}},
		{name: "early-low", key: Key{Order: 1, CreatedAt: base, ID: lowID}},
	}
	Sort(items)

	var got []string
	for _, it := range items {
		got = append(got, it.name)
	}
	require.Equal(t, []string{"early-low", "early-high", "late", "second"}, got)
}

func TestPlaceRejectsOrderAboveMax(t *testing.T) {
	st := newFakeStore()
	set := New(st, "Course", "Section", nil)
	parent := st.addParent()
	ctx := context.Background()

	for _, order := range []int{MaxOrder + 1, math.MaxInt32, math.MaxInt} {
		big := order
		_, err := set.Place(ctx, parent, &big)
		require.True(t, apperr.IsValidation(err), "order %d", order)
		require.EqualError(t, err, "order must be at most 2147483646")
	}
	require.Equal(t, 0, st.seq[parent], "rejected orders must not move the counter")

	top := MaxOrder
	got, err := set.Place(ctx, parent, &top)
	require.NoError(t, err)
	require.Equal(t, MaxOrder, got)

	next, err := set.Append(ctx, parent)
	require.NoError(t, err)
	require.Equal(t, math.MaxInt32, next)
	require.Greater(t, next, got)
}

func TestAppendPastIntegerRange(t *testing.T) {
	st := newFakeStore()
	set := New(st, "Lesson", "ContentBlock", nil)
	parent := st.addParent()
	st.seq[parent] = math.MaxInt32

	_, err := set.Append(context.Background(), parent)
	require.True(t, apperr.IsValidation(err))
	require.EqualError(t, err, "no order left under this lesson")
}

func TestReorderRejectsOrderAboveMax(t *testing.T) {
	st := newFakeStore()
	set := New(st, "Section", "Lesson", nil)
	parent := st.addParent()
	a := st.addChild(parent, 1)

	err := set.Reorder(context.Background(), []Item{{ID: a, Order: math.MaxInt}})
	require.True(t, apperr.IsValidation(err))
	require.Equal(t, 1, st.orders[a])
	require.Equal(t, 0, st.seq[parent])
}
