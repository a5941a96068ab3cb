// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the content tree repositories. The Postgres
// stores (CourseStore, SectionStore, LessonStore, BlockStore) use sqlx over
// the pgx driver and rely on ON DELETE CASCADE foreign keys. Memory provides
// the same contract in process for tests and for running without a database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// ErrDuplicateSlug is returned by the memory store on a slug collision. The
// Postgres stores return the driver's unique violation instead.
var ErrDuplicateSlug = errors.New("duplicate slug")

var (
	errNoRow      = sql.ErrNoRows
	errForeignKey = errors.New("parent row does not exist")
)

// IsUniqueViolation reports whether err comes from a unique constraint, in
// either store.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, ErrDuplicateSlug) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// siblingTable implements ordering.Store for one parent/child table pair.
// The parent row's seq column holds the highest order handed out or observed.
type siblingTable struct {
	db        *sqlx.DB
	parent    string // parent table
	child     string // child table
	parentKey string // child column referencing the parent
	seq       string // counter column on the parent
}

// NextOrder increments the counter in a single statement, so concurrent
// appends get distinct values.
func (t siblingTable) NextOrder(ctx context.Context, parentID uuid.UUID) (int, bool, error) {
	var order int
	err := t.db.QueryRowxContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE id = $1 RETURNING %s`, t.parent, t.seq, t.seq, t.seq),
		parentID,
	).Scan(&order)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("next %s order: %w", t.child, err)
	}
	return order, true, nil
}

// RaiseOrder sets the counter to max(counter, order).
func (t siblingTable) RaiseOrder(ctx context.Context, parentID uuid.UUID, order int) error {
	_, err := t.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = GREATEST(%s, $2) WHERE id = $1`, t.parent, t.seq, t.seq),
		parentID, order,
	)
	if err != nil {
		return fmt.Errorf("raise %s order: %w", t.child, err)
	}
	return nil
}

// SetOrder writes one child's order and returns its parent id.
func (t siblingTable) SetOrder(ctx context.Context, childID uuid.UUID, order int) (uuid.UUID, bool, error) {
	var parentID uuid.UUID
	err := t.db.QueryRowxContext(ctx,
		fmt.Sprintf(`UPDATE %s SET "order" = $2, updated_at = NOW() WHERE id = $1 RETURNING %s`, t.child, t.parentKey),
		childID, order,
	).Scan(&parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("set %s order: %w", t.child, err)
	}
	return parentID, true, nil
}

// deleteByID removes one row and reports whether it existed.
func deleteByID(ctx context.Context, db *sqlx.DB, table string, id uuid.UUID) (bool, error) {
	res, err := db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
