// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"learnpress/internal/database"
	"learnpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "learnpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "learnpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db.DB); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testCourse inserts a course with a unique slug and removes it (and, by
// cascade, everything below it) when the test ends.
func testCourse(t *testing.T, db *sqlx.DB, published bool) *models.Course {
	t.Helper()
	c := models.NewCourse("Test course", "test-course-"+uuid.NewString())
	c.IsPublished = published
	if err := NewCourseStore(db).Create(context.Background(), c); err != nil {
		t.Fatalf("create course: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM courses WHERE id = $1", c.ID) })
	return c
}

func testSection(t *testing.T, db *sqlx.DB, courseID uuid.UUID, order int) *models.Section {
	t.Helper()
	s := &models.Section{CourseID: courseID, Title: "Section", Order: order}
	if err := NewSectionStore(db).Create(context.Background(), s); err != nil {
		t.Fatalf("create section: %v", err)
	}
	return s
}

func testLesson(t *testing.T, db *sqlx.DB, sectionID uuid.UUID, order int) *models.Lesson {
	t.Helper()
	l := &models.Lesson{SectionID: sectionID, Title: "Lesson", Slug: "lesson-" + uuid.NewString(), Type: models.LessonText, Order: order}
	if err := NewLessonStore(db).Create(context.Background(), l); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return l
}
