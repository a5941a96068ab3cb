package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"learnpress/internal/logger"
	"learnpress/internal/models"
	"learnpress/internal/slug"
	"learnpress/internal/tree"
)

//go:embed seed.json
var seedData []byte

type seedCourse struct {
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Price       int                `json:"price"`
	Level       models.CourseLevel `json:"level"`
	AuthorName  string             `json:"author_name"`
	IsPublished bool               `json:"is_published"`
	Sections    []seedSection      `json:"sections"`
}

type seedSection struct {
	Title   string       `json:"title"`
	Lessons []seedLesson `json:"lessons"`
}

type seedLesson struct {
	Title    string            `json:"title"`
	Type     models.LessonType `json:"type"`
	VideoURL *string           `json:"video_url"`
	Duration int               `json:"duration"`
	IsFree   bool              `json:"is_free"`
	Blocks   []seedBlock       `json:"content_blocks"`
}

type seedBlock struct {
	Type     string          `json:"type"`
	Content  string          `json:"content"`
	Metadata json.RawMessage `json:"metadata"`
}

// Seed populates an empty store with a sample course that uses every block
// kind. It goes through the tree service so orders come from the same
// counters as API writes. A store that already holds any course is left
// untouched.
func Seed(ctx context.Context, svc *tree.Service, log *logger.Logger) error {
	if log == nil {
		log = logger.NewNop()
	}
	page, err := svc.ListCourses(ctx, models.CourseQuery{Limit: 1, Published: models.PublishedAll})
	if err != nil {
		return fmt.Errorf("seed check courses: %w", err)
	}
	if page.Meta.Total > 0 {
		log.Info("database already seeded, skipping")
		return nil
	}

	var courses []seedCourse
	if err := json.Unmarshal(seedData, &courses); err != nil {
		return fmt.Errorf("seed decode: %w", err)
	}

	for _, sc := range courses {
		if err := seedOne(ctx, svc, sc); err != nil {
			return fmt.Errorf("seed course %q: %w", sc.Slug, err)
		}
		log.Info("seeded course", "slug", sc.Slug, "sections", len(sc.Sections))
	}
	return nil
}

func seedOne(ctx context.Context, svc *tree.Service, sc seedCourse) error {
	c, err := svc.CreateCourse(ctx, models.CoursePatch{
		Title:       &sc.Title,
		Slug:        &sc.Slug,
		Description: &sc.Description,
		Price:       &sc.Price,
		Level:       &sc.Level,
		AuthorName:  &sc.AuthorName,
		IsPublished: &sc.IsPublished,
	})
	if err != nil {
		return err
	}

	for _, ss := range sc.Sections {
		sec, err := svc.CreateSection(ctx, c.ID, ss.Title, nil)
		if err != nil {
			return err
		}
		for _, sl := range ss.Lessons {
			lessonSlug := slug.Generate(sc.Slug + " " + sl.Title)
			l, err := svc.CreateLesson(ctx, sec.ID, models.LessonPatch{
				Title:    &sl.Title,
				Slug:     &lessonSlug,
				Type:     &sl.Type,
				VideoURL: sl.VideoURL,
				Duration: &sl.Duration,
				IsFree:   &sl.IsFree,
			})
			if err != nil {
				return err
			}
			for _, sb := range sl.Blocks {
				in := models.BlockPatch{Type: &sb.Type, Content: &sb.Content}
				if len(sb.Metadata) > 0 {
					in.Metadata = &sb.Metadata
				}
				if _, err := svc.CreateBlock(ctx, l.ID, in); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
