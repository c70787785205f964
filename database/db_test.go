package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database with the full
// schema migrated. MaxOpenConns is pinned to 1 so the pool never hands
// out a second, empty :memory: database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Blog{},
		&models.Project{},
		&models.Skill{},
		&models.Profile{},
		&models.Contact{},
	)
	require.NoError(t, err)

	return db
}

func publishedBlog(title, slug, category string, publishedAt time.Time, tags ...string) models.Blog {
	return models.Blog{
		Title:       title,
		Slug:        slug,
		Excerpt:     "excerpt",
		Content:     "content",
		Category:    category,
		Status:      models.StatusPublished,
		Tags:        tags,
		PublishedAt: &publishedAt,
	}
}

func draftBlog(title, slug string) models.Blog {
	return models.Blog{
		Title:    title,
		Slug:     slug,
		Excerpt:  "excerpt",
		Content:  "content",
		Category: "General",
		Status:   models.StatusDraft,
	}
}
