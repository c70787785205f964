package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/models"
)

func TestPrepareBlogCreate_FillsDerivedFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	blog := &models.Blog{
		Title:   "Getting Started With Go",
		Content: "<p>some body text here</p>",
		Status:  models.StatusPublished,
	}

	err := PrepareBlogCreate(blog, &fakeSlugChecker{taken: map[string]bool{}}, now)
	require.NoError(t, err)

	assert.Equal(t, "getting-started-with-go", blog.Slug)
	assert.Equal(t, 1, blog.ReadTime)
	require.NotNil(t, blog.PublishedAt)
	assert.True(t, blog.PublishedAt.Equal(now))
}

func TestPrepareBlogCreate_DraftIsNotStamped(t *testing.T) {
	blog := &models.Blog{Title: "Draft Post", Content: "text", Status: models.StatusDraft}

	err := PrepareBlogCreate(blog, &fakeSlugChecker{taken: map[string]bool{}}, time.Now())
	require.NoError(t, err)

	assert.Nil(t, blog.PublishedAt)
}

func TestPrepareBlogUpdate_PreservesPublishedAt(t *testing.T) {
	firstPublish := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	existing := models.Blog{
		ID:          uuid.New(),
		Title:       "Original Title",
		Slug:        "original-title",
		Content:     "body",
		Status:      models.StatusPublished,
		PublishedAt: &firstPublish,
	}
	updated := &models.Blog{
		ID:      existing.ID,
		Title:   "Original Title",
		Content: "body",
		Status:  models.StatusPublished,
	}

	err := PrepareBlogUpdate(existing, updated, nil, &fakeSlugChecker{taken: map[string]bool{}}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "original-title", updated.Slug)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, updated.PublishedAt.Equal(firstPublish))
}

func TestPrepareBlogUpdate_RegeneratesSlugOnTitleChange(t *testing.T) {
	existing := models.Blog{
		ID:     uuid.New(),
		Title:  "Original Title",
		Slug:   "original-title",
		Status: models.StatusDraft,
	}
	updated := &models.Blog{
		ID:     existing.ID,
		Title:  "Brand New Title",
		Status: models.StatusDraft,
	}

	err := PrepareBlogUpdate(existing, updated, nil, &fakeSlugChecker{taken: map[string]bool{}}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestPrepareBlogUpdate_StampsOnFirstPublish(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	existing := models.Blog{
		ID:     uuid.New(),
		Title:  "Draft Post",
		Slug:   "draft-post",
		Status: models.StatusDraft,
	}
	updated := &models.Blog{
		ID:     existing.ID,
		Title:  "Draft Post",
		Status: models.StatusPublished,
	}

	err := PrepareBlogUpdate(existing, updated, nil, &fakeSlugChecker{taken: map[string]bool{}}, now)
	require.NoError(t, err)

	require.NotNil(t, updated.PublishedAt)
	assert.True(t, updated.PublishedAt.Equal(now))
}

func TestDuplicateBlog_ResetsState(t *testing.T) {
	publishedAt := time.Now()
	image := "blogs/original.jpg"
	src := models.Blog{
		ID:            uuid.New(),
		Title:         "Popular Post",
		Slug:          "popular-post",
		Content:       "body",
		FeaturedImage: &image,
		Status:        models.StatusPublished,
		IsFeatured:    true,
		ViewsCount:    120,
		PublishedAt:   &publishedAt,
	}

	copy, err := DuplicateBlog(src, &fakeSlugChecker{taken: map[string]bool{"popular-post": true}})
	require.NoError(t, err)

	assert.Equal(t, "Popular Post (Copy)", copy.Title)
	assert.Equal(t, "popular-post-copy", copy.Slug)
	assert.Equal(t, models.StatusDraft, copy.Status)
	assert.False(t, copy.IsFeatured)
	assert.Nil(t, copy.PublishedAt)
	assert.Equal(t, 0, copy.ViewsCount)
	assert.Equal(t, uuid.Nil, copy.ID)
	require.NotNil(t, copy.FeaturedImage)
	assert.Equal(t, image, *copy.FeaturedImage)
}
