package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/gorm"
)

func testProject(title, slug, category string, sortOrder int, completedAt time.Time) models.Project {
	return models.Project{
		Title:       title,
		Slug:        slug,
		Description: "description",
		Category:    category,
		IsActive:    true,
		SortOrder:   sortOrder,
		CompletedAt: completedAt,
	}
}

func TestProjectRepo_List_OrderedBySortOrderThenCompletion(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	now := time.Now()

	late := testProject("Late", "late", "Web Application", 2, now.Add(-time.Hour))
	earlyOld := testProject("Early Old", "early-old", "Web Application", 1, now.Add(-48*time.Hour))
	earlyNew := testProject("Early New", "early-new", "Web Application", 1, now.Add(-24*time.Hour))
	for _, project := range []*models.Project{&late, &earlyOld, &earlyNew} {
		require.NoError(t, repo.Add(project))
	}

	items, total, err := repo.List(ProjectFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, "early-new", items[0].Slug)
	assert.Equal(t, "early-old", items[1].Slug)
	assert.Equal(t, "late", items[2].Slug)
}

func TestProjectRepo_List_Filters(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	now := time.Now()

	web := testProject("Shop Frontend", "shop-frontend", "Web Application", 0, now)
	api := testProject("Shop API", "shop-api", "API Development", 0, now)
	inactive := testProject("Old Shop", "old-shop", "Web Application", 0, now)
	inactive.IsActive = false
	for _, project := range []*models.Project{&web, &api, &inactive} {
		require.NoError(t, repo.Add(project))
	}

	active := true
	items, total, err := repo.List(ProjectFilter{Active: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	items, total, err = repo.List(ProjectFilter{Category: "API Development"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "shop-api", items[0].Slug)

	_, total, err = repo.List(ProjectFilter{Search: "shop"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestProjectRepo_FindBySlugActive(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	now := time.Now()

	active := testProject("Active", "active", "Web Application", 0, now)
	hidden := testProject("Hidden", "hidden", "Web Application", 0, now)
	hidden.IsActive = false
	require.NoError(t, repo.Add(&active))
	require.NoError(t, repo.Add(&hidden))

	found, err := repo.FindBySlugActive("active")
	require.NoError(t, err)
	assert.Equal(t, active.ID, found.ID)

	_, err = repo.FindBySlugActive("hidden")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepo_Categories(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	now := time.Now()

	first := testProject("One", "one", "Web Application", 0, now)
	second := testProject("Two", "two", "API Development", 0, now)
	third := testProject("Three", "three", "Web Application", 0, now)
	for _, project := range []*models.Project{&first, &second, &third} {
		require.NoError(t, repo.Add(project))
	}

	categories, err := repo.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"API Development", "Web Application"}, categories)
}

func TestProjectRepo_SlugExists(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	project := testProject("One", "one", "Web Application", 0, time.Now())
	require.NoError(t, repo.Add(&project))

	exists, err := repo.SlugExists("one", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists("one", project.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
