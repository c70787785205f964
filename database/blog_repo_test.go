package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/errs"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/gorm"
)

func TestBlogRepo_AddAssignsID(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))

	blog := draftBlog("First Post", "first-post")
	require.NoError(t, repo.Add(&blog))
	assert.NotEqual(t, uuid.Nil, blog.ID)

	found, err := repo.FindByID(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Post", found.Title)
}

func TestBlogRepo_SlugIsUnique(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))

	first := draftBlog("First", "shared-slug")
	require.NoError(t, repo.Add(&first))

	duplicate := draftBlog("Second", "shared-slug")
	err := repo.Add(&duplicate)
	require.Error(t, err)
	assert.True(t, errs.IsUniqueViolation(err))
}

func TestBlogRepo_SlugExists(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))

	blog := draftBlog("First Post", "first-post")
	require.NoError(t, repo.Add(&blog))

	exists, err := repo.SlugExists("first-post", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// Editing a post does not collide with its own slug.
	exists, err = repo.SlugExists("first-post", blog.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SlugExists("other-post", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlogRepo_FindBySlugPublished(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))
	now := time.Now()

	visible := publishedBlog("Visible", "visible", "General", now.Add(-time.Hour))
	scheduled := publishedBlog("Scheduled", "scheduled", "General", now.Add(time.Hour))
	draft := draftBlog("Draft", "draft")
	require.NoError(t, repo.Add(&visible))
	require.NoError(t, repo.Add(&scheduled))
	require.NoError(t, repo.Add(&draft))

	found, err := repo.FindBySlugPublished("visible", now)
	require.NoError(t, err)
	assert.Equal(t, visible.ID, found.ID)

	_, err = repo.FindBySlugPublished("scheduled", now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindBySlugPublished("draft", now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBlogRepo_List_FiltersAndPagination(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))
	now := time.Now()

	for i, slug := range []string{"go-intro", "go-advanced", "python-basics"} {
		blog := publishedBlog("Post "+slug, slug, "Programming", now.Add(-time.Duration(i)*time.Hour))
		require.NoError(t, repo.Add(&blog))
	}
	draft := draftBlog("Unfinished Go Notes", "go-notes")
	require.NoError(t, repo.Add(&draft))

	items, total, err := repo.List(BlogFilter{Status: models.StatusPublished})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 3)

	items, total, err = repo.List(BlogFilter{Search: "GO"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 3)

	items, total, err = repo.List(BlogFilter{Page: 2, PerPage: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, items, 1)
}

func TestBlogRepo_List_PublishedAtSortPutsDraftsLast(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))
	now := time.Now()

	older := publishedBlog("Older", "older", "General", now.Add(-2*time.Hour))
	newer := publishedBlog("Newer", "newer", "General", now.Add(-time.Hour))
	draft := draftBlog("Draft", "draft")
	require.NoError(t, repo.Add(&draft))
	require.NoError(t, repo.Add(&older))
	require.NoError(t, repo.Add(&newer))

	items, _, err := repo.List(BlogFilter{SortBy: "published_at", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "newer", items[0].Slug)
	assert.Equal(t, "older", items[1].Slug)
	assert.Equal(t, "draft", items[2].Slug)
}

func TestBlogRepo_ListPublished_HidesDraftsAndScheduled(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))
	now := time.Now()

	visible := publishedBlog("Visible", "visible", "General", now.Add(-time.Hour))
	scheduled := publishedBlog("Scheduled", "scheduled", "General", now.Add(time.Hour))
	draft := draftBlog("Draft", "draft")
	require.NoError(t, repo.Add(&visible))
	require.NoError(t, repo.Add(&scheduled))
	require.NoError(t, repo.Add(&draft))

	items, total, err := repo.ListPublished(BlogFilter{PerPage: 10}, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "visible", items[0].Slug)
}

func TestBlogRepo_IncrementViews(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))

	blog := draftBlog("Post", "post")
	require.NoError(t, repo.Add(&blog))

	require.NoError(t, repo.IncrementViews(blog.ID))
	require.NoError(t, repo.IncrementViews(blog.ID))

	found, err := repo.FindByID(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ViewsCount)
}

func TestBlogRepo_Related(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))
	now := time.Now()

	current := publishedBlog("Current", "current", "Programming", now.Add(-5*time.Hour), "go", "testing")
	sameOld := publishedBlog("Same Category Old", "same-old", "Programming", now.Add(-4*time.Hour))
	sameNew := publishedBlog("Same Category New", "same-new", "Programming", now.Add(-time.Hour))
	tagged := publishedBlog("Other Category Tagged", "tagged", "Tutorial", now.Add(-2*time.Hour), "go")
	unrelated := publishedBlog("Unrelated", "unrelated", "News", now.Add(-time.Hour), "life")
	draft := draftBlog("Same Category Draft", "same-draft")
	draft.Category = "Programming"

	for _, blog := range []*models.Blog{&current, &sameOld, &sameNew, &tagged, &unrelated, &draft} {
		require.NoError(t, repo.Add(blog))
	}

	related, err := repo.Related(current, 3, now)
	require.NoError(t, err)
	require.Len(t, related, 3)
	// Same category newest-first, then the cross-category tag match.
	assert.Equal(t, "same-new", related[0].Slug)
	assert.Equal(t, "same-old", related[1].Slug)
	assert.Equal(t, "tagged", related[2].Slug)

	capped, err := repo.Related(current, 2, now)
	require.NoError(t, err)
	require.Len(t, capped, 2)
	assert.Equal(t, "same-new", capped[0].Slug)
	assert.Equal(t, "same-old", capped[1].Slug)
}

func TestBlogRepo_PopularTags(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))
	now := time.Now()

	a := publishedBlog("A", "a", "General", now.Add(-time.Hour), "go", "web")
	b := publishedBlog("B", "b", "General", now.Add(-2*time.Hour), "go", "ml")
	c := publishedBlog("C", "c", "General", now.Add(-3*time.Hour), "go", "web")
	hidden := draftBlog("Hidden", "hidden")
	hidden.Tags = []string{"secret"}

	for _, blog := range []*models.Blog{&a, &b, &c, &hidden} {
		require.NoError(t, repo.Add(blog))
	}

	tags, err := repo.PopularTags(2, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, tags)
}

func TestBlogRepo_NextAndPrevious(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))
	now := time.Now()

	first := publishedBlog("First", "first", "General", now.Add(-3*time.Hour))
	second := publishedBlog("Second", "second", "General", now.Add(-2*time.Hour))
	third := publishedBlog("Third", "third", "General", now.Add(-time.Hour))
	for _, blog := range []*models.Blog{&first, &second, &third} {
		require.NoError(t, repo.Add(blog))
	}

	next, err := repo.NextAfter(*second.PublishedAt, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "third", next.Slug)

	previous, err := repo.PreviousBefore(*second.PublishedAt, now)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, "first", previous.Slug)

	next, err = repo.NextAfter(*third.PublishedAt, now)
	require.NoError(t, err)
	assert.Nil(t, next)

	previous, err = repo.PreviousBefore(*first.PublishedAt, now)
	require.NoError(t, err)
	assert.Nil(t, previous)
}

func TestBlogRepo_Stats(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))
	now := time.Now()

	published := publishedBlog("Published", "published", "General", now.Add(-time.Hour))
	published.ViewsCount = 10
	draft := draftBlog("Draft", "draft")
	archived := draftBlog("Archived", "archived")
	archived.Status = models.StatusArchived
	for _, blog := range []*models.Blog{&published, &draft, &archived} {
		require.NoError(t, repo.Add(blog))
	}

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 1, stats.Published)
	assert.EqualValues(t, 1, stats.Draft)
	assert.EqualValues(t, 1, stats.Archived)
	assert.EqualValues(t, 10, stats.TotalViews)
	assert.Len(t, stats.Recent, 3)
	require.Len(t, stats.Popular, 1)
	assert.Equal(t, "published", stats.Popular[0].Slug)
}

func TestBlogRepo_DeleteMissing(t *testing.T) {
	repo := NewBlogRepo(newTestDB(t))

	err := repo.Delete(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
