package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/models"
)

func testSkill(name, category string, sortOrder int) models.Skill {
	return models.Skill{
		Name:      name,
		Category:  category,
		SortOrder: sortOrder,
		IsActive:  true,
	}
}

func TestSkillRepo_ActiveByCategory(t *testing.T) {
	repo := NewSkillRepo(newTestDB(t))

	react := testSkill("React", "Frontend", 1)
	vue := testSkill("Vue", "Frontend", 2)
	golang := testSkill("Go", "Backend", 1)
	retired := testSkill("Flash", "Frontend", 0)
	retired.IsActive = false
	for _, skill := range []*models.Skill{&react, &vue, &golang, &retired} {
		require.NoError(t, repo.Add(skill))
	}

	grouped, err := repo.ActiveByCategory()
	require.NoError(t, err)
	require.Len(t, grouped, 2)

	frontend := grouped["Frontend"]
	require.Len(t, frontend, 2)
	assert.Equal(t, "React", frontend[0].Name)
	assert.Equal(t, "Vue", frontend[1].Name)

	backend := grouped["Backend"]
	require.Len(t, backend, 1)
	assert.Equal(t, "Go", backend[0].Name)
}

func TestSkillRepo_Featured(t *testing.T) {
	repo := NewSkillRepo(newTestDB(t))

	featured := testSkill("Go", "Backend", 1)
	featured.IsFeatured = true
	plain := testSkill("Bash", "Tools", 1)
	require.NoError(t, repo.Add(&featured))
	require.NoError(t, repo.Add(&plain))

	skills, err := repo.Featured(0)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)
}
