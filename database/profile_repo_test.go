package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/gorm"
)

func testProfile(name string) models.Profile {
	return models.Profile{
		Name:        name,
		Title:       "Full-Stack Developer",
		Bio:         "bio",
		Description: "description",
		Email:       "owner@example.com",
	}
}

func TestProfileRepo_AddActiveDeactivatesOthers(t *testing.T) {
	repo := NewProfileRepo(newTestDB(t))

	first := testProfile("First")
	require.NoError(t, repo.AddActive(&first))

	second := testProfile("Second")
	require.NoError(t, repo.AddActive(&second))

	active, err := repo.GetActive()
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	var count int64
	require.NoError(t, repo.db.Model(&models.Profile{}).Where("is_active = ?", true).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProfileRepo_SetActive(t *testing.T) {
	repo := NewProfileRepo(newTestDB(t))

	first := testProfile("First")
	second := testProfile("Second")
	require.NoError(t, repo.AddActive(&first))
	require.NoError(t, repo.AddActive(&second))

	require.NoError(t, repo.SetActive(first.ID))

	active, err := repo.GetActive()
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	var count int64
	require.NoError(t, repo.db.Model(&models.Profile{}).Where("is_active = ?", true).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProfileRepo_GetActiveWhenNoneExists(t *testing.T) {
	repo := NewProfileRepo(newTestDB(t))

	_, err := repo.GetActive()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProfileRepo_ClearAvatarAndCV(t *testing.T) {
	repo := NewProfileRepo(newTestDB(t))

	avatar := "profiles/avatar.png"
	cv := "profiles/cv.pdf"
	profile := testProfile("Owner")
	profile.Avatar = &avatar
	profile.CVFile = &cv
	require.NoError(t, repo.AddActive(&profile))

	require.NoError(t, repo.ClearAvatar(profile.ID))
	require.NoError(t, repo.ClearCV(profile.ID))

	found, err := repo.FindByID(profile.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Avatar)
	assert.Nil(t, found.CVFile)
}
