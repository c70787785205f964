package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/models"
)

// seedSkillWithLogo stores a logo file and inserts a skill pointing at it.
func seedSkillWithLogo(t *testing.T, env testEnv) (models.Skill, string) {
	t.Helper()

	logoPath, err := env.store.Save(context.Background(), "skills", "go.png", strings.NewReader("logo-bytes"))
	require.NoError(t, err)
	require.True(t, env.store.Exists(logoPath))

	skill := models.Skill{
		ID:       uuid.New(),
		Name:     "Go",
		Category: "Backend",
		LogoURL:  &logoPath,
		IsActive: true,
	}
	require.NoError(t, env.db.Create(&skill).Error)
	return skill, logoPath
}

func TestDeleteSkill_ReleasesStoredLogo(t *testing.T) {
	env := newTestEnv(t, nil)
	skill, logoPath := seedSkillWithLogo(t, env)

	recorder := env.request(t, http.MethodDelete, "/admin/skills/"+skill.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.False(t, env.store.Exists(logoPath))
}

func TestUpdateSkill_ExternalLogoReleasesStoredFile(t *testing.T) {
	env := newTestEnv(t, nil)
	skill, logoPath := seedSkillWithLogo(t, env)

	recorder := env.request(t, http.MethodPut, "/admin/skills/"+skill.ID.String(), map[string]any{
		"name":     "Go",
		"category": "Backend",
		"logoUrl":  "https://example.com/go.svg",
		"isActive": true,
	}, true)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.Skill
	decodeResponse(t, recorder, &updated)
	require.NotNil(t, updated.LogoURL)
	assert.Equal(t, "https://example.com/go.svg", *updated.LogoURL)
	assert.False(t, env.store.Exists(logoPath))
}

func TestUpdateSkill_AbsentLogoInputKeepsStoredFile(t *testing.T) {
	env := newTestEnv(t, nil)
	skill, logoPath := seedSkillWithLogo(t, env)

	recorder := env.request(t, http.MethodPut, "/admin/skills/"+skill.ID.String(), map[string]any{
		"name":     "Golang",
		"category": "Backend",
		"isActive": true,
	}, true)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.Skill
	decodeResponse(t, recorder, &updated)
	require.NotNil(t, updated.LogoURL)
	assert.Equal(t, logoPath, *updated.LogoURL)
	assert.True(t, env.store.Exists(logoPath))
}

func TestCreateSkill_StoresUploadedLogo(t *testing.T) {
	env := newTestEnv(t, nil)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("name", "PostgreSQL"))
	require.NoError(t, form.WriteField("category", "Database"))
	require.NoError(t, form.WriteField("is_active", "1"))
	part, err := form.CreateFormFile("logo_file", "postgres.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("logo-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/skills", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testBackendPassword)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var skill models.Skill
	decodeResponse(t, recorder, &skill)
	require.NotNil(t, skill.LogoURL)
	assert.True(t, strings.HasPrefix(*skill.LogoURL, "skills/"))
	assert.True(t, env.store.Exists(*skill.LogoURL))
}

func TestToggleSkillActive_UsesPatch(t *testing.T) {
	env := newTestEnv(t, nil)
	skill, _ := seedSkillWithLogo(t, env)

	recorder := env.request(t, http.MethodPatch, "/admin/skills/"+skill.ID.String()+"/toggle-active", nil, true)
	require.Equal(t, http.StatusOK, recorder.Code)

	var toggled models.Skill
	decodeResponse(t, recorder, &toggled)
	assert.False(t, toggled.IsActive)
}
