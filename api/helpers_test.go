package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/assets"
	"github.com/yunanda/portfolio-backend/database"
	"github.com/yunanda/portfolio-backend/models"
	"github.com/yunanda/portfolio-backend/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testBackendPassword = "test-password"

type testEnv struct {
	db     *gorm.DB
	store  *assets.Store
	router *chi.Mux
}

// newTestEnv wires the full route surface against an in-memory
// database and a temp-dir asset store.
func newTestEnv(t *testing.T, generator services.ReplyGenerator) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Blog{},
		&models.Project{},
		&models.Skill{},
		&models.Profile{},
		&models.Contact{},
	))

	store, err := assets.NewStore(t.TempDir())
	require.NoError(t, err)

	chatbot := services.NewChatbotWithGenerator(generator, 0, zerolog.Nop())

	handlers := initializeHandlers(database.New(db), store, chatbot)
	router := chi.NewRouter()
	setupRoutes(router, handlers, newAuthMiddleware(testBackendPassword), store.BaseDir())

	return testEnv{db: db, store: store, router: router}
}

func (e testEnv) request(t *testing.T, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+testBackendPassword)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), dst))
}
