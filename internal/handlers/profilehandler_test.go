package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Hues-Apply/profile-sync/internal/models"
	"github.com/Hues-Apply/profile-sync/internal/profile"
	"github.com/Hues-Apply/profile-sync/internal/services"
)

// remoteStub is a minimal Remote Profile API that records calls.
type remoteStub struct {
	mu    sync.Mutex
	calls []string
}

func (s *remoteStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.calls = append(s.calls, r.Method+" "+r.URL.Path+" "+string(body))
	s.mu.Unlock()

	if r.Method == http.MethodGet && r.URL.Path == "/api/profile/comprehensive/" {
		w.Write([]byte(`{"success":true,"data":{"profile":{"first_name":"Ada","last_name":"Lovelace"}}}`))
		return
	}
	w.Write([]byte(`{"success":true,"id":100}`))
}

func (s *remoteStub) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func newTestRouter(t *testing.T) (*gin.Engine, *remoteStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &remoteStub{}
	remote := httptest.NewServer(stub)
	t.Cleanup(remote.Close)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SectionDraft{}))

	sessions := services.NewSessionService(nil, remote.URL, time.Hour)
	h := NewProfileHandler(sessions, services.NewDraftService(db))

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck(sessions))
		api.GET("/profile", h.GetProfile)
		api.POST("/profile/save", h.Save)
		api.POST("/profile/reload", h.Reload)
		api.PUT("/profile/personal", h.UpdatePersonal)
		api.PUT("/profile/career", h.UpdateCareer)
		api.PUT("/profile/ai", h.UpdateAIPreferences)
		api.POST("/profile/:section/entries", h.AddEntry)
		api.PUT("/profile/:section/entries/:index", h.UpdateEntry)
		api.DELETE("/profile/:section/entries/:index", h.DeleteEntry)
		api.GET("/profile/drafts", h.ListDrafts)
		api.PUT("/profile/draft/:section", h.SaveDraft)
		api.DELETE("/profile/draft/:section", h.DeleteDraft)
	}
	return r, stub
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingBearerTokenIsRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfileReturnsLoadedSnapshot(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/profile", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Loading  bool `json:"loading"`
			Personal struct {
				Name string `json:"name"`
			} `json:"personalInfo"`
			Education []struct {
				ID string `json:"id"`
			} `json:"education"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Data.Loading)
	assert.Equal(t, "Ada Lovelace", resp.Data.Personal.Name)
	// Empty backend list renders as a single blank placeholder row.
	require.Len(t, resp.Data.Education, 1)
	assert.Equal(t, "new", resp.Data.Education[0].ID)
}

func TestEditThenSavePersonalSection(t *testing.T) {
	r, stub := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/v1/profile/personal",
		`{"name":"Grace Hopper","email":"grace@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/profile/save", `{"section":"Personal"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var sawUpsert bool
	for _, call := range stub.recorded() {
		if strings.HasPrefix(call, "POST /api/profile/personal/ ") {
			sawUpsert = true
			assert.Contains(t, call, `"first_name":"Grace"`)
			assert.Contains(t, call, `"last_name":"Hopper"`)
		}
	}
	assert.True(t, sawUpsert, "save must upsert the personal section")
}

func TestAddAndDeleteEntryThroughAPI(t *testing.T) {
	r, stub := newTestRouter(t)

	// Prime the session.
	doRequest(r, http.MethodGet, "/api/v1/profile", "")
	before := len(stub.recorded())

	w := doRequest(r, http.MethodPost, "/api/v1/profile/education/entries", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var added struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	assert.True(t, strings.HasPrefix(added.Data.ID, "temp_"))

	// Deleting the freshly added temp entry is local-only.
	w = doRequest(r, http.MethodDelete, "/api/v1/profile/education/entries/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, stub.recorded(), before, "temp entry lifecycle must not touch the backend")
}

func TestUpdateEntryValidatesIndex(t *testing.T) {
	r, _ := newTestRouter(t)
	doRequest(r, http.MethodGet, "/api/v1/profile", "")

	w := doRequest(r, http.MethodPut, "/api/v1/profile/education/entries/9",
		`{"id":"new","degree":"BSc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/api/v1/profile/education/entries/0",
		`{"id":"new","degree":"BSc","school":"MIT"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownSectionPathIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/v1/profile/hobbies/entries", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownSaveLabelIsNoOp(t *testing.T) {
	r, stub := newTestRouter(t)
	doRequest(r, http.MethodGet, "/api/v1/profile", "")
	before := len(stub.recorded())

	w := doRequest(r, http.MethodPost, "/api/v1/profile/save", `{"section":"Bogus"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, stub.recorded(), before, "unknown section label must not hit the backend")
}

func TestDraftRoundTripOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/v1/profile/draft/education", `{"degree":"BSc"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/profile/drafts", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []models.SectionDraft `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, profile.SectionEducation, resp.Data[0].Section)
	assert.JSONEq(t, `{"degree":"BSc"}`, resp.Data[0].Payload)

	w = doRequest(r, http.MethodDelete, "/api/v1/profile/draft/education", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/profile/drafts", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestSaveDraftRejectsEmptyBodyAndUnknownSection(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/v1/profile/draft/education", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/api/v1/profile/draft/hobbies", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
