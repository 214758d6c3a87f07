package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/api"
	"github.com/pet-catalog-api/internal/auth"
	"github.com/pet-catalog-api/internal/config"
	"github.com/pet-catalog-api/internal/metrics"
	"github.com/pet-catalog-api/internal/mocks"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	cfg    *config.Config
	mocks  *mocks.MockRepositories
	store  *mocks.MemoryObjectStore
}

type errorResponse struct {
	StatusCode int             `json:"statusCode"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Details    json.RawMessage `json:"details"`
	Path       string          `json:"path"`
	Method     string          `json:"method"`
	Timestamp  string          `json:"timestamp"`
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "3001", AllowedOrigins: []string{"http://localhost:3000"}},
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			JWTIssuer: "pet-catalog",
			TokenTTL:  time.Hour,
		},
		Storage: config.StorageConfig{Driver: "local", PublicBaseURL: "/uploads", MaxUploadSize: 1024},
	}

	m := mocks.NewMockRepositories()
	store := mocks.NewMemoryObjectStore()
	services := service.NewServices(m.Repositories(), cfg, store, mocks.NewMemoryTagCache(), zerolog.Nop())

	reg := prometheus.NewRegistry()
	router := api.NewRouter(services, cfg, api.Options{
		Metrics:  metrics.NewHTTPMetrics(reg),
		Gatherer: reg,
	}, zerolog.Nop())

	return &testEnv{router: router, cfg: cfg, mocks: m, store: store}
}

// user stores a user and returns a bearer token for it
func (e *testEnv) user(t *testing.T, role models.UserRole) (*models.User, string) {
	t.Helper()
	now := time.Now().UTC()
	name := "Test " + string(role)
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(string(role)) + "-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: "$2a$10$not-a-real-hash",
		Name:         &name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.mocks.User.Create(context.Background(), u))

	token, err := auth.Mint(e.cfg.Auth, now, u.ID, role, 0)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createPet(t *testing.T, token string, in map[string]any) models.Pet {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/pets", in, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pet models.Pet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pet))
	return pet
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "pet-catalog-api", response["service"])
}

func TestReadinessEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}
	services := service.NewServices(mocks.NewMockRepositories().Repositories(), cfg, mocks.NewMemoryObjectStore(), mocks.NewMemoryTagCache(), zerolog.Nop())

	var pingErr error
	router := api.NewRouter(services, cfg, api.Options{
		Ready: func(ctx context.Context) error { return pingErr },
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	pingErr = errors.New("connection refused")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "SERVICE_UNAVAILABLE", resp.Error)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/tags", nil, "").Code)

	w := env.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "pet_catalog_http_requests_total")
	assert.Contains(t, body, `route="/api/tags"`)
}

func TestUnknownRoute(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodGet, "/api/nope", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Error)
}

func TestCORSHeaders(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/pets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuth(t *testing.T) {
	env := setupTestRouter(t)
	_, userToken := env.user(t, models.RoleUser)
	_, editorToken := env.user(t, models.RoleEditor)

	expired, err := auth.Mint(env.cfg.Auth, time.Now().Add(-2*time.Hour), uuid.NewString(), models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	otherSecret := env.cfg.Auth
	otherSecret.JWTSecret = "someone-else"
	forged, err := auth.Mint(otherSecret, time.Now(), uuid.NewString(), models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantKind   string
	}{
		{"missing token", http.MethodPost, "/api/pets", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"expired token", http.MethodPost, "/api/pets", expired, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong signature", http.MethodGet, "/api/users/me", forged, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"user cannot create pets", http.MethodPost, "/api/pets", userToken, http.StatusForbidden, "FORBIDDEN"},
		{"editor cannot delete pets", http.MethodDelete, "/api/pets/" + uuid.NewString(), editorToken, http.StatusForbidden, "FORBIDDEN"},
		{"user cannot moderate", http.MethodPost, "/api/comments/" + uuid.NewString() + "/approve", userToken, http.StatusForbidden, "FORBIDDEN"},
		{"editor cannot read audit", http.MethodGet, "/api/admin/audit", editorToken, http.StatusForbidden, "FORBIDDEN"},
		{"user cannot upload", http.MethodPost, "/api/media", userToken, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, map[string]any{}, tt.token)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			resp := decodeError(t, w)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantKind, resp.Error)
			assert.Equal(t, tt.path, resp.Path)
			assert.Equal(t, tt.method, resp.Method)
			assert.NotEmpty(t, resp.Timestamp)
		})
	}
}

func TestPetLifecycle(t *testing.T) {
	env := setupTestRouter(t)
	_, editorToken := env.user(t, models.RoleEditor)
	_, adminToken := env.user(t, models.RoleAdmin)

	pet := env.createPet(t, editorToken, map[string]any{
		"slug":       "siberian-husky",
		"commonName": "Siberian Husky",
		"tags":       []string{"Dog", "Dog"},
		"classifications": []map[string]string{
			{"type": "size", "value": "Medium"},
		},
	})
	assert.Equal(t, models.PetStatusDraft, pet.Status)
	assert.Nil(t, pet.PublishedAt)
	require.Len(t, pet.Tags, 1)
	assert.Equal(t, "dog", pet.Tags[0].Slug)
	require.Len(t, pet.Classifications, 1)

	// drafts are hidden from the default listing
	w := env.do(t, http.MethodGet, "/api/pets", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var page models.PetPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Meta.Total)

	w = env.do(t, http.MethodPatch, "/api/pets/"+pet.ID, map[string]any{"status": "PUBLISHED"}, editorToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Pet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.PetStatusPublished, updated.Status)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, "Siberian Husky", updated.CommonName)

	w = env.do(t, http.MethodGet, "/api/pets?tag=dog&limit=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, models.PageMeta{Total: 1, Page: 1, Limit: 5, TotalPages: 1}, page.Meta)

	w = env.do(t, http.MethodGet, "/api/pets/siberian-husky", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail models.PetDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, pet.ID, detail.ID)
	assert.NotNil(t, detail.Comments)

	w = env.do(t, http.MethodDelete, "/api/pets/"+pet.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Pet deleted successfully"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/pets/siberian-husky", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "NOT_FOUND", resp.Error)
	assert.Equal(t, "Pet not found", resp.Message)

	actions := []string{}
	for _, entry := range env.mocks.Audit.Entries() {
		actions = append(actions, entry.Action)
		require.NotNil(t, entry.UserID)
	}
	assert.Equal(t, []string{models.AuditPetCreated, models.AuditPetUpdated, models.AuditPetDeleted}, actions)
}

func TestCreatePet_Errors(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.user(t, models.RoleAdmin)
	env.createPet(t, token, map[string]any{"slug": "axolotl", "commonName": "Axolotl"})

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantKind   string
	}{
		{"malformed json", `{"slug":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad slug", map[string]any{"slug": "Not A Slug", "commonName": "X"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing common name", map[string]any{"slug": "gecko"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad status", map[string]any{"slug": "gecko", "commonName": "Gecko", "status": "LIVE"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"duplicate slug", map[string]any{"slug": "axolotl", "commonName": "Axolotl"}, http.StatusConflict, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/pets", tt.body, token)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantKind, decodeError(t, w).Error)
		})
	}
}

func TestUpdatePet_MalformedID(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.user(t, models.RoleEditor)

	w := env.do(t, http.MethodPatch, "/api/pets/not-a-uuid", map[string]any{"commonName": "X"}, token)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Pet not found", decodeError(t, w).Message)
}

func TestListPets_InvalidQuery(t *testing.T) {
	env := setupTestRouter(t)

	for _, query := range []string{"page=abc", "page=0", "limit=101", "limit=0", "status=LIVE", "sort=random"} {
		t.Run(query, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/pets?"+query, nil, "")
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Error)
		})
	}
}

func TestCommentModeration(t *testing.T) {
	env := setupTestRouter(t)
	_, editorToken := env.user(t, models.RoleEditor)
	reader, readerToken := env.user(t, models.RoleUser)
	pet := env.createPet(t, editorToken, map[string]any{"slug": "corgi", "commonName": "Corgi", "status": "PUBLISHED"})

	w := env.do(t, http.MethodPost, "/api/comments", map[string]any{"petId": pet.ID, "content": "  Short legs, big heart.  "}, readerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var comment models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(t, models.CommentStatusPending, comment.Status)
	assert.Equal(t, reader.ID, comment.UserID)
	assert.Equal(t, "Short legs, big heart.", comment.Content)

	w = env.do(t, http.MethodGet, "/api/comments/pet/"+pet.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/comments/"+comment.ID+"/approve", nil, editorToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/comments/pet/"+pet.ID, nil, "")
	var approved []models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approved))
	require.Len(t, approved, 1)
	assert.Equal(t, models.CommentStatusApproved, approved[0].Status)
	require.NotNil(t, approved[0].User)
	assert.Equal(t, reader.Email, approved[0].User.Email)

	w = env.do(t, http.MethodPost, "/api/comments/"+comment.ID+"/reject", nil, editorToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/comments/pet/"+pet.ID, nil, "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/comments/"+uuid.NewString()+"/approve", nil, editorToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/comments", map[string]any{"petId": uuid.NewString(), "content": "hi"}, readerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/comments", map[string]any{"petId": pet.ID, "content": "   "}, readerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTags(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.user(t, models.RoleEditor)

	w := env.do(t, http.MethodGet, "/api/tags", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	env.createPet(t, token, map[string]any{"slug": "macaw", "commonName": "Macaw", "tags": []string{"Bird"}, "status": "PUBLISHED"})
	env.createPet(t, token, map[string]any{"slug": "canary", "commonName": "Canary", "tags": []string{"Bird"}})

	w = env.do(t, http.MethodGet, "/api/tags/bird", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var tag models.TagWithPets
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tag))
	assert.Equal(t, "Bird", tag.Name)
	require.Len(t, tag.Pets, 1)
	assert.Equal(t, "macaw", tag.Pets[0].Slug)

	w = env.do(t, http.MethodGet, "/api/tags/unknown", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestSearch(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.user(t, models.RoleEditor)
	env.createPet(t, token, map[string]any{"slug": "bearded-dragon", "commonName": "Bearded Dragon", "status": "PUBLISHED"})
	env.createPet(t, token, map[string]any{"slug": "beagle", "commonName": "Beagle", "status": "PUBLISHED"})

	w := env.do(t, http.MethodGet, "/api/search?q=dragon", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var pets []models.Pet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pets))
	require.Len(t, pets, 1)
	assert.Equal(t, "bearded-dragon", pets[0].Slug)

	w = env.do(t, http.MethodGet, "/api/search?q=%20%20", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/search/suggestions?q=be&limit=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var suggestions []models.PetSuggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestions))
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Beagle", suggestions[0].CommonName)

	w = env.do(t, http.MethodGet, "/api/search/suggestions?q=b", nil, "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/search?q=dragon&limit=ten", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Error)
}

func TestBookmarks(t *testing.T) {
	env := setupTestRouter(t)
	_, editorToken := env.user(t, models.RoleEditor)
	reader, readerToken := env.user(t, models.RoleUser)
	pet := env.createPet(t, editorToken, map[string]any{"slug": "ferret", "commonName": "Ferret", "tags": []string{"Mammal"}})

	w := env.do(t, http.MethodPost, "/api/users/me/bookmarks", map[string]any{"petId": pet.ID}, readerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/users/me/bookmarks", map[string]any{"petId": pet.ID}, readerToken)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, w).Error)

	w = env.do(t, http.MethodPost, "/api/users/me/bookmarks", map[string]any{}, readerToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/users/me", nil, readerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	var profile models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, reader.ID, profile.ID)
	require.Len(t, profile.Bookmarks, 1)
	require.NotNil(t, profile.Bookmarks[0].Pet)
	assert.Equal(t, "ferret", profile.Bookmarks[0].Pet.Slug)
	assert.Len(t, profile.Bookmarks[0].Pet.Tags, 1)

	w = env.do(t, http.MethodDelete, "/api/users/me/bookmarks/"+pet.ID, nil, readerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Bookmark removed"}`, w.Body.String())

	w = env.do(t, http.MethodDelete, "/api/users/me/bookmarks/"+pet.ID, nil, readerToken)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Bookmark not found", decodeError(t, w).Message)
}

func multipartUpload(t *testing.T, fields map[string]string, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestMediaUpload(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.user(t, models.RoleEditor)
	pet := env.createPet(t, token, map[string]any{"slug": "hamster", "commonName": "Hamster"})

	upload := func(fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
		body, contentType := multipartUpload(t, fields, filename, "image/png", content)
		req := httptest.NewRequest(http.MethodPost, "/api/media", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w
	}

	w := upload(map[string]string{"petId": pet.ID, "altText": "A hamster"}, "Hamster.PNG", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var media models.Media
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &media))
	assert.Equal(t, models.MediaTypeImage, media.Type)
	assert.Equal(t, "image/png", media.MimeType)
	assert.Equal(t, int64(len("png-bytes")), media.Size)
	require.NotNil(t, media.PetID)
	assert.Equal(t, pet.ID, *media.PetID)
	assert.True(t, strings.HasSuffix(media.URL, ".png"))
	assert.Len(t, env.store.Objects, 1)

	w = upload(nil, "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decodeError(t, w).Message)

	w = upload(nil, "big.png", bytes.Repeat([]byte("x"), 2048))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(map[string]string{"petId": uuid.NewString()}, "a.png", []byte("x"))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/media/"+media.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.store.Objects)

	w = env.do(t, http.MethodDelete, "/api/media/"+media.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	env := setupTestRouter(t)
	_, editorToken := env.user(t, models.RoleEditor)
	admin, adminToken := env.user(t, models.RoleAdmin)
	env.createPet(t, adminToken, map[string]any{"slug": "iguana", "commonName": "Iguana"})

	w := env.do(t, http.MethodGet, "/api/admin/stats", nil, editorToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pets":1,"users":2,"comments":0,"media":0}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/admin/audit", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.AuditLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, models.AuditPetCreated, entries[0].Action)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, admin.Email, entries[0].User.Email)

	w = env.do(t, http.MethodGet, "/api/admin/audit?limit=x", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
