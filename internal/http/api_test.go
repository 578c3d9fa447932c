package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-platform/internal/auth"
	"blog-platform/internal/repository/memory"
	"blog-platform/internal/service"
)

func newTestRouter(tokenTTL time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := service.NewUserService(memory.NewUserRepository())
	posts := service.NewPostService(memory.NewPostRepository())
	tokens := auth.NewTokenService("test-secret", tokenTTL)

	router := gin.New()
	NewHandler(users, posts, tokens).RegisterRoutes(router)
	return router
}

func perform(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func register(t *testing.T, router *gin.Engine, email, password string) map[string]interface{} {
	t.Helper()
	rec := perform(t, router, http.MethodPost, "/users/", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode(t, rec)
}

func login(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	rec := perform(t, router, http.MethodPost, "/token", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	router := newTestRouter(time.Minute)

	first := register(t, router, "a@x.com", "pw1")
	assert.Equal(t, true, first["is_admin"])
	assert.NotEmpty(t, first["id"])

	second := register(t, router, "b@x.com", "pw2")
	assert.Equal(t, false, second["is_admin"])
}

func TestRegisterRejectsBadInput(t *testing.T) {
	router := newTestRouter(time.Minute)

	rec := perform(t, router, http.MethodPost, "/users/", "", gin.H{"email": "not-an-email", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(t, router, http.MethodPost, "/users/", "", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(time.Minute)

	register(t, router, "a@x.com", "pw1")

	rec := perform(t, router, http.MethodPost, "/users/", "", gin.H{"email": "a@x.com", "password": "other"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email already registered", decode(t, rec)["error"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(time.Minute)

	register(t, router, "a@x.com", "pw1")

	wrongPassword := perform(t, router, http.MethodPost, "/token", "", gin.H{"email": "a@x.com", "password": "nope"})
	unknownEmail := perform(t, router, http.MethodPost, "/token", "", gin.H{"email": "ghost@x.com", "password": "pw1"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, decode(t, wrongPassword)["error"], decode(t, unknownEmail)["error"])
	assert.Equal(t, "Bearer", wrongPassword.Header().Get("WWW-Authenticate"))
}

func TestCurrentUser(t *testing.T) {
	router := newTestRouter(time.Minute)

	register(t, router, "a@x.com", "pw1")
	token := login(t, router, "a@x.com", "pw1")

	rec := perform(t, router, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(time.Minute)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/me"},
		{http.MethodGet, "/users/"},
		{http.MethodPost, "/posts/"},
		{http.MethodPut, "/posts/some-id"},
		{http.MethodDelete, "/posts/some-id"},
	}

	for _, p := range paths {
		rec := perform(t, router, p.method, p.path, "", gin.H{})
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	}

	rec := perform(t, router, http.MethodGet, "/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	router := newTestRouter(-time.Minute)

	register(t, router, "a@x.com", "pw1")
	token := login(t, router, "a@x.com", "pw1")

	rec := perform(t, router, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListUsersAdminOnly(t *testing.T) {
	router := newTestRouter(time.Minute)

	register(t, router, "a@x.com", "pw1")
	register(t, router, "b@x.com", "pw2")

	adminToken := login(t, router, "a@x.com", "pw1")
	rec := perform(t, router, http.MethodGet, "/users/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	memberToken := login(t, router, "b@x.com", "pw2")
	rec = perform(t, router, http.MethodGet, "/users/", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPostLifecycle(t *testing.T) {
	router := newTestRouter(time.Minute)

	register(t, router, "a@x.com", "pw1")
	registered := register(t, router, "b@x.com", "pw2")

	tokenA := login(t, router, "a@x.com", "pw1")
	tokenB := login(t, router, "b@x.com", "pw2")

	created := perform(t, router, http.MethodPost, "/posts/", tokenB, gin.H{"title": "T", "content": "C"})
	require.Equal(t, http.StatusCreated, created.Code)
	post := decode(t, created)
	postID, _ := post["id"].(string)
	require.NotEmpty(t, postID)
	assert.Equal(t, registered["id"], post["owner_id"])
	assert.Equal(t, "b@x.com", post["author_email"])
	assert.NotEmpty(t, post["publication_date"])

	// anonymous read resolves the author at response time
	read := perform(t, router, http.MethodGet, "/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, read.Code)
	assert.Equal(t, "b@x.com", decode(t, read)["author_email"])

	listed := perform(t, router, http.MethodGet, "/posts/", "", nil)
	require.Equal(t, http.StatusOK, listed.Code)
	var posts []map[string]interface{}
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &posts))
	require.Len(t, posts, 1)

	// non-owner may neither update nor delete
	forbidden := perform(t, router, http.MethodPut, "/posts/"+postID, tokenA, gin.H{"title": "stolen"})
	assert.Equal(t, http.StatusForbidden, forbidden.Code)
	forbidden = perform(t, router, http.MethodDelete, "/posts/"+postID, tokenA, nil)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	after := perform(t, router, http.MethodGet, "/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, after.Code)
	assert.Equal(t, "T", decode(t, after)["title"])

	// partial update by the owner touches only the supplied field
	updated := perform(t, router, http.MethodPut, "/posts/"+postID, tokenB, gin.H{"title": "T2"})
	require.Equal(t, http.StatusOK, updated.Code)
	body := decode(t, updated)
	assert.Equal(t, "T2", body["title"])
	assert.Equal(t, "C", body["content"])
	assert.Equal(t, post["publication_date"], body["publication_date"])

	deleted := perform(t, router, http.MethodDelete, "/posts/"+postID, tokenB, nil)
	require.Equal(t, http.StatusNoContent, deleted.Code)

	gone := perform(t, router, http.MethodGet, "/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestGetMissingPost(t *testing.T) {
	router := newTestRouter(time.Minute)

	rec := perform(t, router, http.MethodGet, "/posts/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateMissingPost(t *testing.T) {
	router := newTestRouter(time.Minute)

	register(t, router, "a@x.com", "pw1")
	token := login(t, router, "a@x.com", "pw1")

	rec := perform(t, router, http.MethodPut, "/posts/missing", token, gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
