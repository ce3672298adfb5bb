package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamewatch-backend/application/services"
	"gamewatch-backend/infrastructure/persistence/memory"
	"gamewatch-backend/pkg/auth"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminKey = "router-test-admin-key"

// newTestServer wires the full handler stack over in-memory repositories.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()

	games := memory.NewGameRepository()
	users := memory.NewUserRepository()
	watchlist := memory.NewWatchlistRepository()
	reviews := memory.NewReviewRepository()

	tokens, err := auth.NewTokenService(auth.JWTConfig{SecretKey: "router-test-secret", Issuer: "gamewatch-test"})
	require.NoError(t, err)

	reconciler := services.NewStatsReconciler(games, reviews, nil, logger)
	router := NewRouter(
		services.NewCatalogService(games, logger),
		services.NewUserService(users, tokens, testAdminKey, logger),
		services.NewWatchlistService(watchlist, users, games, logger),
		services.NewReviewService(reviews, users, reconciler, nil, logger),
		tokens,
		apperrors.NewErrorHandler(logger, false),
		logger,
		false,
	)
	return router.Setup()
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// registerAndLogin creates a regular account and returns its id and token.
func registerAndLogin(t *testing.T, handler http.Handler, username, email string) (string, string) {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/users/register", "", map[string]string{
		"username": username, "email": email, "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	userID := decodeBody(t, rec)["user_id"].(string)

	rec = doJSON(t, handler, http.MethodPost, "/users/login", "", map[string]string{
		"email": email, "password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return userID, decodeBody(t, rec)["token"].(string)
}

// adminLogin creates an admin account and returns its token.
func adminLogin(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/users/create-admin", "", map[string]string{
		"username": "root", "email": "root@example.com", "password": "secret",
		"admin_key": testAdminKey,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/users/admin/login", "", map[string]string{
		"email": "root@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody(t, rec)["token"].(string)
}

func createGame(t *testing.T, handler http.Handler, adminToken, title string) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/games/create", adminToken, map[string]interface{}{
		"title": title, "genre": "RPG", "platforms": []string{"PC"},
		"release_date": "2024-01-01", "image_url": "http://x/img.png", "description": "d",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody(t, rec)["game_id"].(string)
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogRequiresAdmin(t *testing.T) {
	handler := newTestServer(t)

	// Unauthenticated create is rejected outright.
	rec := doJSON(t, handler, http.MethodPost, "/games/create", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A regular user's token is not enough.
	_, token := registerAndLogin(t, handler, "alice", "alice@example.com")
	rec = doJSON(t, handler, http.MethodPost, "/games/create", token, map[string]string{})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin succeeds, and the catalog is publicly readable.
	adminToken := adminLogin(t, handler)
	gameID := createGame(t, handler, adminToken, "Foo")

	rec = doJSON(t, handler, http.MethodGet, "/games/"+gameID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Foo", body["title"])
}

func TestGameCreateMissingFieldsIsBadRequest(t *testing.T) {
	handler := newTestServer(t)
	adminToken := adminLogin(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/games/create", adminToken, map[string]interface{}{
		"title": "Foo",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "error")
}

func TestWatchlistFlow(t *testing.T) {
	handler := newTestServer(t)
	adminToken := adminLogin(t, handler)
	gameID := createGame(t, handler, adminToken, "Foo")
	userID, token := registerAndLogin(t, handler, "alice", "alice@example.com")

	// Unauthenticated access is rejected.
	rec := doJSON(t, handler, http.MethodGet, "/watchlist/"+userID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Add, then duplicate add conflicts.
	addBody := map[string]string{"game_id": gameID, "status": "will spielen"}
	rec = doJSON(t, handler, http.MethodPost, "/watchlist/"+userID, token, addBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/watchlist/"+userID, token, addBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The listing is enriched with the game record.
	rec = doJSON(t, handler, http.MethodGet, "/watchlist/"+userID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody(t, rec)["watchlist"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "will spielen", entry["status"])
	require.NotNil(t, entry["game_data"])
	assert.Equal(t, "Foo", entry["game_data"].(map[string]interface{})["title"])

	// Status update and removal round out the flow.
	rec = doJSON(t, handler, http.MethodPut, "/watchlist/"+userID+"/update-status/"+gameID, token, map[string]string{
		"status": "fertig gespielt",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPatch, "/watchlist/"+userID+"/update/"+gameID, token, map[string]float64{
		"playtime": 12.5,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/watchlist/"+userID+"/"+gameID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWatchlistOwnershipEnforced(t *testing.T) {
	handler := newTestServer(t)
	userID, _ := registerAndLogin(t, handler, "alice", "alice@example.com")
	_, bobToken := registerAndLogin(t, handler, "bob", "bob@example.com")

	rec := doJSON(t, handler, http.MethodGet, "/watchlist/"+userID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admins may act on any user's watchlist.
	adminToken := adminLogin(t, handler)
	rec = doJSON(t, handler, http.MethodGet, "/watchlist/"+userID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReviewFlow(t *testing.T) {
	handler := newTestServer(t)
	adminToken := adminLogin(t, handler)
	gameID := createGame(t, handler, adminToken, "Foo")
	userID, token := registerAndLogin(t, handler, "alice", "alice@example.com")

	// Listing before any review exists is a 404.
	rec := doJSON(t, handler, http.MethodGet, "/review/"+gameID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/review/"+userID+"/review/"+gameID, token, map[string]interface{}{
		"rating": 4, "comment": "Great", "platform": "PC", "playtime_hours": 10,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// The listing is public and decorated with the username.
	rec = doJSON(t, handler, http.MethodGet, "/review/"+gameID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0]["username"])

	// The game row carries the reconciled stats.
	rec = doJSON(t, handler, http.MethodGet, "/games/"+gameID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	game := decodeBody(t, rec)
	assert.Equal(t, 1.0, game["reviews_count"])
	assert.Equal(t, 4.0, game["average_rating"])

	rec = doJSON(t, handler, http.MethodDelete, "/review/"+userID+"/review/"+gameID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/review/"+gameID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewValidationIsBadRequest(t *testing.T) {
	handler := newTestServer(t)
	userID, token := registerAndLogin(t, handler, "alice", "alice@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/review/"+userID+"/review/1", token, map[string]interface{}{
		"rating": 3.5, "comment": "Great", "platform": "PC", "playtime_hours": 10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginFailureStatuses(t *testing.T) {
	handler := newTestServer(t)
	registerAndLogin(t, handler, "alice", "alice@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/users/login", "", map[string]string{
		"email": "nobody@example.com", "password": "secret",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/users/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/users/admin/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
