package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*mux.Router, *gorm.DB) {
	t.Helper()
	database := setupDB(t)
	router := mux.NewRouter()
	NewHandler(database).RegisterRoutes(router.PathPrefix("/api").Subrouter())
	return router, database
}

func doRequest(router *mux.Router, method, target, apiKey, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if apiKey != "" {
		req.Header.Set("api-key", apiKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestAddUserRoute(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, "POST", "/api/users", "", `{"id": "alice_id", "name": "Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := decodeEnvelope(t, rec)
	assert.Equal(t, true, payload["result"])
	assert.Equal(t, "alice_id", payload["user"].(map[string]interface{})["id"])
}

func TestAddUserRouteValidation(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, "POST", "/api/users", "", `{"id": "x", "name": "A"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	payload := decodeEnvelope(t, rec)
	assert.Equal(t, false, payload["result"])
	assert.Equal(t, "ValidationError", payload["error_type"])
}

func TestAddUserRouteConflict(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, "POST", "/api/users", "", `{"id": "alice_id", "name": "Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, "POST", "/api/users", "", `{"id": "alice_id", "name": "Other"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	payload := decodeEnvelope(t, rec)
	assert.Equal(t, false, payload["result"])
	assert.Equal(t, "Conflict", payload["error_type"])
}

func TestMyProfileRoute(t *testing.T) {
	router, _ := setupRouter(t)

	// Missing identity header.
	rec := doRequest(router, "GET", "/api/users/me", "", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	payload := decodeEnvelope(t, rec)
	assert.Equal(t, "ValidationError", payload["error_type"])

	// Over-long identity header.
	rec = doRequest(router, "GET", "/api/users/me", strings.Repeat("A", 33), "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Unknown identity.
	rec = doRequest(router, "GET", "/api/users/me", "ghost", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload = decodeEnvelope(t, rec)
	assert.Equal(t, "NotFound", payload["error_type"])

	doRequest(router, "POST", "/api/users", "", `{"id": "alice_id", "name": "Alice"}`)
	rec = doRequest(router, "GET", "/api/users/me", "alice_id", "")
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decodeEnvelope(t, rec)
	assert.Equal(t, true, payload["result"])
	assert.Equal(t, "Alice", payload["user"].(map[string]interface{})["name"])
}

func TestFollowRoutes(t *testing.T) {
	router, _ := setupRouter(t)

	doRequest(router, "POST", "/api/users", "", `{"id": "a", "name": "Alice"}`)
	doRequest(router, "POST", "/api/users", "", `{"id": "b", "name": "Bob"}`)

	rec := doRequest(router, "POST", "/api/users/a/follow", "a", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	payload := decodeEnvelope(t, rec)
	assert.Equal(t, "UnprocessableEntity", payload["error_type"])

	rec = doRequest(router, "POST", "/api/users/b/follow", "a", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, "POST", "/api/users/b/follow", "a", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(router, "DELETE", "/api/users/b/follow", "a", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, "DELETE", "/api/users/b/follow", "a", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
