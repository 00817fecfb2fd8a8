package like

import (
	"encoding/json"
	"fmt"
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

func doRequest(router *mux.Router, method, target, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(""))
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

func TestAddLikeRoute(t *testing.T) {
	router, database := setupRouter(t)
	tweetID := seedTweet(t, database)

	rec := doRequest(router, "POST", fmt.Sprintf("/api/tweets/%d/likes", tweetID), "fan")
	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decodeEnvelope(t, rec)
	assert.Equal(t, true, payload["result"])

	// Liking twice is a conflict and the envelope names the kind.
	rec = doRequest(router, "POST", fmt.Sprintf("/api/tweets/%d/likes", tweetID), "fan")
	require.Equal(t, http.StatusConflict, rec.Code)
	payload = decodeEnvelope(t, rec)
	assert.Equal(t, false, payload["result"])
	assert.Equal(t, "Conflict", payload["error_type"])
}

func TestAddLikeRouteUnknownTweet(t *testing.T) {
	router, database := setupRouter(t)
	seedTweet(t, database)

	rec := doRequest(router, "POST", "/api/tweets/9999/likes", "fan")
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload := decodeEnvelope(t, rec)
	assert.Equal(t, "NotFound", payload["error_type"])
}

func TestAddLikeRouteValidation(t *testing.T) {
	router, database := setupRouter(t)
	tweetID := seedTweet(t, database)

	rec := doRequest(router, "POST", fmt.Sprintf("/api/tweets/%d/likes", tweetID), "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	payload := decodeEnvelope(t, rec)
	assert.Equal(t, "ValidationError", payload["error_type"])

	rec = doRequest(router, "POST", "/api/tweets/not-a-number/likes", "fan")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteLikeRoute(t *testing.T) {
	router, database := setupRouter(t)
	tweetID := seedTweet(t, database)

	doRequest(router, "POST", fmt.Sprintf("/api/tweets/%d/likes", tweetID), "fan")

	rec := doRequest(router, "DELETE", fmt.Sprintf("/api/tweets/%d/likes", tweetID), "fan")
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeEnvelope(t, rec)
	assert.Equal(t, true, payload["result"])

	rec = doRequest(router, "DELETE", fmt.Sprintf("/api/tweets/%d/likes", tweetID), "fan")
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload = decodeEnvelope(t, rec)
	assert.Equal(t, "NotFound", payload["error_type"])
}
