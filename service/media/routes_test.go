package media

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, fieldName, filename string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/media", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func setupRouter(t *testing.T) *mux.Router {
	t.Helper()
	medias, _ := setupService(t)
	router := mux.NewRouter()
	handler := &Handler{media: medias}
	handler.RegisterRoutes(router.PathPrefix("/api").Subrouter())
	return router
}

func TestUploadRoute(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "file", "cat.jpg", []byte("meow")))
	require.Equal(t, http.StatusCreated, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["result"])
	assert.Len(t, payload["media_id"], 32)
}

func TestUploadRouteEmptyFile(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "file", "cat.jpg", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, false, payload["result"])
	assert.Equal(t, "UnprocessableEntity", payload["error_type"])
}

func TestUploadRouteMissingFile(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "wrong_field", "cat.jpg", []byte("meow")))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
