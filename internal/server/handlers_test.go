package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexrelay/lexrelay/apimodels"
	"github.com/lexrelay/lexrelay/internal/config"
	"github.com/lexrelay/lexrelay/internal/dispatch"
	"github.com/lexrelay/lexrelay/internal/llm"
	"github.com/lexrelay/lexrelay/internal/staging"
)

type stubProvider struct {
	content string
	err     error
}

func (s *stubProvider) Generate(ctx context.Context, system, user string, opts ...llm.Option) (*llm.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.content}, nil
}

func testServer(t *testing.T, provider llm.Provider, exposeDegraded bool) *Server {
	t.Helper()
	cfg := config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   5 * time.Second,
			ExposeDegraded: exposeDegraded,
			StaticDir:      t.TempDir(),
		},
	}
	d := dispatch.New(provider, nil, map[string]bool{"gemini": true})
	return New(cfg, d, staging.NewArea(64))
}

func postAction(t *testing.T, srv *Server, body string) (*httptest.ResponseRecorder, apimodels.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/action", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var env apimodels.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandleActionSuccess(t *testing.T) {
	srv := testServer(t, &stubProvider{content: "A verbal contract can be binding."}, false)

	rec, env := postAction(t, srv, `{"action":"askLegalQuestion","question":"Is a verbal contract binding?"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "A verbal contract can be binding.", env.Data)
	assert.Nil(t, env.Degraded)

	_, err := time.Parse(time.RFC3339, env.Timestamp)
	assert.NoError(t, err, "timestamp must be RFC3339")
}

func TestHandleActionMasksUpstreamFailure(t *testing.T) {
	srv := testServer(t, &stubProvider{err: errors.New("connection refused")}, false)

	rec, env := postAction(t, srv, `{"action":"summarizeDocument","documentText":"WHEREAS..."}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success, "fallback substitution still reports success")
	assert.Nil(t, env.Degraded, "degradation is hidden unless exposure is enabled")

	text, ok := env.Data.(string)
	require.True(t, ok)
	assert.Contains(t, text, "Document summarization is currently unavailable")
}

func TestHandleActionExposesDegradation(t *testing.T) {
	srv := testServer(t, &stubProvider{err: errors.New("connection refused")}, true)

	_, env := postAction(t, srv, `{"action":"summarizeDocument","documentText":"WHEREAS..."}`)
	require.NotNil(t, env.Degraded)
	assert.True(t, *env.Degraded)

	srvOK := testServer(t, &stubProvider{content: "fine"}, true)
	_, envOK := postAction(t, srvOK, `{"action":"summarizeDocument","documentText":"WHEREAS..."}`)
	require.NotNil(t, envOK.Degraded)
	assert.False(t, *envOK.Degraded)
}

func TestHandleActionUnknown(t *testing.T) {
	srv := testServer(t, &stubProvider{content: "unused"}, false)

	rec, env := postAction(t, srv, `{"action":"doTheThing"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Unknown action: doTheThing", env.Error)
}

func TestHandleActionMalformedBody(t *testing.T) {
	srv := testServer(t, &stubProvider{content: "unused"}, false)

	rec, env := postAction(t, srv, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "Invalid request")
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, &stubProvider{err: errors.New("must not be called")}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var env apimodels.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestFileStagingEndpoints(t *testing.T) {
	srv := testServer(t, &stubProvider{content: "unused"}, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "contract.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("lease agreement"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env apimodels.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	staged, ok := env.Data.(map[string]any)
	require.True(t, ok)
	id, _ := staged["id"].(string)
	require.NotEmpty(t, id)

	// list shows exactly one file
	req = httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	list, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)

	// remove, then the list is empty
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+id, nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+id, nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFileStagingRejectsOversized(t *testing.T) {
	// testServer caps staged files at 64 bytes
	srv := testServer(t, &stubProvider{content: "unused"}, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "huge.txt")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 128))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var env apimodels.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	list, ok := env.Data.([]any)
	if ok {
		assert.Empty(t, list)
	}
}
