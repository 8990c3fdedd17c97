package system

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datadrop/service/internal/storage"
)

func newHandler(t *testing.T) (*Handler, storage.Store) {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, log, "1.2.3"), store
}

func TestCheck(t *testing.T) {
	handler, _ := newHandler(t)

	rec := httptest.NewRecorder()
	handler.Check(rec, httptest.NewRequest(http.MethodGet, "/_system/check", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
}

func TestMetricsEmptyDirectory(t *testing.T) {
	handler, _ := newHandler(t)

	rec := httptest.NewRecorder()
	handler.Metrics(rec, httptest.NewRequest(http.MethodGet, "/_system/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMetricsGauges(t *testing.T) {
	handler, store := newHandler(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "acme", "a.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "acme", "b.csv", []byte("x")))

	rec := httptest.NewRecorder()
	handler.Metrics(rec, httptest.NewRequest(http.MethodGet, "/_system/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "# TYPE drop_directory_files_count gauge")
	assert.Contains(t, body, `drop_directory_files_count{directory="acme"} 2`)
	assert.Contains(t, body, "# TYPE drop_directory_last_modified_timestamp gauge")
	assert.Contains(t, body, `drop_directory_last_modified_timestamp{directory="acme"}`)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}
