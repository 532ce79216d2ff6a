package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>map</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "countries.json"),
		[]byte(`{"countries":[{"country":"Kenya","programs":["STAR"],"program_count":1,"tier":"SINGLE"}],"totals":{"countries":1,"program_entries":1},"diagnostics":{}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "boundaries.geojson"),
		[]byte(`{"type":"FeatureCollection","features":[]}`), 0644))

	return dir
}

func TestNewServerContextLoadsSite(t *testing.T) {
	ctx, err := NewServerContext(siteDir(t))
	require.NoError(t, err)

	require.Len(t, ctx.Export.Countries, 1)
	assert.Equal(t, "Kenya", ctx.Export.Countries[0].Country)
}

func TestNewServerContextWithoutSite(t *testing.T) {
	_, err := NewServerContext(t.TempDir())
	assert.Error(t, err)
}

func TestHandleIndex(t *testing.T) {
	ctx, err := NewServerContext(siteDir(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	ctx.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "map")
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestHandleIndexNotModified(t *testing.T) {
	ctx, err := NewServerContext(siteDir(t))
	require.NoError(t, err)

	first := httptest.NewRecorder()
	ctx.HandleIndex(first, httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", first.Header().Get("ETag"))

	second := httptest.NewRecorder()
	ctx.HandleIndex(second, req)
	assert.Equal(t, http.StatusNotModified, second.Code)
}

func TestHandleCountries(t *testing.T) {
	ctx, err := NewServerContext(siteDir(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	ctx.HandleCountries(rec, httptest.NewRequest(http.MethodGet, "/api/countries", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"Kenya"`)
}

func TestHandleData(t *testing.T) {
	ctx, err := NewServerContext(siteDir(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	ctx.HandleData(rec, httptest.NewRequest(http.MethodGet, "/data/boundaries.geojson", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
}

func TestHandleDataRejectsTraversal(t *testing.T) {
	ctx, err := NewServerContext(siteDir(t))
	require.NoError(t, err)

	for _, path := range []string{"/data/../countries.json", "/data/notes.txt", "/data/a/b.geojson"} {
		rec := httptest.NewRecorder()
		ctx.HandleData(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
