package static

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"walletweb/internal/rewrite"

	"gotest.tools/v3/assert"
)

const pageBody = "<html>hi</html>"

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	assert.NilError(t, os.Mkdir(filepath.Join(dir, "public"), 0o755))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "public", "simple-connect.html"), []byte(pageBody), 0o644))
	srv := httptest.NewServer(rewrite.Handler(BuildSiteHandler(dir)))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	assert.NilError(t, err)
	body, err := io.ReadAll(resp.Body)
	assert.NilError(t, err)
	assert.NilError(t, resp.Body.Close())
	return resp, string(body)
}

func TestRootServesConnectPage(t *testing.T) {
	srv := newSite(t)

	resp, body := get(t, srv, "/")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Equal(t, body, pageBody)
	assert.Assert(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
}

func TestTokenQueryServesConnectPage(t *testing.T) {
	srv := newSite(t)

	for _, path := range []string{"/?token=abc123", "/?token=", "/?token=abc&lang=en"} {
		resp, body := get(t, srv, path)
		assert.Equal(t, resp.StatusCode, http.StatusOK)
		assert.Equal(t, body, pageBody)
	}
}

func TestDirectPagePathMatchesRoot(t *testing.T) {
	srv := newSite(t)

	rootResp, rootBody := get(t, srv, "/")
	pageResp, pageBodyGot := get(t, srv, "/public/simple-connect.html")
	assert.Equal(t, pageResp.StatusCode, rootResp.StatusCode)
	assert.Equal(t, pageBodyGot, rootBody)
}

func TestMissingFileIs404(t *testing.T) {
	srv := newSite(t)

	resp, _ := get(t, srv, "/does-not-exist.html")
	assert.Equal(t, resp.StatusCode, http.StatusNotFound)
}

func TestNonRootTokenPathNotRewritten(t *testing.T) {
	srv := newSite(t)

	resp, _ := get(t, srv, "/foo?token=abc")
	assert.Equal(t, resp.StatusCode, http.StatusNotFound)
}
