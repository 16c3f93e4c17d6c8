package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/app/config"
	"inkwell/app/middleware"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Minimal templates so controllers can render without the real views.
var testTemplates = map[string]string{
	"app/views/layout.html":          `{{define "layout"}}{{template "content" .}}{{end}}`,
	"app/views/posts/index.html":     `{{define "content"}}{{range .Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
	"app/views/posts/show.html":      `{{define "content"}}<h1>{{.Title}}</h1>{{template "comments" .}}{{end}}`,
	"app/views/posts/new.html":       `{{define "content"}}<form></form>{{end}}`,
	"app/views/posts/edit.html":      `{{define "content"}}<form>{{.Title}}</form>{{end}}`,
	"app/views/shared/comments.html": `{{define "comments"}}{{range .Comments}}<p>{{.Content}}</p>{{end}}{{end}}`,
	"app/views/auth/login.html":      `{{define "content"}}<form>{{.Message}}</form>{{end}}`,
	"app/views/auth/register.html":   `{{define "content"}}<form>{{.Message}}</form>{{end}}`,
}

func setupTestTemplates(t *testing.T) string {
	base := t.TempDir()
	for name, content := range testTemplates {
		path := filepath.Join(base, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return base
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestServer(t *testing.T) (*httptest.Server, *badger.DB) {
	db := setupTestDB(t)
	cfg := config.Config{
		BasePath: setupTestTemplates(t),
		PageSize: 10,
	}
	router := SetupRoutes(db, zerolog.Nop(), cfg)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, db
}

// noRedirect keeps 3xx responses visible to assertions.
var noRedirect = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, body string, cookie *http.Cookie) *http.Response {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := noRedirect.Do(req)
	require.NoError(t, err)
	return resp
}

func doForm(t *testing.T, ts *httptest.Server, path string, form url.Values, cookie *http.Cookie) *http.Response {
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := noRedirect.Do(req)
	require.NoError(t, err)
	return resp
}

func doGet(t *testing.T, ts *httptest.Server, path string, cookie *http.Cookie) *http.Response {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := noRedirect.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// registerAndLogin creates an account over the API and returns its session
// cookie.
func registerAndLogin(t *testing.T, ts *httptest.Server, username string) *http.Cookie {
	creds := fmt.Sprintf(`{"username":%q,"password":"password1"}`, username)

	resp := doJSON(t, ts, http.MethodPost, "/api/users", creds, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	return login(t, ts, creds)
}

func login(t *testing.T, ts *httptest.Server, creds string) *http.Cookie {
	resp := doJSON(t, ts, http.MethodPost, "/api/sessions", creds, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

type postJSON struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

// createPost makes a post over the API and returns its JSON body.
func createPost(t *testing.T, ts *httptest.Server, cookie *http.Cookie, title, status string) postJSON {
	body := fmt.Sprintf(`{"title":%q,"content":"some content","status":%q}`, title, status)
	resp := doJSON(t, ts, http.MethodPost, "/api/posts", body, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post postJSON
	decodeJSON(t, resp, &post)
	return post
}
