package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/nebulavault/server/internal/config"
	"github.com/nebulavault/server/internal/repositories"
	"github.com/nebulavault/server/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repositories.Migrate(db))
	require.NoError(t, repositories.Bootstrap(db, config.Config{AdminPassword: "adminpass123"}))
	repositories.DB = db

	srv := httptest.NewServer(SetupRouter())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) (*http.Response, utils.Payload) {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp, decodePayload(t, resp)
}

func getJSON(t *testing.T, client *http.Client, url string) (*http.Response, utils.Payload) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	return resp, decodePayload(t, resp)
}

func decodePayload(t *testing.T, resp *http.Response) utils.Payload {
	t.Helper()
	defer resp.Body.Close()
	var p utils.Payload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()
	resp, p := postJSON(t, client, baseURL+"/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed: %s", p.Message)
}

func register(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()
	resp, p := postJSON(t, client, baseURL+"/register", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register failed: %s", p.Message)
}

func TestIndexRedirects(t *testing.T) {
	srv := setupServer(t)
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	register(t, client, srv.URL, "alice", "secret123")
	login(t, client, srv.URL, "alice", "secret123")

	resp, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestSessionRequired(t *testing.T) {
	srv := setupServer(t)
	client := newClient(t)

	for _, path := range []string{"/dashboard", "/threads", "/htb"} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}

func TestForumFlow(t *testing.T) {
	srv := setupServer(t)

	alice := newClient(t)
	register(t, alice, srv.URL, "alice", "secret123")
	login(t, alice, srv.URL, "alice", "secret123")

	resp, p := postJSON(t, alice, srv.URL+"/create_thread", map[string]string{
		"title":   "Welcome",
		"content": "First post",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var thread struct {
		ID uint `json:"id"`
	}
	raw, err := json.Marshal(p.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &thread))
	require.NotZero(t, thread.ID)

	resp, _ = postJSON(t, alice, srv.URL+"/thread/1", map[string]string{"content": "a reply"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, p = getJSON(t, alice, srv.URL+"/threads")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var threads []struct {
		Title      string `json:"title"`
		Author     string `json:"author"`
		ReplyCount int64  `json:"replyCount"`
	}
	raw, err = json.Marshal(p.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &threads))
	require.Len(t, threads, 1)
	assert.Equal(t, "Welcome", threads[0].Title)
	assert.Equal(t, "alice", threads[0].Author)
	assert.EqualValues(t, 1, threads[0].ReplyCount)

	// Bob cannot delete Alice's thread, and cannot tell it exists.
	bob := newClient(t)
	register(t, bob, srv.URL, "bob", "secret123")
	login(t, bob, srv.URL, "bob", "secret123")

	resp, _ = getJSON(t, bob, srv.URL+"/delete_thread/1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = getJSON(t, alice, srv.URL+"/delete_thread/1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalogAdminGate(t *testing.T) {
	srv := setupServer(t)

	machine := map[string]string{
		"name":       "Lame",
		"difficulty": "Easy",
		"os":         "Linux",
		"ip":         "",
		"status":     "Retired",
	}

	alice := newClient(t)
	register(t, alice, srv.URL, "alice", "secret123")
	login(t, alice, srv.URL, "alice", "secret123")

	resp, _ := postJSON(t, alice, srv.URL+"/add_htb", machine)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := newClient(t)
	login(t, admin, srv.URL, "admin", "adminpass123")

	resp, _ = postJSON(t, admin, srv.URL+"/add_htb", machine)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Any authenticated user may read the catalog.
	resp, p := getJSON(t, alice, srv.URL+"/htb")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var machines []struct {
		Name string  `json:"name"`
		IP   *string `json:"ip"`
	}
	raw, err := json.Marshal(p.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &machines))
	require.Len(t, machines, 1)
	assert.Equal(t, "Lame", machines[0].Name)
	assert.Nil(t, machines[0].IP, "blank IP stored as null")

	resp, _ = getJSON(t, alice, srv.URL+"/delete_htb/1")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = getJSON(t, admin, srv.URL+"/delete_htb/1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = getJSON(t, admin, srv.URL+"/delete_htb/1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChangePasswordFlow(t *testing.T) {
	srv := setupServer(t)
	client := newClient(t)

	register(t, client, srv.URL, "alice", "secret123")
	login(t, client, srv.URL, "alice", "secret123")

	resp, _ := postJSON(t, client, srv.URL+"/profile", map[string]string{
		"newPassword":     "newpass789",
		"confirmPassword": "different",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, client, srv.URL+"/profile", map[string]string{
		"newPassword":     "newpass789",
		"confirmPassword": "newpass789",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	fresh := newClient(t)
	resp, _ = postJSON(t, fresh, srv.URL+"/login", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	login(t, fresh, srv.URL, "alice", "newpass789")
}
