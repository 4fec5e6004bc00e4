package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	httpapi "user-directory-service/internal/http"
	"user-directory-service/internal/model"
	"user-directory-service/internal/repository"
	"user-directory-service/internal/service"
)

type apiClient struct {
	t      *testing.T
	client *http.Client
	base   string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	repo, err := repository.NewMemoryUserRepo()
	require.NoError(t, err)

	h := httpapi.NewHandler(service.NewUserService(repo, repo), zaptest.NewLogger(t), []string{"*"})
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	return &apiClient{t: t, client: srv.Client(), base: srv.URL}
}

func (c *apiClient) do(method, path, body string, out any) int {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, bytes.NewBufferString(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type userEnvelope struct {
	User model.User `json:"user"`
}

type usersEnvelope struct {
	Users []model.User `json:"users"`
}

func TestAPI_FullFlow(t *testing.T) {
	api := newAPI(t)

	t.Log("Step 1: Create users")
	var alice, bob userEnvelope
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/users",
		`{"username":"alice","email":"a@x.com","password":"pw","first_name":"Alice"}`, &alice))
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/users",
		`{"username":"bob","email":"b@x.com","active":false}`, &bob))

	assert.Equal(t, int64(1), alice.User.ID)
	assert.True(t, alice.User.Active)
	assert.Equal(t, int64(2), bob.User.ID)
	assert.False(t, bob.User.Active)

	t.Log("Step 2: Duplicates are rejected")
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/users", `{"username":"alice","email":"new@x.com"}`, nil))
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/users", `{"username":"alice3","email":"a@x.com"}`, nil))

	var all usersEnvelope
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users", "", &all))
	assert.Len(t, all.Users, 2)

	t.Log("Step 3: Queries")
	var active usersEnvelope
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/active", "", &active))
	require.Len(t, active.Users, 1)
	assert.Equal(t, "alice", active.Users[0].Username)

	var count struct {
		Count int64 `json:"count"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/count?active=false", "", &count))
	assert.Equal(t, int64(1), count.Count)

	var found usersEnvelope
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/search?first_name=ali", "", &found))
	assert.Len(t, found.Users, 1)

	var byEmail userEnvelope
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/email/b@x.com", "", &byEmail))
	assert.Equal(t, "bob", byEmail.User.Username)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/users/username/nobody", "", nil))

	t.Log("Step 4: Update and status changes")
	var updated userEnvelope
	require.Equal(t, http.StatusOK, api.do(http.MethodPut, "/api/users/2",
		`{"username":"bobby","email":"b@x.com","first_name":"Bob"}`, &updated))
	assert.Equal(t, "bobby", updated.User.Username)
	assert.False(t, updated.User.Active)

	assert.Equal(t, http.StatusConflict, api.do(http.MethodPut, "/api/users/2", `{"username":"alice","email":"b@x.com"}`, nil))

	var activated userEnvelope
	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, "/api/users/2/activate", "", &activated))
	assert.True(t, activated.User.Active)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/count?active=true", "", &count))
	assert.Equal(t, int64(2), count.Count)

	t.Log("Step 5: Delete")
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/users/1", "", nil))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/api/users/1", "", nil))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/users/1", "", nil))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPatch, "/api/users/1/deactivate", "", nil))
}

func TestAPI_LookupEscapedValues(t *testing.T) {
	api := newAPI(t)

	var pct, slash userEnvelope
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/users",
		`{"username":"50%off","email":"sale%deal@x.com"}`, &pct))
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/users",
		`{"username":"team/lead","email":"a/b@x.com"}`, &slash))
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/users",
		`{"username":"aAb","email":"aab@x.com"}`, nil))

	var got userEnvelope
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/username/50%25off", "", &got))
	assert.Equal(t, pct.User.ID, got.User.ID)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/email/sale%25deal@x.com", "", &got))
	assert.Equal(t, pct.User.ID, got.User.ID)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/username/team%2Flead", "", &got))
	assert.Equal(t, slash.User.ID, got.User.ID)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users/email/a%2Fb@x.com", "", &got))
	assert.Equal(t, slash.User.ID, got.User.ID)

	// "a%41b" не должен превращаться в "aAb"
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/users/username/a%2541b", "", nil))
}
