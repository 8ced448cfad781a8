package publish

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeHub records requests and answers like the Hub API.
type fakeHub struct {
	mu       sync.Mutex
	repos    map[string]bool
	auth     []string
	commits  []recordedCommit
	failWith int
}

type recordedCommit struct {
	repo    string
	summary string
	path    string
	content []byte
}

func newFakeHub(t *testing.T) (*fakeHub, *httptest.Server) {
	t.Helper()
	hub := &fakeHub{repos: map[string]bool{}}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/repos/create", hub.create)
	mux.HandleFunc("POST /api/models/{owner}/{name}/commit/main", hub.commit)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return hub, srv
}

func (h *fakeHub) create(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.auth = append(h.auth, r.Header.Get("Authorization"))
	if h.failWith != 0 {
		http.Error(w, "nope", h.failWith)
		return
	}
	var req createRepoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := req.Organization + "/" + req.Name
	if h.repos[id] {
		http.Error(w, "already exists", http.StatusConflict)
		return
	}
	h.repos[id] = true
	w.WriteHeader(http.StatusOK)
}

func (h *fakeHub) commit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.auth = append(h.auth, r.Header.Get("Authorization"))
	repo := r.PathValue("owner") + "/" + r.PathValue("name")
	if !h.repos[repo] {
		http.Error(w, "repository not found", http.StatusNotFound)
		return
	}

	rc := recordedCommit{repo: repo}
	sc := bufio.NewScanner(r.Body)
	for sc.Scan() {
		var line struct {
			Key   string          `json:"key"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(sc.Bytes(), &line); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		switch line.Key {
		case "header":
			var hdr commitHeader
			_ = json.Unmarshal(line.Value, &hdr)
			rc.summary = hdr.Summary
		case "file":
			var f commitFile
			_ = json.Unmarshal(line.Value, &f)
			rc.path = f.Path
			rc.content, _ = base64.StdEncoding.DecodeString(f.Content)
		}
	}
	h.commits = append(h.commits, rc)
	_, _ = io.WriteString(w, `{"success":true}`)
}

func TestPublishCard(t *testing.T) {
	hub, srv := newFakeHub(t)
	card := filepath.Join(t.TempDir(), "MODEL_CARD.md")
	require.NoError(t, os.WriteFile(card, []byte("# NRC\n"), 0o600))

	c, err := NewClient(context.Background(), "secret", WithBaseURL(srv.URL))
	require.NoError(t, err)

	url, err := c.PublishCard(context.Background(), "acme/folding", card)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/acme/folding", url)

	require.Len(t, hub.commits, 1)
	got := hub.commits[0]
	assert.Equal(t, "acme/folding", got.repo)
	assert.Equal(t, CardPath, got.path)
	assert.Equal(t, CardCommitMessage, got.summary)
	assert.Equal(t, "# NRC\n", string(got.content))

	for _, a := range hub.auth {
		assert.Equal(t, "Bearer secret", a)
	}
}

func TestEnsureRepo_ExistingIsNotAnError(t *testing.T) {
	hub, srv := newFakeHub(t)
	hub.repos["acme/folding"] = true

	core, logs := observer.New(zapcore.DebugLevel)
	c, err := NewClient(context.Background(), "secret", WithBaseURL(srv.URL), WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.NoError(t, c.EnsureRepo(context.Background(), "acme/folding"))
	assert.Equal(t, 1, logs.FilterMessage("repository exists").Len())
}

func TestEnsureRepo_Unauthorized(t *testing.T) {
	hub, srv := newFakeHub(t)
	hub.failWith = http.StatusUnauthorized

	c, err := NewClient(context.Background(), "bad", WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = c.EnsureRepo(context.Background(), "acme/folding")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "create repo", se.Op)
}

func TestUpload_MissingRepo(t *testing.T) {
	_, srv := newFakeHub(t)
	c, err := NewClient(context.Background(), "secret", WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = c.Upload(context.Background(), "acme/none", "README.md", []byte("x"), "msg")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
}

func TestPublishCard_MissingFile(t *testing.T) {
	_, srv := newFakeHub(t)
	c, err := NewClient(context.Background(), "secret", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.PublishCard(context.Background(), "acme/folding", filepath.Join(t.TempDir(), "nope.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewClient_MissingToken(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	t.Setenv(TokenEnv, "")
	_, err = NewClientFromEnv(context.Background())
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestInvalidRepoID(t *testing.T) {
	c, err := NewClient(context.Background(), "secret")
	require.NoError(t, err)

	for _, id := range []string{"", "noslash", "/name", "owner/", "a/b/c"} {
		err := c.EnsureRepo(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidRepoID, id)
	}
}
