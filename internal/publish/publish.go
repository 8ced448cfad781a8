// Package publish uploads a model card to a Hub-style model repository.
//
// Publishing is two calls: EnsureRepo creates the repository if it is
// missing, then Upload commits one file to its main branch. Authentication
// is a bearer token, normally taken from HF_TOKEN.
package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// TokenEnv names the environment variable holding the access token.
const TokenEnv = "HF_TOKEN"

// DefaultBaseURL is the public Hub endpoint.
const DefaultBaseURL = "https://huggingface.co"

// Card defaults.
const (
	CardPath          = "README.md"
	CardCommitMessage = "feat: Add NRC Protein Folding model card"
)

var (
	// ErrMissingToken is returned when no access token is available.
	ErrMissingToken = errors.New("publish: missing access token (set " + TokenEnv + ")")

	// ErrInvalidRepoID is returned for repository IDs not of the form owner/name.
	ErrInvalidRepoID = errors.New("publish: repo id must be owner/name")
)

// StatusError reports an unexpected HTTP response.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("publish: %s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

// Client talks to the Hub API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLogger sets the client's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client that authenticates every request with token.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    oauth2.NewClient(ctx, ts),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewClientFromEnv reads the token from TokenEnv.
func NewClientFromEnv(ctx context.Context, opts ...Option) (*Client, error) {
	return NewClient(ctx, os.Getenv(TokenEnv), opts...)
}

func splitRepoID(repoID string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repoID, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoID, repoID)
	}
	return owner, name, nil
}

type createRepoRequest struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Private      bool   `json:"private"`
}

// EnsureRepo creates a public model repository. An existing repository is
// not an error.
func (c *Client) EnsureRepo(ctx context.Context, repoID string) error {
	owner, name, err := splitRepoID(repoID)
	if err != nil {
		return err
	}
	body, err := json.Marshal(createRepoRequest{Type: "model", Name: name, Organization: owner})
	if err != nil {
		return fmt.Errorf("publish: encode create request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/repos/create", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("publish: create repo: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		c.logger.Info("repository created", zap.String("repo_id", repoID))
		return nil
	case http.StatusConflict:
		c.logger.Debug("repository exists", zap.String("repo_id", repoID))
		return nil
	default:
		return statusError("create repo", resp)
	}
}

// commitLine is one NDJSON line of a commit request.
type commitLine struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type commitHeader struct {
	Summary string `json:"summary"`
}

type commitFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Upload commits content to pathInRepo on the main branch of a model
// repository.
func (c *Client) Upload(ctx context.Context, repoID, pathInRepo string, content []byte, message string) error {
	if _, _, err := splitRepoID(repoID); err != nil {
		return err
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	lines := []commitLine{
		{Key: "header", Value: commitHeader{Summary: message}},
		{Key: "file", Value: commitFile{
			Path:     pathInRepo,
			Content:  base64.StdEncoding.EncodeToString(content),
			Encoding: "base64",
		}},
	}
	for _, l := range lines {
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("publish: encode commit: %w", err)
		}
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/models/"+repoID+"/commit/main", "application/x-ndjson", &body)
	if err != nil {
		return fmt.Errorf("publish: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError("upload", resp)
	}
	c.logger.Info("file uploaded",
		zap.String("repo_id", repoID),
		zap.String("path", pathInRepo),
		zap.Int("bytes", len(content)),
	)
	return nil
}

// PublishCard ensures the repository exists and uploads the model card read
// from path.
func (c *Client) PublishCard(ctx context.Context, repoID, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("publish: read card: %w", err)
	}
	if err := c.EnsureRepo(ctx, repoID); err != nil {
		return "", err
	}
	if err := c.Upload(ctx, repoID, CardPath, content, CardCommitMessage); err != nil {
		return "", err
	}
	return c.RepoURL(repoID), nil
}

// RepoURL is the browsable address of a repository.
func (c *Client) RepoURL(repoID string) string {
	return c.baseURL + "/" + repoID
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	c.logger.Debug("request", zap.String("method", method), zap.String("path", path))
	return c.http.Do(req)
}

func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
