package blob

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dberzins/docshelf/internal/common"
)

const defaultGitHubAPIBaseURL = "https://api.github.com"

// GitHubStore keeps blobs as files in one repository on one fixed branch,
// through the repository-contents HTTP API. Deleting an object takes two
// round trips: the API requires the object's current revision (sha) to
// authorize the delete, so the object is fetched first. Nothing guards the
// window between the two calls.
type GitHubStore struct {
	client  *http.Client
	baseURL string
	token   string
	repo    string
	branch  string
	prefix  string
}

// NewGitHubStore fails when token or repo is empty, so a misconfigured
// deployment dies at startup instead of failing every request silently.
func NewGitHubStore(client *http.Client, baseURL, token, repo, branch, prefix string) (*GitHubStore, error) {
	if token == "" || repo == "" {
		return nil, fmt.Errorf("blob store: token and repository must be configured")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultGitHubAPIBaseURL
	}
	return &GitHubStore{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		repo:    repo,
		branch:  branch,
		prefix:  strings.Trim(prefix, "/"),
	}, nil
}

func (s *GitHubStore) contentsURL(filename string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s/%s",
		s.baseURL, s.repo, s.prefix, url.PathEscape(filename))
}

func (s *GitHubStore) newRequest(ctx context.Context, method, u string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

type contentsObject struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type createRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
}

type deleteRequest struct {
	Message string `json:"message"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch"`
}

func (s *GitHubStore) Put(ctx context.Context, filename string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: reading upload: %w", common.ErrBlobUnavailable, err)
	}

	req, err := s.newRequest(ctx, http.MethodPut, s.contentsURL(filename), createRequest{
		Message: "Upload file",
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  s.branch,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrBlobUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrBlobUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusUnprocessableEntity:
		// The API rejects creating a path that already has content.
		return common.ErrBlobConflict
	default:
		return fmt.Errorf("%w: create returned %s", common.ErrBlobUnavailable, resp.Status)
	}
}

// fetch retrieves the object's decoded bytes and its current revision sha.
func (s *GitHubStore) fetch(ctx context.Context, filename string) ([]byte, string, error) {
	req, err := s.newRequest(ctx, http.MethodGet, s.contentsURL(filename)+"?ref="+url.QueryEscape(s.branch), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", common.ErrBlobUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", common.ErrBlobUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, "", common.ErrNotFound
	default:
		return nil, "", fmt.Errorf("%w: get returned %s", common.ErrBlobUnavailable, resp.Status)
	}

	var obj contentsObject
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return nil, "", fmt.Errorf("%w: decoding response: %w", common.ErrBlobUnavailable, err)
	}

	// The API wraps base64 content with newlines.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(obj.Content, "\n", ""))
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding content: %w", common.ErrBlobUnavailable, err)
	}

	return raw, obj.SHA, nil
}

func (s *GitHubStore) Get(ctx context.Context, filename string) (io.ReadCloser, error) {
	raw, _, err := s.fetch(ctx, filename)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (s *GitHubStore) Remove(ctx context.Context, filename string) error {
	_, sha, err := s.fetch(ctx, filename)
	if err != nil {
		return err
	}

	req, err := s.newRequest(ctx, http.MethodDelete, s.contentsURL(filename), deleteRequest{
		Message: "Deleting file",
		SHA:     sha,
		Branch:  s.branch,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrBlobUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrBlobUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		// Object changed between the fetch and the delete; the sha no
		// longer matches.
		return fmt.Errorf("%w: delete rejected, revision changed", common.ErrBlobUnavailable)
	default:
		return fmt.Errorf("%w: delete returned %s", common.ErrBlobUnavailable, resp.Status)
	}
}
