// Package api is a typed HTTP client for the posts API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/apgomes/blogmod/internal/model"
)

const defaultHTTPTimeout = 30 * time.Second

// Client is a simple HTTP client for the posts API. The auth token is held
// explicitly on the client rather than read from ambient state, so callers
// control the session context.
type Client struct {
	baseURL   string
	http      *http.Client
	authToken string
}

// NewClient creates a new API client. token may be empty for anonymous use.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: defaultHTTPTimeout},
		authToken: strings.TrimSpace(token),
	}
}

// ListPosts fetches the full post collection.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/posts", nil)
	if err != nil {
		return nil, err
	}

	var posts []model.Post
	if err := c.do(req, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost submits a new post, optionally with an image part.
func (c *Client) CreatePost(ctx context.Context, sub Submission) (*model.Post, error) {
	return c.submit(ctx, http.MethodPost, c.baseURL+"/api/posts", sub)
}

// UpdatePost submits a partial edit of an existing post.
func (c *Client) UpdatePost(ctx context.Context, id model.PostID, sub Submission) (*model.Post, error) {
	return c.submit(ctx, http.MethodPut, c.baseURL+"/api/posts/"+url.PathEscape(string(id)), sub)
}

// DeletePost removes a post by id.
func (c *Client) DeletePost(ctx context.Context, id model.PostID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/posts/"+url.PathEscape(string(id)), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) submit(ctx context.Context, method, endpoint string, sub Submission) (*model.Post, error) {
	body, contentType, err := encodeSubmission(sub)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var post model.Post
	if err := c.do(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// encodeSubmission packages the present fields as a multipart form, the same
// shape a browser FormData submit produces.
func encodeSubmission(sub Submission) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]*string{
		"title":   sub.Title,
		"author":  sub.Author,
		"content": sub.Content,
	}
	for name, value := range fields {
		if value == nil {
			continue
		}
		if err := writer.WriteField(name, *value); err != nil {
			return nil, "", err
		}
	}

	if sub.Image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, sub.Image.FileName))
		header.Set("Content-Type", sub.Image.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(sub.Image.Data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

func (c *Client) do(req *http.Request, out any) error {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, errResp.Error)
		}
		if errResp.Code != "" {
			return fmt.Errorf("%s: %s", errResp.Code, errResp.Error)
		}
		return fmt.Errorf("%s", errResp.Error)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return fmt.Errorf("api error: %s", resp.Status)
}
