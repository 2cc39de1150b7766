package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"postdeck.app/project-post-deck/models"
)

// Client talks to the remote posts API. Every read and write the dashboard
// issues goes through here.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Attempts is the total number of tries for a request that keeps
	// failing transiently (network error or 5xx). Non-transient statuses
	// are returned immediately.
	Attempts   int
	RetryDelay time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		Attempts:   3,
		RetryDelay: 250 * time.Millisecond,
	}
}

// === Reads ===

func (c *Client) ListPosts(ctx context.Context, limit, skip int) (models.PostList, error) {
	var list models.PostList
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))
	err := c.doJSON(ctx, http.MethodGet, "/posts", query, nil, &list)
	return list, err
}

func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := c.doJSON(ctx, http.MethodGet, "/posts/tags", nil, nil, &tags)
	return tags, err
}

func (c *Client) SearchPosts(ctx context.Context, q string) (models.PostList, error) {
	var list models.PostList
	query := url.Values{}
	query.Set("q", q)
	err := c.doJSON(ctx, http.MethodGet, "/posts/search", query, nil, &list)
	return list, err
}

func (c *Client) PostsByTag(ctx context.Context, tag string) (models.PostList, error) {
	var list models.PostList
	err := c.doJSON(ctx, http.MethodGet, "/posts/tag/"+url.PathEscape(tag), nil, nil, &list)
	return list, err
}

// ListUsers fetches every user in the lite form used for the author merge.
func (c *Client) ListUsers(ctx context.Context) (models.UserList, error) {
	var list models.UserList
	query := url.Values{}
	query.Set("limit", "0")
	query.Set("select", "username,image")
	err := c.doJSON(ctx, http.MethodGet, "/users", query, nil, &list)
	return list, err
}

func (c *Client) GetUser(ctx context.Context, id int) (models.UserDetail, error) {
	var user models.UserDetail
	err := c.doJSON(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil, nil, &user)
	return user, err
}

func (c *Client) CommentsByPost(ctx context.Context, postID int) (models.CommentList, error) {
	var list models.CommentList
	err := c.doJSON(ctx, http.MethodGet, "/comments/post/"+strconv.Itoa(postID), nil, nil, &list)
	return list, err
}

// === Writes ===

func (c *Client) AddPost(ctx context.Context, body models.PostCreate) (models.Post, error) {
	var post models.Post
	err := c.doJSON(ctx, http.MethodPost, "/posts/add", nil, body, &post)
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, id int, body models.PostUpdate) (models.Post, error) {
	var post models.Post
	err := c.doJSON(ctx, http.MethodPut, "/posts/"+strconv.Itoa(id), nil, body, &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := c.doJSON(ctx, http.MethodDelete, "/posts/"+strconv.Itoa(id), nil, nil, &post)
	return post, err
}

func (c *Client) AddComment(ctx context.Context, body models.CommentCreate) (models.Comment, error) {
	var comment models.Comment
	err := c.doJSON(ctx, http.MethodPost, "/comments/add", nil, body, &comment)
	return comment, err
}

func (c *Client) UpdateComment(ctx context.Context, id int, body string) (models.Comment, error) {
	var comment models.Comment
	err := c.doJSON(ctx, http.MethodPut, "/comments/"+strconv.Itoa(id), nil, models.CommentUpdate{Body: body}, &comment)
	return comment, err
}

func (c *Client) DeleteComment(ctx context.Context, id int) (models.Comment, error) {
	var comment models.Comment
	err := c.doJSON(ctx, http.MethodDelete, "/comments/"+strconv.Itoa(id), nil, nil, &comment)
	return comment, err
}

// LikeComment sends the caller-computed like count via PATCH. The upstream
// echoes the comment with the new count.
func (c *Client) LikeComment(ctx context.Context, id, likes int) (models.Comment, error) {
	var comment models.Comment
	body := map[string]int{"likes": likes}
	err := c.doJSON(ctx, http.MethodPatch, "/comments/"+strconv.Itoa(id), nil, body, &comment)
	return comment, err
}

// doJSON issues one API request, retrying transient failures up to c.Attempts
// with a doubling delay between tries.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
	}

	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := c.RetryDelay
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("upstream status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return fmt.Errorf("%s %s: upstream status %d", method, path, resp.StatusCode)
		}

		if out != nil {
			err = json.NewDecoder(resp.Body).Decode(out)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
		return nil
	}

	return fmt.Errorf("%s %s: %w", method, path, lastErr)
}
