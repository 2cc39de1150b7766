package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdeck.app/project-post-deck/models"
)

func newTestClient(upstream *httptest.Server) *Client {
	c := NewClient(upstream.URL)
	c.RetryDelay = time.Millisecond
	return c
}

func TestClient_ListPosts(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("skip"))
		json.NewEncoder(w).Encode(models.PostList{
			Posts: []models.Post{{ID: 21, Title: "a post"}},
			Total: 251,
			Skip:  20,
			Limit: 10,
		})
	}))
	defer upstream.Close()

	list, err := newTestClient(upstream).ListPosts(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Equal(t, 251, list.Total)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, "a post", list.Posts[0].Title)
}

func TestClient_ListUsersSelectsLiteFields(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("limit"))
		assert.Equal(t, "username,image", r.URL.Query().Get("select"))
		json.NewEncoder(w).Encode(models.UserList{Users: []models.User{{ID: 5, Username: "ann"}}})
	}))
	defer upstream.Close()

	list, err := newTestClient(upstream).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Users, 1)
	assert.Equal(t, "ann", list.Users[0].Username)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]models.Tag{{Slug: "tech", Name: "tech"}})
	}))
	defer upstream.Close()

	tags, err := newTestClient(upstream).Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, tags, 1)
	assert.Equal(t, "tech", tags[0].Slug)
}

func TestClient_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	_, err := newTestClient(upstream).Tags(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "no such post", http.StatusNotFound)
	}))
	defer upstream.Close()

	_, err := newTestClient(upstream).DeletePost(context.Background(), 9999)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_LikeCommentSendsPatchedCount(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/comments/3", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"likes":5}`, string(body))

		json.NewEncoder(w).Encode(models.Comment{ID: 3, PostID: 7, Likes: 5})
	}))
	defer upstream.Close()

	comment, err := newTestClient(upstream).LikeComment(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, comment.Likes)
}

func TestClient_AddCommentPostsBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/comments/add", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.CommentCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(models.Comment{
			ID:     301,
			Body:   req.Body,
			PostID: req.PostID,
			User:   models.CommentUser{ID: req.UserID},
		})
	}))
	defer upstream.Close()

	comment, err := newTestClient(upstream).AddComment(context.Background(), models.CommentCreate{
		Body:   "nice post",
		PostID: 7,
		UserID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 301, comment.ID)
	assert.Equal(t, 7, comment.PostID)
	assert.Equal(t, "nice post", comment.Body)
}
