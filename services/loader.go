package services

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"postdeck.app/project-post-deck/models"
)

// PostPage is one displayable page of posts.
type PostPage struct {
	Posts []models.Post
	Total int
}

// Loader drives the read paths: it keys each fetch by its input parameters,
// consults the cache, and joins the concurrent posts+users fetches before the
// author merge.
type Loader struct {
	API   *Client
	Cache *Cache
}

func NewLoader(api *Client, cache *Cache) *Loader {
	return &Loader{API: api, Cache: cache}
}

// LoadPosts returns the plain paginated listing with authors merged in. The
// posts page and the lite user list are fetched concurrently; both must
// succeed or the whole load fails, so a partial merge is never produced.
func (l *Loader) LoadPosts(ctx context.Context, state models.ViewState) (PostPage, error) {
	key := "posts|" + state.Encode()
	value, err := l.Cache.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		var (
			posts models.PostList
			users models.UserList
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			posts, err = l.API.ListPosts(gctx, state.Limit, state.Skip)
			return err
		})
		g.Go(func() error {
			var err error
			users, err = l.API.ListUsers(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return PostPage{
			Posts: models.MergeAuthors(posts.Posts, users.Users),
			Total: posts.Total,
		}, nil
	})
	if err != nil {
		return PostPage{}, err
	}
	return value.(PostPage), nil
}

// SearchPosts returns full-text search results. Search results are displayed
// without the author merge.
func (l *Loader) SearchPosts(ctx context.Context, q string) (PostPage, error) {
	key := "posts|search|" + q
	value, err := l.Cache.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		list, err := l.API.SearchPosts(ctx, q)
		if err != nil {
			return nil, err
		}
		return PostPage{Posts: list.Posts, Total: list.Total}, nil
	})
	if err != nil {
		return PostPage{}, err
	}
	return value.(PostPage), nil
}

// PostsByTag returns the tag-filtered listing with authors merged in, joining
// the two fetches the same way as LoadPosts.
func (l *Loader) PostsByTag(ctx context.Context, tag string) (PostPage, error) {
	key := "posts|tag|" + tag
	value, err := l.Cache.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		var (
			posts models.PostList
			users models.UserList
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			posts, err = l.API.PostsByTag(gctx, tag)
			return err
		})
		g.Go(func() error {
			var err error
			users, err = l.API.ListUsers(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return PostPage{
			Posts: models.MergeAuthors(posts.Posts, users.Users),
			Total: posts.Total,
		}, nil
	})
	if err != nil {
		return PostPage{}, err
	}
	return value.(PostPage), nil
}

func (l *Loader) Tags(ctx context.Context) ([]models.Tag, error) {
	value, err := l.Cache.Fetch(ctx, "tags", func(ctx context.Context) (interface{}, error) {
		return l.API.Tags(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.Tag), nil
}

// Comments returns a post's comments, fetched lazily the first time the post
// is opened and cached under its own key afterwards.
func (l *Loader) Comments(ctx context.Context, postID int) ([]models.Comment, error) {
	key := "comments|" + strconv.Itoa(postID)
	value, err := l.Cache.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		list, err := l.API.CommentsByPost(ctx, postID)
		if err != nil {
			return nil, err
		}
		return list.Comments, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.Comment), nil
}
