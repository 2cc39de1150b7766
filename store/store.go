package store

import (
	"sync"

	"postdeck.app/project-post-deck/models"
)

// Store is the single source of truth for what the dashboard displays: the
// current view state, the merged post collection with its total, the tag
// list, the lazily populated comments-by-post index, and the current
// selections. Only fetch completions and mutation successes write the
// displayed collections; handlers read snapshots.
//
// Changing the view state bumps a generation counter. A fetch completion
// carries the generation it was started under and is dropped when it no
// longer matches, so a response arriving out of order cannot overwrite a
// newer view.
type Store struct {
	mu         sync.Mutex
	state      models.ViewState
	generation uint64

	posts []models.Post
	total int
	tags  []models.Tag

	comments map[int][]models.Comment

	selectedPost    *models.Post
	selectedComment *models.Comment
	selectedUser    *models.UserDetail
}

func New() *Store {
	return &Store{
		state:    models.DefaultViewState(),
		comments: make(map[int][]models.Comment),
	}
}

// === View state ===

// SetViewState records the parameters driving the next load and returns the
// generation the caller must present when applying the result.
func (s *Store) SetViewState(state models.ViewState) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state != s.state {
		s.state = state
		s.generation++
	}
	return s.generation
}

func (s *Store) ViewState() models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// === Displayed posts ===

// ApplyPosts installs a completed load. It reports false, leaving the
// displayed collection untouched, when the view state has moved on since the
// load started.
func (s *Store) ApplyPosts(generation uint64, posts []models.Post, total int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	s.posts = posts
	s.total = total
	return true
}

// Posts returns a copy of the displayed collection and its total count.
func (s *Store) Posts() ([]models.Post, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, len(s.posts))
	copy(posts, s.posts)
	return posts, s.total
}

// PrependPost puts a newly created post at the top of the displayed list.
func (s *Store) PrependPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.posts)+1)
	posts = append(posts, post)
	posts = append(posts, s.posts...)
	s.posts = posts
	s.total++
}

// ReplacePost swaps the displayed entry whose id matches. Unknown ids are a
// no-op.
func (s *Store) ReplacePost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == post.ID {
			s.posts[i] = post
			return
		}
	}
}

// RemovePost drops the displayed entry whose id matches.
func (s *Store) RemovePost(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			s.total--
			return
		}
	}
}

// === Tags ===

func (s *Store) SetTags(tags []models.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tags = make([]models.Tag, len(tags))
	copy(s.tags, tags)
}

func (s *Store) Tags() []models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make([]models.Tag, len(s.tags))
	copy(tags, s.tags)
	return tags
}

// === Comments-by-post index ===

// SetComments stores a copy, so later in-place patches never write through to
// the caller's (typically the cache's) backing array.
func (s *Store) SetComments(postID int, comments []models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	own := make([]models.Comment, len(comments))
	copy(own, comments)
	s.comments[postID] = own
}

func (s *Store) Comments(postID int) ([]models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments, ok := s.comments[postID]
	if !ok {
		return nil, false
	}
	out := make([]models.Comment, len(comments))
	copy(out, comments)
	return out, true
}

// AppendComment adds a newly created comment under its post.
func (s *Store) AppendComment(comment models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.PostID] = append(s.comments[comment.PostID], comment)
}

// ReplaceComment swaps the matching entry in the post's comment list.
func (s *Store) ReplaceComment(comment models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := s.comments[comment.PostID]
	for i := range comments {
		if comments[i].ID == comment.ID {
			comments[i] = comment
			return
		}
	}
}

// RemoveComment drops the matching entry from the post's comment list.
func (s *Store) RemoveComment(postID, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := s.comments[postID]
	for i := range comments {
		if comments[i].ID == id {
			s.comments[postID] = append(comments[:i], comments[i+1:]...)
			return
		}
	}
}

// ApplyCommentLike replaces the matching entry with the server echo but adds
// one more to its like count. The request already sent likes+1, so the
// displayed count intentionally runs one ahead of the server until the next
// refetch.
func (s *Store) ApplyCommentLike(comment models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := s.comments[comment.PostID]
	for i := range comments {
		if comments[i].ID == comment.ID {
			patched := comment
			patched.Likes = comment.Likes + 1
			comments[i] = patched
			return
		}
	}
}

// LikesOf reports the currently displayed like count for a comment, or zero
// when the comment is unknown. The like mutation reads this to compute the
// count it sends.
func (s *Store) LikesOf(postID, id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.comments[postID] {
		if c.ID == id {
			return c.Likes
		}
	}
	return 0
}

// === Selection ===

func (s *Store) SelectPost(post *models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedPost = post
}

func (s *Store) SelectedPost() *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedPost
}

func (s *Store) SelectComment(comment *models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedComment = comment
}

func (s *Store) SelectedComment() *models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedComment
}

func (s *Store) SelectUser(user *models.UserDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedUser = user
}

func (s *Store) SelectedUser() *models.UserDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedUser
}
