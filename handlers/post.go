package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"postdeck.app/project-post-deck/models"
	"postdeck.app/project-post-deck/services"
	"postdeck.app/project-post-deck/store"
)

// postView is a displayed post plus the highlight segments the table renders
// when a search is active.
type postView struct {
	models.Post
	TitleSegments []Segment `json:"titleSegments,omitempty"`
	BodySegments  []Segment `json:"bodySegments,omitempty"`
}

type postPageResponse struct {
	Posts []postView `json:"posts"`
	Total int        `json:"total"`
	Skip  int        `json:"skip"`
	Limit int        `json:"limit"`
}

// GetPosts serves the displayed collection for the view state carried in the
// URL. Exactly one of search, tag filter, or plain listing drives the load:
// an active search wins, then a tag filter, then the paginated listing.
func GetPosts(loader *services.Loader, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := models.ParseViewState(r.URL.Query())
		generation := st.SetViewState(state)

		var (
			page services.PostPage
			err  error
		)
		switch {
		case state.Search != "":
			page, err = loader.SearchPosts(r.Context(), state.Search)
		case state.Tag != "":
			page, err = loader.PostsByTag(r.Context(), state.Tag)
		default:
			page, err = loader.LoadPosts(r.Context(), state)
		}
		if err != nil {
			http.Error(w, "Failed to fetch posts", http.StatusBadGateway)
			log.Printf("GetPosts error: %v", err)
			return
		}

		// The cache owns page.Posts; sort a copy.
		posts := make([]models.Post, len(page.Posts))
		copy(posts, page.Posts)
		models.SortPosts(posts, state.SortBy, state.SortOrder)

		if !st.ApplyPosts(generation, posts, page.Total) {
			log.Printf("GetPosts: dropped stale result for %q", state.Encode())
		}

		views := make([]postView, len(posts))
		for i, p := range posts {
			views[i] = postView{Post: p}
			if state.Search != "" {
				views[i].TitleSegments = SplitHighlight(p.Title, state.Search)
				views[i].BodySegments = SplitHighlight(p.Body, state.Search)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(postPageResponse{
			Posts: views,
			Total: page.Total,
			Skip:  state.Skip,
			Limit: state.Limit,
		})
	}
}

// GetTags serves the tag list for the filter dropdown.
func GetTags(loader *services.Loader, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := loader.Tags(r.Context())
		if err != nil {
			http.Error(w, "Failed to fetch tags", http.StatusBadGateway)
			log.Printf("GetTags error: %v", err)
			return
		}

		st.SetTags(tags)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tags)
	}
}

func CreatePost(api *services.Client, cache *services.Cache, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.PostCreate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if body.Title == "" {
			http.Error(w, "title is required", http.StatusBadRequest)
			return
		}
		if body.UserID == 0 {
			http.Error(w, "userId is required", http.StatusBadRequest)
			return
		}

		created, err := api.AddPost(r.Context(), body)
		if err != nil {
			http.Error(w, "Failed to create post", http.StatusBadGateway)
			log.Printf("CreatePost error: %v", err)
			return
		}

		st.PrependPost(created)
		cache.Invalidate("posts")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func UpdatePost(api *services.Client, cache *services.Cache, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid post ID", http.StatusBadRequest)
			return
		}

		var body models.PostUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		updated, err := api.UpdatePost(r.Context(), id, body)
		if err != nil {
			http.Error(w, "Failed to update post", http.StatusBadGateway)
			log.Printf("UpdatePost error: %v", err)
			return
		}

		st.ReplacePost(updated)
		cache.Invalidate("posts")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeletePost(api *services.Client, cache *services.Cache, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid post ID", http.StatusBadRequest)
			return
		}

		deleted, err := api.DeletePost(r.Context(), id)
		if err != nil {
			http.Error(w, "Failed to delete post", http.StatusBadGateway)
			log.Printf("DeletePost error: %v", err)
			return
		}

		st.RemovePost(id)
		cache.Invalidate("posts")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(deleted)
	}
}
