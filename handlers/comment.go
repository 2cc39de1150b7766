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

// GetComments serves a post's comments. The comments-by-post index is
// populated the first time a post's detail is opened; afterwards each access
// re-validates through the cache's freshness window.
func GetComments(loader *services.Loader, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		postID, err := strconv.Atoi(vars["postId"])
		if err != nil {
			http.Error(w, "Invalid post ID", http.StatusBadRequest)
			return
		}

		comments, err := loader.Comments(r.Context(), postID)
		if err != nil {
			http.Error(w, "Failed to fetch comments", http.StatusBadGateway)
			log.Printf("GetComments error: %v", err)
			return
		}

		st.SetComments(postID, comments)

		displayed, _ := st.Comments(postID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"comments": displayed,
			"total":    len(displayed),
		})
	}
}

func CreateComment(api *services.Client, cache *services.Cache, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		postID, err := strconv.Atoi(vars["postId"])
		if err != nil {
			http.Error(w, "Invalid post ID", http.StatusBadRequest)
			return
		}

		var req struct {
			Body   string `json:"body"`
			UserID int    `json:"userId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Body == "" {
			http.Error(w, "body is required", http.StatusBadRequest)
			return
		}

		created, err := api.AddComment(r.Context(), models.CommentCreate{
			Body:   req.Body,
			PostID: postID,
			UserID: req.UserID,
		})
		if err != nil {
			http.Error(w, "Failed to create comment", http.StatusBadGateway)
			log.Printf("CreateComment error: %v", err)
			return
		}

		st.AppendComment(created)
		cache.Invalidate("comments")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func UpdateComment(api *services.Client, cache *services.Cache, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid comment ID", http.StatusBadRequest)
			return
		}

		var req struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		updated, err := api.UpdateComment(r.Context(), id, req.Body)
		if err != nil {
			http.Error(w, "Failed to update comment", http.StatusBadGateway)
			log.Printf("UpdateComment error: %v", err)
			return
		}

		st.ReplaceComment(updated)
		cache.Invalidate("comments")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteComment(api *services.Client, cache *services.Cache, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid comment ID", http.StatusBadRequest)
			return
		}

		deleted, err := api.DeleteComment(r.Context(), id)
		if err != nil {
			http.Error(w, "Failed to delete comment", http.StatusBadGateway)
			log.Printf("DeleteComment error: %v", err)
			return
		}

		st.RemoveComment(deleted.PostID, id)
		cache.Invalidate("comments")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(deleted)
	}
}

// LikeComment reads the currently displayed like count, sends count+1 to the
// upstream, then applies the server echo plus one more. The displayed count
// runs one ahead of the server's until the next refetch.
func LikeComment(api *services.Client, cache *services.Cache, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid comment ID", http.StatusBadRequest)
			return
		}

		var req struct {
			PostID int `json:"postId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		current := st.LikesOf(req.PostID, id)
		liked, err := api.LikeComment(r.Context(), id, current+1)
		if err != nil {
			http.Error(w, "Failed to like comment", http.StatusBadGateway)
			log.Printf("LikeComment error: %v", err)
			return
		}

		st.ApplyCommentLike(liked)
		cache.Invalidate("comments")

		patched := liked
		patched.Likes = liked.Likes + 1
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(patched)
	}
}
