package routes

import (
	"github.com/gorilla/mux"
	"postdeck.app/project-post-deck/handlers"
	"postdeck.app/project-post-deck/services"
	"postdeck.app/project-post-deck/store"
)

func CreatePostRoutes(api *services.Client, loader *services.Loader, cache *services.Cache, st *store.Store, router *mux.Router) *mux.Router {
	router.HandleFunc("/posts/tags", handlers.GetTags(loader, st)).Methods("GET")
	router.HandleFunc("/posts", handlers.GetPosts(loader, st)).Methods("GET")
	router.HandleFunc("/posts", handlers.CreatePost(api, cache, st)).Methods("POST")
	router.HandleFunc("/posts/{id}", handlers.UpdatePost(api, cache, st)).Methods("PUT")
	router.HandleFunc("/posts/{id}", handlers.DeletePost(api, cache, st)).Methods("DELETE")

	router.HandleFunc("/posts/{postId}/comments", handlers.GetComments(loader, st)).Methods("GET")
	router.HandleFunc("/posts/{postId}/comments", handlers.CreateComment(api, cache, st)).Methods("POST")
	router.HandleFunc("/comments/{id}", handlers.UpdateComment(api, cache, st)).Methods("PUT")
	router.HandleFunc("/comments/{id}", handlers.DeleteComment(api, cache, st)).Methods("DELETE")
	router.HandleFunc("/comments/{id}/like", handlers.LikeComment(api, cache, st)).Methods("POST")

	return router
}
