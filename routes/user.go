package routes

import (
	"github.com/gorilla/mux"
	"postdeck.app/project-post-deck/handlers"
	"postdeck.app/project-post-deck/services"
	"postdeck.app/project-post-deck/store"
)

func CreateUserRoutes(api *services.Client, st *store.Store, router *mux.Router) *mux.Router {
	router.HandleFunc("/users/{id}", handlers.GetUserByID(api, st)).Methods("GET")

	return router
}
