package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"postdeck.app/project-post-deck/services"
	"postdeck.app/project-post-deck/store"
)

// GetUserByID serves the full profile shown when an author is inspected. The
// detail view stands alone; it is never merged into the post listing.
func GetUserByID(api *services.Client, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		user, err := api.GetUser(r.Context(), id)
		if err != nil {
			http.Error(w, "Failed to fetch user", http.StatusBadGateway)
			log.Printf("GetUserByID error: %v", err)
			return
		}

		st.SelectUser(&user)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}
