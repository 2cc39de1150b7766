package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"postdeck.app/project-post-deck/config"
	"postdeck.app/project-post-deck/middleware"
	"postdeck.app/project-post-deck/routes"
	"postdeck.app/project-post-deck/services"
	"postdeck.app/project-post-deck/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	api := services.NewClient(cfg.Upstream.BaseURL)
	api.HTTPClient.Timeout = cfg.Upstream.Timeout
	api.Attempts = cfg.Upstream.Attempts

	cache := services.NewCache(cfg.Cache.StaleAfter, cfg.Cache.EvictAfter)
	cache.StartSweeper(context.Background(), cfg.Cache.SweepInterval)

	loader := services.NewLoader(api, cache)
	st := store.New()

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	routes.CreatePostRoutes(api, loader, cache, st, router)
	routes.CreateUserRoutes(api, st, router)

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	handler := middleware.RequestLogger(limiter.Middleware(router))

	log.Printf("Listening on %s, upstream %s", cfg.Server.Addr, cfg.Upstream.BaseURL)
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		log.Fatal(err)
	}
}
