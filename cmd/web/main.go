package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tenpin/internal/config"
	"tenpin/internal/game"
	"tenpin/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store := game.NewStore(cfg.MaxPlayers, cfg.RollTimeout)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	homeHandler := handlers.NewHomeHandler(store, cfg.MaxPlayers)
	gameHandler := handlers.NewGameHandler(store, handlers.Options{
		BaseURL:        cfg.BaseURL,
		RequestTimeout: cfg.RequestTimeout,
	})

	homeHandler.RegisterRoutes(r)
	gameHandler.RegisterRoutes(r)

	// No WriteTimeout: the lane stream stays open for the whole session.
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("listening on http://localhost%s max_players=%d roll_timeout=%s", cfg.Addr(), cfg.MaxPlayers, cfg.RollTimeout)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
