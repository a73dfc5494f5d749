package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tenpin/internal/game"
	"tenpin/internal/viewmodel"
	"tenpin/views/pages"
)

const appTitle = "Tenpin"

type HomeHandler struct {
	store      *game.Store
	maxPlayers int
}

func NewHomeHandler(store *game.Store, maxPlayers int) *HomeHandler {
	if maxPlayers <= 0 {
		maxPlayers = game.DefaultMaxPlayers
	}
	return &HomeHandler{store: store, maxPlayers: maxPlayers}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/games", h.createGame)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.HomePage(viewmodel.HomePage{
		Title:      appTitle,
		MaxPlayers: h.maxPlayers,
	}))
}

func (h *HomeHandler) createGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	names := make([]string, 0, len(r.Form["players"]))
	for _, name := range r.Form["players"] {
		if name != "" {
			names = append(names, name)
		}
	}
	g := h.store.CreateGame(names...)
	http.Redirect(w, r, "/game/"+g.ID, http.StatusSeeOther)
}
