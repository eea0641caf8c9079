package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/d0sboots/VaultDict/internal/index"
	"github.com/d0sboots/VaultDict/internal/lexicon"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *lexicon.Service, db *index.DB, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, db)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Dictionary.
	r.Get("/words", h.ListWords)
	r.Get("/words/{name}", h.GetWord)
	r.Get("/atoms", h.Atoms)

	// Search.
	r.Get("/search", h.Search)

	// Rendering.
	r.Post("/transcribe", h.Transcribe)
	r.Get("/wikitable", h.Wikitable)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
