package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/d0sboots/VaultDict/internal/apperr"
	"github.com/d0sboots/VaultDict/internal/index"
	"github.com/d0sboots/VaultDict/internal/lexicon"
	"github.com/d0sboots/VaultDict/internal/wikitable"
)

// Handler holds API route handlers.
type Handler struct {
	svc *lexicon.Service
	db  *index.DB
}

// NewHandler creates a new Handler.
func NewHandler(svc *lexicon.Service, db *index.DB) *Handler {
	return &Handler{svc: svc, db: db}
}

// wordName extracts the word name from the URL, decoding percent escapes so
// names with unusual characters survive OpenAPI-style clients.
func wordName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListWords handles GET /api/words.
func (h *Handler) ListWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, total := h.svc.List(r.Context(), limit, offset)
	writeJSON(w, http.StatusOK, map[string]any{
		"words":    items,
		"total":    total,
		"checksum": h.svc.Checksum(),
	})
}

// GetWord handles GET /api/words/{name}.
func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	name := wordName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	detail, err := h.svc.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get word failed", slog.String("name", name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.db.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("q", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Atoms handles GET /api/atoms.
func (h *Handler) Atoms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"atoms": h.svc.Atoms(r.Context())})
}

// Transcribe handles POST /api/transcribe.
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Components []string `json:"components"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if len(req.Components) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("components are required"))
		return
	}
	glyphs, err := h.svc.Transcribe(r.Context(), req.Components)
	if err != nil {
		if errors.Is(err, apperr.ErrUnknownReference) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		} else {
			slog.Error("transcribe failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"glyphs": glyphs})
}

// Wikitable handles GET /api/wikitable, emitting wiki markup as plain text.
func (h *Handler) Wikitable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := wikitable.Render(w, h.svc.Snapshot()); err != nil {
		slog.Error("wikitable render failed", slog.String("error", err.Error()))
	}
}
