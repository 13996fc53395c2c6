// Package handlers implements the BookFather catalog API in memory. It backs
// the `serve` command for local development and the client tests.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/storage"
	"github.com/bookfather/admin/internal/validation"
)

// storedCategory keeps membership as identities; it is populated on read.
type storedCategory struct {
	ID     string
	Name   string
	ImgURL string
	Books  []string
}

type Handler struct {
	apiKey    string
	keyHeader string

	books      *storage.Store[models.Book]
	categories *storage.Store[storedCategory]
	banners    *storage.Store[models.Banner]
	validator  *validation.Validator
}

func New(apiKey, keyHeader string) *Handler {
	if keyHeader == "" {
		keyHeader = "apikey"
	}
	return &Handler{
		apiKey:     apiKey,
		keyHeader:  keyHeader,
		books:      storage.New[models.Book](),
		categories: storage.New[storedCategory](),
		banners:    storage.New[models.Banner](),
		validator:  validation.New(),
	}
}

// Routes mounts the three collections under /api behind the key check.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(h.requireKey)

		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.listBooks)
			r.Post("/", h.createBook)
			r.Put("/{id}", h.updateBook)
			r.Delete("/{id}", h.deleteBook)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.Post("/", h.createCategory)
			r.Put("/{id}", h.updateCategory)
			r.Delete("/{id}", h.deleteCategory)
		})
		r.Route("/banners", func(r chi.Router) {
			r.Get("/", h.listBanners)
			r.Post("/", h.createBanner)
			r.Put("/{id}", h.updateBanner)
			r.Delete("/{id}", h.deleteBanner)
		})
	})

	return r
}

func (h *Handler) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(h.keyHeader) != h.apiKey {
			h.writeError(w, "Invalid API key", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Debug("API error", "status", code, "message", message)
	h.writeJSON(w, code, map[string]string{"message": message})
}

// decodeFields reads a JSON body into dst and validates it. It writes the
// error response itself and reports whether the handler may continue.
func (h *Handler) decodeFields(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := h.validator.Validate(dst); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (h *Handler) deleted(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
