package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bookfather/admin/internal/models"
)

const testKey = "310424"

func do(h *Handler, method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set("apikey", key)
	}
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	h := New(testKey, "")
	dune := h.AddBook(models.BookFields{Name: "Dune"})

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		key        string
		wantStatus int
	}{
		{"healthcheck needs no key", http.MethodGet, "/healthcheck", "", "", http.StatusOK},
		{"missing key", http.MethodGet, "/api/books", "", "", http.StatusUnauthorized},
		{"wrong key", http.MethodGet, "/api/books", "", "nope", http.StatusUnauthorized},
		{"list books", http.MethodGet, "/api/books", "", testKey, http.StatusOK},
		{"create book", http.MethodPost, "/api/books", `{"name":"Emma"}`, testKey, http.StatusCreated},
		{"create book without name", http.MethodPost, "/api/books", `{"imgUrl":"x"}`, testKey, http.StatusBadRequest},
		{"create book with bad JSON", http.MethodPost, "/api/books", `{`, testKey, http.StatusBadRequest},
		{"update book", http.MethodPut, "/api/books/" + dune.ID, `{"name":"Dune Messiah"}`, testKey, http.StatusOK},
		{"update missing book", http.MethodPut, "/api/books/missing", `{"name":"X"}`, testKey, http.StatusNotFound},
		{"delete missing banner", http.MethodDelete, "/api/banners/missing", "", testKey, http.StatusNotFound},
		{"create banner without image", http.MethodPost, "/api/banners", `{}`, testKey, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, tt.method, tt.path, tt.body, tt.key)
			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCategoriesArePopulated(t *testing.T) {
	h := New(testKey, "")
	dune := h.AddBook(models.BookFields{Name: "Dune"})
	emma := h.AddBook(models.BookFields{Name: "Emma"})
	h.AddCategory(models.CategoryFields{Name: "Mixed", Books: []string{emma.ID, dune.ID}})

	// Deleting a book leaves the reference in place; reads skip it.
	if rec := do(h, http.MethodDelete, "/api/books/"+emma.ID, "", testKey); rec.Code != http.StatusOK {
		t.Fatalf("Expected delete to succeed, got %d", rec.Code)
	}

	rec := do(h, http.MethodGet, "/api/categories", "", testKey)
	var categories []models.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("Failed to decode categories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(categories))
	}
	books := categories[0].Books
	if len(books) != 1 || books[0].ID != dune.ID || books[0].Name != "Dune" {
		t.Errorf("Expected only Dune to be populated, got %+v", books)
	}
}

func TestCustomKeyHeader(t *testing.T) {
	h := New(testKey, "X-Api-Key")
	req := httptest.NewRequest(http.MethodGet, "/api/banners", nil)
	req.Header.Set("X-Api-Key", testKey)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("Expected empty list, got %s", rec.Body.String())
	}
}
