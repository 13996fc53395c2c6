package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookfather/admin/internal/models"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.books.GetAll())
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var fields models.BookFields
	if !h.decodeFields(w, r, &fields) {
		return
	}
	h.writeJSON(w, http.StatusCreated, h.AddBook(fields))
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.books.Get(id); !ok {
		h.writeError(w, "Book not found", http.StatusNotFound)
		return
	}
	var fields models.BookFields
	if !h.decodeFields(w, r, &fields) {
		return
	}
	book := models.Book{ID: id, Name: fields.Name, ImgURL: fields.ImgURL, PDFURL: fields.PDFURL}
	h.books.Replace(id, book)
	h.writeJSON(w, http.StatusOK, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if !h.books.Delete(chi.URLParam(r, "id")) {
		h.writeError(w, "Book not found", http.StatusNotFound)
		return
	}
	h.deleted(w)
}

// populatedCategory is the read shape of a category: membership is expanded
// into book objects and references to deleted books are left out.
type populatedCategory struct {
	ID     string        `json:"_id"`
	Name   string        `json:"name"`
	ImgURL string        `json:"imgUrl"`
	Books  []models.Book `json:"books"`
}

func (h *Handler) populate(c storedCategory) populatedCategory {
	out := populatedCategory{ID: c.ID, Name: c.Name, ImgURL: c.ImgURL, Books: []models.Book{}}
	for _, id := range c.Books {
		if b, ok := h.books.Get(id); ok {
			out.Books = append(out.Books, b)
		}
	}
	return out
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	stored := h.categories.GetAll()
	list := make([]populatedCategory, 0, len(stored))
	for _, c := range stored {
		list = append(list, h.populate(c))
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var fields models.CategoryFields
	if !h.decodeFields(w, r, &fields) {
		return
	}
	h.writeJSON(w, http.StatusCreated, h.populate(h.addCategory(fields)))
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.categories.Get(id); !ok {
		h.writeError(w, "Category not found", http.StatusNotFound)
		return
	}
	var fields models.CategoryFields
	if !h.decodeFields(w, r, &fields) {
		return
	}
	c := storedCategory{ID: id, Name: fields.Name, ImgURL: fields.ImgURL, Books: append([]string{}, fields.Books...)}
	h.categories.Replace(id, c)
	h.writeJSON(w, http.StatusOK, h.populate(c))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if !h.categories.Delete(chi.URLParam(r, "id")) {
		h.writeError(w, "Category not found", http.StatusNotFound)
		return
	}
	h.deleted(w)
}

func (h *Handler) listBanners(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.banners.GetAll())
}

func (h *Handler) createBanner(w http.ResponseWriter, r *http.Request) {
	var fields models.BannerFields
	if !h.decodeFields(w, r, &fields) {
		return
	}
	h.writeJSON(w, http.StatusCreated, h.AddBanner(fields))
}

func (h *Handler) updateBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.banners.Get(id); !ok {
		h.writeError(w, "Banner not found", http.StatusNotFound)
		return
	}
	var fields models.BannerFields
	if !h.decodeFields(w, r, &fields) {
		return
	}
	banner := models.Banner{ID: id, ImgURL: fields.ImgURL}
	h.banners.Replace(id, banner)
	h.writeJSON(w, http.StatusOK, banner)
}

func (h *Handler) deleteBanner(w http.ResponseWriter, r *http.Request) {
	if !h.banners.Delete(chi.URLParam(r, "id")) {
		h.writeError(w, "Banner not found", http.StatusNotFound)
		return
	}
	h.deleted(w)
}
