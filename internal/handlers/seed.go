package handlers

import "github.com/bookfather/admin/internal/models"

// AddBook stores a book directly, bypassing HTTP. Used for seeding.
func (h *Handler) AddBook(fields models.BookFields) models.Book {
	book := models.Book{ID: newID(), Name: fields.Name, ImgURL: fields.ImgURL, PDFURL: fields.PDFURL}
	h.books.Set(book.ID, book)
	return book
}

// AddCategory stores a category directly and returns it populated.
func (h *Handler) AddCategory(fields models.CategoryFields) models.Category {
	c := h.addCategory(fields)
	p := h.populate(c)
	refs := make([]models.BookRef, 0, len(p.Books))
	for _, b := range p.Books {
		refs = append(refs, models.BookRef{ID: b.ID, Name: b.Name})
	}
	return models.Category{ID: p.ID, Name: p.Name, ImgURL: p.ImgURL, Books: refs}
}

func (h *Handler) addCategory(fields models.CategoryFields) storedCategory {
	c := storedCategory{ID: newID(), Name: fields.Name, ImgURL: fields.ImgURL, Books: append([]string{}, fields.Books...)}
	h.categories.Set(c.ID, c)
	return c
}

// AddBanner stores a banner directly. Used for seeding.
func (h *Handler) AddBanner(fields models.BannerFields) models.Banner {
	banner := models.Banner{ID: newID(), ImgURL: fields.ImgURL}
	h.banners.Set(banner.ID, banner)
	return banner
}

// SeedSample fills the store with a small demo catalog.
func (h *Handler) SeedSample() {
	dune := h.AddBook(models.BookFields{Name: "Dune", ImgURL: "https://covers.example.com/dune.jpg", PDFURL: "https://files.example.com/dune.pdf"})
	foundation := h.AddBook(models.BookFields{Name: "Foundation", ImgURL: "https://covers.example.com/foundation.jpg", PDFURL: "https://files.example.com/foundation.pdf"})
	hobbit := h.AddBook(models.BookFields{Name: "The Hobbit", ImgURL: "https://covers.example.com/hobbit.jpg", PDFURL: "https://files.example.com/hobbit.pdf"})

	h.AddCategory(models.CategoryFields{Name: "Science Fiction", ImgURL: "https://covers.example.com/scifi.jpg", Books: []string{dune.ID, foundation.ID}})
	h.AddCategory(models.CategoryFields{Name: "Fantasy", ImgURL: "https://covers.example.com/fantasy.jpg", Books: []string{hobbit.ID}})

	h.AddBanner(models.BannerFields{ImgURL: "https://covers.example.com/summer-sale.jpg"})
}
