package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/bookfather/admin/internal/models"
)

// field binds one text input of a form to a draft field.
type field[F any] struct {
	label       string
	placeholder string
	get         func(F) string
	set         func(*F, string)
}

var bookFields = []field[models.BookFields]{
	{
		label:       "Name",
		placeholder: "Dune",
		get:         func(f models.BookFields) string { return f.Name },
		set:         func(f *models.BookFields, v string) { f.Name = v },
	},
	{
		label:       "Image URL",
		placeholder: "https://",
		get:         func(f models.BookFields) string { return f.ImgURL },
		set:         func(f *models.BookFields, v string) { f.ImgURL = v },
	},
	{
		label:       "PDF URL",
		placeholder: "https://",
		get:         func(f models.BookFields) string { return f.PDFURL },
		set:         func(f *models.BookFields, v string) { f.PDFURL = v },
	},
}

var categoryFields = []field[models.CategoryFields]{
	{
		label:       "Name",
		placeholder: "Science Fiction",
		get:         func(f models.CategoryFields) string { return f.Name },
		set:         func(f *models.CategoryFields, v string) { f.Name = v },
	},
	{
		label:       "Image URL",
		placeholder: "https://",
		get:         func(f models.CategoryFields) string { return f.ImgURL },
		set:         func(f *models.CategoryFields, v string) { f.ImgURL = v },
	},
}

var bannerFields = []field[models.BannerFields]{
	{
		label:       "Image URL",
		placeholder: "https://",
		get:         func(f models.BannerFields) string { return f.ImgURL },
		set:         func(f *models.BannerFields, v string) { f.ImgURL = v },
	},
}

// newInputs builds one text input per field, filled from draft. The first
// input has focus.
func newInputs[F any](fields []field[F], draft F) []textinput.Model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.label + ": "
		ti.Placeholder = f.placeholder
		ti.Width = 50
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.SetValue(f.get(draft))
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return inputs
}
