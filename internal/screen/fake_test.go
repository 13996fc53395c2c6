package screen

import (
	"context"
	"slices"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookfather/admin/internal/models"
)

// fakeCollection is an in-memory Collection that records every call.
type fakeCollection[T models.Record[F], F any] struct {
	items []T
	build func(id string, fields F) T

	lists, creates, updates, removes int
	lastID                           string
	lastFields                       F

	listErr, createErr, updateErr, removeErr error
}

func (f *fakeCollection[T, F]) List(ctx context.Context) ([]T, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.items), nil
}

func (f *fakeCollection[T, F]) Create(ctx context.Context, fields F) (T, error) {
	f.creates++
	f.lastFields = fields
	if f.createErr != nil {
		var zero T
		return zero, f.createErr
	}
	item := f.build(strconv.Itoa(len(f.items)+100), fields)
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeCollection[T, F]) Update(ctx context.Context, id string, fields F) error {
	f.updates++
	f.lastID = id
	f.lastFields = fields
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, item := range f.items {
		if item.Key() == id {
			f.items[i] = f.build(id, fields)
		}
	}
	return nil
}

func (f *fakeCollection[T, F]) Remove(ctx context.Context, id string) error {
	f.removes++
	f.lastID = id
	if f.removeErr != nil {
		return f.removeErr
	}
	f.items = slices.DeleteFunc(f.items, func(item T) bool { return item.Key() == id })
	return nil
}

func newFakeBooks(items ...models.Book) *fakeCollection[models.Book, models.BookFields] {
	return &fakeCollection[models.Book, models.BookFields]{
		items: items,
		build: func(id string, f models.BookFields) models.Book {
			return models.Book{ID: id, Name: f.Name, ImgURL: f.ImgURL, PDFURL: f.PDFURL}
		},
	}
}

func newFakeCategories(items ...models.Category) *fakeCollection[models.Category, models.CategoryFields] {
	return &fakeCollection[models.Category, models.CategoryFields]{
		items: items,
		build: func(id string, f models.CategoryFields) models.Category {
			refs := make([]models.BookRef, 0, len(f.Books))
			for _, b := range f.Books {
				refs = append(refs, models.BookRef{ID: b})
			}
			return models.Category{ID: id, Name: f.Name, ImgURL: f.ImgURL, Books: refs}
		},
	}
}

func newFakeBanners(items ...models.Banner) *fakeCollection[models.Banner, models.BannerFields] {
	return &fakeCollection[models.Banner, models.BannerFields]{
		items: items,
		build: func(id string, f models.BannerFields) models.Banner {
			return models.Banner{ID: id, ImgURL: f.ImgURL}
		},
	}
}

// drain runs cmd and every command that follows from it, feeding each
// message to update, the way the bubbletea runtime would.
func drain(t *testing.T, update func(tea.Msg) tea.Cmd, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command chain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		queue = append(queue, update(msg))
	}
}
