package screen

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/validation"
)

const (
	DashboardRoute  = "/"
	BooksRoute      = "/book-fetch"
	CategoriesRoute = "/category-fetch"
	BannersRoute    = "/banner-fetch"
)

// Options are the collaborators shared by all screens of one app.
type Options struct {
	History   *History
	Validator *validation.Validator
	Logger    *slog.Logger
}

type (
	BookScreen   = Screen[models.Book, models.BookFields]
	BannerScreen = Screen[models.Banner, models.BannerFields]
)

func NewBookScreen(ctx context.Context, books Collection[models.Book, models.BookFields], opts Options) *BookScreen {
	return New(ctx, Config[models.Book, models.BookFields]{
		Name:         "books",
		Route:        BooksRoute,
		Collection:   books,
		Empty:        func() models.BookFields { return models.BookFields{} },
		Messages:     DefaultMessages("book", "books"),
		DeepLinkAdd:  true,
		DeepLinkEdit: true,
		History:      opts.History,
		Validator:    opts.Validator,
		Logger:       opts.Logger,
	})
}

func NewBannerScreen(ctx context.Context, banners Collection[models.Banner, models.BannerFields], opts Options) *BannerScreen {
	msgs := DefaultMessages("banner", "banners")
	msgs.AddFailed = "Failed to submit banner."
	msgs.UpdateFailed = "Failed to submit banner."

	return New(ctx, Config[models.Banner, models.BannerFields]{
		Name:       "banners",
		Route:      BannersRoute,
		Collection: banners,
		Empty:      func() models.BannerFields { return models.BannerFields{} },
		Messages:   msgs,
		History:    opts.History,
		Validator:  opts.Validator,
		Logger:     opts.Logger,
	})
}

// CategoryScreen is the category screen plus the book multi-select. It
// fetches its own copy of the book list, which it only reads.
type CategoryScreen struct {
	*Screen[models.Category, models.CategoryFields]

	ctx      context.Context
	books    *ListState[models.Book]
	selector Selector[models.Book]
	started  bool
}

// NewCategoryScreen creates the category screen. books provides the list the
// selector offers; a failure to fetch it is only logged.
func NewCategoryScreen(ctx context.Context, categories Collection[models.Category, models.CategoryFields], books ListFunc[models.Book], opts Options) *CategoryScreen {
	base := New(ctx, Config[models.Category, models.CategoryFields]{
		Name:         "categories",
		Route:        CategoriesRoute,
		Collection:   categories,
		Empty:        func() models.CategoryFields { return models.CategoryFields{Books: []string{}} },
		Messages:     DefaultMessages("category", "categories"),
		DeepLinkEdit: true,
		History:      opts.History,
		Validator:    opts.Validator,
		Logger:       opts.Logger,
	})

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bookList := NewListState("categories/books", "Failed to fetch books.", books, logger.With("screen", "categories"))

	return &CategoryScreen{
		Screen:   base,
		ctx:      ctx,
		books:    bookList,
		selector: NewSelector(bookList, models.Book.Key, func(b models.Book) string { return b.Name }),
	}
}

// Init fetches categories and books once.
func (c *CategoryScreen) Init() tea.Cmd {
	if c.started {
		return nil
	}
	c.started = true
	return tea.Batch(c.Screen.Init(), c.books.Refresh(c.ctx))
}

// Activate is called every time the screen is shown. The first call is Init;
// later calls reload the book list so books added elsewhere can be selected.
func (c *CategoryScreen) Activate() tea.Cmd {
	if !c.started {
		return c.Init()
	}
	return c.books.Refresh(c.ctx)
}

// Reload refetches both the categories and the book list.
func (c *CategoryScreen) Reload() tea.Cmd {
	return tea.Batch(c.List().Refresh(c.ctx), c.books.Refresh(c.ctx))
}

func (c *CategoryScreen) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ListResultMsg[models.Book]); ok {
		c.books.Apply(msg)
		return nil
	}
	return c.Screen.Update(msg)
}

// Books returns the book list the selector draws from.
func (c *CategoryScreen) Books() *ListState[models.Book] { return c.books }

// BookOptions lists every selectable book.
func (c *CategoryScreen) BookOptions() []Option { return c.selector.Options() }

// SelectedBooks returns the options the open draft has selected.
func (c *CategoryScreen) SelectedBooks() []Option {
	return c.selector.Selected(c.Draft().Books)
}

// SelectBooks replaces the draft's membership with the given selection.
func (c *CategoryScreen) SelectBooks(selected []Option) {
	ids := Replace(selected)
	c.UpdateDraft(func(d *models.CategoryFields) { d.Books = ids })
}

// ToggleBook flips one book in the selection.
func (c *CategoryScreen) ToggleBook(id string) {
	ids := c.selector.Toggle(c.Draft().Books, id)
	c.UpdateDraft(func(d *models.CategoryFields) { d.Books = ids })
}
