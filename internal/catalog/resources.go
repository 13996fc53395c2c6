package catalog

import "github.com/bookfather/admin/internal/models"

const (
	BooksPath      = "/api/books"
	CategoriesPath = "/api/categories"
	BannersPath    = "/api/banners"
)

type (
	Books      = Resource[models.Book, models.BookFields]
	Categories = Resource[models.Category, models.CategoryFields]
	Banners    = Resource[models.Banner, models.BannerFields]
)

// API groups the three collections of the BookFather API.
type API struct {
	Books      *Books
	Categories *Categories
	Banners    *Banners
}

func NewAPI(c *Client) *API {
	return &API{
		Books:      NewResource[models.Book, models.BookFields](c, BooksPath),
		Categories: NewResource[models.Category, models.CategoryFields](c, CategoriesPath),
		Banners:    NewResource[models.Banner, models.BannerFields](c, BannersPath),
	}
}
