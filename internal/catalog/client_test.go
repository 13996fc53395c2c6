package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfather/admin/internal/catalog"
	"github.com/bookfather/admin/internal/handlers"
	"github.com/bookfather/admin/internal/models"
)

const testKey = "310424"

func newAPI(t *testing.T) (*catalog.API, *handlers.Handler) {
	t.Helper()
	h := handlers.New(testKey, "")
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return catalog.NewAPI(catalog.NewClient(srv.URL, testKey)), h
}

func TestBooksCRUD(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()

	books, err := api.Books.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NotNil(t, books, "an empty list is a loaded list, not a missing one")

	created, err := api.Books.Create(ctx, models.BookFields{Name: "Dune", ImgURL: "u1", PDFURL: "p1"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Dune", created.Name)

	require.NoError(t, api.Books.Update(ctx, created.ID, models.BookFields{Name: "Dune Messiah", ImgURL: "u2", PDFURL: "p2"}))

	books, err = api.Books.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, models.Book{ID: created.ID, Name: "Dune Messiah", ImgURL: "u2", PDFURL: "p2"}, books[0])

	require.NoError(t, api.Books.Remove(ctx, created.ID))

	books, err = api.Books.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCategoryMembershipIsPopulated(t *testing.T) {
	api, h := newAPI(t)
	ctx := context.Background()

	b1 := h.AddBook(models.BookFields{Name: "Dune"})
	b2 := h.AddBook(models.BookFields{Name: "Foundation"})

	created, err := api.Categories.Create(ctx, models.CategoryFields{Name: "Sci-Fi", Books: []string{b1.ID, b2.ID}})
	require.NoError(t, err)

	categories, err := api.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, created.ID, categories[0].ID)
	assert.Equal(t, []models.BookRef{{ID: b1.ID, Name: "Dune"}, {ID: b2.ID, Name: "Foundation"}}, categories[0].Books)
	assert.Equal(t, []string{b1.ID, b2.ID}, categories[0].BookIDs())
}

func TestErrorTaxonomy(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()

	t.Run("missing record is not found", func(t *testing.T) {
		err := api.Banners.Remove(ctx, "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrNotFound)

		var serverErr *catalog.ServerError
		require.ErrorAs(t, err, &serverErr)
		assert.Equal(t, http.StatusNotFound, serverErr.StatusCode)
	})

	t.Run("rejected payload is a validation error", func(t *testing.T) {
		_, err := api.Books.Create(ctx, models.BookFields{ImgURL: "only-image"})
		var validationErr *catalog.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, http.StatusBadRequest, validationErr.StatusCode)
	})

	t.Run("wrong key is a server error", func(t *testing.T) {
		h := handlers.New(testKey, "")
		srv := httptest.NewServer(h.Routes())
		defer srv.Close()

		bad := catalog.NewAPI(catalog.NewClient(srv.URL, "wrong"))
		_, err := bad.Books.List(ctx)
		var serverErr *catalog.ServerError
		require.ErrorAs(t, err, &serverErr)
		assert.Equal(t, http.StatusUnauthorized, serverErr.StatusCode)
		assert.False(t, errors.Is(err, catalog.ErrNotFound))
	})

	t.Run("unreachable server is a network error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := catalog.NewAPI(catalog.NewClient(url, testKey)).Books.List(ctx)
		var netErr *catalog.NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, http.MethodGet, netErr.Method)
	})
}

func TestClientSendsKeyHeader(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := catalog.NewClient(srv.URL+"/", "secret", catalog.WithKeyHeader("X-Api-Key"), catalog.WithRateLimit(100))
	api := catalog.NewAPI(client)

	require.NoError(t, api.Categories.Remove(context.Background(), "a b"))
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "/api/categories/a b", gotPath)
}
