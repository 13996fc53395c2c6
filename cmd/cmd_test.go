package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfather/admin/internal/dashboard"
	"github.com/bookfather/admin/internal/handlers"
	"github.com/bookfather/admin/internal/models"
)

const testKey = "dev-key"

type fixture struct {
	url     string
	handler *handlers.Handler
	dune    models.Book
	emma    models.Book
	scifi   models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	h := handlers.New(testKey, "")
	f := &fixture{handler: h}
	f.dune = h.AddBook(models.BookFields{Name: "Dune", PDFURL: "dune.pdf"})
	f.emma = h.AddBook(models.BookFields{Name: "Emma", PDFURL: "emma.pdf"})
	f.scifi = h.AddCategory(models.CategoryFields{Name: "Sci-Fi", Books: []string{f.dune.ID}})

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	f.url = srv.URL
	return f
}

// execute runs the root command against the fixture server.
func (f *fixture) execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--base-url", f.url, "--api-key", testKey))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func listBooks(t *testing.T, f *fixture) []models.Book {
	t.Helper()
	out, err := f.execute(t, "", "books", "list", "-o", "json")
	require.NoError(t, err)
	var books []models.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	return books
}

func TestBooksList(t *testing.T) {
	f := newFixture(t)

	out, err := f.execute(t, "", "books", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "emma.pdf")

	books := listBooks(t, f)
	assert.Len(t, books, 2)
}

func TestBooksAdd(t *testing.T) {
	f := newFixture(t)

	out, err := f.execute(t, "", "books", "add", "--name", "Ubik", "--pdf-url", "ubik.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Added book\n", out)

	books := listBooks(t, f)
	require.Len(t, books, 3)
	assert.Equal(t, "Ubik", books[2].Name)
	assert.Equal(t, "ubik.pdf", books[2].PDFURL)
}

func TestBooksAddRequiresName(t *testing.T) {
	f := newFixture(t)

	_, err := f.execute(t, "", "books", "add", "--pdf-url", "x.pdf")
	require.Error(t, err)
	assert.Equal(t, "invalid form: name is required", err.Error())
	assert.Len(t, listBooks(t, f), 2)
}

func TestBooksEditChangesOnlyGivenFlags(t *testing.T) {
	f := newFixture(t)

	_, err := f.execute(t, "", "books", "edit", f.dune.ID, "--pdf-url", "dune-2.pdf")
	require.NoError(t, err)

	books := listBooks(t, f)
	assert.Equal(t, models.Book{ID: f.dune.ID, Name: "Dune", PDFURL: "dune-2.pdf"}, books[0])
}

func TestBooksEditUnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.execute(t, "", "books", "edit", "missing", "--name", "X")
	assert.ErrorContains(t, err, "book missing: record is not in the current list")
}

func TestBooksDelete(t *testing.T) {
	f := newFixture(t)

	out, err := f.execute(t, "n\n", "books", "delete", f.emma.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this book? [y/N]")
	assert.Contains(t, out, "Cancelled")
	assert.Len(t, listBooks(t, f), 2)

	out, err = f.execute(t, "y\n", "books", "delete", f.emma.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted book "+f.emma.ID)
	assert.Len(t, listBooks(t, f), 1)

	_, err = f.execute(t, "", "books", "delete", f.dune.ID, "--yes")
	require.NoError(t, err)
	assert.Empty(t, listBooks(t, f))
}

func TestCategoriesLink(t *testing.T) {
	f := newFixture(t)

	out, err := f.execute(t, "", "categories", "link", f.scifi.ID, f.emma.ID, f.dune.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "now has 2 books")

	out, err = f.execute(t, "", "categories", "list", "-o", "json")
	require.NoError(t, err)
	var categories []models.Category
	require.NoError(t, json.Unmarshal([]byte(out), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, []string{"Dune", "Emma"}, categories[0].BookNames(), "membership follows book list order")

	_, err = f.execute(t, "", "categories", "link", f.scifi.ID, "nope")
	assert.ErrorContains(t, err, "unknown book ids: nope")
}

func TestCategoriesEditBooksFlag(t *testing.T) {
	f := newFixture(t)

	_, err := f.execute(t, "", "categories", "edit", f.scifi.ID, "--books", f.emma.ID)
	require.NoError(t, err)

	out, err := f.execute(t, "", "categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Emma")
	assert.NotContains(t, out, "Dune")
}

func TestCategoryBooksFlagRejectsUnknownIDs(t *testing.T) {
	f := newFixture(t)

	_, err := f.execute(t, "", "categories", "edit", f.scifi.ID, "--books", "nope,"+f.emma.ID)
	assert.ErrorContains(t, err, "unknown book ids: nope")

	_, err = f.execute(t, "", "categories", "add", "--name", "Ghosts", "--books", "missing")
	assert.ErrorContains(t, err, "unknown book ids: missing")

	out, err := f.execute(t, "", "categories", "list", "-o", "json")
	require.NoError(t, err)
	var categories []models.Category
	require.NoError(t, json.Unmarshal([]byte(out), &categories))
	require.Len(t, categories, 1, "nothing is created")
	assert.Equal(t, []string{"Dune"}, categories[0].BookNames(), "nothing is changed")

	_, err = f.execute(t, "", "categories", "add", "--name", "Classics", "--books", f.emma.ID)
	require.NoError(t, err)
	out, err = f.execute(t, "", "categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Classics")
}

func TestExportParquet(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "books.parquet")

	_, err := f.execute(t, "", "books", "export", "--file", path)
	require.NoError(t, err)

	out, err := f.execute(t, "", "books", "show", "--file", path, "-o", "json")
	require.NoError(t, err)
	var books []models.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	assert.Equal(t, []models.Book{f.dune, f.emma}, books)

	catPath := filepath.Join(t.TempDir(), "categories.parquet")
	_, err = f.execute(t, "", "categories", "export", "--file", catPath)
	require.NoError(t, err)

	out, err = f.execute(t, "", "categories", "show", "--file", catPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Sci-Fi")
	assert.Contains(t, out, "Dune")

	_, err = f.execute(t, "", "banners", "show", "--file", filepath.Join(t.TempDir(), "missing.parquet"))
	assert.ErrorContains(t, err, "failed to open parquet file")
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	out, err := f.execute(t, "", "stats", "-o", "json")
	require.NoError(t, err)

	var counts dashboard.Counts
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	assert.Equal(t, dashboard.Counts{Books: 2, Categories: 1, Banners: 0}, counts)
}

func TestMissingAPIKey(t *testing.T) {
	t.Setenv("BOOKFATHER_API_KEY", "")
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"books", "list", "--base-url", "http://localhost:1"})

	err := root.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "API key is required")
}
