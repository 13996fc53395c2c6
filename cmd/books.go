package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bookfather/admin/internal/catalog"
	"github.com/bookfather/admin/internal/export"
	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/screen"
)

var bookResource = resource[models.Book, models.BookFields]{
	singular: "book",
	plural:   "books",
	fields: []flagField[models.BookFields]{
		stringFlag("name", "Book title", func(f *models.BookFields) *string { return &f.Name }),
		stringFlag("img-url", "Cover image URL", func(f *models.BookFields) *string { return &f.ImgURL }),
		stringFlag("pdf-url", "PDF URL", func(f *models.BookFields) *string { return &f.PDFURL }),
	},
	table:       export.BooksTable,
	parquet:     export.WriteParquet[models.Book],
	readParquet: export.ReadParquet[models.Book],
	open: func(ctx context.Context, api *catalog.API, opts screen.Options) controller[models.Book, models.BookFields] {
		s := screen.NewBookScreen(ctx, api.Books, opts)
		return controller[models.Book, models.BookFields]{Screen: s, init: s.Init, update: s.Update}
	},
}

func newBooksCmd(o *rootOptions) *cobra.Command {
	return bookResource.command(o, "Manage books")
}
