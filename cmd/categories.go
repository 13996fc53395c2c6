package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookfather/admin/internal/catalog"
	"github.com/bookfather/admin/internal/export"
	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/screen"
)

var categoryResource = resource[models.Category, models.CategoryFields]{
	singular: "category",
	plural:   "categories",
	fields: []flagField[models.CategoryFields]{
		stringFlag("name", "Category name", func(f *models.CategoryFields) *string { return &f.Name }),
		stringFlag("img-url", "Category image URL", func(f *models.CategoryFields) *string { return &f.ImgURL }),
	},
	relation:      "books",
	relationUsage: "Member book ids, comma separated",
	table:         export.CategoriesTable,
	parquet: func(path string, items []models.Category) error {
		return export.WriteParquet(path, export.CategoryRows(items))
	},
	readParquet: func(path string) ([]models.Category, error) {
		rows, err := export.ReadParquet[export.CategoryRow](path)
		if err != nil {
			return nil, err
		}
		return export.CategoriesFromRows(rows), nil
	},
	open: func(ctx context.Context, api *catalog.API, opts screen.Options) controller[models.Category, models.CategoryFields] {
		s := openCategories(ctx, api, opts)
		return controller[models.Category, models.CategoryFields]{
			Screen: s.Screen,
			init:   s.Init,
			update: s.Update,
			relate: func(ids []string) error { return linkBooks(s, ids) },
		}
	},
}

func openCategories(ctx context.Context, api *catalog.API, opts screen.Options) *screen.CategoryScreen {
	return screen.NewCategoryScreen(ctx, api.Categories, api.Books.List, opts)
}

func newCategoriesCmd(o *rootOptions) *cobra.Command {
	cmd := categoryResource.command(o, "Manage categories and their books")
	cmd.AddCommand(newLinkCmd(o))
	return cmd
}

// newLinkCmd replaces a category's membership through the book selector, so
// only books the catalog actually lists can be linked.
func newLinkCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "link <category-id> [book-id...]",
		Short: "Set the books of a category",
		Long: `Replaces the membership of a category with the given books. Passing no
book ids empties the category.`,
		Example: `  bookfather categories link 64f0c2 64f0a1 64f0a7`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := o.api()
			if err != nil {
				return err
			}
			s := openCategories(cmd.Context(), api, o.screenOptions(nil))
			settle(s.Update, s.Init())
			if msg := s.List().Err(); msg != "" {
				return errors.New(msg)
			}
			if err := s.OpenEditID(args[0]); err != nil {
				return fmt.Errorf("category %s: %w", args[0], err)
			}

			if err := linkBooks(s, args[1:]); err != nil {
				return err
			}
			settle(s.Update, s.Submit())
			if alert := s.Alert(); alert != "" {
				return errors.New(alert)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Category %s now has %d books\n", args[0], len(s.SelectedBooks()))
			return nil
		},
	}
}

// linkBooks selects ids in the open draft. Every id must be a book the
// catalog lists; the selection keeps book-list order.
func linkBooks(s *screen.CategoryScreen, ids []string) error {
	if msg := s.Books().Err(); msg != "" {
		return errors.New(msg)
	}

	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}
	var selected []screen.Option
	for _, opt := range s.BookOptions() {
		if requested[opt.ID] {
			selected = append(selected, opt)
			delete(requested, opt.ID)
		}
	}
	if len(requested) > 0 {
		unknown := make([]string, 0, len(requested))
		for _, id := range ids {
			if requested[id] {
				unknown = append(unknown, id)
				delete(requested, id)
			}
		}
		return fmt.Errorf("unknown book ids: %s", strings.Join(unknown, ", "))
	}

	s.SelectBooks(selected)
	return nil
}
