package export

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/bookfather/admin/internal/models"
)

// CategoryRow is the parquet layout of a category with its membership.
type CategoryRow struct {
	ID        string   `parquet:"id"`
	Name      string   `parquet:"name"`
	ImgURL    string   `parquet:"img_url"`
	BookIDs   []string `parquet:"book_ids,list"`
	BookNames []string `parquet:"book_names,list"`
}

func CategoryRows(categories []models.Category) []CategoryRow {
	rows := make([]CategoryRow, 0, len(categories))
	for _, c := range categories {
		row := CategoryRow{ID: c.ID, Name: c.Name, ImgURL: c.ImgURL, BookIDs: []string{}, BookNames: []string{}}
		for _, b := range c.Books {
			row.BookIDs = append(row.BookIDs, b.ID)
			row.BookNames = append(row.BookNames, b.Name)
		}
		rows = append(rows, row)
	}
	return rows
}

// CategoriesFromRows turns parquet rows back into categories.
func CategoriesFromRows(rows []CategoryRow) []models.Category {
	categories := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		c := models.Category{ID: row.ID, Name: row.Name, ImgURL: row.ImgURL, Books: []models.BookRef{}}
		for i, id := range row.BookIDs {
			ref := models.BookRef{ID: id}
			if i < len(row.BookNames) {
				ref.Name = row.BookNames[i]
			}
			c.Books = append(c.Books, ref)
		}
		categories = append(categories, c)
	}
	return categories
}

// WriteParquet writes rows to a new parquet file at path.
func WriteParquet[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Debug("Wrote parquet file", "path", path, "rows", len(rows))
	return file.Close()
}

// ReadParquet loads every row of a parquet file written by WriteParquet.
func ReadParquet[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	rows := make([]T, pf.NumRows())
	n, err := reader.Read(rows)
	if n == len(rows) {
		return rows, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows[:n], nil
}
