// Package export writes resource snapshots in the formats the CLI offers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/bookfather/admin/internal/models"
)

// Formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Table is the flat view of a snapshot used by the text and csv formats.
type Table struct {
	Header []string
	Rows   [][]string
}

func BooksTable(books []models.Book) Table {
	t := Table{Header: []string{"ID", "Name", "Image URL", "PDF URL"}}
	for _, b := range books {
		t.Rows = append(t.Rows, []string{b.ID, b.Name, b.ImgURL, b.PDFURL})
	}
	return t
}

func CategoriesTable(categories []models.Category) Table {
	t := Table{Header: []string{"ID", "Name", "Image URL", "Books"}}
	for _, c := range categories {
		t.Rows = append(t.Rows, []string{c.ID, c.Name, c.ImgURL, strings.Join(c.BookNames(), "; ")})
	}
	return t
}

func BannersTable(banners []models.Banner) Table {
	t := Table{Header: []string{"ID", "Image URL"}}
	for _, b := range banners {
		t.Rows = append(t.Rows, []string{b.ID, b.ImgURL})
	}
	return t
}

// Write renders data in the given format. text and csv use table; json and
// yaml encode data itself.
func Write(w io.Writer, format string, data any, table Table) error {
	switch format {
	case FormatText, "":
		return writeText(w, table)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return encoder.Close()
	case FormatCSV:
		return writeCSV(w, table)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeText(w io.Writer, table Table) error {
	if len(table.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No records found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Header, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Header); err != nil {
		return err
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return err
	}
	return writer.Error()
}
