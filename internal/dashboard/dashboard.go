// Package dashboard loads the resource counters shown on the admin home page.
package dashboard

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/bookfather/admin/internal/catalog"
)

// CountFunc returns the size of one collection.
type CountFunc func(ctx context.Context) (int, error)

// Sources are the three collections the dashboard counts.
type Sources struct {
	Books      CountFunc
	Categories CountFunc
	Banners    CountFunc
}

// Counts are the dashboard figures. A counter whose fetch failed stays 0.
type Counts struct {
	Books      int `json:"books" yaml:"books"`
	Categories int `json:"categories" yaml:"categories"`
	Banners    int `json:"banners" yaml:"banners"`
}

// CountsMsg delivers Counts to a bubbletea program.
type CountsMsg struct {
	Counts Counts
}

// FromAPI counts by listing each collection.
func FromAPI(api *catalog.API) Sources {
	return Sources{
		Books:      countOf(api.Books.List),
		Categories: countOf(api.Categories.List),
		Banners:    countOf(api.Banners.List),
	}
}

func countOf[T any](list func(context.Context) ([]T, error)) CountFunc {
	return func(ctx context.Context) (int, error) {
		items, err := list(ctx)
		if err != nil {
			return 0, err
		}
		return len(items), nil
	}
}

// Load fetches the three counters concurrently. Failures are logged and
// never returned.
func Load(ctx context.Context, src Sources) Counts {
	var counts Counts
	g, ctx := errgroup.WithContext(ctx)

	fetch := func(name string, count CountFunc, dst *int) {
		if count == nil {
			return
		}
		g.Go(func() error {
			n, err := count(ctx)
			if err != nil {
				slog.Error("Failed to fetch "+name, "err", err)
				return nil
			}
			*dst = n
			return nil
		})
	}

	fetch("books", src.Books, &counts.Books)
	fetch("categories", src.Categories, &counts.Categories)
	fetch("banners", src.Banners, &counts.Banners)

	_ = g.Wait()
	return counts
}

// LoadCmd runs Load as a bubbletea command.
func LoadCmd(ctx context.Context, src Sources) tea.Cmd {
	return func() tea.Msg {
		return CountsMsg{Counts: Load(ctx, src)}
	}
}
