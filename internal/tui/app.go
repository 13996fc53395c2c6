// Package tui is the interactive admin: a dashboard plus one tab per
// resource, driven by the screen controllers.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bookfather/admin/internal/catalog"
	"github.com/bookfather/admin/internal/dashboard"
	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/screen"
	"github.com/bookfather/admin/internal/validation"
)

// Params are the collaborators of an App.
type Params struct {
	API       *catalog.API
	History   *screen.History
	Validator *validation.Validator
	Logger    *slog.Logger
}

// App is the root bubbletea model.
type App struct {
	ctx     context.Context
	history *screen.History
	logger  *slog.Logger

	sources      dashboard.Sources
	counts       dashboard.Counts
	countsLoaded bool

	books      *screen.BookScreen
	categories *screen.CategoryScreen
	banners    *screen.BannerScreen

	// views holds the resource tabs; tab 0 is the dashboard.
	views   []view
	tab     int
	spinner spinner.Model
	width   int
}

func New(ctx context.Context, p Params) *App {
	history := p.History
	if history == nil {
		history = screen.NewHistory(screen.DashboardRoute)
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts := screen.Options{History: history, Validator: p.Validator, Logger: logger}

	books := screen.NewBookScreen(ctx, p.API.Books, opts)
	categories := screen.NewCategoryScreen(ctx, p.API.Categories, p.API.Books.List, opts)
	banners := screen.NewBannerScreen(ctx, p.API.Banners, opts)

	categoryView := newResourceView(ctx, "Categories", categories.Screen, categoryFields, categoryRow)
	categoryView.init = categories.Activate
	categoryView.reload = categories.Reload
	categoryView.update = categories.Update
	categoryView.picker = categories

	return &App{
		ctx:        ctx,
		history:    history,
		logger:     logger,
		sources:    dashboard.FromAPI(p.API),
		books:      books,
		categories: categories,
		banners:    banners,
		views: []view{
			newResourceView(ctx, "Books", books, bookFields, bookRow),
			categoryView,
			newResourceView(ctx, "Banners", banners, bannerFields, bannerRow),
		},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.activate(0))
}

// activate switches to tab i and records its route. The dashboard reloads
// its counters on every visit. Book and banner screens fetch only on their
// first visit; the category screen also reloads its book list on later ones.
func (a *App) activate(i int) tea.Cmd {
	a.tab = i
	route := a.route(i)
	if a.history.Location() != route {
		a.history.Push(route)
	}
	a.logger.Debug("Navigated", "route", route)

	if i == 0 {
		return dashboard.LoadCmd(a.ctx, a.sources)
	}
	return a.views[i-1].Init()
}

func (a *App) route(i int) string {
	if i == 0 {
		return screen.DashboardRoute
	}
	return a.views[i-1].Route()
}

func (a *App) tabs() int { return len(a.views) + 1 }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case dashboard.CountsMsg:
		a.counts = msg.Counts
		a.countsLoaded = true
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	// API results carry their owner, so every view can see every message.
	var cmds []tea.Cmd
	for _, v := range a.views {
		cmds = append(cmds, v.Update(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	current := a.current()
	if current != nil && current.Capturing() {
		return current.HandleKey(msg)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab":
		return a.activate((a.tab + 1) % a.tabs())
	case "shift+tab":
		return a.activate((a.tab + a.tabs() - 1) % a.tabs())
	case "1", "2", "3", "4":
		return a.activate(int(msg.String()[0] - '1'))
	}

	if current == nil {
		if msg.String() == "r" {
			return dashboard.LoadCmd(a.ctx, a.sources)
		}
		return nil
	}
	return current.HandleKey(msg)
}

func (a *App) current() view {
	if a.tab == 0 {
		return nil
	}
	return a.views[a.tab-1]
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.tabBar())
	b.WriteString("\n\n")

	if current := a.current(); current != nil {
		b.WriteString(current.View(a.spinner.View()))
		b.WriteString(helpStyle.Render("j/k: move • a: add • e: edit • d: delete • r: reload • tab: next tab • q: quit"))
	} else {
		b.WriteString(a.dashboardView())
		b.WriteString(helpStyle.Render("1-4: open tab • r: reload • q: quit"))
	}
	return b.String()
}

func (a *App) tabBar() string {
	titles := []string{"Dashboard"}
	for _, v := range a.views {
		titles = append(titles, v.Title())
	}

	rendered := make([]string, len(titles))
	for i, t := range titles {
		label := fmt.Sprintf("%d %s", i+1, t)
		if i == a.tab {
			rendered[i] = activeTabStyle.Render(label)
		} else {
			rendered[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (a *App) dashboardView() string {
	count := func(n int) string {
		if !a.countsLoaded {
			return a.spinner.View()
		}
		return fmt.Sprintf("%d", n)
	}
	cards := []string{
		cardStyle.Render("Books\n\n" + count(a.counts.Books)),
		cardStyle.Render("Categories\n\n" + count(a.counts.Categories)),
		cardStyle.Render("Banners\n\n" + count(a.counts.Banners)),
	}
	return titleStyle.Render("Welcome to the BookFather admin") + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func bookRow(b models.Book) string {
	return fmt.Sprintf("%-30s %s", b.Name, mutedStyle.Render(b.PDFURL))
}

func categoryRow(c models.Category) string {
	members := "No books in this category"
	if names := c.BookNames(); len(names) > 0 {
		members = strings.Join(names, ", ")
	}
	return fmt.Sprintf("%-24s %s", c.Name, mutedStyle.Render(members))
}

func bannerRow(b models.Banner) string {
	return b.ImgURL
}
