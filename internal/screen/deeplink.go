package screen

import (
	"net/url"
	"slices"
)

// History is the app's navigation stack. Pushing never reloads a screen.
type History struct {
	entries []string
}

func NewHistory(start string) *History {
	if start == "" {
		start = "/"
	}
	return &History{entries: []string{start}}
}

func (h *History) Push(location string) {
	h.entries = append(h.entries, location)
}

// Location returns the current path and query.
func (h *History) Location() string {
	return h.entries[len(h.entries)-1]
}

// Entries returns a copy of every location pushed so far, oldest first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// DeepLink mirrors a screen's modal state into the history.
//
// The mirror is write only: nothing parses these queries back when a screen
// activates, so opening a copied "?edit=" link shows the plain list.
type DeepLink struct {
	route  string
	add    bool
	edit   bool
	pushed bool
}

// NewDeepLink creates the mirror for route. add and edit choose which modals
// are reflected in the URL.
func NewDeepLink(route string, add, edit bool) *DeepLink {
	return &DeepLink{route: route, add: add, edit: edit}
}

func (d *DeepLink) Route() string { return d.route }

func (d *DeepLink) OpenAdd(h *History) {
	if h == nil || !d.add {
		return
	}
	h.Push(d.route + "?add=new")
	d.pushed = true
}

func (d *DeepLink) OpenEdit(h *History, id string) {
	if h == nil || !d.edit {
		return
	}
	h.Push(d.route + "?" + url.Values{"edit": {id}}.Encode())
	d.pushed = true
}

// Close returns to the bare route if a modal query was pushed.
func (d *DeepLink) Close(h *History) {
	if h == nil || !d.pushed {
		return
	}
	h.Push(d.route)
	d.pushed = false
}
