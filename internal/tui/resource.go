package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/screen"
)

// view is one tab of the app backed by a resource screen.
type view interface {
	Title() string
	Route() string
	Init() tea.Cmd
	// Update applies API results; it is called for every non-key message.
	Update(msg tea.Msg) tea.Cmd
	HandleKey(msg tea.KeyMsg) tea.Cmd
	// Capturing reports whether the view wants every key, e.g. while a form
	// or prompt is open.
	Capturing() bool
	View(spin string) string
}

// picker is the multi-select a category form offers for its books.
type picker interface {
	BookOptions() []screen.Option
	SelectedBooks() []screen.Option
	ToggleBook(id string)
}

type resourceView[T models.Record[F], F any] struct {
	title  string
	screen *screen.Screen[T, F]
	fields []field[F]
	row    func(T) string

	// init, reload and update default to the screen's own; the category
	// view routes them through the wrapper that also owns the book list.
	init   func() tea.Cmd
	reload func() tea.Cmd
	update func(tea.Msg) tea.Cmd
	picker picker

	cursor int
	inputs []textinput.Model
	focus  int
	pick   int
}

func newResourceView[T models.Record[F], F any](ctx context.Context, title string, s *screen.Screen[T, F], fields []field[F], row func(T) string) *resourceView[T, F] {
	return &resourceView[T, F]{
		title:  title,
		screen: s,
		fields: fields,
		row:    row,
		init:   s.Init,
		reload: func() tea.Cmd { return s.List().Refresh(ctx) },
		update: s.Update,
	}
}

func (v *resourceView[T, F]) Title() string { return v.title }

func (v *resourceView[T, F]) Route() string { return v.screen.Route() }

// Init runs on every visit to the tab.
func (v *resourceView[T, F]) Init() tea.Cmd { return v.init() }

func (v *resourceView[T, F]) Update(msg tea.Msg) tea.Cmd { return v.update(msg) }

func (v *resourceView[T, F]) Capturing() bool {
	_, _, pending := v.screen.PendingDelete()
	return pending || v.screen.Alert() != "" || v.screen.Mode() != screen.ModalClosed
}

func (v *resourceView[T, F]) HandleKey(msg tea.KeyMsg) tea.Cmd {
	s := v.screen

	if s.Alert() != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			s.DismissAlert()
		}
		return nil
	}

	if _, _, ok := s.PendingDelete(); ok {
		switch msg.String() {
		case "y", "Y":
			return s.ResolveDelete(true)
		case "n", "N", "esc":
			s.ResolveDelete(false)
		}
		return nil
	}

	if s.Mode() != screen.ModalClosed {
		return v.handleFormKey(msg)
	}
	return v.handleListKey(msg)
}

func (v *resourceView[T, F]) handleListKey(msg tea.KeyMsg) tea.Cmd {
	s := v.screen
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(s.Items())-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "r":
		return v.reload()
	case "a":
		s.OpenAdd()
		v.openForm()
	case "e", "enter":
		if item, ok := v.selected(); ok {
			s.OpenEdit(item)
			v.openForm()
		}
	case "d", "x":
		if item, ok := v.selected(); ok {
			s.RequestDelete(item.Key())
		}
	}
	return nil
}

func (v *resourceView[T, F]) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	s := v.screen
	switch msg.String() {
	case "esc":
		s.Cancel()
		return nil
	case "enter":
		return s.Submit()
	case "tab", "down":
		v.moveFocus(1)
		return nil
	case "shift+tab", "up":
		v.moveFocus(-1)
		return nil
	}

	if v.onPicker() {
		v.handlePickerKey(msg)
		return nil
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	value, set := v.inputs[v.focus].Value(), v.fields[v.focus].set
	s.UpdateDraft(func(d *F) { set(d, value) })
	return cmd
}

func (v *resourceView[T, F]) handlePickerKey(msg tea.KeyMsg) {
	options := v.picker.BookOptions()
	switch msg.String() {
	case "j", "right":
		if v.pick < len(options)-1 {
			v.pick++
		}
	case "k", "left":
		if v.pick > 0 {
			v.pick--
		}
	case " ":
		if v.pick < len(options) {
			v.picker.ToggleBook(options[v.pick].ID)
		}
	}
}

func (v *resourceView[T, F]) openForm() {
	v.inputs = newInputs(v.fields, v.screen.Draft())
	v.focus = 0
	v.pick = 0
}

// moveFocus cycles through the inputs and, for categories, the book picker.
func (v *resourceView[T, F]) moveFocus(delta int) {
	n := len(v.inputs)
	if v.picker != nil {
		n++
	}
	if n == 0 {
		return
	}
	v.focus = (v.focus + delta + n) % n
	for i := range v.inputs {
		if i == v.focus {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
}

func (v *resourceView[T, F]) onPicker() bool {
	return v.picker != nil && v.focus == len(v.inputs)
}

func (v *resourceView[T, F]) selected() (T, bool) {
	items := v.screen.Items()
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	if v.cursor >= len(items) {
		v.cursor = len(items) - 1
	}
	return items[v.cursor], true
}

func (v *resourceView[T, F]) View(spin string) string {
	s := v.screen
	msgs := s.Messages()
	list := s.List()

	var b strings.Builder
	b.WriteString(titleStyle.Render(v.title))
	b.WriteString("\n\n")

	if err := list.Err(); err != "" {
		b.WriteString(errorStyle.Render(err))
		b.WriteString("\n\n")
	}

	items := s.Items()
	switch {
	case list.Loading() && len(items) == 0:
		b.WriteString(spin + " " + msgs.Loading + "\n")
	case len(items) == 0:
		b.WriteString(mutedStyle.Render(msgs.Empty) + "\n")
	default:
		if v.cursor >= len(items) {
			v.cursor = len(items) - 1
		}
		for i, item := range items {
			line := v.row(item)
			if s.Deleting(item.Key()) {
				line += " " + deletingStyle.Render("deleting...")
			}
			if i == v.cursor {
				b.WriteString(cursorStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	switch {
	case s.Alert() != "":
		b.WriteString(alertStyle.Render(s.Alert() + "\n\n" + mutedStyle.Render("enter: ok")))
	case s.Mode() != screen.ModalClosed:
		b.WriteString(v.formView())
	default:
		if _, message, ok := s.PendingDelete(); ok {
			b.WriteString(alertStyle.Render(message + "\n\n" + mutedStyle.Render("y: delete • n: cancel")))
		}
	}

	return b.String()
}

func (v *resourceView[T, F]) formView() string {
	s := v.screen
	singular := s.Messages().Singular

	var b strings.Builder
	if s.Mode() == screen.ModalAdd {
		b.WriteString(titleStyle.Render("Add " + singular))
	} else {
		b.WriteString(titleStyle.Render("Edit " + singular))
	}
	b.WriteString("\n\n")

	for _, in := range v.inputs {
		b.WriteString(in.View() + "\n")
	}

	if v.picker != nil {
		b.WriteString("\nBooks:\n")
		b.WriteString(v.pickerView())
	}

	b.WriteString("\n")
	if s.Submitting() {
		b.WriteString(mutedStyle.Render("Saving..."))
	} else {
		b.WriteString(mutedStyle.Render("enter: save • tab: next field • esc: cancel"))
	}
	return modalStyle.Render(b.String())
}

func (v *resourceView[T, F]) pickerView() string {
	options := v.picker.BookOptions()
	if len(options) == 0 {
		return mutedStyle.Render("  No books available") + "\n"
	}

	chosen := make(map[string]bool)
	for _, o := range v.picker.SelectedBooks() {
		chosen[o.ID] = true
	}

	var b strings.Builder
	for i, o := range options {
		mark := "[ ]"
		if chosen[o.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, o.Label)
		if v.onPicker() && i == v.pick {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
