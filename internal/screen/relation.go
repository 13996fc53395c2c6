package screen

import "slices"

// Option is one selectable entry of a multi-select.
type Option struct {
	ID    string
	Label string
}

// Selector binds a multi-select to a set of identities drawn from another
// resource's list. The options always come from the list as last fetched;
// identities the list does not contain cannot be shown.
type Selector[T any] struct {
	source *ListState[T]
	id     func(T) string
	label  func(T) string
}

func NewSelector[T any](source *ListState[T], id, label func(T) string) Selector[T] {
	return Selector[T]{source: source, id: id, label: label}
}

// Options lists every selectable entry in source order. It is empty until
// the source list has loaded.
func (s Selector[T]) Options() []Option {
	items := s.source.Items()
	opts := make([]Option, 0, len(items))
	for _, item := range items {
		opts = append(opts, Option{ID: s.id(item), Label: s.label(item)})
	}
	return opts
}

// Selected returns the options whose identity is in ids, in source order.
func (s Selector[T]) Selected(ids []string) []Option {
	var selected []Option
	for _, opt := range s.Options() {
		if slices.Contains(ids, opt.ID) {
			selected = append(selected, opt)
		}
	}
	return selected
}

// Toggle flips one option in the displayed selection and returns the new
// identity set, derived from the widget's selection as a whole. Identities
// that were not displayable are therefore dropped. Toggling an identity that
// is not an option changes nothing.
func (s Selector[T]) Toggle(ids []string, id string) []string {
	options := s.Options()
	idx := slices.IndexFunc(options, func(o Option) bool { return o.ID == id })
	if idx < 0 {
		return ids
	}

	selected := s.Selected(ids)
	if i := slices.IndexFunc(selected, func(o Option) bool { return o.ID == id }); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected = append(selected, options[idx])
	}
	return Replace(selected)
}

// Replace turns a widget selection into the identity set it stands for.
func Replace(selected []Option) []string {
	ids := make([]string, 0, len(selected))
	for _, opt := range selected {
		ids = append(ids, opt.ID)
	}
	return ids
}
