package screen

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// ListFunc fetches a complete collection.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

type ListStatus int

const (
	ListLoading ListStatus = iota
	ListLoaded
	ListFailed
)

func (s ListStatus) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ListState owns one screen's snapshot of a collection.
//
// Every fetch is tagged with a sequence number and only the result of the
// latest issued fetch is applied, so a slow response can never overwrite a
// newer snapshot.
type ListState[T any] struct {
	owner   string
	fetch   ListFunc[T]
	failure string
	logger  *slog.Logger

	items   []T
	status  ListStatus
	loading bool
	err     string
	seq     uint64
}

// NewListState starts in the loading state with an empty collection.
// failure is the static message shown when a fetch fails.
func NewListState[T any](owner, failure string, fetch ListFunc[T], logger *slog.Logger) *ListState[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListState[T]{
		owner:   owner,
		fetch:   fetch,
		failure: failure,
		logger:  logger,
		status:  ListLoading,
		loading: true,
	}
}

// Refresh issues a fetch. The current items stay visible until the result
// is applied.
func (l *ListState[T]) Refresh(ctx context.Context) tea.Cmd {
	l.seq++
	seq, owner, fetch := l.seq, l.owner, l.fetch
	return func() tea.Msg {
		items, err := fetch(ctx)
		return ListResultMsg[T]{Owner: owner, Seq: seq, Items: items, Err: err}
	}
}

// Apply folds a fetch result into the state and reports whether it was used.
func (l *ListState[T]) Apply(msg ListResultMsg[T]) bool {
	if msg.Owner != l.owner {
		return false
	}
	if msg.Seq != l.seq {
		l.logger.Debug("Discarding stale list response", "owner", l.owner, "seq", msg.Seq, "latest", l.seq)
		return false
	}

	l.loading = false
	if msg.Err != nil {
		l.logger.Error("Failed to fetch list", "owner", l.owner, "err", msg.Err)
		l.status = ListFailed
		l.err = l.failure
		return true
	}

	items := msg.Items
	if items == nil {
		items = []T{}
	}
	l.items = items
	l.status = ListLoaded
	l.err = ""
	return true
}

// Items returns the snapshot. Callers must not modify it.
func (l *ListState[T]) Items() []T { return l.items }

func (l *ListState[T]) Len() int { return len(l.items) }

func (l *ListState[T]) Status() ListStatus { return l.status }

// Loading reports whether the first fetch is still pending.
func (l *ListState[T]) Loading() bool { return l.loading }

// Err returns the static failure message, or "" when the last fetch worked.
func (l *ListState[T]) Err() string { return l.err }

// Empty reports whether the empty-state view applies.
func (l *ListState[T]) Empty() bool { return !l.loading && len(l.items) == 0 }

// Owner names the state in messages.
func (l *ListState[T]) Owner() string { return l.owner }
