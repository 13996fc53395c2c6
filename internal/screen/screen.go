package screen

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/validation"
)

// ErrUnknownRecord is returned when an id is not in the current snapshot.
var ErrUnknownRecord = errors.New("record is not in the current list")

// Collection is the API surface a screen manages.
type Collection[T any, F any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, fields F) (T, error)
	Update(ctx context.Context, id string, fields F) error
	Remove(ctx context.Context, id string) error
}

// Messages are the fixed user-facing texts of one screen.
type Messages struct {
	Singular      string
	Plural        string
	Loading       string
	Empty         string
	FetchFailed   string
	AddFailed     string
	UpdateFailed  string
	DeleteFailed  string
	ConfirmDelete string
}

// DefaultMessages builds the texts for a resource named e.g. "book", "books".
func DefaultMessages(singular, plural string) Messages {
	return Messages{
		Singular:      singular,
		Plural:        plural,
		Loading:       "Loading " + plural + "...",
		Empty:         "No " + plural + " found",
		FetchFailed:   "Failed to fetch " + plural + ".",
		AddFailed:     "Failed to add " + singular + ".",
		UpdateFailed:  "Failed to update " + singular + ".",
		DeleteFailed:  "Failed to delete " + singular + ".",
		ConfirmDelete: "Are you sure you want to delete this " + singular + "?",
	}
}

// Config describes one resource screen.
type Config[T any, F any] struct {
	// Name identifies the screen in messages, e.g. "books".
	Name       string
	Route      string
	Collection Collection[T, F]
	// Empty returns the draft an add modal starts from.
	Empty    func() F
	Messages Messages

	// DeepLinkAdd and DeepLinkEdit choose which modals are mirrored into
	// the URL.
	DeepLinkAdd  bool
	DeepLinkEdit bool

	History   *History
	Validator *validation.Validator
	Logger    *slog.Logger
}

// Screen is the list + modal + delete controller for one resource.
type Screen[T models.Record[F], F any] struct {
	ctx       context.Context
	name      string
	coll      Collection[T, F]
	msgs      Messages
	history   *History
	link      *DeepLink
	validator *validation.Validator
	logger    *slog.Logger

	list      *ListState[T]
	modal     modal[F]
	guard     Guard
	deleting  map[string]bool
	alert     string
	activated bool
}

// New creates a screen. ctx bounds every API call the screen issues; it is
// not cancelled when a modal closes.
func New[T models.Record[F], F any](ctx context.Context, cfg Config[T, F]) *Screen[T, F] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("screen", cfg.Name)

	return &Screen[T, F]{
		ctx:       ctx,
		name:      cfg.Name,
		coll:      cfg.Collection,
		msgs:      cfg.Messages,
		history:   cfg.History,
		link:      NewDeepLink(cfg.Route, cfg.DeepLinkAdd, cfg.DeepLinkEdit),
		validator: cfg.Validator,
		logger:    logger,
		list:      NewListState(cfg.Name, cfg.Messages.FetchFailed, cfg.Collection.List, logger),
		modal:     newModal(cfg.Empty),
		deleting:  make(map[string]bool),
	}
}

// Init issues the initial list fetch. Only the first call does anything.
func (s *Screen[T, F]) Init() tea.Cmd {
	if s.activated {
		return nil
	}
	s.activated = true
	return s.list.Refresh(s.ctx)
}

// Update applies API results addressed to this screen and returns any
// follow-up command, such as the refresh after a successful mutation.
func (s *Screen[T, F]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ListResultMsg[T]:
		s.list.Apply(msg)
	case MutationResultMsg:
		if msg.Owner == s.name {
			return s.applyMutation(msg)
		}
	}
	return nil
}

func (s *Screen[T, F]) applyMutation(msg MutationResultMsg) tea.Cmd {
	if msg.Op == OpRemove {
		delete(s.deleting, msg.ID)
		if msg.Err != nil {
			s.logger.Error("Failed to delete record", "id", msg.ID, "err", msg.Err)
			s.alert = s.msgs.DeleteFailed
			return nil
		}
		s.logger.Info("Deleted record", "id", msg.ID)
		return s.list.Refresh(s.ctx)
	}

	current := s.modal.open() && s.modal.session == msg.Session
	if current {
		s.modal.submitting = false
	}

	if msg.Err != nil {
		s.logger.Error("Failed to save record", "op", msg.Op.String(), "id", msg.ID, "err", msg.Err)
		if current {
			if msg.Op == OpCreate {
				s.alert = s.msgs.AddFailed
			} else {
				s.alert = s.msgs.UpdateFailed
			}
		}
		return nil
	}

	s.logger.Info("Saved record", "op", msg.Op.String(), "id", msg.ID)
	if current {
		s.closeModal()
	}
	return s.list.Refresh(s.ctx)
}

// OpenAdd opens the add modal with a default draft.
func (s *Screen[T, F]) OpenAdd() {
	s.modal.openAdd()
	s.link.OpenAdd(s.history)
}

// OpenEdit opens the edit modal with a copy of the record's current fields.
func (s *Screen[T, F]) OpenEdit(record T) {
	s.modal.openEdit(record.Key(), record.Fields())
	s.link.OpenEdit(s.history, record.Key())
}

// OpenEditID opens the edit modal for a record of the current snapshot.
func (s *Screen[T, F]) OpenEditID(id string) error {
	record, ok := s.Find(id)
	if !ok {
		return ErrUnknownRecord
	}
	s.OpenEdit(record)
	return nil
}

// Cancel closes the modal and throws the draft away. A submit still in
// flight is not aborted; its result will no longer touch the modal.
func (s *Screen[T, F]) Cancel() {
	if !s.modal.open() {
		return
	}
	s.closeModal()
}

func (s *Screen[T, F]) closeModal() {
	s.modal.close()
	s.link.Close(s.history)
}

// UpdateDraft edits the open draft in place. It does nothing when no modal
// is open.
func (s *Screen[T, F]) UpdateDraft(edit func(draft *F)) {
	if !s.modal.open() {
		return
	}
	edit(&s.modal.draft)
}

// Submit sends the draft as a create or update. It returns nil when no modal
// is open, a submit is already in flight, or the draft fails validation (in
// which case an alert is raised).
func (s *Screen[T, F]) Submit() tea.Cmd {
	if !s.modal.open() || s.modal.submitting {
		return nil
	}

	draft := s.modal.draft
	if s.validator != nil {
		if err := s.validator.Validate(draft); err != nil {
			s.alert = err.Error()
			return nil
		}
	}

	s.modal.submitting = true
	ctx, coll, owner := s.ctx, s.coll, s.name
	session, target := s.modal.session, s.modal.target

	if s.modal.mode == ModalAdd {
		return func() tea.Msg {
			created, err := coll.Create(ctx, draft)
			return MutationResultMsg{Owner: owner, Op: OpCreate, Session: session, ID: created.Key(), Err: err}
		}
	}
	return func() tea.Msg {
		err := coll.Update(ctx, target, draft)
		return MutationResultMsg{Owner: owner, Op: OpUpdate, Session: session, ID: target, Err: err}
	}
}

// Delete asks confirm and removes the record if the user accepts.
func (s *Screen[T, F]) Delete(id string, confirm ConfirmFunc) tea.Cmd {
	if s.deleting[id] || confirm == nil {
		return nil
	}
	if !confirm(s.msgs.ConfirmDelete) {
		return nil
	}
	return s.remove(id)
}

// RequestDelete puts the confirmation prompt up for id. The prompt is
// answered with ResolveDelete.
func (s *Screen[T, F]) RequestDelete(id string) {
	if s.deleting[id] {
		return
	}
	s.guard.Request(id, s.msgs.ConfirmDelete)
}

// ResolveDelete answers the pending prompt. Declining changes nothing else.
func (s *Screen[T, F]) ResolveDelete(accept bool) tea.Cmd {
	id, ok := s.guard.Resolve(accept)
	if !ok {
		return nil
	}
	return s.remove(id)
}

func (s *Screen[T, F]) remove(id string) tea.Cmd {
	s.deleting[id] = true
	ctx, coll, owner := s.ctx, s.coll, s.name
	return func() tea.Msg {
		err := coll.Remove(ctx, id)
		return MutationResultMsg{Owner: owner, Op: OpRemove, ID: id, Err: err}
	}
}

// Find looks id up in the current snapshot.
func (s *Screen[T, F]) Find(id string) (T, bool) {
	for _, item := range s.list.Items() {
		if item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (s *Screen[T, F]) Name() string { return s.name }

func (s *Screen[T, F]) Route() string { return s.link.Route() }

func (s *Screen[T, F]) Messages() Messages { return s.msgs }

func (s *Screen[T, F]) List() *ListState[T] { return s.list }

func (s *Screen[T, F]) Items() []T { return s.list.Items() }

func (s *Screen[T, F]) Mode() ModalMode { return s.modal.mode }

// Target returns the record id of the open edit modal.
func (s *Screen[T, F]) Target() string { return s.modal.target }

func (s *Screen[T, F]) Draft() F { return s.modal.draft }

func (s *Screen[T, F]) Submitting() bool { return s.modal.submitting }

func (s *Screen[T, F]) Deleting(id string) bool { return s.deleting[id] }

func (s *Screen[T, F]) PendingDelete() (id, message string, ok bool) { return s.guard.Pending() }

// Alert returns the blocking alert text, or "".
func (s *Screen[T, F]) Alert() string { return s.alert }

func (s *Screen[T, F]) DismissAlert() { s.alert = "" }
