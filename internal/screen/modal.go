package screen

type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalAdd
	ModalEdit
)

func (m ModalMode) String() string {
	switch m {
	case ModalClosed:
		return "closed"
	case ModalAdd:
		return "add"
	case ModalEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// modal is the add/edit form state of one screen. session changes on every
// open and close so a late result can tell whether its modal is still up.
type modal[F any] struct {
	mode       ModalMode
	target     string
	draft      F
	session    uint64
	submitting bool
	empty      func() F
}

func newModal[F any](empty func() F) modal[F] {
	if empty == nil {
		empty = func() F {
			var zero F
			return zero
		}
	}
	return modal[F]{draft: empty(), empty: empty}
}

func (m *modal[F]) openAdd() {
	m.session++
	m.mode = ModalAdd
	m.target = ""
	m.draft = m.empty()
	m.submitting = false
}

func (m *modal[F]) openEdit(id string, fields F) {
	m.session++
	m.mode = ModalEdit
	m.target = id
	m.draft = fields
	m.submitting = false
}

func (m *modal[F]) close() {
	m.session++
	m.mode = ModalClosed
	m.target = ""
	m.draft = m.empty()
	m.submitting = false
}

func (m *modal[F]) open() bool { return m.mode != ModalClosed }
