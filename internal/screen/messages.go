package screen

// ListResultMsg carries the outcome of one list fetch back to its owner.
type ListResultMsg[T any] struct {
	Owner string
	Seq   uint64
	Items []T
	Err   error
}

type MutationOp int

const (
	OpCreate MutationOp = iota
	OpUpdate
	OpRemove
)

func (op MutationOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// MutationResultMsg carries the outcome of a create, update or remove.
// Session identifies the modal that submitted it; removes carry zero.
type MutationResultMsg struct {
	Owner   string
	Op      MutationOp
	Session uint64
	ID      string
	Err     error
}
