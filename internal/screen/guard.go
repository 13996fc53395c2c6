package screen

// ConfirmFunc asks the user a yes/no question and blocks until answered.
type ConfirmFunc func(message string) bool

// Guard holds a pending destructive action until the user answers.
type Guard struct {
	id      string
	message string
	active  bool
}

// Request puts a confirmation prompt up for id, replacing any earlier one.
func (g *Guard) Request(id, message string) {
	g.id = id
	g.message = message
	g.active = true
}

// Pending returns the prompt waiting for an answer.
func (g *Guard) Pending() (id, message string, ok bool) {
	return g.id, g.message, g.active
}

// Resolve takes the prompt down. It returns the guarded id and true only
// when the prompt was up and the user accepted.
func (g *Guard) Resolve(accept bool) (string, bool) {
	if !g.active {
		return "", false
	}
	id := g.id
	*g = Guard{}
	return id, accept
}
