package cmd

import tea "github.com/charmbracelet/bubbletea"

// settle runs cmd and every follow-up command synchronously, feeding each
// message to update the way the bubbletea runtime would.
func settle(update func(tea.Msg) tea.Cmd, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		queue = append(queue, update(msg))
	}
}
