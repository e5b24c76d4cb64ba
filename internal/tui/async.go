package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/muurk/campuspass/internal/logging"
	"go.uber.org/zap"
)

// callResultMsg delivers the outcome of a collaborator call to the screen
// that started it.
type callResultMsg struct {
	id    string
	value any
	err   error
}

// call tracks at most one outstanding collaborator request. A screen is
// busy while a call is outstanding.
type call struct {
	id     string
	cancel context.CancelFunc
}

// busy reports whether a request is outstanding.
func (c *call) busy() bool {
	return c.id != ""
}

// start runs fn as a tea.Cmd under a fresh request ID. Any previous
// request is cancelled and its result will be discarded.
func (c *call) start(fn func(ctx context.Context) (any, error)) tea.Cmd {
	c.abandon()

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	c.id = id
	c.cancel = cancel

	return func() tea.Msg {
		defer cancel()
		value, err := fn(ctx)
		return callResultMsg{id: id, value: value, err: err}
	}
}

// accept reports whether msg answers the outstanding request and, if so,
// clears it. Results of abandoned requests are dropped.
func (c *call) accept(msg callResultMsg) bool {
	if !c.busy() || msg.id != c.id {
		logging.Debug("Discarding stale call result", zap.String("id", msg.id))
		return false
	}
	c.cancel()
	c.id = ""
	c.cancel = nil
	return true
}

// abandon cancels the outstanding request, if any.
func (c *call) abandon() {
	if c.cancel != nil {
		c.cancel()
	}
	c.id = ""
	c.cancel = nil
}
