package responsive

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	// DefaultUnitsPerColumn converts one terminal column into viewport units.
	DefaultUnitsPerColumn = 5

	// DefaultUnitsPerRow converts one terminal row into viewport units.
	DefaultUnitsPerRow = 20

	fallbackColumns = 80
	fallbackRows    = 24
)

// Viewport is a snapshot of the visible area in device-independent units.
type Viewport struct {
	Width  float64
	Height float64

	// Columns and Rows are the terminal cell dimensions the viewport was
	// derived from. They are zero for synthetic viewports.
	Columns int
	Rows    int
}

// FromCells converts a terminal size into a Viewport. Non-positive
// conversion factors fall back to the defaults.
func FromCells(cols, rows int, unitsPerCol, unitsPerRow float64) Viewport {
	if unitsPerCol <= 0 {
		unitsPerCol = DefaultUnitsPerColumn
	}
	if unitsPerRow <= 0 {
		unitsPerRow = DefaultUnitsPerRow
	}
	return Viewport{
		Width:   float64(cols) * unitsPerCol,
		Height:  float64(rows) * unitsPerRow,
		Columns: cols,
		Rows:    rows,
	}
}

// Label returns the DefaultTable label for the viewport width.
func (v Viewport) Label() Label {
	return Resolve(v.Width)
}

// String implements fmt.Stringer
func (v Viewport) String() string {
	return fmt.Sprintf("%.0fx%.0f (%dx%d cells, %s)", v.Width, v.Height, v.Columns, v.Rows, v.Label())
}

// TerminalViewport reads the size of the terminal attached to stdout and
// converts it. It falls back to 80x24 when stdout is not a terminal.
func TerminalViewport(unitsPerCol, unitsPerRow float64) Viewport {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		cols, rows = fallbackColumns, fallbackRows
	}
	return FromCells(cols, rows, unitsPerCol, unitsPerRow)
}

// Monitor owns the current viewport and notifies subscribers when it
// changes. It is safe for concurrent use.
type Monitor struct {
	mu      sync.Mutex
	current Viewport
	nextID  int
	subs    map[int]*Subscription
}

// NewMonitor creates a monitor seeded with an initial viewport.
func NewMonitor(initial Viewport) *Monitor {
	return &Monitor{
		current: initial,
		subs:    make(map[int]*Subscription),
	}
}

// Current returns the most recently published viewport.
func (m *Monitor) Current() Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Publish records v and notifies every live subscription. Callbacks run
// on the publishing goroutine after the monitor lock has been released.
func (m *Monitor) Publish(v Viewport) {
	m.mu.Lock()
	m.current = v
	subs := make([]*Subscription, 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	for _, s := range subs {
		s.deliver(v)
	}
}

// Subscribe registers a subscription seeded with the current viewport.
// onChange may be nil. The caller must Close the subscription when it no
// longer needs updates.
func (m *Monitor) Subscribe(onChange func(Viewport)) *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	s := &Subscription{
		id:       m.nextID,
		monitor:  m,
		latest:   m.current,
		onChange: onChange,
	}
	m.subs[s.id] = s
	return s
}

// Subscribers returns the number of live subscriptions.
func (m *Monitor) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

func (m *Monitor) remove(id int) {
	m.mu.Lock()
	delete(m.subs, id)
	m.mu.Unlock()
}

// Subscription is a scoped registration on a Monitor.
type Subscription struct {
	id       int
	monitor  *Monitor
	onChange func(Viewport)

	mu     sync.Mutex
	latest Viewport
	closed bool
}

// Viewport returns the last viewport delivered to the subscription.
func (s *Subscription) Viewport() Viewport {
	if s == nil {
		return FromCells(fallbackColumns, fallbackRows, 0, 0)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Close releases the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.monitor.remove(s.id)
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Subscription) deliver(v Viewport) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.latest = v
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(v)
	}
}
