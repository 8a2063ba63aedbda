// Public domain.

package psrsel

import (
	"time"

	"github.com/google/uuid"
)

// Machine drives a State from device callbacks.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	Session string // identifies the session in logs
	state   State
	now     func() time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithDebounce sets the background tap window.
func WithDebounce(d time.Duration) Option {
	return func(m *Machine) { m.state.Debounce = d }
}

// NewMachine detects the mode from c and starts with nothing highlighted.
func NewMachine(c Capabilities, opts ...Option) *Machine {
	m := &Machine{
		Session: uuid.New().String(),
		state:   NewState(DetectMode(c)),
		now:     time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Send applies msg and returns the new highlighted id.
func (m *Machine) Send(msg Msg) string {
	m.state = Update(m.state, msg)
	return Highlighted(m.state)
}

func (m *Machine) OnHoverEnter(id string) string { return m.Send(HoverEnter{ID: id}) }
func (m *Machine) OnHoverExit(id string) string  { return m.Send(HoverExit{ID: id}) }
func (m *Machine) OnTap(id string) string        { return m.Send(Tap{ID: id, At: m.now()}) }
func (m *Machine) OnBackgroundTap() string       { return m.Send(BackgroundTap{At: m.now()}) }

// State returns a copy of the current state.
func (m *Machine) State() State { return m.state }

// Highlighted returns the highlighted id, "" if none.
func (m *Machine) Highlighted() string { return Highlighted(m.state) }
