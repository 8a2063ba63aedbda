// Public domain.

// Package psrsel tracks which pulsar of a rendered scene is highlighted.
//
// On a pointer device the highlight follows hover.  On a touch device it
// follows taps: tapping a pulsar selects it, tapping it again or tapping
// empty background clears it.  Touch devices commonly deliver a background
// tap right after a pulsar tap, so a background tap within Debounce of the
// last pulsar tap is ignored.
//
// State is a value and Update is a pure reducer.  Machine wraps the two
// with a clock for event-driven callers.
package psrsel

import (
	"slices"
	"time"
)

// Mode is the interaction mode, chosen once per session.
type Mode int

const (
	ModePointer Mode = iota
	ModeTouch
)

func (m Mode) String() string {
	if m == ModeTouch {
		return "touch"
	}
	return "pointer"
}

// Capabilities describes the input device.
type Capabilities struct {
	TouchEvents    bool // touch events are supported
	MaxTouchPoints int
	CoarsePointer  bool // primary pointer is coarse, a finger
}

// IsTouchCapable is true if any capability indicates touch.
func IsTouchCapable(c Capabilities) bool {
	return c.TouchEvents || c.MaxTouchPoints > 0 || c.CoarsePointer
}

// DetectMode picks the interaction mode for a device.
func DetectMode(c Capabilities) Mode {
	if IsTouchCapable(c) {
		return ModeTouch
	}
	return ModePointer
}

// DefaultDebounce is the background tap window.
const DefaultDebounce = 200 * time.Millisecond

// State is the selection state.  An empty id means none.
type State struct {
	Mode      Mode
	Hovered   string    // pointer mode highlight
	Tapped    string    // touch mode highlight
	LastTap   time.Time // time of the last pulsar tap
	Maximized bool      // expanded view is showing
	Debounce  time.Duration
}

// NewState returns an empty state in mode m with DefaultDebounce.
func NewState(m Mode) State {
	return State{Mode: m, Debounce: DefaultDebounce}
}

// Msg is an input event for Update.
type Msg interface{}

type (
	// HoverEnter: the pointer moved over a pulsar.
	HoverEnter struct{ ID string }
	// HoverExit: the pointer left a pulsar.
	HoverExit struct{ ID string }
	// Tap: a pulsar was tapped.
	Tap struct {
		ID string
		At time.Time
	}
	// BackgroundTap: empty scene background was tapped.
	BackgroundTap struct{ At time.Time }
	// Maximize opens the expanded view.
	Maximize struct{}
	// Restore closes the expanded view.
	Restore struct{}
	// Visible reports the ids now rendered, after filtering.
	Visible struct{ IDs []string }
)

// Update returns the state following msg.  Unknown messages and messages
// that do not apply in the current mode return s unchanged.
func Update(s State, msg Msg) State {
	switch m := msg.(type) {
	case HoverEnter:
		if s.Mode == ModePointer {
			s.Hovered = m.ID
		}
	case HoverExit:
		if s.Mode == ModePointer && s.Hovered == m.ID {
			s.Hovered = ""
		}
	case Tap:
		if s.Mode != ModeTouch {
			break
		}
		if s.Tapped == m.ID {
			s.Tapped = ""
		} else {
			s.Tapped = m.ID
		}
		s.LastTap = m.At
	case BackgroundTap:
		if s.Mode != ModeTouch {
			break
		}
		if m.At.Sub(s.LastTap) >= s.Debounce {
			s.Tapped = ""
		}
	case Maximize:
		s.Maximized = true
		s.Hovered, s.Tapped = "", ""
	case Restore:
		s.Maximized = false
		s.Hovered, s.Tapped = "", ""
	case Visible:
		if s.Hovered != "" && !slices.Contains(m.IDs, s.Hovered) {
			s.Hovered = ""
		}
		if s.Tapped != "" && !slices.Contains(m.IDs, s.Tapped) {
			s.Tapped = ""
		}
	}
	return s
}

// Highlighted returns the id highlighted in the active mode, "" if none.
func Highlighted(s State) string {
	if s.Mode == ModeTouch {
		return s.Tapped
	}
	return s.Hovered
}
