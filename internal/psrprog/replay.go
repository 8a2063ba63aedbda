// Public domain.

package psrprog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soniakeys/psrcat/internal/psrlog"
	"github.com/soniakeys/psrcat/internal/psrsel"
)

// Script is a recorded interaction session, replayed through the
// selection state machine.
//
//	device:
//	  max_touch_points: 5
//	events:
//	  - {at: 0s, kind: tap, id: J0437-4715}
//	  - {at: 120ms, kind: background}
type Script struct {
	Device struct {
		TouchEvents    bool `yaml:"touch_events"`
		MaxTouchPoints int  `yaml:"max_touch_points"`
		CoarsePointer  bool `yaml:"coarse_pointer"`
	} `yaml:"device"`
	Debounce time.Duration `yaml:"debounce"`
	Events   []Event       `yaml:"events"`
}

// Event is one input of a Script.  At is the offset from session start.
// Kind is one of hover, leave, tap, background, maximize, restore and
// visible.
type Event struct {
	At   time.Duration `yaml:"at"`
	Kind string        `yaml:"kind"`
	ID   string        `yaml:"id,omitempty"`
	IDs  []string      `yaml:"ids,omitempty"`
}

// ReadScript decodes a YAML script.
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "reading script")
	}
	for i, e := range s.Events {
		if _, err := e.msg(time.Time{}); err != nil {
			return nil, errors.Wrapf(err, "event %d", i)
		}
	}
	return &s, nil
}

func (e Event) msg(start time.Time) (psrsel.Msg, error) {
	at := start.Add(e.At)
	switch e.Kind {
	case "hover":
		return psrsel.HoverEnter{ID: e.ID}, nil
	case "leave":
		return psrsel.HoverExit{ID: e.ID}, nil
	case "tap":
		return psrsel.Tap{ID: e.ID, At: at}, nil
	case "background":
		return psrsel.BackgroundTap{At: at}, nil
	case "maximize":
		return psrsel.Maximize{}, nil
	case "restore":
		return psrsel.Restore{}, nil
	case "visible":
		return psrsel.Visible{IDs: e.IDs}, nil
	}
	return nil, errors.Newf("unknown event kind %q", e.Kind)
}

// Replay runs s through a selection machine, writing the highlighted id
// after each event.  debounce applies when the script sets none.
func Replay(w io.Writer, s *Script, debounce time.Duration) error {
	if s.Debounce > 0 {
		debounce = s.Debounce
	}
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	var now time.Time
	m := psrsel.NewMachine(psrsel.Capabilities{
		TouchEvents:    s.Device.TouchEvents,
		MaxTouchPoints: s.Device.MaxTouchPoints,
		CoarsePointer:  s.Device.CoarsePointer,
	}, psrsel.WithDebounce(debounce), psrsel.WithClock(func() time.Time { return now }))
	psrlog.Logger.Debugw("replay", "session", m.Session, "mode", m.State().Mode.String())

	for _, e := range s.Events {
		now = start.Add(e.At)
		msg, err := e.msg(start)
		if err != nil {
			return err
		}
		h := m.Send(msg)
		if h == "" {
			h = "-"
		}
		if _, err := fmt.Fprintf(w, "%10s %-10s %-14s %s\n", e.At, e.Kind, e.ID, h); err != nil {
			return err
		}
	}
	return nil
}

func (p *program) replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <events-file>",
		Short: "Replay recorded scene input through the selection state machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			s, err := ReadScript(f)
			if err != nil {
				return errors.Wrapf(err, "%s", args[0])
			}
			return Replay(p.out, s, p.cfg.Selection.Debounce)
		},
	}
}
