// Public domain.

package psrsel_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/psrcat/internal/psrsel"
)

func TestDetectMode(t *testing.T) {
	for _, tc := range []struct {
		c    psrsel.Capabilities
		want psrsel.Mode
	}{
		{psrsel.Capabilities{}, psrsel.ModePointer},
		{psrsel.Capabilities{TouchEvents: true}, psrsel.ModeTouch},
		{psrsel.Capabilities{MaxTouchPoints: 5}, psrsel.ModeTouch},
		{psrsel.Capabilities{CoarsePointer: true}, psrsel.ModeTouch},
	} {
		assert.Equal(t, tc.want, psrsel.DetectMode(tc.c), "%+v", tc.c)
	}
	assert.Equal(t, "touch", psrsel.ModeTouch.String())
}

func TestPointerHover(t *testing.T) {
	s := psrsel.NewState(psrsel.ModePointer)
	s = psrsel.Update(s, psrsel.HoverEnter{ID: "a"})
	assert.Equal(t, "a", psrsel.Highlighted(s))
	s = psrsel.Update(s, psrsel.HoverEnter{ID: "b"})
	assert.Equal(t, "b", psrsel.Highlighted(s))

	// a late exit from a no longer hovers
	s = psrsel.Update(s, psrsel.HoverExit{ID: "a"})
	assert.Equal(t, "b", psrsel.Highlighted(s))
	s = psrsel.Update(s, psrsel.HoverExit{ID: "b"})
	assert.Equal(t, "", psrsel.Highlighted(s))

	// taps do nothing in pointer mode
	s = psrsel.Update(s, psrsel.Tap{ID: "a", At: time.Now()})
	assert.Equal(t, psrsel.NewState(psrsel.ModePointer), s)
}

func TestTouchTap(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := psrsel.NewState(psrsel.ModeTouch)

	s = psrsel.Update(s, psrsel.HoverEnter{ID: "a"})
	assert.Equal(t, "", psrsel.Highlighted(s), "hover ignored in touch mode")

	s = psrsel.Update(s, psrsel.Tap{ID: "a", At: t0})
	assert.Equal(t, "a", psrsel.Highlighted(s))
	assert.Equal(t, t0, s.LastTap)

	s = psrsel.Update(s, psrsel.Tap{ID: "b", At: t0.Add(time.Second)})
	assert.Equal(t, "b", psrsel.Highlighted(s))

	s = psrsel.Update(s, psrsel.Tap{ID: "b", At: t0.Add(2 * time.Second)})
	assert.Equal(t, "", psrsel.Highlighted(s), "second tap toggles off")
	assert.Equal(t, t0.Add(2*time.Second), s.LastTap)
}

func TestBackgroundTapDebounce(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := psrsel.NewState(psrsel.ModeTouch)
	s = psrsel.Update(s, psrsel.Tap{ID: "a", At: t0})

	s = psrsel.Update(s, psrsel.BackgroundTap{At: t0.Add(50 * time.Millisecond)})
	assert.Equal(t, "a", psrsel.Highlighted(s), "within debounce")

	s = psrsel.Update(s, psrsel.BackgroundTap{At: t0.Add(psrsel.DefaultDebounce)})
	assert.Equal(t, "", psrsel.Highlighted(s), "debounce elapsed")
}

func TestMaximizeRestore(t *testing.T) {
	s := psrsel.NewState(psrsel.ModePointer)
	s = psrsel.Update(s, psrsel.HoverEnter{ID: "a"})
	s = psrsel.Update(s, psrsel.Maximize{})
	assert.True(t, s.Maximized)
	assert.Equal(t, "", psrsel.Highlighted(s))
	s = psrsel.Update(s, psrsel.HoverEnter{ID: "b"})
	s = psrsel.Update(s, psrsel.Restore{})
	assert.False(t, s.Maximized)
	assert.Equal(t, "", psrsel.Highlighted(s))
}

func TestVisible(t *testing.T) {
	s := psrsel.NewState(psrsel.ModeTouch)
	s = psrsel.Update(s, psrsel.Tap{ID: "a", At: time.Now()})
	s = psrsel.Update(s, psrsel.Visible{IDs: []string{"a", "b"}})
	assert.Equal(t, "a", psrsel.Highlighted(s))
	s = psrsel.Update(s, psrsel.Visible{IDs: []string{"b"}})
	assert.Equal(t, "", psrsel.Highlighted(s))
}

func TestUnknownMsg(t *testing.T) {
	s := psrsel.NewState(psrsel.ModeTouch)
	assert.Equal(t, s, psrsel.Update(s, "noise"))
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestMachine(t *testing.T) {
	clk := &fakeClock{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := psrsel.NewMachine(psrsel.Capabilities{MaxTouchPoints: 1},
		psrsel.WithClock(clk.now), psrsel.WithDebounce(time.Second))
	_, err := uuid.Parse(m.Session)
	require.NoError(t, err)
	assert.Equal(t, psrsel.ModeTouch, m.State().Mode)

	assert.Equal(t, "J0437", m.OnTap("J0437"))
	clk.t = clk.t.Add(500 * time.Millisecond)
	assert.Equal(t, "J0437", m.OnBackgroundTap())
	clk.t = clk.t.Add(600 * time.Millisecond)
	assert.Equal(t, "", m.OnBackgroundTap())
	assert.Equal(t, "", m.OnHoverEnter("J0437"))

	p := psrsel.NewMachine(psrsel.Capabilities{})
	assert.Equal(t, "x", p.OnHoverEnter("x"))
	assert.Equal(t, "x", p.Highlighted())
	assert.Equal(t, "", p.OnHoverExit("x"))
	assert.NotEqual(t, m.Session, p.Session)
}
