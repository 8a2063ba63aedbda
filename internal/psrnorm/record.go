// Public domain.

package psrnorm

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/soniakeys/psrcat/internal/psrcoord"
)

// Record is the canonical form of one pulsar catalog entry.
//
// ID and Name are never empty.  Memberships and Visualizations are never
// nil.  Records are shared by every downstream view and must be treated
// as immutable.
type Record struct {
	ID          string // index in the source list, unique per campaign
	Name        string
	DisplayName string
	Campaign    Campaign
	Status      string
	Type        string
	Description string

	// Coordinates is nil when the source has no complete RA/Dec pair.
	Coordinates *Coordinates

	// Distance is the source distance field verbatim: a number, a string
	// such as "0.4 kpc", or an object with a value field.
	Distance            any
	DistanceUncertainty Value

	Parallax        Value
	ProperMotionRA  Value
	ProperMotionDec Value

	// session-oriented fields, campaign B
	ProperMotion      Value
	FluxDensity       Value
	FluxCategory      Value
	SessionDuration   Value
	ReferenceDate     Value
	SearchSession     Value
	AstrometrySession Value
	Notes             Value

	Memberships    []string
	Visualizations []Visualization

	// Original is the untouched source object.
	Original map[string]any
}

// Key identifies the record across merged campaigns.
func (r *Record) Key() string {
	return r.Campaign.String() + "/" + r.ID
}

// DistanceKpc parses the record distance.  The error matches
// psrcoord.ErrParse when the source has no usable distance.
func (r *Record) DistanceKpc() (float64, error) {
	return psrcoord.ParseDistance(r.Distance)
}

// Coordinates holds a record position as written in the source, for the
// projector and for display.  RA and Dec are both non-empty.
type Coordinates struct {
	RA       string
	Dec      string
	Distance any
}

// Visualization references a plot or image published for a pulsar.
type Visualization struct {
	Title       string `json:"title"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// Value is an optional scalar from a source record.  Catalog files hold
// numbers and strings interchangeably for the same field.
type Value struct {
	Raw   any
	Valid bool
}

func valueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case string:
		if x == "" {
			return Value{}
		}
	case map[string]any, []any:
		return Value{}
	}
	return Value{Raw: v, Valid: true}
}

// String returns the value as text, or "" when the value is absent.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	switch x := v.Raw.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v.Raw)
}

// Or returns the value as text, or placeholder when the value is absent.
func (v Value) Or(placeholder string) string {
	if !v.Valid {
		return placeholder
	}
	return v.String()
}

// Float parses a leading decimal number from the value.
func (v Value) Float() (float64, error) {
	return psrcoord.ParseDistance(v.Raw)
}
