// Public domain.

// Package psrnorm reconciles the three campaign catalog schemas into one
// canonical pulsar record.
//
// Normalization is defensive.  A payload that is not a list or a
// {pulsars: [...]} wrapper yields no records and an ErrFormat diagnostic.
// A list entry that is not an object is dropped with an ErrEntry
// diagnostic.  Any other malformed field is coerced to its absent form.
// Nothing here panics on input data and nothing logs; diagnostics are
// returned for the caller to report.
package psrnorm

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrFormat marks a payload that is not a recognizable record list.
var ErrFormat = errors.New("unrecognized catalog format")

// ErrEntry marks a list entry dropped because it is not an object.
var ErrEntry = errors.New("catalog entry is not an object")

// Payload is a decoded catalog file tagged with the schema it follows.
// Data is the result of decoding JSON into an empty interface.
type Payload struct {
	Shape Shape
	Data  any
}

// Decode decodes a catalog file.  Numbers are kept as json.Number so that
// Record.Original reproduces the source text.
func Decode(shape Shape, data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Payload{Shape: shape}, errors.Mark(
			errors.Wrapf(err, "decoding shape %s catalog", shape), ErrFormat)
	}
	return Payload{Shape: shape, Data: v}, nil
}

// Normalize converts a payload to canonical records.
//
// Records are returned in source order with ID set to the source list
// index.  Diagnostics match ErrFormat or ErrEntry.  Normalize is
// deterministic; the result is never nil.
func Normalize(p Payload) ([]Record, []error) {
	x, ok := extractors[p.Shape]
	if !ok {
		return []Record{}, []error{errors.Wrapf(ErrFormat, "unknown shape %d", int(p.Shape))}
	}
	list, err := entries(p.Data)
	if err != nil {
		return []Record{}, []error{err}
	}
	var diag []error
	records := make([]Record, 0, len(list))
	for i, e := range list {
		obj, ok := e.(map[string]any)
		if !ok {
			diag = append(diag, errors.Wrapf(ErrEntry, "entry %d (%s)", i, kind(e)))
			continue
		}
		records = append(records, x(i, obj))
	}
	return records, diag
}

// entries resolves a payload to its entry list.
func entries(data any) ([]any, error) {
	switch v := data.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if list, ok := v["pulsars"].([]any); ok {
			return list, nil
		}
		return nil, errors.Wrap(ErrFormat, "object without pulsars list")
	}
	return nil, errors.Wrapf(ErrFormat, "payload is %s", kind(data))
}

type extractor func(i int, obj map[string]any) Record

var extractors = map[Shape]extractor{
	ShapeA: extractA,
	ShapeB: extractB,
	ShapeC: extractC,
}

// extractA reads an MSPSRπ entry.
func extractA(i int, obj map[string]any) Record {
	r := common(i, obj, CampaignA)
	r.DisplayName, _ = str(obj, "display_name")
	r.Status = "Complete"
	r.Type = strOr(obj, "type", "Unknown")
	astrometry(&r, obj)
	return r
}

// extractB reads an MSPSRπ2 entry.  Distance and proper motion are
// scalars; flux and session fields replace the astrometry object.
func extractB(i int, obj map[string]any) Record {
	r := common(i, obj, CampaignB)
	r.DisplayName, _ = str(obj, "display_name")
	r.Status = strOr(obj, "status", "Planned")
	r.ProperMotion = valueOf(obj["properMotion"])
	r.FluxDensity = valueOf(obj["fluxDensity"])
	r.FluxCategory = valueOf(obj["fluxCategory"])
	r.SessionDuration = valueOf(obj["sessionDuration"])
	r.ReferenceDate = valueOf(obj["referenceDate"])
	r.SearchSession = valueOf(obj["searchSession"])
	r.AstrometrySession = valueOf(obj["astrometrySession"])
	r.Notes = valueOf(obj["notes"])
	r.Type, _ = str(obj, "fluxCategory")
	r.Description, _ = str(obj, "notes")
	return r
}

// extractC reads a PSRπ entry.
func extractC(i int, obj map[string]any) Record {
	r := common(i, obj, CampaignC)
	r.DisplayName = strOr(obj, "display_name", r.Name)
	r.Status = "Complete"
	r.Type = strOr(obj, "type", "Pulsar")
	astrometry(&r, obj)
	return r
}

// common extracts the fields every shape shares.
func common(i int, obj map[string]any, c Campaign) Record {
	r := Record{
		ID:             strconv.Itoa(i),
		Name:           name(i, obj),
		Campaign:       c,
		Coordinates:    coordinates(obj),
		Distance:       obj["distance"],
		Memberships:    memberships(obj["memberships"]),
		Visualizations: visualizations(obj["visualizations"]),
		Original:       obj,
	}
	r.Description, _ = str(obj, "description")
	if d, ok := obj["distance"].(map[string]any); ok {
		r.DistanceUncertainty = valueOf(d["uncertainty"])
	}
	if r.Coordinates != nil {
		r.Coordinates.Distance = r.Distance
	}
	return r
}

func astrometry(r *Record, obj map[string]any) {
	a, _ := obj["astrometry"].(map[string]any)
	r.Parallax = valueOf(a["parallax"])
	r.ProperMotionRA = valueOf(a["proper_motion_ra"])
	r.ProperMotionDec = valueOf(a["proper_motion_dec"])
}

func name(i int, obj map[string]any) string {
	if s, ok := str(obj, "name"); ok {
		return s
	}
	if s, ok := str(obj, "display_name"); ok {
		return s
	}
	return "Pulsar " + strconv.Itoa(i+1)
}

// coordinate field pairs in priority order
var coordinateSources = []struct{ obj, ra, dec string }{
	{"position", "rightAscension", "declination"},
	{"coordinates", "ra", "dec"},
	{"", "ra", "dec"},
}

// coordinates returns the first complete RA/Dec pair, or nil.
func coordinates(obj map[string]any) *Coordinates {
	for _, src := range coordinateSources {
		m := obj
		if src.obj != "" {
			m, _ = obj[src.obj].(map[string]any)
		}
		ra, ok := text(m[src.ra])
		if !ok {
			continue
		}
		dec, ok := text(m[src.dec])
		if !ok {
			continue
		}
		return &Coordinates{RA: ra, Dec: dec}
	}
	return nil
}

func memberships(v any) []string {
	list, _ := v.([]any)
	m := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok && s != "" {
			m = append(m, s)
		}
	}
	return m
}

func visualizations(v any) []Visualization {
	list, _ := v.([]any)
	vs := make([]Visualization, 0, len(list))
	for _, e := range list {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		var z Visualization
		z.Title, _ = str(obj, "title")
		z.Path, _ = str(obj, "path")
		z.Description, _ = str(obj, "description")
		vs = append(vs, z)
	}
	return vs
}

// str returns a non-blank string field.
func str(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func strOr(obj map[string]any, key, def string) string {
	if s, ok := str(obj, key); ok {
		return s
	}
	return def
}

// text renders a coordinate field.  Numbers become decimal text, which
// the coordinate parser reads as degrees.
func text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return "", false
		}
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	}
	return "unknown"
}
