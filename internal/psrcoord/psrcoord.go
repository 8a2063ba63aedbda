// Public domain.

// Package psrcoord parses the right ascension, declination and distance
// notations found in pulsar catalog files.
//
// Catalog files mix sexagesimal and decimal notation, with or without unit
// markers, and distances may be numbers, strings with a unit word, or
// objects carrying a value field.  Functions here are pure.  They do not
// log; failure is reported as an error matching ErrParse so the caller can
// decide whether a missing value is fatal to a record.
package psrcoord

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/soniakeys/unit"
)

// ErrParse marks text with no recognizable numeric content.
var ErrParse = errors.New("no numeric content")

// ErrRange marks a parsed angle outside its conventional range.
var ErrRange = errors.New("coordinate out of range")

var (
	rxRAUnit  = regexp.MustCompile(`(\d+(?:\.\d*)?|\.\d+)\s*([hmsʰᵐˢ])(\.\d+)?`)
	rxDecUnit = regexp.MustCompile(`(\d+(?:\.\d*)?|\.\d+)\s*([°ºd'′’m"″”s])(\.\d+)?`)
	rxNum     = regexp.MustCompile(`\d+(?:\.\d*)?|\.\d+`)
	rxSigned  = regexp.MustCompile(`[-+]?(?:\d+(?:\.\d*)?|\.\d+)`)
	rxLeading = regexp.MustCompile(`^\s*[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`)
)

// unit suffix to sexagesimal component index
var (
	raSlot = map[string]int{
		"h": 0, "ʰ": 0,
		"m": 1, "ᵐ": 1,
		"s": 2, "ˢ": 2,
	}
	decSlot = map[string]int{
		"°": 0, "º": 0, "d": 0,
		"'": 1, "′": 1, "’": 1, "m": 1,
		`"`: 2, "″": 2, "”": 2, "s": 2,
	}
)

// ParseRA parses a right ascension.
//
// Accepted forms, in priority order:
//
//	19h55m27.87s   unit suffixed hours, minutes, seconds, any subset
//	19 55 27.87    three numeric tokens, whitespace or colon delimited
//	298.866        a single number, taken as decimal degrees
//
// Hour forms are converted to degrees as (h + m/60 + s/3600) * 15.
// Two bare tokens are read as hours and minutes.
func ParseRA(text string) (unit.Angle, error) {
	if hms, ok := suffixed(text, rxRAUnit, raSlot); ok {
		return fromHours(hms), nil
	}
	tok := rxNum.FindAllString(text, 3)
	switch len(tok) {
	case 0:
		return 0, errors.Wrapf(ErrParse, "right ascension %q", text)
	case 1:
		d, err := strconv.ParseFloat(rxSigned.FindString(text), 64)
		if err != nil {
			return 0, errors.Wrapf(ErrParse, "right ascension %q", text)
		}
		return unit.AngleFromDeg(d), nil
	}
	hms, err := tokens(tok)
	if err != nil {
		return 0, errors.Wrapf(err, "right ascension %q", text)
	}
	return fromHours(hms), nil
}

// ParseDec parses a declination.
//
// Forms mirror ParseRA with degree, arcminute and arcsecond markers
// (° ' " or d m s).  The value is negative when a minus sign appears
// anywhere in text; the sign applies to the combined magnitude
// d + m/60 + s/3600, so -00°30' is -0.5°.  A single number is taken as
// decimal degrees.
func ParseDec(text string) (unit.Angle, error) {
	sign := 1.
	if strings.ContainsAny(text, "-−") {
		sign = -1
	}
	if dms, ok := suffixed(text, rxDecUnit, decSlot); ok {
		return unit.AngleFromDeg(sign * magnitude(dms)), nil
	}
	tok := rxNum.FindAllString(text, 3)
	if len(tok) == 0 {
		return 0, errors.Wrapf(ErrParse, "declination %q", text)
	}
	dms, err := tokens(tok)
	if err != nil {
		return 0, errors.Wrapf(err, "declination %q", text)
	}
	return unit.AngleFromDeg(sign * magnitude(dms)), nil
}

// ParseDistance parses a distance value as found in a catalog file.
//
// Raw may be a number, a json.Number, a string with a leading decimal
// number optionally followed by a unit word ("1.5 kpc"), or an object
// with a "value" field parsed by the same rule.  The unit word is not
// interpreted.  A nil or unparseable value is an error matching ErrParse;
// use DistanceOr to opt into a default.
func ParseDistance(raw any) (float64, error) {
	var d float64
	switch v := raw.(type) {
	case nil:
		return 0, errors.Wrap(ErrParse, "distance missing")
	case float64:
		d = v
	case float32:
		d = float64(v)
	case int:
		d = float64(v)
	case int64:
		d = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, errors.Wrapf(ErrParse, "distance %q", v.String())
		}
		d = f
	case string:
		s := rxLeading.FindString(v)
		if s == "" {
			return 0, errors.Wrapf(ErrParse, "distance %q", v)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, errors.Wrapf(ErrParse, "distance %q", v)
		}
		d = f
	case map[string]any:
		return ParseDistance(v["value"])
	default:
		return 0, errors.Wrapf(ErrParse, "distance of type %T", raw)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, errors.Wrapf(ErrParse, "distance %v", d)
	}
	return d, nil
}

// DistanceOr parses raw as ParseDistance does, returning def when raw
// cannot be parsed.
func DistanceOr(raw any, def float64) float64 {
	d, err := ParseDistance(raw)
	if err != nil {
		return def
	}
	return d
}

// CheckRange reports whether ra is within [0, 360) degrees and dec within
// [-90, 90].  Parse functions do not apply it; bare degree values pass
// through them unchecked.
func CheckRange(ra, dec unit.Angle) error {
	if r := ra.Deg(); r < 0 || r >= 360 {
		return errors.Wrapf(ErrRange, "right ascension %g°", r)
	}
	if d := dec.Deg(); d < -90 || d > 90 {
		return errors.Wrapf(ErrRange, "declination %g°", d)
	}
	return nil
}

// suffixed collects unit suffixed components.  ok is false when no
// suffixed number is present.  A fraction may follow the unit symbol, as
// in 27ˢ.87.
func suffixed(text string, rx *regexp.Regexp, slot map[string]int) (c [3]float64, ok bool) {
	for _, m := range rx.FindAllStringSubmatch(text, -1) {
		x, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if f, err := strconv.ParseFloat(m[3], 64); err == nil && !strings.Contains(m[1], ".") {
			x += f
		}
		c[slot[m[2]]] = x
		ok = true
	}
	return
}

func tokens(tok []string) (c [3]float64, err error) {
	for i, t := range tok {
		if c[i], err = strconv.ParseFloat(t, 64); err != nil {
			return c, errors.Wrapf(ErrParse, "token %q", t)
		}
	}
	return
}

func magnitude(c [3]float64) float64 {
	return math.Abs(c[0]) + c[1]/60 + c[2]/3600
}

func fromHours(c [3]float64) unit.Angle {
	return unit.AngleFromDeg((c[0] + c[1]/60 + c[2]/3600) * 15)
}
