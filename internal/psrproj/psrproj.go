// Public domain.

// Package psrproj maps catalog coordinates to positions in a 3D scene.
//
// The observer sits at the origin.  Distance is compressed logarithmically
// into a bounded radius that never falls below Projector.BaseOffset, so
// no pulsar coincides with the origin.
package psrproj

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/soniakeys/coord"
	mcoord "github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/psrcat/internal/psrcoord"
	"github.com/soniakeys/psrcat/internal/psrnorm"
)

// ErrProjection marks a position that cannot be computed because RA or
// Dec did not parse.  Such errors also match psrcoord.ErrParse.
var ErrProjection = errors.New("no position available")

// ErrNoCoordinates marks a record skipped by Layout because it has no
// coordinates.  It is not a projection failure.
var ErrNoCoordinates = errors.New("record has no coordinates")

// Projector holds the radius transform
//
//	r = BaseOffset + log10(distance + 1) * ScaleFactor
type Projector struct {
	BaseOffset  float64
	ScaleFactor float64
}

// Default is the projector used by the portal scene.
var Default = Projector{BaseOffset: 1.5, ScaleFactor: 3.5}

// Project computes a scene position using Default.
func Project(ra, dec string, distance any) (coord.Cart, error) {
	return Default.Project(ra, dec, distance)
}

// Project computes a scene position from RA and Dec text and a raw
// distance value.
//
// An unparseable angle is an error matching ErrProjection; no angle is
// ever substituted.  An unparseable or negative distance is taken as 0,
// placing the point at the minimum radius.  For any parsed angles the
// result is finite.
//
//	x = r cos δ cos α
//	y = r sin δ
//	z = r cos δ sin α
func (p Projector) Project(ra, dec string, distance any) (coord.Cart, error) {
	α, err := psrcoord.ParseRA(ra)
	if err != nil {
		return coord.Cart{}, errors.Mark(errors.Wrap(err, "projecting"), ErrProjection)
	}
	δ, err := psrcoord.ParseDec(dec)
	if err != nil {
		return coord.Cart{}, errors.Mark(errors.Wrap(err, "projecting"), ErrProjection)
	}
	r := p.Radius(psrcoord.DistanceOr(distance, 0))
	sα, cα := math.Sincos(α.Rad())
	sδ, cδ := math.Sincos(δ.Rad())
	return coord.Cart{
		X: r * cδ * cα,
		Y: r * sδ,
		Z: r * cδ * sα,
	}, nil
}

// Radius returns the scene radius for a distance.  Negative distances are
// clamped to 0.
func (p Projector) Radius(distance float64) float64 {
	if !(distance > 0) || math.IsInf(distance, 1) {
		distance = 0
	}
	return p.BaseOffset + math.Log10(distance+1)*p.ScaleFactor
}

// Norm returns the length of a position vector.
func Norm(c coord.Cart) float64 {
	return math.Sqrt(c.Square())
}

// Galactic converts RA and Dec text to galactic longitude and latitude.
// The conversion uses Meeus's B1950 galactic pole; catalog positions are
// J2000, which is good to a few tenths of a degree for display.
func Galactic(ra, dec string) (l, b unit.Angle, err error) {
	α, err := psrcoord.ParseRA(ra)
	if err != nil {
		return 0, 0, errors.Mark(err, ErrProjection)
	}
	δ, err := psrcoord.ParseDec(dec)
	if err != nil {
		return 0, 0, errors.Mark(err, ErrProjection)
	}
	l, b = mcoord.EqToGal(unit.RAFromDeg(α.Deg()), δ)
	return l, b, nil
}

// Point is a projected record, ready for the scene.
type Point struct {
	Key  string // psrnorm.Record.Key
	ID   string
	Name string
	RA   string
	Dec  string
	Pos  coord.Cart
}

// Skip is a record Layout could not place.
type Skip struct {
	Key  string
	Name string
	Err  error
}

// Layout projects records for a scene, in record order.
//
// Records without coordinates are skipped without calling Project; their
// Skip error matches ErrNoCoordinates.  Records whose angles fail to parse
// are skipped with the ErrProjection error.  Neither affects other records.
func (p Projector) Layout(records []psrnorm.Record) (points []Point, skipped []Skip) {
	points = make([]Point, 0, len(records))
	for i := range records {
		r := &records[i]
		c := r.Coordinates
		if c == nil {
			skipped = append(skipped, Skip{r.Key(), r.Name,
				errors.Wrapf(ErrNoCoordinates, "%s", r.Name)})
			continue
		}
		pos, err := p.Project(c.RA, c.Dec, c.Distance)
		if err != nil {
			skipped = append(skipped, Skip{r.Key(), r.Name, err})
			continue
		}
		points = append(points, Point{
			Key:  r.Key(),
			ID:   r.ID,
			Name: r.Name,
			RA:   c.RA,
			Dec:  c.Dec,
			Pos:  pos,
		})
	}
	return
}
