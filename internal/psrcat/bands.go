// Public domain.

package psrcat

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/soniakeys/psrcat/internal/psrnorm"
)

// Band is a distance band filter value.
type Band int

const (
	BandAll    Band = iota // no distance filter
	BandLow                // nearer than Partition.Low
	BandMedium             // from Partition.Low to Partition.High
	BandHigh               // Partition.High and beyond
	BandNone               // distance missing or unparseable
)

var bandNames = [...]string{
	BandAll:    "all",
	BandLow:    "low",
	BandMedium: "medium",
	BandHigh:   "high",
	BandNone:   "none",
}

func (b Band) String() string {
	if b < BandAll || b > BandNone {
		return ""
	}
	return bandNames[b]
}

// ErrBand marks an unknown band name.
var ErrBand = errors.New("unknown distance band")

// ParseBand parses a band name.  "" is BandAll.  "near" and "far" are
// accepted for low and high, as labeled in the portal.
func ParseBand(s string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return BandAll, nil
	case "low", "near":
		return BandLow, nil
	case "medium":
		return BandMedium, nil
	case "high", "far":
		return BandHigh, nil
	case "none", "unknown":
		return BandNone, nil
	}
	return BandAll, errors.Wrapf(ErrBand, "%q", s)
}

// Partition holds the two thresholds, in kpc, dividing distances into
// low, medium and high bands.
type Partition struct {
	Low  float64 `mapstructure:"low" yaml:"low"`
	High float64 `mapstructure:"high" yaml:"high"`
}

// DefaultPartition is the portal's Near (< 1 kpc), Medium (1-2 kpc),
// Far (> 2 kpc) split.
var DefaultPartition = Partition{Low: 1, High: 2}

// Band classifies a distance.  NaN is BandNone.
func (p Partition) Band(d float64) Band {
	switch {
	case math.IsNaN(d):
		return BandNone
	case d < p.Low:
		return BandLow
	case d < p.High:
		return BandMedium
	}
	return BandHigh
}

// Validate checks the thresholds are ordered.
func (p Partition) Validate() error {
	if math.IsNaN(p.Low) || math.IsNaN(p.High) || p.Low > p.High {
		return errors.Newf("distance partition low %g > high %g", p.Low, p.High)
	}
	return nil
}

// Bands holds distance partitions.  Campaigns measure distance
// differently, so each may carry its own partition.
type Bands struct {
	Default  Partition
	Campaign map[psrnorm.Campaign]Partition
}

// DefaultBands uses DefaultPartition for every campaign.
func DefaultBands() Bands {
	return Bands{Default: DefaultPartition}
}

// For returns the partition configured for c, falling back to Default.
func (b Bands) For(c psrnorm.Campaign) Partition {
	if p, ok := b.Campaign[c]; ok {
		return p
	}
	return b.Default
}

// Classify returns the band of a record's distance, BandNone when the
// distance does not parse.
func (b Bands) Classify(r *psrnorm.Record) Band {
	d, err := r.DistanceKpc()
	if err != nil {
		return BandNone
	}
	return b.For(r.Campaign).Band(d)
}
