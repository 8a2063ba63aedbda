// Public domain.

package psrcoord

import (
	"fmt"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// FormatRA formats a right ascension in hours, minutes and seconds with
// prec decimal places on the seconds.
func FormatRA(ra unit.Angle, prec int) string {
	return fmt.Sprintf("%.*s", prec, sexa.FmtRA(unit.RAFromDeg(ra.Deg())))
}

// FormatDec formats a declination in degrees, arc minutes and arc seconds
// with prec decimal places on the seconds.
func FormatDec(dec unit.Angle, prec int) string {
	return fmt.Sprintf("%.*s", prec, sexa.FmtAngle(dec))
}
