// Public domain.

package psrnorm

import "strings"

// Campaign identifies the observation campaign a record came from.
// The zero value means no campaign.
type Campaign int

const (
	CampaignA Campaign = iota + 1 // MSPSRπ
	CampaignB                     // MSPSRπ2
	CampaignC                     // PSRπ
)

// Campaigns lists campaigns in catalog order.
var Campaigns = []Campaign{CampaignA, CampaignB, CampaignC}

var campaignNames = [...]struct{ key, title string }{
	CampaignA: {"MSPSRPI", "MSPSRπ"},
	CampaignB: {"MSPSRPI2", "MSPSRπ2"},
	CampaignC: {"PSRPI", "PSRπ"},
}

// String returns the ASCII campaign name, as used in file names and keys.
func (c Campaign) String() string {
	if c < CampaignA || c > CampaignC {
		return ""
	}
	return campaignNames[c].key
}

// Title returns the campaign name as written in publications.
func (c Campaign) Title() string {
	if c < CampaignA || c > CampaignC {
		return ""
	}
	return campaignNames[c].title
}

// Shape returns the raw schema the campaign's catalog file uses.
func (c Campaign) Shape() Shape {
	return Shape(c)
}

// ParseCampaign accepts either name form, case insensitively.  It reports
// false for "", "all" and unknown names.
func ParseCampaign(s string) (Campaign, bool) {
	for _, c := range Campaigns {
		n := campaignNames[c]
		if strings.EqualFold(s, n.key) || strings.EqualFold(s, n.title) {
			return c, true
		}
	}
	return 0, false
}

// Shape identifies one of the three raw catalog schemas.
type Shape int

const (
	// ShapeA: bare list or {pulsars: [...]}, nested astrometry object,
	// distance as {value, uncertainty}.
	ShapeA Shape = iota + 1
	// ShapeB: flat session-oriented list with scalar distance and
	// proper motion, flux and session fields.
	ShapeB
	// ShapeC: shape A fields, independently curated historic campaign.
	ShapeC
)

// Campaign returns the campaign whose files use shape s.
func (s Shape) Campaign() Campaign {
	return Campaign(s)
}

func (s Shape) String() string {
	switch s {
	case ShapeA:
		return "A"
	case ShapeB:
		return "B"
	case ShapeC:
		return "C"
	}
	return "?"
}
