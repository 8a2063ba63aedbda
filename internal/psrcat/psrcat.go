// Public domain.

// Package psrcat combines normalized campaigns and serves filtered views.
//
// Every function here is pure.  Inputs are never modified and results are
// new slices, so several views may hold the same records at once.
package psrcat

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/soniakeys/psrcat/internal/psrnorm"
)

// CampaignMap holds the record list of each campaign.
type CampaignMap map[psrnorm.Campaign][]psrnorm.Record

// MergeCampaigns keys record lists by campaign.  No deduplication is done;
// a pulsar observed by several campaigns has one record per campaign.
func MergeCampaigns(a, b, c []psrnorm.Record) CampaignMap {
	return CampaignMap{
		psrnorm.CampaignA: a,
		psrnorm.CampaignB: b,
		psrnorm.CampaignC: c,
	}
}

// All returns the records of every campaign, in campaign order.
func (m CampaignMap) All() []psrnorm.Record {
	all := make([]psrnorm.Record, 0, m.Len())
	for _, c := range psrnorm.Campaigns {
		all = append(all, m[c]...)
	}
	return all
}

// Len returns the total record count.
func (m CampaignMap) Len() (n int) {
	for _, recs := range m {
		n += len(recs)
	}
	return
}

// Criteria selects records.  Zero fields and "all" do not filter.
type Criteria struct {
	Text       string // case-insensitive substring of Name
	Band       Band
	Campaign   psrnorm.Campaign
	Status     string
	Membership string
}

// Filter returns the records matching every criterion, in input order.
//
// The distance band of a record is judged against the partition that
// bands holds for its campaign.  Records without a parseable distance fall in
// no named band; they match only BandAll and BandNone.
func Filter(records []psrnorm.Record, c Criteria, bands Bands) []psrnorm.Record {
	fold := cases.Fold()
	text := fold.String(c.Text)
	out := make([]psrnorm.Record, 0, len(records))
	for i := range records {
		r := &records[i]
		switch {
		case text != "" && !strings.Contains(fold.String(r.Name), text):
		case c.Band != BandAll && bands.Classify(r) != c.Band:
		case c.Campaign != 0 && r.Campaign != c.Campaign:
		case !isAll(c.Status) && r.Status != c.Status:
		case !isAll(c.Membership) && !slices.Contains(r.Memberships, c.Membership):
		default:
			out = append(out, *r)
		}
	}
	return out
}

func isAll(s string) bool {
	return s == "" || s == "all"
}

// DistinctMemberships returns the union of record memberships in first
// seen order.
func DistinctMemberships(records []psrnorm.Record) []string {
	return distinct(records, func(r *psrnorm.Record) []string { return r.Memberships })
}

// Statuses returns the distinct record statuses in first seen order.
func Statuses(records []psrnorm.Record) []string {
	return distinct(records, func(r *psrnorm.Record) []string { return []string{r.Status} })
}

func distinct(records []psrnorm.Record, f func(*psrnorm.Record) []string) []string {
	seen := make(map[string]bool)
	list := []string{}
	for i := range records {
		for _, s := range f(&records[i]) {
			if !seen[s] {
				seen[s] = true
				list = append(list, s)
			}
		}
	}
	return list
}
