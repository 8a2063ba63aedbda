// Public domain.

package psrcat_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/psrcat/internal/psrcat"
	"github.com/soniakeys/psrcat/internal/psrnorm"
)

func rec(id, name string, c psrnorm.Campaign, status string, dist any, m ...string) psrnorm.Record {
	if m == nil {
		m = []string{}
	}
	return psrnorm.Record{
		ID: id, Name: name, Campaign: c, Status: status,
		Distance: dist, Memberships: m,
		Visualizations: []psrnorm.Visualization{},
	}
}

func fixture() []psrnorm.Record {
	return []psrnorm.Record{
		rec("0", "J0437-4715", psrnorm.CampaignA, "Complete", map[string]any{"value": 0.157}, "IPTA", "PPTA"),
		rec("1", "J1012+5307", psrnorm.CampaignA, "Complete", map[string]any{"value": "1.17"}, "EPTA"),
		rec("0", "J1744-1134", psrnorm.CampaignB, "Active", "0.4 kpc", "NANOGrav", "IPTA"),
		rec("1", "J1022+1001", psrnorm.CampaignB, "Planned", 2.0),
		rec("2", "J2145-0750", psrnorm.CampaignB, "Planned", "N/A", "EPTA"),
		rec("0", "B0329+54", psrnorm.CampaignC, "Complete", nil),
		rec("1", "b1133+16", psrnorm.CampaignC, "Complete", 1.99),
	}
}

func names(recs []psrnorm.Record) []string {
	n := make([]string, len(recs))
	for i := range recs {
		n[i] = recs[i].Name
	}
	return n
}

func TestFilter(t *testing.T) {
	all := fixture()
	bands := psrcat.DefaultBands()
	tests := []struct {
		name string
		c    psrcat.Criteria
		want []string
	}{
		{"no criteria", psrcat.Criteria{}, names(all)},
		{"text", psrcat.Criteria{Text: "j10"}, []string{"J1012+5307", "J1022+1001"}},
		{"text folds case", psrcat.Criteria{Text: "B1133"}, []string{"b1133+16"}},
		{"low", psrcat.Criteria{Band: psrcat.BandLow}, []string{"J0437-4715", "J1744-1134"}},
		{"medium", psrcat.Criteria{Band: psrcat.BandMedium}, []string{"J1012+5307", "b1133+16"}},
		{"high", psrcat.Criteria{Band: psrcat.BandHigh}, []string{"J1022+1001"}},
		{"none", psrcat.Criteria{Band: psrcat.BandNone}, []string{"J2145-0750", "B0329+54"}},
		{"campaign", psrcat.Criteria{Campaign: psrnorm.CampaignC}, []string{"B0329+54", "b1133+16"}},
		{"status", psrcat.Criteria{Status: "Planned"}, []string{"J1022+1001", "J2145-0750"}},
		{"status all", psrcat.Criteria{Status: "all"}, names(all)},
		{"membership", psrcat.Criteria{Membership: "IPTA"}, []string{"J0437-4715", "J1744-1134"}},
		{"combined", psrcat.Criteria{Text: "j", Membership: "EPTA", Campaign: psrnorm.CampaignB}, []string{"J2145-0750"}},
		{"nothing", psrcat.Criteria{Text: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(psrcat.Filter(all, tt.c, bands)))
		})
	}
	assert.Equal(t, fixture(), all, "input not modified")
}

func TestBandsPartitionRecords(t *testing.T) {
	all := fixture()
	bands := psrcat.DefaultBands()
	seen := map[string]int{}
	for _, b := range []psrcat.Band{psrcat.BandLow, psrcat.BandMedium, psrcat.BandHigh, psrcat.BandNone} {
		for _, r := range psrcat.Filter(all, psrcat.Criteria{Band: b}, bands) {
			seen[r.Key()]++
		}
	}
	require.Len(t, seen, len(all))
	for k, n := range seen {
		assert.Equal(t, 1, n, k)
	}
}

func TestCampaignBands(t *testing.T) {
	bands := psrcat.Bands{
		Default: psrcat.DefaultPartition,
		Campaign: map[psrnorm.Campaign]psrcat.Partition{
			psrnorm.CampaignB: {Low: .5, High: 1},
		},
	}
	got := psrcat.Filter(fixture(), psrcat.Criteria{Band: psrcat.BandLow}, bands)
	assert.Equal(t, []string{"J0437-4715", "J1744-1134"}, names(got))
	got = psrcat.Filter(fixture(), psrcat.Criteria{Band: psrcat.BandHigh}, bands)
	assert.Equal(t, []string{"J1022+1001"}, names(got))

	assert.Equal(t, psrcat.DefaultPartition, bands.For(psrnorm.CampaignA))
	assert.Equal(t, psrcat.Partition{Low: .5, High: 1}, bands.For(psrnorm.CampaignB))
}

func TestPartition(t *testing.T) {
	p := psrcat.DefaultPartition
	assert.Equal(t, psrcat.BandLow, p.Band(-1))
	assert.Equal(t, psrcat.BandLow, p.Band(.99))
	assert.Equal(t, psrcat.BandMedium, p.Band(1))
	assert.Equal(t, psrcat.BandHigh, p.Band(2))
	assert.Equal(t, psrcat.BandNone, p.Band(math.NaN()))
	assert.NoError(t, p.Validate())
	assert.Error(t, psrcat.Partition{Low: 3, High: 2}.Validate())
}

func TestParseBand(t *testing.T) {
	for s, want := range map[string]psrcat.Band{
		"": psrcat.BandAll, "all": psrcat.BandAll, "Near": psrcat.BandLow,
		"medium": psrcat.BandMedium, "far": psrcat.BandHigh, "none": psrcat.BandNone,
	} {
		b, err := psrcat.ParseBand(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, b, s)
		if s == "all" || s == "medium" || s == "none" {
			assert.Equal(t, s, b.String())
		}
	}
	_, err := psrcat.ParseBand("nearby")
	assert.True(t, errors.Is(err, psrcat.ErrBand))
}

func TestMergeCampaigns(t *testing.T) {
	all := fixture()
	m := psrcat.MergeCampaigns(all[:2], all[2:5], all[5:])
	assert.Equal(t, 7, m.Len())
	assert.Len(t, m[psrnorm.CampaignB], 3)
	assert.Equal(t, all, m.All())

	// the same pulsar in two campaigns stays two records
	dup := psrcat.MergeCampaigns(all[:1], all[:1], nil)
	assert.Len(t, dup.All(), 2)
}

func TestDistinct(t *testing.T) {
	all := fixture()
	assert.Equal(t, []string{"IPTA", "PPTA", "EPTA", "NANOGrav"}, psrcat.DistinctMemberships(all))
	assert.Equal(t, psrcat.DistinctMemberships(all), psrcat.DistinctMemberships(all))
	assert.Equal(t, []string{}, psrcat.DistinctMemberships(nil))
	assert.Equal(t, []string{"Complete", "Active", "Planned"}, psrcat.Statuses(all))
}
