// Public domain.

package psrproj_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/psrcat/internal/psrcoord"
	"github.com/soniakeys/psrcat/internal/psrnorm"
	"github.com/soniakeys/psrcat/internal/psrproj"
)

func ExampleProject() {
	p, err := psrproj.Project("0", "0", 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.X, p.Y, p.Z)
	// Output:
	// 1.5 0 0
}

func TestProjectMinimumRadius(t *testing.T) {
	for _, d := range []any{0, nil, "N/A", -3.0, "-10 kpc", map[string]any{}} {
		p, err := psrproj.Project("0h", "0°", d)
		require.NoError(t, err)
		assert.Equal(t, 1.5, p.X, "distance %#v", d)
		assert.Equal(t, 0., p.Y)
		assert.Equal(t, 0., p.Z)
	}
}

func TestProjectAxes(t *testing.T) {
	r := psrproj.Default.Radius(9) // log10(10) = 1
	assert.InDelta(t, 5., r, 1e-12)

	p, err := psrproj.Project("6h", "0", 9)
	require.NoError(t, err)
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 0, p.Y, 1e-12)
	assert.InDelta(t, 5, p.Z, 1e-12)

	p, err = psrproj.Project("0h", `+90°00'00"`, "9 kpc")
	require.NoError(t, err)
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 5, p.Y, 1e-12)

	p, err = psrproj.Project("12h", "-90", 9)
	require.NoError(t, err)
	assert.InDelta(t, -5, p.Y, 1e-12)
}

func TestProjectRadiusMatchesDistance(t *testing.T) {
	for _, d := range []float64{0, .157, 1, 2.5, 40, 1e6} {
		p, err := psrproj.Project("19h55m27.87s", `-05°30'00"`, d)
		require.NoError(t, err)
		want := 1.5 + math.Log10(d+1)*3.5
		assert.InDelta(t, want, psrproj.Norm(p), 1e-9)
		assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
	}
}

func TestProjectCustom(t *testing.T) {
	pr := psrproj.Projector{BaseOffset: 2, ScaleFactor: 1}
	p, err := pr.Project("0", "0", 99)
	require.NoError(t, err)
	assert.InDelta(t, 4, p.X, 1e-12)
}

func TestProjectBadAngles(t *testing.T) {
	for _, c := range []struct{ ra, dec string }{
		{"N/A", "10"},
		{"10h", ""},
		{"", ""},
	} {
		_, err := psrproj.Project(c.ra, c.dec, 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, psrproj.ErrProjection), err)
		assert.True(t, errors.Is(err, psrcoord.ErrParse), err)
	}
}

func TestGalactic(t *testing.T) {
	// the celestial pole lies at galactic latitude equal to the
	// declination of the galactic pole.
	_, b, err := psrproj.Galactic("0h", "90")
	require.NoError(t, err)
	assert.InDelta(t, 27.3, b.Deg(), .3)

	_, _, err = psrproj.Galactic("x", "90")
	assert.True(t, errors.Is(err, psrproj.ErrProjection))
}

func TestLayout(t *testing.T) {
	recs := []psrnorm.Record{
		{ID: "0", Name: "a", Campaign: psrnorm.CampaignA,
			Coordinates: &psrnorm.Coordinates{RA: "0", Dec: "0", Distance: 0}},
		{ID: "1", Name: "b", Campaign: psrnorm.CampaignA},
		{ID: "2", Name: "c", Campaign: psrnorm.CampaignA,
			Coordinates: &psrnorm.Coordinates{RA: "N/A", Dec: "N/A"}},
		{ID: "3", Name: "d", Campaign: psrnorm.CampaignA,
			Coordinates: &psrnorm.Coordinates{RA: "6h", Dec: "0", Distance: "9"}},
	}
	points, skipped := psrproj.Default.Layout(recs)
	require.Len(t, points, 2)
	assert.Equal(t, "MSPSRPI/0", points[0].Key)
	assert.Equal(t, 1.5, points[0].Pos.X)
	assert.Equal(t, "d", points[1].Name)
	assert.InDelta(t, 5, points[1].Pos.Z, 1e-12)

	require.Len(t, skipped, 2)
	assert.Equal(t, "b", skipped[0].Name)
	assert.True(t, errors.Is(skipped[0].Err, psrproj.ErrNoCoordinates))
	assert.False(t, errors.Is(skipped[0].Err, psrproj.ErrProjection))
	assert.Equal(t, "c", skipped[1].Name)
	assert.True(t, errors.Is(skipped[1].Err, psrproj.ErrProjection))
}

func TestNormalizeThenProject(t *testing.T) {
	src := `[{"name": "J1744", "position": {"rightAscension": "17h44m29s", "declination": "-01°11'00\""},
	          "distance": "0.4 kpc", "memberships": ["NANOGrav"]}]`
	p, err := psrnorm.Decode(psrnorm.ShapeB, []byte(src))
	require.NoError(t, err)
	recs, diag := psrnorm.Normalize(p)
	require.Empty(t, diag)
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, "J1744", r.Name)
	assert.Equal(t, []string{"NANOGrav"}, r.Memberships)
	require.NotNil(t, r.Coordinates)

	pos, err := psrproj.Project(r.Coordinates.RA, r.Coordinates.Dec, r.Coordinates.Distance)
	require.NoError(t, err)
	assert.InDelta(t, 1.5+math.Log10(1.4)*3.5, psrproj.Norm(pos), 1e-9)
	assert.Less(t, pos.Y, 0.)
}
