// Public domain.

package psrprog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/soniakeys/unit"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soniakeys/psrcat/internal/psrcat"
	"github.com/soniakeys/psrcat/internal/psrcoord"
	"github.com/soniakeys/psrcat/internal/psrnorm"
	"github.com/soniakeys/psrcat/internal/psrproj"
)

// filterFlags holds the catalog filter options shared by list and project.
type filterFlags struct {
	text, band, campaign, status, membership string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.text, "text", "", "case-insensitive name substring")
	fl.StringVar(&f.band, "band", "all", "distance band: all, low, medium, high, none")
	fl.StringVar(&f.campaign, "campaign", "all", "campaign: all, MSPSRPI, MSPSRPI2, PSRPI")
	fl.StringVar(&f.status, "status", "all", "observation status")
	fl.StringVar(&f.membership, "membership", "all", "timing array membership")
}

func (f *filterFlags) criteria() (psrcat.Criteria, error) {
	c := psrcat.Criteria{
		Text:       f.text,
		Status:     f.status,
		Membership: f.membership,
	}
	var err error
	if c.Band, err = psrcat.ParseBand(f.band); err != nil {
		return c, err
	}
	if f.campaign != "" && !strings.EqualFold(f.campaign, "all") {
		var ok bool
		if c.Campaign, ok = psrnorm.ParseCampaign(f.campaign); !ok {
			return c, errors.Newf("unknown campaign %q", f.campaign)
		}
	}
	return c, nil
}

func (p *program) listCmd() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog pulsars matching filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.criteria()
			if err != nil {
				return err
			}
			all := p.loadCatalog(cmd.Context()).All()
			return p.renderList(psrcat.Filter(all, c, p.cfg.DistanceBands()))
		},
	}
	f.register(cmd)
	return cmd
}

func (p *program) renderList(recs []psrnorm.Record) error {
	bands := p.cfg.DistanceBands()
	data := pterm.TableData{
		{"Campaign", "ID", "Name", "Status", "Type", "Distance", "Band", "Memberships"},
	}
	for i := range recs {
		r := &recs[i]
		data = append(data, []string{
			r.Campaign.Title(), r.ID, r.Name, r.Status, r.Type,
			distanceText(r), bands.Classify(r).String(),
			strings.Join(r.Memberships, ", "),
		})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, s)
	fmt.Fprintf(p.out, "%d pulsars\n", len(recs))
	return nil
}

func distanceText(r *psrnorm.Record) string {
	d, err := r.DistanceKpc()
	if err != nil {
		return "N/A"
	}
	return strconv.FormatFloat(d, 'f', -1, 64) + " kpc"
}

func (p *program) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <campaign> <id>",
		Short: "Show the details of one pulsar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := psrnorm.ParseCampaign(args[0])
			if !ok {
				return errors.Newf("unknown campaign %q", args[0])
			}
			for _, r := range p.loadCatalog(cmd.Context())[c] {
				if r.ID == args[1] || strings.EqualFold(r.Name, args[1]) {
					showRecord(p.out, &r, p.cfg.Projector())
					return nil
				}
			}
			return errors.Newf("%s: no pulsar %q", c, args[1])
		},
	}
}

func showRecord(w io.Writer, r *psrnorm.Record, pr psrproj.Projector) {
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-20s %s\n", label+":", value)
		}
	}
	line("Name", r.Name)
	if r.DisplayName != r.Name {
		line("Display name", r.DisplayName)
	}
	line("Campaign", r.Campaign.Title())
	line("Status", r.Status)
	line("Type", r.Type)
	if c := r.Coordinates; c != nil {
		line("RA", angleText(c.RA, psrcoord.ParseRA, psrcoord.FormatRA))
		line("Dec", angleText(c.Dec, psrcoord.ParseDec, psrcoord.FormatDec))
		if l, b, err := psrproj.Galactic(c.RA, c.Dec); err == nil {
			line("Galactic l, b", fmt.Sprintf("%.3f° %+.3f°", l.Deg(), b.Deg()))
		}
		if pos, err := pr.Project(c.RA, c.Dec, c.Distance); err == nil {
			line("Scene position", fmt.Sprintf("%.3f %.3f %.3f", pos.X, pos.Y, pos.Z))
		}
	} else {
		line("Position", "N/A")
	}
	line("Distance", distanceText(r))
	line("Distance uncert.", r.DistanceUncertainty.String())
	line("Parallax", r.Parallax.String())
	line("PM RA", r.ProperMotionRA.String())
	line("PM Dec", r.ProperMotionDec.String())
	line("Proper motion", r.ProperMotion.String())
	line("Flux density", r.FluxDensity.String())
	line("Flux category", r.FluxCategory.String())
	line("Session duration", r.SessionDuration.String())
	line("Reference date", r.ReferenceDate.String())
	line("Search session", r.SearchSession.String())
	line("Astrometry session", r.AstrometrySession.String())
	line("Memberships", strings.Join(r.Memberships, ", "))
	line("Description", r.Description)
	line("Notes", r.Notes.String())
	for _, v := range r.Visualizations {
		line("Visualization", v.Title+" "+v.Path)
	}
}

// angleText returns the source text followed by the formatted parsed angle.
func angleText(text string, parse func(string) (unit.Angle, error), format func(unit.Angle, int) string) string {
	a, err := parse(text)
	if err != nil {
		return text + " (unparsed)"
	}
	return fmt.Sprintf("%s (%s)", text, format(a, 2))
}

func (p *program) membershipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memberships",
		Short: "List timing array memberships found in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range psrcat.DistinctMemberships(p.loadCatalog(cmd.Context()).All()) {
				fmt.Fprintln(p.out, m)
			}
			return nil
		},
	}
}

func (p *program) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := yaml.Marshal(p.cfg)
			if err != nil {
				return err
			}
			_, err = p.out.Write(b)
			return err
		},
	}
}
