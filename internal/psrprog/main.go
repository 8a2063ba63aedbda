// Public domain.

// Package psrprog implements the psrcat command.
package psrprog

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soniakeys/psrcat/internal/psrcat"
	"github.com/soniakeys/psrcat/internal/psrload"
	"github.com/soniakeys/psrcat/internal/psrlog"
	"github.com/soniakeys/psrcat/internal/psrnorm"
)

const versionString = "psrcat version 0.1 Go source."

func Main() {
	defer exit.Handler()
	defer psrlog.Sync()

	if err := newRootCmd(viper.New()).Execute(); err != nil {
		exit.Log(err)
	}
}

// program is the state shared by all commands of one invocation.
type program struct {
	v   *viper.Viper
	cfg Config
	out io.Writer
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	p := &program{v: v, out: os.Stdout}
	root := &cobra.Command{
		Use:     "psrcat",
		Short:   "Pulsar astrometry catalog",
		Long:    "psrcat merges the MSPSRπ, MSPSRπ2 and PSRπ catalogs and filters, shows and projects them.",
		Version: versionString,
		// errors are reported by exit.Log
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p.out = cmd.OutOrStdout()
			return p.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .psrcat.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.Bool("log-json", false, "log as JSON")
	_ = v.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = v.BindPFlag("log.json", pf.Lookup("log-json"))

	root.AddCommand(
		p.listCmd(),
		p.showCmd(),
		p.membershipsCmd(),
		p.projectCmd(),
		p.watchCmd(),
		p.replayCmd(),
		p.configCmd(),
	)
	return root
}

func (p *program) setup(cmd *cobra.Command) error {
	if fn, _ := cmd.Flags().GetString("config"); fn != "" {
		p.v.SetConfigFile(fn)
		if err := p.v.ReadInConfig(); err != nil {
			return err
		}
	} else {
		p.v.SetConfigName(".psrcat")
		p.v.SetConfigType("yaml")
		p.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			p.v.AddConfigPath(home)
		}
		// no config file is fine; defaults apply.
		_ = p.v.ReadInConfig()
	}
	p.v.SetEnvPrefix("PSRCAT")
	p.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	p.v.AutomaticEnv()

	cfg, err := LoadConfig(p.v)
	if err != nil {
		return err
	}
	p.cfg = cfg
	if err := psrlog.Initialize(cfg.Log.JSON, cfg.Verbose); err != nil {
		return err
	}
	if f := p.v.ConfigFileUsed(); f != "" {
		psrlog.Logger.Debugw("config", "file", f)
	}
	return nil
}

// loadCatalog loads every campaign.  A campaign that fails to load is
// reported and left empty; the others are still served.
func (p *program) loadCatalog(ctx context.Context) psrcat.CampaignMap {
	m := make(psrcat.CampaignMap, len(psrnorm.Campaigns))
	for _, s := range p.cfg.Sources() {
		m[s.Campaign] = loadCampaign(ctx, s)
	}
	return m
}

func loadCampaign(ctx context.Context, s psrload.Source) []psrnorm.Record {
	pl, err := psrload.Load(ctx, s)
	if err != nil {
		psrlog.Logger.Warnw("catalog not loaded",
			"campaign", s.Campaign.String(), "file", s.File, "error", err)
		return []psrnorm.Record{}
	}
	recs, diag := psrnorm.Normalize(pl)
	for _, d := range diag {
		psrlog.Logger.Warnw("entry dropped", "campaign", s.Campaign.String(), "error", d)
	}
	psrlog.Logger.Debugw("catalog loaded",
		"campaign", s.Campaign.String(), "file", s.File, "records", len(recs))
	return recs
}
