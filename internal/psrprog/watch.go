// Public domain.

package psrprog

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soniakeys/psrcat/internal/psrcat"
	"github.com/soniakeys/psrcat/internal/psrload"
	"github.com/soniakeys/psrcat/internal/psrlog"
	"github.com/soniakeys/psrcat/internal/psrnorm"
)

func (p *program) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload catalog files as they change",
		Long: `Load the catalog, then watch the campaign files and reload a campaign
whenever its file changes, logging record counts and memberships.  Runs
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return p.watch(ctx)
		},
	}
}

func (p *program) watch(ctx context.Context) error {
	sources := p.cfg.Sources()
	m := p.loadCatalog(ctx)
	logCatalog(m)

	w, err := psrload.NewWatcher(sources)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	byCampaign := make(map[psrnorm.Campaign]psrload.Source, len(sources))
	for _, s := range sources {
		byCampaign[s.Campaign] = s
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors:
			psrlog.Logger.Warnw("watch", "error", err)
		case c := <-w.Changes:
			psrlog.Logger.Infow("catalog changed", "campaign", c.Campaign.String(), "file", c.File)
			m[c.Campaign] = loadCampaign(ctx, byCampaign[c.Campaign])
			logCatalog(m)
		}
	}
}

func logCatalog(m psrcat.CampaignMap) {
	all := m.All()
	psrlog.Logger.Infow("catalog",
		"pulsars", len(all),
		"memberships", psrcat.DistinctMemberships(all),
		"statuses", psrcat.Statuses(all))
}
