// Public domain.

package psrprog

import (
	"fmt"
	"io"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/soniakeys/psrcat/internal/psrcat"
	"github.com/soniakeys/psrcat/internal/psrlog"
	"github.com/soniakeys/psrcat/internal/psrnorm"
	"github.com/soniakeys/psrcat/internal/psrproj"
)

func (p *program) projectCmd() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print scene positions of catalog pulsars",
		Long: `Print the 3D scene position of each pulsar matching the filters, one
line per pulsar in catalog order:

    <campaign/id> <name> <x> <y> <z>

Pulsars without a usable position are reported in the log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.criteria()
			if err != nil {
				return err
			}
			all := p.loadCatalog(cmd.Context()).All()
			recs := psrcat.Filter(all, c, p.cfg.DistanceBands())
			return project(p.out, recs, p.cfg.Projector(), runtime.GOMAXPROCS(0))
		},
	}
	f.register(cmd)
	return cmd
}

type recSeq struct {
	r   *psrnorm.Record
	rch chan projected
}

type projected struct {
	line string
	skip *psrproj.Skip
}

// project writes one line per projectable record, in record order.
// Records are projected by up to maxWorkers concurrent workers.
func project(w io.Writer, recs []psrnorm.Record, pr psrproj.Projector, maxWorkers int) error {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	// prCh keeps results in submission order.  it is buffered so that a
	// fast worker can drop off its result without waiting for workers
	// ahead of it.
	prCh := make(chan chan projected, maxWorkers*2)
	recCh := make(chan *recSeq)

	// dispatcher.  for each record, attach a return channel that works
	// like a ticket for picking up the result, hand the record to a
	// worker and queue the ticket for printing.
	// done stops the dispatcher if printing quits early.
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(recCh)
		defer close(prCh)
		for i := range recs {
			rch := make(chan projected, 1)
			select {
			case recCh <- &recSeq{&recs[i], rch}:
			case <-done:
				return
			}
			select {
			case prCh <- rch:
			case <-done:
				return
			}
		}
	}()

	// workers are started as records arrive, up to maxWorkers.
	go func() {
		for n := 0; n < maxWorkers; n++ {
			rs, ok := <-recCh
			if !ok {
				return
			}
			go projectWorker(pr, rs, recCh)
		}
	}()

	// wait for results in order
	var skipped int
	for rch := range prCh {
		r := <-rch
		if r.skip != nil {
			skipped++
			psrlog.Logger.Infow("not projected",
				"pulsar", r.skip.Key, "name", r.skip.Name, "reason", r.skip.Err.Error())
			continue
		}
		if _, err := fmt.Fprintln(w, r.line); err != nil {
			return errors.Wrap(err, "writing positions")
		}
	}
	psrlog.Logger.Debugw("projection done", "records", len(recs), "skipped", skipped)
	return nil
}

// projectWorker projects the first record, then takes more from recCh
// until it is closed.
func projectWorker(pr psrproj.Projector, rs *recSeq, recCh chan *recSeq) {
	for ok := true; ok; rs, ok = <-recCh {
		points, skipped := pr.Layout([]psrnorm.Record{*rs.r})
		if len(skipped) > 0 {
			rs.rch <- projected{skip: &skipped[0]}
			continue
		}
		pt := points[0]
		rs.rch <- projected{line: fmt.Sprintf("%-14s %-14s %9.5f %9.5f %9.5f",
			pt.Key, pt.Name, pt.Pos.X, pt.Pos.Y, pt.Pos.Z)}
	}
}
