// Package status provides the runner that shows the status line.
package status

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"tableflip.dev/mistakes/pkg/app"
	"tableflip.dev/mistakes/pkg/printers"
	"tableflip.dev/mistakes/pkg/store"
)

// Status prints the status line, once or every time the ledger changes.
type Status struct {
	JSON        bool
	Watch       bool
	Persistence store.Persistence
}

// Do prints the status line. With Watch set it keeps printing until ctx is
// done.
func (n *Status) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show status, no persistence")
	}
	pp := &printers.PrettyPrint{JSON: n.JSON}
	svc := &app.Service{Persistence: n.Persistence, Notifier: pp, Status: pp}
	if err := svc.Reload(ctx); err != nil {
		return err
	}
	if !n.Watch {
		return nil
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			log.Debug().Int("event", int(evt.Type)).Msg("state changed on disk")
			if err := svc.Reload(ctx); err != nil {
				// A half-written file from another writer; the next event
				// brings the complete one.
				log.Warn().Err(err).Msg("status: reload failed")
			}
		}
	}
}
