// Package add provides the runner that records a mistake.
package add

import (
	"context"
	"errors"

	"tableflip.dev/mistakes/pkg/app"
	"tableflip.dev/mistakes/pkg/printers"
	"tableflip.dev/mistakes/pkg/store"
)

// Add counts one mistake against every flag.
type Add struct {
	JSON        bool
	Persistence store.Persistence
}

// Do records the mistake, prints the new status line and persists.
func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	pp := &printers.PrettyPrint{JSON: n.JSON}
	svc := &app.Service{Persistence: n.Persistence, Notifier: pp, Status: pp}
	if err := svc.Open(ctx); err != nil {
		return err
	}
	return svc.AddMistake(ctx)
}
