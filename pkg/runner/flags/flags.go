// Package flags provides runners that create, delete and list flags.
package flags

import (
	"context"
	"errors"

	"tableflip.dev/mistakes/pkg/app"
	"tableflip.dev/mistakes/pkg/printers"
	"tableflip.dev/mistakes/pkg/store"
)

func open(ctx context.Context, p store.Persistence, pp *printers.PrettyPrint) (*app.Service, error) {
	if p == nil {
		return nil, errors.New("can not open ledger, no persistence")
	}
	svc := &app.Service{Persistence: p, Notifier: pp, Status: pp}
	if err := svc.Open(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// New starts a flag today.
type New struct {
	JSON        bool
	Persistence store.Persistence
}

// Do creates the flag. A flag already set today is reported, not failed.
func (n *New) Do(ctx context.Context) error {
	svc, err := open(ctx, n.Persistence, &printers.PrettyPrint{JSON: n.JSON})
	if err != nil {
		return err
	}
	_, err = svc.SetNewFlag(ctx)
	return app.Handled(err)
}

// Delete removes a flag by index.
type Delete struct {
	Index       int
	JSON        bool
	Persistence store.Persistence
}

// Do deletes the flag. Deleting the Total flag is reported, not failed.
func (n *Delete) Do(ctx context.Context) error {
	svc, err := open(ctx, n.Persistence, &printers.PrettyPrint{JSON: n.JSON})
	if err != nil {
		return err
	}
	_, err = svc.DeleteFlag(ctx, n.Index)
	return app.Handled(err)
}

// List prints every flag with its count.
type List struct {
	JSON        bool
	Persistence store.Persistence
}

// Do prints the flag table.
func (n *List) Do(ctx context.Context) error {
	pp := &printers.PrettyPrint{JSON: n.JSON}
	svc, err := open(ctx, n.Persistence, pp)
	if err != nil {
		return err
	}
	s, err := svc.Snapshot()
	if err != nil {
		return err
	}
	pp.Flags(&s)
	return nil
}
