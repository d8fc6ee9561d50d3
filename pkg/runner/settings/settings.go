// Package settings provides runners that change how the ledger is displayed,
// either one setting at a time or through an interactive form.
package settings

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"tableflip.dev/mistakes/pkg/app"
	"tableflip.dev/mistakes/pkg/ledger"
	"tableflip.dev/mistakes/pkg/printers"
	"tableflip.dev/mistakes/pkg/store"
)

func open(ctx context.Context, p store.Persistence, asJSON bool) (*app.Service, error) {
	if p == nil {
		return nil, errors.New("can not open ledger, no persistence")
	}
	pp := &printers.PrettyPrint{JSON: asJSON}
	svc := &app.Service{Persistence: p, Notifier: pp, Status: pp}
	if err := svc.Open(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// Mode sets the display mode.
type Mode struct {
	Mode        string
	JSON        bool
	Persistence store.Persistence
}

func (n *Mode) Do(ctx context.Context) error {
	mode, err := ledger.ParseDisplayMode(n.Mode)
	if err != nil {
		return err
	}
	svc, err := open(ctx, n.Persistence, n.JSON)
	if err != nil {
		return err
	}
	return svc.SetDisplayMode(ctx, mode)
}

// From selects the flag whose count is displayed.
type From struct {
	Index       int
	JSON        bool
	Persistence store.Persistence
}

func (n *From) Do(ctx context.Context) error {
	svc, err := open(ctx, n.Persistence, n.JSON)
	if err != nil {
		return err
	}
	return svc.SetDisplayFrom(ctx, n.Index)
}

// Form runs the interactive settings form.
type Form struct {
	Persistence store.Persistence
	// Options are passed to tea.NewProgram after the context option.
	Options []tea.ProgramOption
}

// Do blocks until the form is closed, then persists the ledger once more.
func (n *Form) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not open settings, no persistence")
	}
	svc := &app.Service{Persistence: n.Persistence}
	if err := svc.Open(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		// The form still works, it just won't notice other writers.
		log.Warn().Err(err).Msg("settings: watch disabled")
	}

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, n.Options...)
	p := tea.NewProgram(NewModel(ctx, svc, events), opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return svc.Close(ctx)
}
