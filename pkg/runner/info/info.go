// Package info prints where the ledger lives and what it holds.
package info

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"tableflip.dev/mistakes/pkg/printers"
	"tableflip.dev/mistakes/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	JSON        bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Persistence == nil {
		return errors.New("failed to create persistence object")
	}

	s, err := n.Persistence.Load(ctx)
	if err != nil {
		return err
	}

	pp := &printers.PrettyPrint{Out: n.Out, JSON: n.JSON}
	pp.Location(printers.Location{
		ConfigPathEnv: os.Getenv("MISTAKES_CONFIG_PATH"),
		BasePath:      n.Config.BasePath(),
		StateFile:     filepath.Join(n.Config.BasePath(), store.StateKey),
	})
	pp.Flags(s)
	return nil
}
