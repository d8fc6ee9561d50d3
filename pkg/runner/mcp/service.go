// Package mcp provides the Model Context Protocol server integration for the
// mistake ledger.
package mcp

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/mistakes/pkg/app"
	"tableflip.dev/mistakes/pkg/ledger"
	"tableflip.dev/mistakes/pkg/store"
)

// Service runs ledger actions for MCP clients. Every call re-reads the state
// from persistence, so changes made by the CLI in between are kept.
type Service struct {
	Persistence store.Persistence
	Today       func() ledger.Day

	// mu serializes load-mutate-save cycles; MCP requests may arrive
	// concurrently.
	mu sync.Mutex
}

// FlagDTO is a transport-friendly projection of a flag.
type FlagDTO struct {
	Index     int    `json:"index"`
	Label     string `json:"label"`
	StartDate string `json:"startDate"`
	Count     int    `json:"count"`
	Displayed bool   `json:"displayed"`
}

// StateDTO is a transport-friendly projection of the ledger.
type StateDTO struct {
	Status           string    `json:"status"`
	DisplayMode      string    `json:"displayMode"`
	DisplayFromIndex int       `json:"displayFromIndex"`
	Flags            []FlagDTO `json:"flags"`
}

// ResultDTO reports the outcome of an action. Rejected actions carry the
// notice and leave the state unchanged.
type ResultDTO struct {
	Notice   string   `json:"notice,omitempty"`
	Rejected bool     `json:"rejected,omitempty"`
	State    StateDTO `json:"state"`
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{Persistence: p}
}

type notices struct {
	last     string
	rejected bool
}

func (n *notices) Notice(msg string) { n.last, n.rejected = msg, false }
func (n *notices) Warn(msg string)   { n.last, n.rejected = msg, true }

// State returns the current ledger.
func (s *Service) State(ctx context.Context) (*StateDTO, error) {
	res, err := s.do(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &res.State, nil
}

// AddMistake counts one mistake against every flag.
func (s *Service) AddMistake(ctx context.Context) (*ResultDTO, error) {
	return s.do(ctx, func(svc *app.Service) error {
		return svc.AddMistake(ctx)
	})
}

// NewFlag starts a flag today.
func (s *Service) NewFlag(ctx context.Context) (*ResultDTO, error) {
	return s.do(ctx, func(svc *app.Service) error {
		_, err := svc.SetNewFlag(ctx)
		return err
	})
}

// DeleteFlag removes the flag at index.
func (s *Service) DeleteFlag(ctx context.Context, index int) (*ResultDTO, error) {
	return s.do(ctx, func(svc *app.Service) error {
		_, err := svc.DeleteFlag(ctx, index)
		return err
	})
}

// SetDisplayMode changes how the status line is rendered.
func (s *Service) SetDisplayMode(ctx context.Context, mode string) (*ResultDTO, error) {
	m, err := ledger.ParseDisplayMode(mode)
	if err != nil {
		return nil, err
	}
	return s.do(ctx, func(svc *app.Service) error {
		return svc.SetDisplayMode(ctx, m)
	})
}

// SetDisplayFrom selects the flag whose count is displayed.
func (s *Service) SetDisplayFrom(ctx context.Context, index int) (*ResultDTO, error) {
	return s.do(ctx, func(svc *app.Service) error {
		return svc.SetDisplayFrom(ctx, index)
	})
}

func (s *Service) do(ctx context.Context, fn func(*app.Service) error) (*ResultDTO, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &notices{}
	svc := &app.Service{Persistence: s.Persistence, Notifier: n, Today: s.Today}
	if err := svc.Open(ctx); err != nil {
		return nil, err
	}
	if fn != nil {
		if err := app.Handled(fn(svc)); err != nil {
			return nil, err
		}
	}

	snap, err := svc.Snapshot()
	if err != nil {
		return nil, err
	}
	return &ResultDTO{
		Notice:   n.last,
		Rejected: n.rejected,
		State:    toStateDTO(&snap),
	}, nil
}

func toStateDTO(s *ledger.State) StateDTO {
	flags := make([]FlagDTO, 0, s.Len())
	for i, f := range s.MistakeHistory {
		flags = append(flags, FlagDTO{
			Index:     i,
			Label:     s.Label(i),
			StartDate: f.StartDate.String(),
			Count:     f.Count,
			Displayed: i == s.DisplayFromIndex,
		})
	}
	return StateDTO{
		Status:           s.DisplayText(),
		DisplayMode:      string(s.DisplayMode),
		DisplayFromIndex: s.DisplayFromIndex,
		Flags:            flags,
	}
}
