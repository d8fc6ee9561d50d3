package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"tableflip.dev/mistakes/pkg/ledger"
	"tableflip.dev/mistakes/pkg/store"
)

// Notices shown after a successful mutation. Rejection notices come from the
// ledger errors themselves.
const (
	NoticeFlagCreated = "flag created successfully"
	NoticeFlagDeleted = "Flag deletion successful!"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Notice(msg string)
	Warn(msg string)
}

// StatusSink receives the status line after every change.
type StatusSink interface {
	SetStatus(text string)
}

// Service provides the user actions on the ledger. It owns the loaded state,
// persists it after every mutation and refreshes the status sink, so the CLI,
// the settings form and the MCP server share the same behaviour.
type Service struct {
	Persistence store.Persistence
	Notifier    Notifier
	Status      StatusSink
	// Today defaults to ledger.Today.
	Today func() ledger.Day

	state *ledger.State
}

// ErrNotLoaded is returned when an action runs before Open.
var ErrNotLoaded = errors.New("app: ledger not loaded")

// Handled drops policy rejections, which have already been shown to the user.
func Handled(err error) error {
	if errors.Is(err, ledger.ErrRejected) {
		return nil
	}
	return err
}

// Open loads the ledger from persistence.
func (s *Service) Open(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	st, err := s.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	s.state = st
	return nil
}

// Reload replaces the loaded state with what is on disk and refreshes the
// status sink. Nothing is persisted.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	s.Refresh()
	return nil
}

// Refresh pushes the current status line to the status sink.
func (s *Service) Refresh() {
	if s.state == nil {
		if s.Status != nil {
			s.Status.SetStatus(ledger.NoFlagsText)
		}
		return
	}
	s.refresh()
}

// Close persists the ledger one last time.
func (s *Service) Close(ctx context.Context) error {
	if s.state == nil {
		return nil
	}
	return s.save(ctx)
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() (ledger.State, error) {
	if s.state == nil {
		return ledger.State{}, ErrNotLoaded
	}
	cp := *s.state
	cp.MistakeHistory = s.state.Flags()
	return cp, nil
}

// StatusText renders the status line for the current state.
func (s *Service) StatusText() string {
	if s.state == nil {
		return ledger.NoFlagsText
	}
	return s.state.DisplayText()
}

// AddMistake counts one mistake against every flag.
func (s *Service) AddMistake(ctx context.Context) error {
	if s.state == nil {
		return ErrNotLoaded
	}
	s.state.RecordMistake()
	s.refresh()
	log.Debug().Int("flags", s.state.Len()).Msg("recorded mistake")
	return s.save(ctx)
}

// SetNewFlag starts a new flag today.
func (s *Service) SetNewFlag(ctx context.Context) (ledger.Flag, error) {
	if s.state == nil {
		return ledger.Flag{}, ErrNotLoaded
	}
	f, err := s.state.CreateFlag(s.today())
	if err != nil {
		s.reject(err)
		s.refresh()
		return ledger.Flag{}, err
	}
	s.notice(NoticeFlagCreated)
	if err := s.save(ctx); err != nil {
		return ledger.Flag{}, err
	}
	s.refresh()
	log.Debug().Str("start", f.StartDate.String()).Msg("created flag")
	return f, nil
}

// DeleteFlag removes the flag at index. Deleting the Total flag is rejected.
func (s *Service) DeleteFlag(ctx context.Context, index int) (ledger.Flag, error) {
	if s.state == nil {
		return ledger.Flag{}, ErrNotLoaded
	}
	f, err := s.state.DeleteFlag(index)
	if err != nil {
		s.reject(err)
		return ledger.Flag{}, err
	}
	if err := s.save(ctx); err != nil {
		return ledger.Flag{}, err
	}
	s.refresh()
	s.notice(NoticeFlagDeleted)
	log.Debug().Int("index", index).Str("start", f.StartDate.String()).Msg("deleted flag")
	return f, nil
}

// SetDisplayMode changes how the status line is rendered.
func (s *Service) SetDisplayMode(ctx context.Context, mode ledger.DisplayMode) error {
	if s.state == nil {
		return ErrNotLoaded
	}
	if err := s.state.SetDisplayMode(mode); err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// SetDisplayFrom selects which flag's count is displayed.
func (s *Service) SetDisplayFrom(ctx context.Context, index int) error {
	if s.state == nil {
		return ErrNotLoaded
	}
	if err := s.state.SetDisplayFrom(index); err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	s.refresh()
	return nil
}

func (s *Service) today() ledger.Day {
	if s.Today != nil {
		return s.Today()
	}
	return ledger.Today()
}

func (s *Service) save(ctx context.Context) error {
	if err := s.Persistence.Save(ctx, s.state); err != nil {
		log.Warn().Err(err).Msg("app: save failed")
		return err
	}
	return nil
}

func (s *Service) refresh() {
	if s.Status != nil {
		s.Status.SetStatus(s.state.DisplayText())
	}
}

func (s *Service) notice(msg string) {
	if s.Notifier != nil {
		s.Notifier.Notice(msg)
	}
}

func (s *Service) reject(err error) {
	var r *ledger.Rejection
	if errors.As(err, &r) && s.Notifier != nil {
		s.Notifier.Warn(r.Notice)
	}
}
