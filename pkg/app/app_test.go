package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/mistakes/pkg/ledger"
	"tableflip.dev/mistakes/pkg/store"
)

type memoryPersistence struct {
	mu    sync.Mutex
	state *ledger.State
	saves int
	err   error
}

func (m *memoryPersistence) Load(_ context.Context) (*ledger.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return ledger.New(ledger.Today()), nil
	}
	cp := *m.state
	cp.MistakeHistory = m.state.Flags()
	return &cp, nil
}

func (m *memoryPersistence) Save(_ context.Context, s *ledger.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *s
	cp.MistakeHistory = s.Flags()
	m.state = &cp
	m.saves++
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Event, error) {
	return nil, errors.New("not supported")
}

type recorder struct {
	notices  []string
	warnings []string
	status   []string
}

func (r *recorder) Notice(msg string)     { r.notices = append(r.notices, msg) }
func (r *recorder) Warn(msg string)       { r.warnings = append(r.warnings, msg) }
func (r *recorder) SetStatus(text string) { r.status = append(r.status, text) }

func (r *recorder) lastStatus() string {
	if len(r.status) == 0 {
		return ""
	}
	return r.status[len(r.status)-1]
}

func mustDay(t *testing.T, v string) ledger.Day {
	t.Helper()
	d, err := ledger.ParseDay(v)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return d
}

func newService(t *testing.T, initial *ledger.State, today string) (*Service, *memoryPersistence, *recorder) {
	t.Helper()
	mp := &memoryPersistence{state: initial}
	rec := &recorder{}
	d := mustDay(t, today)
	svc := &Service{
		Persistence: mp,
		Notifier:    rec,
		Status:      rec,
		Today:       func() ledger.Day { return d },
	}
	if err := svc.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	return svc, mp, rec
}

func TestServiceRequiresOpen(t *testing.T) {
	svc := &Service{Persistence: &memoryPersistence{}}
	if err := svc.AddMistake(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if got := svc.StatusText(); got != ledger.NoFlagsText {
		t.Fatalf("expected %q, got %q", ledger.NoFlagsText, got)
	}
}

func TestServiceAddMistakePersistsAndRefreshes(t *testing.T) {
	initial := &ledger.State{
		DisplayMode:    ledger.SinceDate,
		MistakeHistory: []ledger.Flag{{Count: 3, StartDate: mustDay(t, "2024-01-01")}},
	}
	svc, mp, rec := newService(t, initial, "2024-01-05")

	svc.Refresh()
	if got, want := rec.lastStatus(), "Mistakes: 3 (since 2024-01-01)"; got != want {
		t.Fatalf("expected status %q after open, got %q", want, got)
	}

	if err := svc.AddMistake(context.Background()); err != nil {
		t.Fatalf("add mistake: %v", err)
	}
	if got, want := rec.lastStatus(), "Mistakes: 4 (since 2024-01-01)"; got != want {
		t.Fatalf("expected status %q, got %q", want, got)
	}
	if mp.saves != 1 || mp.state.MistakeHistory[0].Count != 4 {
		t.Fatalf("expected one save with count 4, got %d saves, state %+v", mp.saves, mp.state)
	}
}

func TestServiceSetNewFlag(t *testing.T) {
	svc, mp, rec := newService(t, ledger.New(mustDay(t, "2024-01-01")), "2024-01-05")
	ctx := context.Background()

	f, err := svc.SetNewFlag(ctx)
	if err != nil {
		t.Fatalf("set new flag: %v", err)
	}
	if f.StartDate.String() != "2024-01-05" || f.Count != 0 {
		t.Fatalf("unexpected flag %+v", f)
	}

	_, err = svc.SetNewFlag(ctx)
	if !errors.Is(err, ledger.ErrDuplicateFlag) {
		t.Fatalf("expected ErrDuplicateFlag, got %v", err)
	}
	if Handled(err) != nil {
		t.Fatalf("expected rejection to be handled")
	}

	if diff := cmp.Diff([]string{NoticeFlagCreated}, rec.notices); diff != "" {
		t.Fatalf("unexpected notices (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"No duplicate flags allowed!"}, rec.warnings); diff != "" {
		t.Fatalf("unexpected warnings (-want +got):\n%s", diff)
	}
	if mp.saves != 1 || len(mp.state.MistakeHistory) != 2 {
		t.Fatalf("expected one save with 2 flags, got %d saves, state %+v", mp.saves, mp.state)
	}
}

func TestServiceDeleteFlag(t *testing.T) {
	initial := &ledger.State{
		DisplayMode:      ledger.Clean,
		DisplayFromIndex: 2,
		MistakeHistory: []ledger.Flag{
			{Count: 9, StartDate: mustDay(t, "2024-01-01")},
			{Count: 4, StartDate: mustDay(t, "2024-02-01")},
			{Count: 1, StartDate: mustDay(t, "2024-03-01")},
		},
	}
	svc, mp, rec := newService(t, initial, "2024-04-01")
	ctx := context.Background()

	if _, err := svc.DeleteFlag(ctx, 0); !errors.Is(err, ledger.ErrPermanentFlag) {
		t.Fatalf("expected ErrPermanentFlag, got %v", err)
	}
	if mp.saves != 0 {
		t.Fatalf("expected rejected delete not to save")
	}

	if _, err := svc.DeleteFlag(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.DisplayFromIndex != 1 || snap.Len() != 2 {
		t.Fatalf("unexpected state %+v", snap)
	}
	if got, want := rec.lastStatus(), "Mistakes: 1"; got != want {
		t.Fatalf("expected status %q, got %q", want, got)
	}
	if diff := cmp.Diff([]string{NoticeFlagDeleted}, rec.notices); diff != "" {
		t.Fatalf("unexpected notices (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"You cannot delete the default flag!"}, rec.warnings); diff != "" {
		t.Fatalf("unexpected warnings (-want +got):\n%s", diff)
	}
	if mp.saves != 1 {
		t.Fatalf("expected 1 save, got %d", mp.saves)
	}
}

func TestServiceDeleteFlagOnEmptyHistory(t *testing.T) {
	initial := &ledger.State{DisplayMode: ledger.SinceDate, MistakeHistory: []ledger.Flag{}}
	svc, mp, rec := newService(t, initial, "2024-04-01")
	ctx := context.Background()

	if _, err := svc.DeleteFlag(ctx, 0); !errors.Is(err, ledger.ErrPermanentFlag) {
		t.Fatalf("expected ErrPermanentFlag, got %v", err)
	}
	if _, err := svc.DeleteFlag(ctx, 3); !errors.Is(err, ledger.ErrNoFlags) {
		t.Fatalf("expected ErrNoFlags, got %v", err)
	}

	if len(rec.notices) != 0 {
		t.Fatalf("expected no success notice, got %v", rec.notices)
	}
	want := []string{"You cannot delete the default flag!", "There are no flags to delete."}
	if diff := cmp.Diff(want, rec.warnings); diff != "" {
		t.Fatalf("unexpected warnings (-want +got):\n%s", diff)
	}
	if mp.saves != 0 {
		t.Fatalf("expected no saves, got %d", mp.saves)
	}
}

func TestServiceSettings(t *testing.T) {
	svc, mp, rec := newService(t, ledger.New(mustDay(t, "2024-01-01")), "2024-01-02")
	ctx := context.Background()

	if _, err := svc.SetNewFlag(ctx); err != nil {
		t.Fatalf("set new flag: %v", err)
	}
	if err := svc.SetDisplayFrom(ctx, 1); err != nil {
		t.Fatalf("set display from: %v", err)
	}
	if got, want := rec.lastStatus(), "Mistakes: 0 (since 2024-01-02)"; got != want {
		t.Fatalf("expected status %q, got %q", want, got)
	}
	if err := svc.SetDisplayMode(ctx, ledger.Clean); err != nil {
		t.Fatalf("set display mode: %v", err)
	}
	if got, want := rec.lastStatus(), "Mistakes: 0"; got != want {
		t.Fatalf("expected status %q, got %q", want, got)
	}
	if err := svc.SetDisplayFrom(ctx, 7); !errors.Is(err, ledger.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if mp.saves != 3 {
		t.Fatalf("expected 3 saves, got %d", mp.saves)
	}
}

func TestServiceSaveError(t *testing.T) {
	svc, mp, _ := newService(t, nil, "2024-01-02")
	boom := errors.New("disk full")
	mp.err = boom
	if err := svc.AddMistake(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
}
