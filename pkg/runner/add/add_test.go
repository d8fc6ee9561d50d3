package add

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/mistakes/pkg/ledger"
	"tableflip.dev/mistakes/pkg/store"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestAddPersistsAndPrintsStatus(t *testing.T) {
	var buf bytes.Buffer
	prevOut, prevNoColor := color.Output, color.NoColor
	color.Output, color.NoColor = &buf, true
	defer func() { color.Output, color.NoColor = prevOut, prevNoColor }()

	ctx := context.Background()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	d, err := ledger.ParseDay("2024-01-01")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	if err := p.Save(ctx, ledger.New(d)); err != nil {
		t.Fatalf("save: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := (&Add{Persistence: p}).Do(ctx); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if !strings.Contains(buf.String(), "Mistakes: 2 (since 2024-01-01)") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	s, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.MistakeHistory[0].Count != 2 {
		t.Fatalf("expected count 2, got %+v", s)
	}
}

func TestAddWithoutPersistence(t *testing.T) {
	if err := (&Add{}).Do(context.Background()); err == nil {
		t.Fatal("expected an error without persistence")
	}
}
