package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/mistakes/pkg/ledger"
)

func testState(t *testing.T) *ledger.State {
	t.Helper()
	d, err := ledger.ParseDay("2024-01-01")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	s := ledger.New(d)
	s.RecordMistake()
	return s
}

func TestPrettyPrintFlagsTable(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Flags(testState(t))

	out := buf.String()
	if !strings.Contains(out, "0: Total (2024-01-01)") {
		t.Fatalf("missing flag label in %q", out)
	}
	if !strings.Contains(out, "*") {
		t.Fatalf("missing displayed marker in %q", out)
	}
}

func TestPrettyPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, JSON: true}

	pp.Warn("No duplicate flags allowed!")
	pp.Flags(testState(t))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if lines[0] != `{"warning":"No duplicate flags allowed!"}` {
		t.Fatalf("unexpected warning %q", lines[0])
	}
	want := `{"displayMode":"since-date","flags":[{"index":0,"label":"0: Total (2024-01-01)","startDate":"2024-01-01","count":1,"displayed":true}]}`
	if lines[1] != want {
		t.Fatalf("unexpected flags\n got: %s\nwant: %s", lines[1], want)
	}
}
