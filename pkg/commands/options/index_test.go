package options

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/mistakes/pkg/ledger"
)

func TestParseIndexArg(t *testing.T) {
	tests := map[string]struct {
		args    []string
		want    int
		wantErr bool
	}{
		"valid":    {args: []string{"2"}, want: 2},
		"spaces":   {args: []string{" 1 "}, want: 1},
		"negative": {args: []string{"-1"}, wantErr: true},
		"word":     {args: []string{"two"}, wantErr: true},
		"none":     {args: nil, wantErr: true},
		"too many": {args: []string{"1", "2"}, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			o := &IndexOptions{}
			err := ParseIndexArg(tt.args, o)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if err == nil && o.Index != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, o.Index)
			}
		})
	}
}

func TestIndexCompletions(t *testing.T) {
	d1, _ := ledger.ParseDay("2024-01-01")
	d2, _ := ledger.ParseDay("2024-02-01")
	s := &ledger.State{MistakeHistory: []ledger.Flag{{StartDate: d1}, {StartDate: d2}}}

	want := []string{"0\t0: Total (2024-01-01)", "1\t1: 2024-02-01"}
	if diff := cmp.Diff(want, IndexCompletions(s, "", false)); diff != "" {
		t.Fatalf("unexpected completions (-want +got):\n%s", diff)
	}
	want = []string{"1\t1: 2024-02-01"}
	if diff := cmp.Diff(want, IndexCompletions(s, "", true)); diff != "" {
		t.Fatalf("unexpected completions (-want +got):\n%s", diff)
	}
}
