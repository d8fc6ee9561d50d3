// Package options defines shared flag and argument helpers for CLI commands.
package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/mistakes/pkg/ledger"
)

// IndexOptions captures a flag index argument.
type IndexOptions struct {
	Index int
}

// ParseIndexArg reads the single flag index argument.
func ParseIndexArg(args []string, o *IndexOptions) error {
	if len(args) != 1 {
		return errors.New("requires exactly one flag index")
	}
	i, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || i < 0 {
		return fmt.Errorf("invalid flag index %q", args[0])
	}
	o.Index = i
	return nil
}

// IndexCompletions lists flag indices with their labels for shell completion.
// The Total flag is left out when skipTotal is set.
func IndexCompletions(s *ledger.State, toComplete string, skipTotal bool) []string {
	out := make([]string, 0, s.Len())
	for i := range s.MistakeHistory {
		if skipTotal && i == ledger.TotalIndex {
			continue
		}
		v := strconv.Itoa(i)
		if !strings.HasPrefix(v, toComplete) {
			continue
		}
		out = append(out, v+"\t"+s.Label(i))
	}
	return out
}
