// Package printers renders ledger output for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mistakes/pkg/ledger"
)

// PrettyPrint writes the status line, notices and flag tables.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// JSON switches every printer to one JSON object per line.
	JSON bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) writeJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		_, _ = fmt.Fprintln(pp.out(), err.Error())
		return
	}
	_, _ = fmt.Fprintln(pp.out(), string(b))
}

// SetStatus prints the status line.
func (pp *PrettyPrint) SetStatus(text string) {
	if pp.JSON {
		pp.writeJSON(map[string]string{"status": text})
		return
	}
	t := color.New(color.Bold)
	_, _ = t.Fprintln(pp.out(), text)
}

// Notice prints a confirmation.
func (pp *PrettyPrint) Notice(msg string) {
	if pp.JSON {
		pp.writeJSON(map[string]string{"notice": msg})
		return
	}
	c := color.New(color.FgGreen)
	_, _ = c.Fprintln(pp.out(), msg)
}

// Warn prints a rejection.
func (pp *PrettyPrint) Warn(msg string) {
	if pp.JSON {
		pp.writeJSON(map[string]string{"warning": msg})
		return
	}
	c := color.New(color.FgHiYellow)
	_, _ = c.Fprintln(pp.out(), msg)
}

// Location describes where the ledger is configured and stored.
type Location struct {
	ConfigPathEnv string `json:"configPathEnv,omitempty"`
	BasePath      string `json:"path"`
	StateFile     string `json:"stateFile"`
}

// Location prints the config override and the state file path.
func (pp *PrettyPrint) Location(l Location) {
	if pp.JSON {
		pp.writeJSON(l)
		return
	}
	faint := color.New(color.Faint)
	if l.ConfigPathEnv != "" {
		_, _ = fmt.Fprintln(pp.out(), "MISTAKES_CONFIG_PATH found on env, using", l.ConfigPathEnv)
	} else {
		_, _ = faint.Fprintln(pp.out(), "MISTAKES_CONFIG_PATH env var not set")
	}

	tbl := uitable.New()
	tbl.AddRow("Config.path:", l.BasePath)
	tbl.AddRow("State file:", l.StateFile)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

type flagRow struct {
	Index     int    `json:"index"`
	Label     string `json:"label"`
	StartDate string `json:"startDate"`
	Count     int    `json:"count"`
	Displayed bool   `json:"displayed"`
}

// Flags prints every flag, marking the displayed one.
func (pp *PrettyPrint) Flags(s *ledger.State) {
	if pp.JSON {
		rows := make([]flagRow, 0, s.Len())
		for i, f := range s.MistakeHistory {
			rows = append(rows, flagRow{
				Index:     i,
				Label:     s.Label(i),
				StartDate: f.StartDate.String(),
				Count:     f.Count,
				Displayed: i == s.DisplayFromIndex,
			})
		}
		pp.writeJSON(map[string]any{"displayMode": s.DisplayMode, "flags": rows})
		return
	}

	if s.Len() == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), " none")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(" ", bold.Sprint("Flag"), bold.Sprint("Mistakes"))
	for i, f := range s.MistakeHistory {
		marker := " "
		if i == s.DisplayFromIndex {
			marker = y.Sprint("*")
		}
		tbl.AddRow(marker, s.Label(i), f.Count)
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}
