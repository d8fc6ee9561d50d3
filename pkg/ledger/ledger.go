// Package ledger keeps the running mistake counts for every flag.
//
// A State holds an ordered list of flags. Index 0 is the permanent Total flag
// created on first use; every later flag starts counting on the day it was
// set. Recording a mistake increments every flag at once.
package ledger

import (
	"errors"
	"fmt"
	"slices"
)

// DisplayMode selects how the status line is rendered.
type DisplayMode string

const (
	// SinceDate renders the count together with the flag start date.
	SinceDate DisplayMode = "since-date"
	// Clean renders the count only.
	Clean DisplayMode = "clean"
)

// TotalIndex is the index of the permanent Total flag.
const TotalIndex = 0

// NoFlagsText is shown when no flags exist.
const NoFlagsText = "No flags set"

var (
	// ErrRejected is wrapped by every policy rejection. Rejections leave the
	// state unchanged and are meant to be shown to the user, not treated as
	// failures.
	ErrRejected = errors.New("ledger: rejected")

	// ErrDuplicateFlag is returned when a flag was already set today.
	ErrDuplicateFlag error = &Rejection{Notice: "No duplicate flags allowed!"}

	// ErrPermanentFlag is returned when deleting the Total flag.
	ErrPermanentFlag error = &Rejection{Notice: "You cannot delete the default flag!"}

	// ErrNoFlags is returned when deleting from an empty history.
	ErrNoFlags error = &Rejection{Notice: "There are no flags to delete."}

	// ErrIndexOutOfRange is returned for an index that names no flag.
	ErrIndexOutOfRange = errors.New("ledger: flag index out of range")

	// ErrInvalidDisplayMode is returned for an unknown display mode.
	ErrInvalidDisplayMode = errors.New("ledger: invalid display mode")
)

// Rejection is a policy refusal. Its message is the notice shown to the user.
type Rejection struct {
	Notice string
}

func (r *Rejection) Error() string { return r.Notice }

// Is makes every Rejection match ErrRejected.
func (r *Rejection) Is(target error) bool { return target == ErrRejected }

// Modes lists the valid display modes in menu order.
func Modes() []DisplayMode {
	return []DisplayMode{SinceDate, Clean}
}

// ParseDisplayMode validates v as a DisplayMode.
func ParseDisplayMode(v string) (DisplayMode, error) {
	m := DisplayMode(v)
	if !m.Valid() {
		return "", fmt.Errorf("%w %q (expected %s or %s)", ErrInvalidDisplayMode, v, SinceDate, Clean)
	}
	return m, nil
}

// Valid reports whether m is one of the known modes.
func (m DisplayMode) Valid() bool {
	return m == SinceDate || m == Clean
}

// Flag is a start date and the number of mistakes made since.
type Flag struct {
	Count     int `json:"count"`
	StartDate Day `json:"startDate"`
}

// State is the persisted ledger. The field names match the on-disk format.
type State struct {
	DisplayMode      DisplayMode `json:"displayMode"`
	DisplayFromIndex int         `json:"displayFromIndex"`
	MistakeHistory   []Flag      `json:"mistakeHistory"`
}

// New returns the default state: a single Total flag starting today.
func New(today Day) *State {
	return &State{
		DisplayMode:      SinceDate,
		DisplayFromIndex: 0,
		MistakeHistory:   []Flag{{StartDate: today}},
	}
}

// Normalize fills in fields missing from a loaded state. A nil history is
// replaced by a Total flag starting today; an empty one is kept as is.
func (s *State) Normalize(today Day) {
	if !s.DisplayMode.Valid() {
		s.DisplayMode = SinceDate
	}
	if s.MistakeHistory == nil {
		s.MistakeHistory = []Flag{{StartDate: today}}
	}
	if s.DisplayFromIndex < 0 || s.DisplayFromIndex >= len(s.MistakeHistory) {
		s.DisplayFromIndex = 0
	}
}

// Len returns the number of flags.
func (s *State) Len() int {
	return len(s.MistakeHistory)
}

// Flags returns a copy of the flags.
func (s *State) Flags() []Flag {
	return slices.Clone(s.MistakeHistory)
}

// RecordMistake adds one mistake to every flag.
func (s *State) RecordMistake() {
	for i := range s.MistakeHistory {
		s.MistakeHistory[i].Count++
	}
}

// CreateFlag appends a flag starting today. Only the most recent flag is
// compared against today; an empty history always accepts the new flag.
func (s *State) CreateFlag(today Day) (Flag, error) {
	if n := len(s.MistakeHistory); n > 0 && s.MistakeHistory[n-1].StartDate.SameDay(today) {
		return Flag{}, ErrDuplicateFlag
	}
	f := Flag{StartDate: today}
	s.MistakeHistory = append(s.MistakeHistory, f)
	return f, nil
}

// DeleteFlag removes the flag at index. The Total flag can not be deleted,
// and nothing can be deleted from an empty history.
func (s *State) DeleteFlag(index int) (Flag, error) {
	if index == TotalIndex {
		return Flag{}, ErrPermanentFlag
	}
	if len(s.MistakeHistory) == 0 {
		return Flag{}, ErrNoFlags
	}
	return s.RemoveFlag(index)
}

// RemoveFlag removes the flag at index without protecting the Total flag and
// repairs the display selector so it keeps pointing at the same flag, or at
// index 0 if that flag was removed.
func (s *State) RemoveFlag(index int) (Flag, error) {
	if len(s.MistakeHistory) == 0 {
		return Flag{}, nil
	}
	if index < 0 || index >= len(s.MistakeHistory) {
		return Flag{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	removed := s.MistakeHistory[index]
	s.MistakeHistory = slices.Delete(s.MistakeHistory, index, index+1)

	switch {
	case s.DisplayFromIndex == index:
		s.DisplayFromIndex = 0
	case s.DisplayFromIndex > index:
		s.DisplayFromIndex--
	}
	if len(s.MistakeHistory) == 0 {
		s.DisplayFromIndex = 0
	}
	return removed, nil
}

// SetDisplayMode changes how the status line is rendered.
func (s *State) SetDisplayMode(m DisplayMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidDisplayMode, m)
	}
	s.DisplayMode = m
	return nil
}

// SetDisplayFrom selects the flag whose count is displayed.
func (s *State) SetDisplayFrom(index int) error {
	if index < 0 || index >= len(s.MistakeHistory) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	s.DisplayFromIndex = index
	return nil
}

// Displayed returns the flag currently selected for display.
func (s *State) Displayed() (Flag, bool) {
	if s.DisplayFromIndex < 0 || s.DisplayFromIndex >= len(s.MistakeHistory) {
		return Flag{}, false
	}
	return s.MistakeHistory[s.DisplayFromIndex], true
}

// DisplayText renders the status line.
func (s *State) DisplayText() string {
	if len(s.MistakeHistory) == 0 {
		return NoFlagsText
	}
	f, ok := s.Displayed()
	if !ok {
		f = s.MistakeHistory[0]
	}
	if s.DisplayMode == Clean {
		return fmt.Sprintf("Mistakes: %d", f.Count)
	}
	return fmt.Sprintf("Mistakes: %d (since %s)", f.Count, f.StartDate)
}

// Label names the flag at index for menus.
func (s *State) Label(index int) string {
	if index < 0 || index >= len(s.MistakeHistory) {
		return ""
	}
	f := s.MistakeHistory[index]
	if index == TotalIndex {
		return fmt.Sprintf("%d: Total (%s)", index, f.StartDate)
	}
	return fmt.Sprintf("%d: %s", index, f.StartDate)
}

// Labels names every flag in order.
func (s *State) Labels() []string {
	labels := make([]string, len(s.MistakeHistory))
	for i := range s.MistakeHistory {
		labels[i] = s.Label(i)
	}
	return labels
}
