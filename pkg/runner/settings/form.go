package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"tableflip.dev/mistakes/pkg/app"
	"tableflip.dev/mistakes/pkg/ledger"
	"tableflip.dev/mistakes/pkg/store"
)

// Section is one control of the settings form.
type Section int

const (
	SectionDisplayMode Section = iota
	SectionDisplayFrom
	SectionDeleteFlag
	sectionCount
)

var sectionTitles = [...]string{
	SectionDisplayMode: "Display mode",
	SectionDisplayFrom: "Display from index",
	SectionDeleteFlag:  "Delete this flag",
}

var sectionDescs = [...]string{
	SectionDisplayMode: "Display from a specific date i.e 9 mistakes since 1967-06-07 OR display without the date",
	SectionDisplayFrom: "Which flag to display mistakes from (0 = total, 1 = first flag, etc.)",
	SectionDeleteFlag:  "Select a flag and press enter to delete it",
}

var modeLabels = map[ledger.DisplayMode]string{
	ledger.SinceDate: "Show date",
	ledger.Clean:     "Clean display",
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).MarginBottom(1)
	sectionStyle  = lipgloss.NewStyle().Bold(true)
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#7C3AED")).Foreground(lipgloss.Color("#FFFFFF"))
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("236")).Padding(0, 1)
)

// KeyMap defines the form key bindings.
type KeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Apply   key.Binding
	Mistake key.Binding
	Flag    key.Binding
	Quit    key.Binding
}

// DefaultKeys are the default form key bindings.
var DefaultKeys = KeyMap{
	Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next setting")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev setting")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Apply:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Mistake: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add mistake")),
	Flag:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new flag")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Apply, k.Mistake, k.Flag, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down},
		{k.Apply, k.Mistake, k.Flag, k.Quit},
	}
}

// feed collects what the service reports while the form is open. It is
// shared by pointer so copies of the Model see the same messages.
type feed struct {
	status string
	notice string
	warn   bool
}

func (f *feed) SetStatus(text string) { f.status = text }
func (f *feed) Notice(msg string)     { f.notice, f.warn = msg, false }
func (f *feed) Warn(msg string)       { f.notice, f.warn = msg, true }

type stateChangedMsg struct{}

// Model is the Bubble Tea model of the settings form.
type Model struct {
	ctx    context.Context
	svc    *app.Service
	feed   *feed
	events <-chan store.Event

	keys    KeyMap
	help    help.Model
	section Section
	cursor  [sectionCount]int
	width   int
	err     error
}

// NewModel builds the form around an opened service. The service's
// Notifier and Status are replaced so the form can show them.
func NewModel(ctx context.Context, svc *app.Service, events <-chan store.Event) Model {
	f := &feed{}
	svc.Notifier = f
	svc.Status = f
	svc.Refresh()

	m := Model{
		ctx:    ctx,
		svc:    svc,
		feed:   f,
		events: events,
		keys:   DefaultKeys,
		help:   help.New(),
	}
	m.syncCursors()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.events)
}

func waitForChange(events <-chan store.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case stateChangedMsg:
		if err := m.svc.Reload(m.ctx); err != nil {
			log.Warn().Err(err).Msg("settings: reload failed")
		}
		m.syncCursors()
		return m, waitForChange(m.events)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.section = (m.section + 1) % sectionCount
	case key.Matches(msg, m.keys.Prev):
		m.section = (m.section + sectionCount - 1) % sectionCount
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.section] > 0 {
			m.cursor[m.section]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.section] < m.options(m.section)-1 {
			m.cursor[m.section]++
		}
	case key.Matches(msg, m.keys.Apply):
		m.err = app.Handled(m.apply())
		m.syncCursors()
	case key.Matches(msg, m.keys.Mistake):
		m.err = m.svc.AddMistake(m.ctx)
	case key.Matches(msg, m.keys.Flag):
		_, err := m.svc.SetNewFlag(m.ctx)
		m.err = app.Handled(err)
		m.syncCursors()
	}
	return m, nil
}

func (m Model) apply() error {
	s, err := m.svc.Snapshot()
	if err != nil {
		return err
	}
	pick := m.cursor[m.section]
	switch m.section {
	case SectionDisplayMode:
		return m.svc.SetDisplayMode(m.ctx, ledger.Modes()[pick])
	case SectionDisplayFrom:
		if s.Len() == 0 {
			return nil
		}
		return m.svc.SetDisplayFrom(m.ctx, pick)
	case SectionDeleteFlag:
		_, err := m.svc.DeleteFlag(m.ctx, pick)
		return err
	}
	return nil
}

// syncCursors points the mode and index pickers at the saved values and
// resets the delete picker to the Total flag.
func (m *Model) syncCursors() {
	s, err := m.svc.Snapshot()
	if err != nil {
		return
	}
	for i, mode := range ledger.Modes() {
		if mode == s.DisplayMode {
			m.cursor[SectionDisplayMode] = i
		}
	}
	m.cursor[SectionDisplayFrom] = s.DisplayFromIndex
	m.cursor[SectionDeleteFlag] = ledger.TotalIndex
}

func (m Model) options(sec Section) int {
	if sec == SectionDisplayMode {
		return len(ledger.Modes())
	}
	s, err := m.svc.Snapshot()
	if err != nil {
		return 0
	}
	return s.Len()
}

// Section returns the focused control.
func (m Model) Section() Section {
	return m.section
}

// View implements tea.Model.
func (m Model) View() string {
	s, err := m.svc.Snapshot()
	if err != nil {
		return "settings unavailable: " + err.Error()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Mistake tracker settings"))
	b.WriteString("\n")

	for sec := Section(0); sec < sectionCount; sec++ {
		title := sectionStyle.Render(sectionTitles[sec])
		if sec == m.section {
			title = activeStyle.Render("> " + sectionTitles[sec])
		} else {
			title = "  " + title
		}
		b.WriteString(title)
		b.WriteString("\n  ")
		b.WriteString(descStyle.Render(sectionDescs[sec]))
		b.WriteString("\n")
		b.WriteString(m.renderOptions(sec, &s))
		b.WriteString("\n")
	}

	if m.feed.notice != "" {
		style := noticeStyle
		if m.feed.warn {
			style = warnStyle
		}
		b.WriteString(style.Render(m.feed.notice))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(warnStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.feed.status))
	return b.String()
}

func (m Model) renderOptions(sec Section, s *ledger.State) string {
	var labels []string
	current := -1
	switch sec {
	case SectionDisplayMode:
		for i, mode := range ledger.Modes() {
			labels = append(labels, modeLabels[mode])
			if mode == s.DisplayMode {
				current = i
			}
		}
	default:
		labels = s.Labels()
		if sec == SectionDisplayFrom {
			current = s.DisplayFromIndex
		}
	}
	if len(labels) == 0 {
		return "    " + disabledStyle.Render("No flags available") + "\n"
	}

	var b strings.Builder
	for i, label := range labels {
		line := label
		if i == current {
			line = currentStyle.Render(label + " ✓")
		}
		if sec == m.section && i == m.cursor[sec] {
			line = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "    %s\n", line)
	}
	return b.String()
}
