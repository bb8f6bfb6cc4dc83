// Package tui provides a terminal monitor for the running line launcher:
// a live readout of the current chord, beat position, interval estimate,
// and slider ratios.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsee/linelauncher/internal/clock"
	"github.com/jsee/linelauncher/internal/launcher"
)

// Acid-inspired color scheme, carried over from the file-conversion TUI
// this package is adapted from.
var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(silverGray)
	valueStyle = lipgloss.NewStyle().Foreground(acidYellow).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

// refreshInterval is how often the model polls the dispatcher's snapshot.
const refreshInterval = 100 * time.Millisecond

// tickMsg requests a fresh snapshot poll.
type tickMsg time.Time

// Model is the bubbletea model for the monitor view.
type Model struct {
	state   *launcher.PlayingState
	snap    launcher.Snapshot
	width   int
	height  int
	waiting spinner.Model
}

// New builds a monitor Model reading from state.
func New(state *launcher.PlayingState) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = valueStyle
	return Model{state: state, waiting: s}
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waiting.Tick)
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles TUI updates.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.snap = m.state.Get()
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.waiting, cmd = m.waiting.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the monitor.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(" LINE LAUNCHER "))
	s.WriteString("\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", label)))
		s.WriteString(valueStyle.Render(value))
		s.WriteString("\n")
	}

	row("Next measure-beat:", m.snap.NextMeasureBeat.String())
	row("Current chord:", m.snap.CurrentChord)
	row("Chord index:", fmt.Sprintf("%d", m.snap.ChordIndex))
	row("Planned notes:", fmt.Sprintf("%d", m.snap.PlannedCount))
	if m.snap.IntervalState == clock.Full {
		row("Interval state:", m.snap.IntervalState.String())
	} else {
		row("Interval state:", fmt.Sprintf("%s %s", m.waiting.View(), m.snap.IntervalState.String()))
	}
	row("Duration ratio:", fmt.Sprintf("%.2f", m.snap.DurationRatio))
	row("Ahead/behind ratio:", fmt.Sprintf("%.2f", m.snap.AheadOrBehindRatio))
	row("Randomize ratio:", fmt.Sprintf("%.2f", m.snap.RandomizeRatio))

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("q: quit"))

	return boxStyle.Render(s.String())
}

// Run starts the monitor TUI against state, blocking until the user quits.
func Run(state *launcher.PlayingState) error {
	p := tea.NewProgram(New(state), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
