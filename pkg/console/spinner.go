// Package console's Spinner wraps a Bubble Tea spinner for short,
// indeterminate waits (e.g. probing the GPL sidecar, waiting for a
// slow validator) that don't warrant the full Progress TUI table.
package console

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toolmesh/toolmesh/pkg/styles"
	"github.com/toolmesh/toolmesh/pkg/tty"
)

type updateMessageMsg string

type spinnerModel struct {
	spinner spinner.Model
	message string
}

func (m spinnerModel) Init() tea.Cmd { return m.spinner.Tick }
func (m spinnerModel) View() string  { return fmt.Sprintf("\r%s %s", m.spinner.View(), m.message) }

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMessageMsg:
		m.message = string(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Spinner is a TTY-aware indeterminate progress indicator that
// silently no-ops when stderr is not an interactive terminal or
// ACCESSIBLE is set.
type Spinner struct {
	program *tea.Program
	enabled bool
}

// NewSpinner creates a Spinner with the given initial message.
func NewSpinner(message string) *Spinner {
	enabled := tty.Stderr() && !tty.Accessible()
	s := &Spinner{enabled: enabled}
	if enabled {
		model := spinnerModel{
			spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.Info)),
			message: message,
		}
		s.program = tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithoutRenderer())
	}
	return s
}

func (s *Spinner) Start() {
	if s.enabled && s.program != nil {
		go func() { _, _ = s.program.Run() }()
	}
}

func (s *Spinner) Stop() {
	if s.enabled && s.program != nil {
		s.program.Quit()
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
}

func (s *Spinner) StopWithMessage(msg string) {
	if s.enabled && s.program != nil {
		s.program.Quit()
		fmt.Fprintf(os.Stderr, "\r\033[K%s\n", msg)
	}
}

func (s *Spinner) UpdateMessage(message string) {
	if s.enabled && s.program != nil {
		s.program.Send(updateMessageMsg(message))
	}
}

func (s *Spinner) IsEnabled() bool { return s.enabled }
