package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// StreamURLStep collects the vitals stream endpoint
type StreamURLStep struct {
	input textinput.Model
}

func NewStreamURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 60
	ti.Placeholder = "http://localhost:8000/api/vitals/stream"

	return &StreamURLStep{
		input: ti,
	}
}

func (s *StreamURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *StreamURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			url := strings.TrimSpace(s.input.Value())
			if url == "" {
				// The monitor cannot start without an endpoint
				return s, cmd
			}
			state.EnvVars["PULSE_STREAM_URL"] = url
			return nil, nil
		}
	}
	return s, cmd
}

func (s *StreamURLStep) View(state *InstallState) string {
	return "Enter the vitals stream URL (newline-delimited JSON endpoint):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
