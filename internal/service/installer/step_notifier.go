package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	notifierNone     = "None"
	notifierTelegram = "Telegram"
)

// NotifierStep selects where new recommendations get pushed, if anywhere
type NotifierStep struct {
	choices []string
	cursor  int
}

func NewNotifierStep() Step {
	return &NotifierStep{
		choices: []string{notifierNone, notifierTelegram},
		cursor:  0,
	}
}

func (s *NotifierStep) Init() tea.Cmd {
	return nil
}

func (s *NotifierStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars["PULSE_NOTIFIER"] = s.choices[s.cursor]
			return nil, nil
		}
	}
	return s, nil
}

func (s *NotifierStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Forward new recommendations to a chat channel?\n\n")
	for i, choice := range s.choices {
		cursor := " "
		if s.cursor == i {
			cursor = "❯"
			b.WriteString(selStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
