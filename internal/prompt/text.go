package prompt

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type textModel struct {
	question  string
	input     textinput.Model
	value     string
	cancelled bool
	closed    bool
	done      bool
}

func newTextModel(question string) textModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()
	return textModel{question: question, input: ti}
}

func (m textModel) Init() tea.Cmd { return textinput.Blink }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(inputClosedMsg); ok {
		m.closed = true
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.value = m.input.Value()
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.cancelled {
		return cancelledSummary(m.question)
	}
	if m.done {
		return summary(m.question, m.value)
	}
	return markStyle.Render("?") + " " + questionStyle.Render(m.question) + "\n" + m.input.View() + "\n" +
		helpStyle.Render("enter submit • esc cancel") + "\n"
}
