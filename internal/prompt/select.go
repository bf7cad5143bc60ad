package prompt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	listWidth     = 80
	maxListHeight = 16
	// title, blank line, pagination and help around the items
	listChrome = 5
)

// option adapts a displayable string to bubbles/list.Item.
type option string

func (o option) FilterValue() string { return string(o) }

// optionDelegate renders each option on a single line.
type optionDelegate struct{}

func (d optionDelegate) Height() int                               { return 1 }
func (d optionDelegate) Spacing() int                              { return 0 }
func (d optionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	o, _ := item.(option)
	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.Render("> "+string(o)))
		return
	}
	fmt.Fprint(w, "  "+string(o))
}

var (
	chooseKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose"))
	cancelKey = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
)

type selectModel struct {
	question  string
	list      list.Model
	choice    string
	cancelled bool
	closed    bool // input ended before an answer
	done      bool
}

func newSelectModel(question string, options []string) selectModel {
	items := make([]list.Item, 0, len(options))
	for _, o := range options {
		items = append(items, option(o))
	}

	height := len(options) + listChrome
	if height > maxListHeight {
		height = maxListHeight
	}
	l := list.New(items, optionDelegate{}, listWidth, height)
	l.Title = question
	l.Styles.Title = questionStyle
	l.Styles.HelpStyle = helpStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	// Leaving is handled by the model so that it can tell a choice from a cancel.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{chooseKey, cancelKey} }

	return selectModel{question: question, list: l}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inputClosedMsg:
		m.closed = true
		return m.cancel()
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.cancel()
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			o, ok := m.list.SelectedItem().(option)
			if !ok {
				return m, nil
			}
			m.choice = string(o)
			m.done = true
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			return m.cancel()
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) cancel() (tea.Model, tea.Cmd) {
	m.cancelled = true
	m.done = true
	return m, tea.Quit
}

func (m selectModel) View() string {
	if m.cancelled {
		return cancelledSummary(m.question)
	}
	if m.done {
		return summary(m.question, m.choice)
	}
	return m.list.View() + "\n"
}
