package ui

import (
	"fmt"

	"github.com/idilsaglam/todomenu/internal/model"
)

// Theme bundles the completion markers shown in front of each todo.
// Neither marker may contain '.', the display line is split on the first one.
type Theme struct {
	Name      string
	Completed string
	Pending   string
}

var (
	// Emoji is the default theme.
	Emoji = Theme{Name: "emoji", Completed: "✅", Pending: "⬜"}
	// ASCII suits terminals without emoji support.
	ASCII = Theme{Name: "ascii", Completed: "[x]", Pending: "[ ]"}
)

// ThemeFor picks the ASCII theme when ascii is set.
func ThemeFor(ascii bool) Theme {
	if ascii {
		return ASCII
	}
	return Emoji
}

// Marker returns the completion marker for t.
func (th Theme) Marker(t model.Todo) string {
	if t.Completed {
		return th.Completed
	}
	return th.Pending
}

// Line formats the todo at 0-based position i as "{n}. {status} {text}".
func (th Theme) Line(i int, t model.Todo) string {
	return fmt.Sprintf("%d. %s %s", i+1, th.Marker(t), t.Text)
}

// Lines formats every todo of l with Line.
func (th Theme) Lines(l model.List) []string {
	out := make([]string, 0, len(l))
	for i, t := range l {
		out = append(out, th.Line(i, t))
	}
	return out
}

// State describes t's completion for transition messages,
// e.g. "✅ completed" or "⬜ uncompleted".
func (th Theme) State(t model.Todo) string {
	if t.Completed {
		return th.Completed + " completed"
	}
	return th.Pending + " uncompleted"
}
