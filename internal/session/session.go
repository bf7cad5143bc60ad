// Package session drives one interactive run: it owns the todo list, shows
// the menu, applies the chosen action and persists after every change.
package session

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomenu/internal/model"
	"github.com/idilsaglam/todomenu/internal/prompt"
	"github.com/idilsaglam/todomenu/internal/ui"
)

// Menu labels, in display order.
const (
	ActionMake   = "Make todo"
	ActionView   = "View all todos"
	ActionToggle = "Mark todo completed/uncompleted"
	ActionDelete = "Delete a todo"
	ActionExit   = "Exit"
)

const menuQuestion = "Choose an action:"

// Store persists the list. Both operations are total; failures stay inside.
type Store interface {
	Load() model.List
	Save(model.List)
}

// Options tune presentation.
type Options struct {
	Theme  ui.Theme
	Color  bool
	Logger *log.Logger
}

// Session is one run from startup to Exit.
type Session struct {
	todos  model.List
	store  Store
	prompt prompt.Prompter
	out    *ui.Printer
	theme  ui.Theme
	logger *log.Logger

	actions []action
}

// action is one menu entry. run reports whether the loop should continue.
type action struct {
	label string
	run   func(ctx context.Context) bool
}

// New loads the list from store and prepares the menu.
func New(store Store, p prompt.Prompter, out io.Writer, opts Options) *Session {
	if opts.Theme == (ui.Theme{}) {
		opts.Theme = ui.Emoji
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Session{
		store:  store,
		prompt: p,
		out:    ui.NewPrinter(out, opts.Color),
		theme:  opts.Theme,
		logger: opts.Logger,
	}
	s.todos = store.Load()
	if s.todos == nil {
		s.todos = model.List{}
	}
	s.actions = []action{
		{ActionMake, s.makeTodo},
		{ActionView, s.viewTodos},
		{ActionToggle, s.toggleTodo},
		{ActionDelete, s.deleteTodo},
		{ActionExit, s.exit},
	}
	return s
}

// Todos returns a copy of the current list.
func (s *Session) Todos() model.List { return s.todos.Clone() }

// Menu returns the menu labels in display order.
func (s *Session) Menu() []string {
	labels := make([]string, len(s.actions))
	for i, a := range s.actions {
		labels[i] = a.label
	}
	return labels
}

// Run shows the menu until Exit is chosen or the menu cannot be read.
func (s *Session) Run(ctx context.Context) {
	s.logger.Debug("session started", "todos", len(s.todos))
	for {
		choice, err := s.prompt.Select(ctx, menuQuestion, s.Menu())
		if err != nil {
			s.logger.Error("menu read failed", "err", err)
			s.out.Warn("There was an error reading your input.")
			return
		}
		a, ok := s.lookup(choice)
		if !ok {
			s.logger.Warn("unknown menu choice", "choice", choice)
			continue
		}
		s.logger.Debug("action", "name", a.label)
		if !a.run(ctx) {
			return
		}
	}
}

func (s *Session) lookup(label string) (action, bool) {
	for _, a := range s.actions {
		if a.label == label {
			return a, true
		}
	}
	return action{}, false
}

func (s *Session) save() { s.store.Save(s.todos) }

func (s *Session) makeTodo(ctx context.Context) bool {
	text, err := s.prompt.Text(ctx, "Enter your todo:")
	if err != nil {
		s.logInputErr("make", err)
		s.out.Warn("Failed to read todo.")
		return true
	}
	s.todos.Add(text)
	s.out.Success("Added a new todo!")
	s.save()
	return true
}

func (s *Session) viewTodos(context.Context) bool {
	if len(s.todos) == 0 {
		s.out.Muted("No todos yet.")
		return true
	}
	s.out.Title("Your todos:")
	for _, line := range s.theme.Lines(s.todos) {
		s.out.Plain(line)
	}
	done, _ := s.todos.Stats()
	s.out.Muted(ui.ProgressBar(done, len(s.todos), 20))
	return true
}

func (s *Session) toggleTodo(ctx context.Context) bool {
	if len(s.todos) == 0 {
		s.out.Muted("No todos to mark.")
		return true
	}
	i, ok := s.pick(ctx, "toggle", "Select a todo to toggle:")
	if !ok {
		return true
	}
	t := s.todos.Toggle(i)
	s.out.Success("Toggled: " + t.Text + " → " + s.theme.State(t))
	s.save()
	return true
}

func (s *Session) deleteTodo(ctx context.Context) bool {
	if len(s.todos) == 0 {
		s.out.Muted("No todos to delete.")
		return true
	}
	i, ok := s.pick(ctx, "delete", "Select a todo to delete:")
	if !ok {
		return true
	}
	s.out.Success("Deleted: " + s.todos[i].Text)
	s.todos.Remove(i)
	s.save()
	return true
}

func (s *Session) exit(context.Context) bool {
	s.out.Plain("Saving todos... Goodbye!")
	s.save()
	return false
}

// pick shows the current list and recovers the index of the chosen line.
// The options are rebuilt from the list right before the prompt, so a
// recovered index always addresses the entry that was displayed.
func (s *Session) pick(ctx context.Context, op, question string) (int, bool) {
	choice, err := s.prompt.Select(ctx, question, s.theme.Lines(s.todos))
	if err != nil {
		s.logInputErr(op, err)
		s.out.Muted("No changes made.")
		return 0, false
	}
	i, ok := ParseIndex(choice, s.todos)
	if !ok {
		s.logger.Warn("unrecognized selection", "op", op, "choice", choice)
		s.out.Muted("No changes made.")
		return 0, false
	}
	return i, true
}

func (s *Session) logInputErr(op string, err error) {
	if errors.Is(err, prompt.ErrCancelled) {
		s.logger.Debug("input cancelled", "op", op)
		return
	}
	s.logger.Warn("input failed", "op", op, "err", err)
}

// ParseIndex recovers the 0-based list index from a display line such as
// "2. ⬜ buy milk": the text before the first '.' is the 1-based position.
// It reports false when that prefix is not a number or does not address an
// entry of todos.
func ParseIndex(choice string, todos model.List) (int, bool) {
	prefix, _, _ := strings.Cut(choice, ".")
	pos, err := strconv.Atoi(prefix)
	if err != nil || !todos.Valid(pos-1) {
		return 0, false
	}
	return pos - 1, true
}
