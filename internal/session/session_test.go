package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todomenu/internal/model"
	"github.com/idilsaglam/todomenu/internal/prompt"
	"github.com/idilsaglam/todomenu/internal/store/jsonstore"
	"github.com/idilsaglam/todomenu/internal/ui"
)

// answer is one scripted reply. For selects the answer must be one of the
// offered options unless err is set.
type answer struct {
	kind  string // "select" or "text"
	value string
	err   error
}

func sel(v string) answer          { return answer{kind: "select", value: v} }
func txt(v string) answer          { return answer{kind: "text", value: v} }
func selErr(err error) answer      { return answer{kind: "select", err: err} }
func txtErr(err error) answer      { return answer{kind: "text", err: err} }
func addTodo(text string) []answer { return []answer{sel(ActionMake), txt(text)} }

type asked struct {
	question string
	options  []string
}

// scripted replays answers in order. Running out of answers is a read
// failure, which ends the session.
type scripted struct {
	t       *testing.T
	answers []answer
	asked   []asked
	// afterSelect runs after each select is recorded, before the answer is
	// returned.
	afterSelect func(question string)
}

func (p *scripted) next(kind string) (answer, error) {
	p.t.Helper()
	if len(p.answers) == 0 {
		return answer{}, errors.New("script exhausted")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	require.Equal(p.t, kind, a.kind, "prompt kind out of order")
	return a, nil
}

func (p *scripted) Select(_ context.Context, question string, options []string) (string, error) {
	p.t.Helper()
	p.asked = append(p.asked, asked{question, append([]string(nil), options...)})
	if p.afterSelect != nil {
		p.afterSelect(question)
	}
	a, err := p.next("select")
	if err != nil {
		return "", err
	}
	if a.err != nil {
		return "", a.err
	}
	require.Contains(p.t, options, a.value, "scripted answer was not offered")
	return a.value, nil
}

func (p *scripted) Text(_ context.Context, question string) (string, error) {
	p.t.Helper()
	p.asked = append(p.asked, asked{question: question})
	a, err := p.next("text")
	if err != nil {
		return "", err
	}
	return a.value, a.err
}

type fixture struct {
	path   string
	store  *jsonstore.Store
	prompt *scripted
	out    *bytes.Buffer
	sess   *Session
}

func newFixture(t *testing.T, seed []byte, answers ...[]answer) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.json")
	if seed != nil {
		require.NoError(t, os.WriteFile(path, seed, 0o644))
	}
	var flat []answer
	for _, a := range answers {
		flat = append(flat, a...)
	}
	f := &fixture{
		path:   path,
		store:  jsonstore.New(path, nil),
		prompt: &scripted{t: t, answers: flat},
		out:    &bytes.Buffer{},
	}
	f.sess = New(f.store, f.prompt, f.out, Options{Theme: ui.Emoji})
	return f
}

func (f *fixture) run() { f.sess.Run(context.Background()) }

func (f *fixture) onDisk(t *testing.T) model.List {
	t.Helper()
	l, err := jsonstore.Read(f.path)
	require.NoError(t, err)
	return l
}

func (f *fixture) raw(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile(f.path)
	require.NoError(t, err)
	return b
}

func one(a answer) []answer { return []answer{a} }

var exitStep = one(sel(ActionExit))

func TestSession_MenuOrderAndQuestion(t *testing.T) {
	f := newFixture(t, nil, exitStep)
	f.run()

	require.NotEmpty(t, f.prompt.asked)
	assert.Equal(t, "Choose an action:", f.prompt.asked[0].question)
	assert.Equal(t, []string{
		"Make todo",
		"View all todos",
		"Mark todo completed/uncompleted",
		"Delete a todo",
		"Exit",
	}, f.prompt.asked[0].options)
}

func TestSession_CreateAndPersist(t *testing.T) {
	f := newFixture(t, nil, addTodo("buy milk"), exitStep)
	f.run()

	want := model.List{{Text: "buy milk"}}
	assert.Equal(t, want, f.sess.Todos())
	assert.Equal(t, want, f.onDisk(t))
	assert.Contains(t, f.out.String(), "Added a new todo!")
	assert.Equal(t, "Enter your todo:", f.prompt.asked[1].question)
}

func TestSession_Toggle(t *testing.T) {
	f := newFixture(t, []byte(`[{"text":"buy milk","completed":false}]`),
		[]answer{sel(ActionToggle), sel("1. ⬜ buy milk")}, exitStep)
	f.run()

	want := model.List{{Text: "buy milk", Completed: true}}
	assert.Equal(t, want, f.sess.Todos())
	assert.Equal(t, want, f.onDisk(t))
	assert.Contains(t, f.out.String(), "Toggled: buy milk → ✅ completed")
	assert.Equal(t, "Select a todo to toggle:", f.prompt.asked[1].question)
	assert.Equal(t, []string{"1. ⬜ buy milk"}, f.prompt.asked[1].options)
}

func TestSession_ToggleBack(t *testing.T) {
	f := newFixture(t, []byte(`[{"text":"buy milk","completed":true}]`),
		[]answer{sel(ActionToggle), sel("1. ✅ buy milk")}, exitStep)
	f.run()

	assert.Equal(t, model.List{{Text: "buy milk"}}, f.onDisk(t))
	assert.Contains(t, f.out.String(), "Toggled: buy milk → ⬜ uncompleted")
}

func TestSession_ToggleTwiceRestoresFile(t *testing.T) {
	seed := []byte(`[{"text":"a","completed":false},{"text":"b","completed":true}]`)
	f := newFixture(t, seed,
		[]answer{sel(ActionToggle), sel("2. ✅ b")},
		[]answer{sel(ActionToggle), sel("2. ⬜ b")},
		exitStep)
	f.run()

	assert.Equal(t, model.List{{Text: "a"}, {Text: "b", Completed: true}}, f.onDisk(t))
}

func TestSession_DeleteOnlyItem(t *testing.T) {
	f := newFixture(t, []byte(`[{"text":"buy milk","completed":true}]`),
		[]answer{sel(ActionDelete), sel("1. ✅ buy milk")})
	f.run()

	assert.Empty(t, f.sess.Todos())
	assert.Empty(t, f.onDisk(t))
	assert.Equal(t, "[]", string(f.raw(t)))
	assert.Contains(t, f.out.String(), "Deleted: buy milk")
	assert.Equal(t, "Select a todo to delete:", f.prompt.asked[1].question)
}

func TestSession_ScenarioCreateToggleDelete(t *testing.T) {
	f := newFixture(t, nil,
		addTodo("buy milk"),
		[]answer{sel(ActionToggle), sel("1. ⬜ buy milk")},
		[]answer{sel(ActionDelete), sel("1. ✅ buy milk")},
		exitStep)
	f.run()

	assert.Empty(t, f.onDisk(t))
	out := f.out.String()
	assert.Contains(t, out, "✅ completed")
	assert.Contains(t, out, "Deleted: buy milk")
}

func TestSession_OrderingPreservedAfterDelete(t *testing.T) {
	f := newFixture(t, nil,
		addTodo("a"), addTodo("b"), addTodo("c"),
		[]answer{sel(ActionDelete), sel("2. ⬜ b")},
		exitStep)
	f.run()

	want := model.List{{Text: "a"}, {Text: "c"}}
	assert.Equal(t, want, f.sess.Todos())
	assert.Equal(t, want, f.onDisk(t))
	// The delete prompt listed all three in order.
	assert.Equal(t, []string{"1. ⬜ a", "2. ⬜ b", "3. ⬜ c"}, f.prompt.asked[7].options)
}

func TestSession_AppendOrder(t *testing.T) {
	inputs := []string{"t1", "t2", "", "  t4  ", "t2"}
	var script [][]answer
	for _, in := range inputs {
		script = append(script, addTodo(in))
	}
	script = append(script, exitStep)
	f := newFixture(t, nil, script...)
	f.run()

	var want model.List
	for _, in := range inputs {
		want = append(want, model.Todo{Text: in})
	}
	assert.Equal(t, want, f.sess.Todos())
	assert.Equal(t, want, f.onDisk(t))
}

func TestSession_ViewEmpty(t *testing.T) {
	f := newFixture(t, nil, one(sel(ActionView)), exitStep)
	f.run()

	out := f.out.String()
	assert.Contains(t, out, "No todos yet.")
	assert.NotContains(t, out, "Your todos:")
	assert.NotContains(t, out, "1.")
}

func TestSession_ViewListsTodos(t *testing.T) {
	f := newFixture(t, []byte(`[{"text":"buy milk","completed":false},{"text":"write report","completed":true}]`),
		one(sel(ActionView)), exitStep)
	f.run()

	lines := strings.Split(f.out.String(), "\n")
	assert.Equal(t, "Your todos:", lines[0])
	assert.Equal(t, "1. ⬜ buy milk", lines[1])
	assert.Equal(t, "2. ✅ write report", lines[2])
	assert.Contains(t, lines[3], "1/2 completed")
}

func TestSession_ViewDoesNotSave(t *testing.T) {
	f := newFixture(t, nil, one(sel(ActionView)))
	f.run()

	_, err := os.Stat(f.path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSession_EmptyListMessages(t *testing.T) {
	f := newFixture(t, nil, one(sel(ActionToggle)), one(sel(ActionDelete)), exitStep)
	f.run()

	out := f.out.String()
	assert.Contains(t, out, "No todos to mark.")
	assert.Contains(t, out, "No todos to delete.")
	// Only menu prompts were shown.
	for _, a := range f.prompt.asked {
		assert.Equal(t, "Choose an action:", a.question)
	}
}

func TestSession_CorruptRecovery(t *testing.T) {
	f := newFixture(t, []byte("not json"), addTodo("x"), exitStep)
	assert.Empty(t, f.sess.Todos())

	f.run()

	assert.Equal(t, model.List{{Text: "x"}}, f.onDisk(t))
}

func TestSession_ExitSaves(t *testing.T) {
	f := newFixture(t, nil, exitStep)
	f.run()

	assert.Contains(t, f.out.String(), "Saving todos... Goodbye!")
	assert.Equal(t, "[]", string(f.raw(t)))
}

func TestSession_MenuReadFailureEndsWithoutSaving(t *testing.T) {
	f := newFixture(t, nil, one(selErr(prompt.ErrRead)))
	f.run()

	assert.Contains(t, f.out.String(), "There was an error reading your input.")
	_, err := os.Stat(f.path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSession_MenuCancelEndsSession(t *testing.T) {
	f := newFixture(t, nil, one(selErr(prompt.ErrCancelled)), exitStep)
	f.run()

	assert.Contains(t, f.out.String(), "There was an error reading your input.")
	assert.Len(t, f.prompt.answers, 1, "loop must stop at the failed menu read")
}

func TestSession_CancellationIsInert(t *testing.T) {
	seed := []byte(`[{"text":"a","completed":false},{"text":"b","completed":true}]`)
	cases := map[string][]answer{
		"make cancelled":   {sel(ActionMake), txtErr(prompt.ErrCancelled)},
		"make read error":  {sel(ActionMake), txtErr(prompt.ErrRead)},
		"toggle cancelled": {sel(ActionToggle), selErr(prompt.ErrCancelled)},
		"delete cancelled": {sel(ActionDelete), selErr(prompt.ErrCancelled)},
	}
	for name, script := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, seed, script)
			before := f.sess.Todos()

			f.run()

			assert.Equal(t, before, f.sess.Todos())
			assert.Equal(t, seed, f.raw(t))
		})
	}
}

func TestSession_MakeFailureMessage(t *testing.T) {
	f := newFixture(t, nil, []answer{sel(ActionMake), txtErr(prompt.ErrCancelled)}, exitStep)
	f.run()

	assert.Contains(t, f.out.String(), "Failed to read todo.")
	assert.NotContains(t, f.out.String(), "Added a new todo!")
}

func TestSession_PickCancelReportsNoChange(t *testing.T) {
	f := newFixture(t, []byte(`[{"text":"a","completed":false}]`),
		[]answer{sel(ActionDelete), selErr(prompt.ErrCancelled)}, exitStep)
	f.run()

	assert.Contains(t, f.out.String(), "No changes made.")
	assert.Equal(t, model.List{{Text: "a"}}, f.sess.Todos())
}

func TestSession_PostMutationPersistence(t *testing.T) {
	f := newFixture(t, nil,
		addTodo("a"), addTodo("b"),
		[]answer{sel(ActionToggle), sel("1. ⬜ a")},
		[]answer{sel(ActionDelete), sel("2. ⬜ b")},
		exitStep)
	// Before each menu prompt the file must match the in-memory list.
	f.prompt.afterSelect = func(question string) {
		if question != menuQuestion {
			return
		}
		if _, err := os.Stat(f.path); err != nil {
			return
		}
		assert.Equal(t, f.sess.Todos(), f.onDisk(t))
	}
	f.run()

	assert.Equal(t, model.List{{Text: "a", Completed: true}}, f.onDisk(t))
}

func TestSession_ASCIITheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	p := &scripted{t: t, answers: []answer{
		sel(ActionMake), txt("x"),
		sel(ActionToggle), sel("1. [ ] x"),
		sel(ActionExit),
	}}
	var out bytes.Buffer
	s := New(jsonstore.New(path, nil), p, &out, Options{Theme: ui.ASCII})
	s.Run(context.Background())

	assert.Equal(t, model.List{{Text: "x", Completed: true}}, s.Todos())
	assert.Contains(t, out.String(), "Toggled: x → [x] completed")
}

func TestSession_DefaultThemeIsEmoji(t *testing.T) {
	p := &scripted{t: t}
	s := New(jsonstore.New(filepath.Join(t.TempDir(), "todos.json"), nil), p, &bytes.Buffer{}, Options{})
	assert.Equal(t, ui.Emoji, s.theme)
}

func TestParseIndex(t *testing.T) {
	cases := []struct {
		choice string
		n      int
		want   int
		ok     bool
	}{
		{"1. ⬜ buy milk", 1, 0, true},
		{"3. ✅ x", 3, 2, true},
		{"2. ⬜ has. periods. inside", 2, 1, true},
		{"10. [x] ten", 10, 9, true},
		{"0. ⬜ zero", 3, 0, false},
		{"4. ⬜ past end", 3, 0, false},
		{"-1. ⬜ negative", 3, 0, false},
		{"x. ⬜ not a number", 3, 0, false},
		{"no period", 3, 0, false},
		{"", 3, 0, false},
		{" 1. padded", 3, 0, false},
	}
	for _, c := range cases {
		got, ok := ParseIndex(c.choice, make(model.List, c.n))
		assert.Equal(t, c.ok, ok, c.choice)
		if c.ok {
			assert.Equal(t, c.want, got, c.choice)
		}
	}
}
