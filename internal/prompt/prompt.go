// Package prompt reads one answer at a time from the terminal.
//
// Each call runs a short inline Bubble Tea program and blocks until the user
// answers, aborts, or the terminal cannot be read.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("prompt cancelled")
	// ErrRead wraps failures of the terminal or the prompt program.
	ErrRead = errors.New("read input")
)

// Prompter is the pair of input primitives the session needs.
type Prompter interface {
	// Select returns one of options verbatim.
	Select(ctx context.Context, question string, options []string) (string, error)
	// Text returns one line of input verbatim.
	Text(ctx context.Context, question string) (string, error)
}

// Terminal implements Prompter on a terminal.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal returns a Terminal reading in and drawing on out. A nil in
// leaves input to Bubble Tea, which reads the controlling terminal even when
// stdin is redirected. A nil out means stdout.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{in: in, out: out}
}

func (t *Terminal) Select(ctx context.Context, question string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%w: no options for %q", ErrRead, question)
	}
	m, err := t.run(ctx, newSelectModel(question, options))
	if err != nil {
		return "", err
	}
	sm := m.(selectModel)
	if sm.closed {
		return "", fmt.Errorf("%w: input closed", ErrRead)
	}
	if sm.cancelled {
		return "", ErrCancelled
	}
	return sm.choice, nil
}

func (t *Terminal) Text(ctx context.Context, question string) (string, error) {
	m, err := t.run(ctx, newTextModel(question))
	if err != nil {
		return "", err
	}
	tm := m.(textModel)
	if tm.closed {
		return "", fmt.Errorf("%w: input closed", ErrRead)
	}
	if tm.cancelled {
		return "", ErrCancelled
	}
	return tm.value, nil
}

func (t *Terminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(t.out)}
	var in *eofReader
	if t.in != nil {
		in = &eofReader{r: t.in}
		opts = append(opts, tea.WithInput(in))
	}
	p := tea.NewProgram(m, opts...)
	if in != nil {
		in.onEOF = func() { p.Send(inputClosedMsg{}) }
	}
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return final, nil
}

// inputClosedMsg tells a prompt that no more input will arrive.
type inputClosedMsg struct{}

// eofReader reports the end of its reader once. The program stops reading
// at EOF without exiting, so the prompt has to be told.
type eofReader struct {
	r     io.Reader
	once  sync.Once
	onEOF func()
}

func (e *eofReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if errors.Is(err, io.EOF) && e.onEOF != nil {
		e.once.Do(e.onEOF)
	}
	return n, err
}
