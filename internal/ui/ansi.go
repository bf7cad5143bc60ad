package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes session messages to a terminal, styled with Lip Gloss.
// Styles degrade to plain text when w is not a terminal or color is off.
type Printer struct {
	w io.Writer

	title   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter returns a Printer for w.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:       w,
		title:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		muted:   r.NewStyle().Faint(true),
	}
}

func (p *Printer) Plain(msg string)   { fmt.Fprintln(p.w, msg) }
func (p *Printer) Title(msg string)   { fmt.Fprintln(p.w, p.title.Render(msg)) }
func (p *Printer) Success(msg string) { fmt.Fprintln(p.w, p.success.Render(msg)) }
func (p *Printer) Warn(msg string)    { fmt.Fprintln(p.w, p.warn.Render(msg)) }
func (p *Printer) Muted(msg string)   { fmt.Fprintln(p.w, p.muted.Render(msg)) }
