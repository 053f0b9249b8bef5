package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette styles terminal output. A disabled palette returns text untouched.
type Palette struct {
	enabled bool
	title   lipgloss.Style
	rule    lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

// NewPalette builds the CLI palette. Pass enabled=false for --no-color.
func NewPalette(enabled bool) *Palette {
	return &Palette{
		enabled: enabled,
		title:   NewBold("6"),
		rule:    NewStyle("6"),
		ok:      NewStyle("2"),
		warn:    NewStyle("3"),
		err:     NewBold("1"),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func (p *Palette) render(s lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return s.Render(text)
}

func (p *Palette) Title(text string) string { return p.render(p.title, text) }
func (p *Palette) OK(text string) string    { return p.render(p.ok, text) }
func (p *Palette) Warn(text string) string  { return p.render(p.warn, text) }
func (p *Palette) Err(text string) string   { return p.render(p.err, text) }

// Banner frames header between two "=" rules as wide as the header.
func (p *Palette) Banner(header string) string {
	rule := p.render(p.rule, strings.Repeat("=", lipgloss.Width(header)))
	return rule + "\n" + p.Title(header) + "\n" + rule + "\n"
}
