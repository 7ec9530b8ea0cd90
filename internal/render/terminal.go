package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/cbueth/conjugateur-fr/internal/colorize"
	"github.com/cbueth/conjugateur-fr/internal/config"
	"github.com/cbueth/conjugateur-fr/internal/conjug"
)

// Palette-independent styles
var (
	wordStyle       = lipgloss.NewStyle().Bold(true)
	hintStyle       = lipgloss.NewStyle().Italic(true).Faint(true)
	tenseTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	personStyle     = lipgloss.NewStyle().Faint(true)
	stemStyle       = lipgloss.NewStyle().Bold(true)
	labelStyle      = lipgloss.NewStyle().Faint(true)
)

// TermRenderer renders verb views for the terminal with the configured
// palette.
type TermRenderer struct {
	palette   config.Palette
	lemmaIPA  lipgloss.Style
	ipaEnding lipgloss.Style
}

// NewTermRenderer builds a renderer over the palette.
func NewTermRenderer(p config.Palette) *TermRenderer {
	return &TermRenderer{
		palette:   p,
		lemmaIPA:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Purple)).Italic(true),
		ipaEnding: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Salmon)).Italic(true),
	}
}

// Render draws the full analysis of one verb.
func (r *TermRenderer) Render(view *VerbView) string {
	var b strings.Builder

	b.WriteString(wordStyle.Render(view.Word))
	if view.IPA != "" {
		b.WriteString(" " + r.lemmaIPA.Render(`\`+view.IPA+`\`))
	}
	b.WriteString("  " + view.Marker)
	if view.Hint != "" {
		b.WriteString(" " + hintStyle.Render(view.Hint))
	}
	b.WriteString("\n")

	if parts := r.renderParticiples(view); parts != "" {
		b.WriteString(labelStyle.Render("Participes:") + " " + parts + "\n")
	}

	for _, tv := range view.Tenses {
		b.WriteString("\n" + tenseTitleStyle.Render(tv.Tense.French()) + "\n")
		b.WriteString(r.renderTense(tv))
	}
	return b.String()
}

func (r *TermRenderer) renderParticiples(view *VerbView) string {
	base, hi := r.tenseStyles(conjug.Present)
	parts := make([]string, 0, len(view.Participles))
	for _, p := range view.Participles {
		s := colorForm(p.Text, p.Classes, base, hi)
		if p.IPA != "" {
			s += " " + r.lemmaIPA.Render(`\`+p.IPA+`\`)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " / ")
}

func (r *TermRenderer) renderTense(tv TenseView) string {
	maxw := 0
	for _, f := range tv.Forms {
		if w := runewidth.StringWidth(f.Text); w > maxw {
			maxw = w
		}
	}

	base, hi := r.tenseStyles(tv.Tense)
	var b strings.Builder
	for _, f := range tv.Forms {
		b.WriteString("  " + personStyle.Render(runewidth.FillRight(f.Person, 11)))
		b.WriteString(colorForm(f.Text, f.Classes, base, hi))
		if f.IPAEnding != "" {
			b.WriteString(strings.Repeat(" ", maxw-runewidth.StringWidth(f.Text)+2))
			b.WriteString(r.ipaEnding.Render("[" + f.IPAEnding + "]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *TermRenderer) tenseStyles(t conjug.Tense) (lipgloss.Style, lipgloss.Style) {
	color, hi := tenseColors(r.palette, t)
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	hiStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(hi)).Bold(true).Underline(true)
	return base, hiStyle
}

// colorForm styles each classification run: stem characters bold in the
// default color, irregular characters in the tense highlight, the rest
// in the tense color.
func colorForm(text string, classes []colorize.CharClass, base, hi lipgloss.Style) string {
	var b strings.Builder
	for _, run := range classRuns(text, classes) {
		switch run.Class {
		case colorize.ClassStem:
			b.WriteString(stemStyle.Render(run.Text))
		case colorize.ClassIrregular:
			b.WriteString(hi.Render(run.Text))
		default:
			b.WriteString(base.Render(run.Text))
		}
	}
	return b.String()
}
