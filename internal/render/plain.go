package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PlainText renders a view without any styling, the shape clipboard
// copies and plain pipes get.
func PlainText(view *VerbView) string {
	var b strings.Builder

	b.WriteString(view.Word)
	if view.IPA != "" {
		b.WriteString(` \` + view.IPA + `\`)
	}
	b.WriteString("  " + view.Marker)
	if view.Hint != "" {
		b.WriteString(" " + view.Hint)
	}
	b.WriteString("\n")

	if len(view.Participles) > 0 {
		parts := make([]string, 0, len(view.Participles))
		for _, p := range view.Participles {
			s := p.Text
			if p.IPA != "" {
				s += ` \` + p.IPA + `\`
			}
			parts = append(parts, s)
		}
		b.WriteString("Participes: " + strings.Join(parts, " / ") + "\n")
	}

	for _, tv := range view.Tenses {
		b.WriteString("\n" + tv.Tense.French() + "\n")
		maxw := 0
		for _, f := range tv.Forms {
			if w := runewidth.StringWidth(f.Text); w > maxw {
				maxw = w
			}
		}
		for _, f := range tv.Forms {
			b.WriteString("  " + runewidth.FillRight(f.Person, 11) + f.Text)
			if f.IPAEnding != "" {
				b.WriteString(strings.Repeat(" ", maxw-runewidth.StringWidth(f.Text)+2))
				b.WriteString("[" + f.IPAEnding + "]")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
