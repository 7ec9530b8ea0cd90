package render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/cbueth/conjugateur-fr/internal/audiofrench"
	"github.com/cbueth/conjugateur-fr/internal/colorize"
	"github.com/cbueth/conjugateur-fr/internal/config"
	"github.com/cbueth/conjugateur-fr/internal/conjug"
)

const (
	// PronunciationGuideURL is the Wiktionary IPA guide linked from
	// every IPA cell.
	PronunciationGuideURL = "https://fr.wiktionary.org/wiki/Annexe:Prononciation/fran%C3%A7ais"
	// LingoliaTensesURL explains the indicative tenses.
	LingoliaTensesURL = "https://francais.lingolia.com/fr/grammaire/les-temps"

	wiktionaryConjBase = "https://fr.wiktionary.org/wiki/Conjugaison:fran%C3%A7ais/"

	// Spans pin kerning so letters keep their metrics when the color
	// switches mid-word.
	kerningCSS = ";font-kerning:none;font-feature-settings:\"kern\" 0"
)

// WiktionaryURL returns the conjugation page for an infinitive.
func WiktionaryURL(infinitive string) string {
	return wiktionaryConjBase + url.PathEscape(infinitive)
}

// HTMLExporter writes the static conjugation table page.
type HTMLExporter struct {
	palette    config.Palette
	audioLinks bool
	tmpl       *template.Template
}

// NewHTMLExporter builds an exporter. audioLinks wraps present,
// imparfait and futur forms in AudioFrench playback links.
func NewHTMLExporter(palette config.Palette, audioLinks bool) *HTMLExporter {
	return &HTMLExporter{
		palette:    palette,
		audioLinks: audioLinks,
		tmpl:       template.Must(template.New("page").Parse(pageTemplate)),
	}
}

type htmlVerb struct {
	Infinitive  template.HTML
	Marker      string
	Hint        string
	Participles template.HTML
	Tenses      []template.HTML
}

type htmlPage struct {
	GuideURL  string
	TensesURL string
	IndexURL  string
	Verbs     []htmlVerb
}

// Write renders the page for the given views.
func (e *HTMLExporter) Write(w io.Writer, views []*VerbView) error {
	page := htmlPage{
		GuideURL:  PronunciationGuideURL,
		TensesURL: LingoliaTensesURL,
		IndexURL:  audiofrench.VerbIndexURL,
	}
	for _, v := range views {
		hv := htmlVerb{
			Infinitive:  e.infinitiveCell(v),
			Marker:      v.Marker,
			Hint:        v.Hint,
			Participles: e.participlesCell(v),
		}
		byTense := make(map[conjug.Tense]TenseView, len(v.Tenses))
		for _, tv := range v.Tenses {
			byTense[tv.Tense] = tv
		}
		for _, tense := range conjug.Tenses {
			tv, ok := byTense[tense]
			if !ok {
				hv.Tenses = append(hv.Tenses, "")
				continue
			}
			hv.Tenses = append(hv.Tenses, e.tenseCell(v.Word, tv))
		}
		page.Verbs = append(page.Verbs, hv)
	}
	return e.tmpl.Execute(w, page)
}

// spanForm emits one span per classification run: stem characters in
// near-black bold, irregular characters underlined in the highlight
// color, the rest in the tense color.
func (e *HTMLExporter) spanForm(text string, classes []colorize.CharClass, color, hi string) string {
	var b strings.Builder
	for _, run := range classRuns(text, classes) {
		var style string
		switch run.Class {
		case colorize.ClassStem:
			style = "color:#111827;font-weight:bold" + kerningCSS
		case colorize.ClassIrregular:
			style = "color:" + hi +
				";font-weight:bold;text-decoration:underline;text-decoration-thickness:1px;text-underline-offset:2px" +
				kerningCSS
		default:
			style = "color:" + color + ";font-weight:bold" + kerningCSS
		}
		fmt.Fprintf(&b, "<span style='%s'>%s</span>", style, template.HTMLEscapeString(run.Text))
	}
	return b.String()
}

func (e *HTMLExporter) tenseCell(word string, tv TenseView) template.HTML {
	color, hi := tenseColors(e.palette, tv.Tense)
	rows := make([]string, 0, len(tv.Forms))
	for _, f := range tv.Forms {
		form := e.spanForm(f.Text, f.Classes, color, hi)
		if e.audioLinks && audioTense(tv.Tense) {
			u := template.HTMLEscapeString(audiofrench.URL(word, f.Raw))
			form = fmt.Sprintf("<a class='audiofrench-link' href='%s' data-audio-url='%s'"+
				" role='button' tabindex='0' target='_blank' rel='noopener noreferrer'"+
				" title='Écouter (AudioFrench)'>%s</a>", u, u, form)
		}
		ipa := ""
		if f.IPAEnding != "" {
			ipa = fmt.Sprintf("<a class='ipa-link'%s style='color:%s;font-style:italic'>[%s]</a>",
				guideAttr(), e.palette.Salmon, template.HTMLEscapeString(f.IPAEnding))
		}
		rows = append(rows, "<td>"+form+"</td><td>"+ipa+"</td>")
	}
	return template.HTML("<table class='tense-table'><tr>" +
		strings.Join(rows, "</tr><tr>") + "</tr></table>")
}

func (e *HTMLExporter) infinitiveCell(v *VerbView) template.HTML {
	esc := template.HTMLEscapeString
	var b strings.Builder
	b.WriteString(esc(v.Word))

	audioAttrs := ""
	if v.Audio != "" {
		audioAttrs = fmt.Sprintf(" data-audio-url='%s' role='button' tabindex='0'"+
			" title='Écouter la prononciation'", esc(v.Audio))
		fmt.Fprintf(&b, "<span class='speaker clickable-audio'%s aria-label='Écouter'>🔊</span>", audioAttrs)
	}
	if v.IPA != "" {
		class := ""
		if v.Audio != "" {
			class = " class='clickable-audio'"
		}
		fmt.Fprintf(&b, "<br><span%s%s style='color:%s;font-style:italic'>\\%s\\</span>",
			class, audioAttrs, e.palette.Purple, esc(v.IPA))
	}
	fmt.Fprintf(&b, "<br><a class='wiktionary-link' href='%s' target='_blank'"+
		" rel='noopener noreferrer'>Wiktionnaire</a>", esc(WiktionaryURL(v.Word)))
	return template.HTML(b.String())
}

// participlesCell stacks the participles, colored with the stem and
// shared-prefix rules only.
func (e *HTMLExporter) participlesCell(v *VerbView) template.HTML {
	parts := make([]string, 0, len(v.Participles))
	for _, p := range v.Participles {
		s := "<span style='font-weight:bold'>" +
			e.spanForm(p.Text, p.Classes, e.palette.Red, e.palette.RedHi) + "</span>"
		if p.IPA != "" {
			s += fmt.Sprintf("<br><a class='ipa-link'%s style='color:%s;font-style:italic'>\\%s\\</a>",
				guideAttr(), e.palette.Purple, template.HTMLEscapeString(p.IPA))
		}
		parts = append(parts, s)
	}
	return template.HTML(strings.Join(parts, "<br>"))
}

// audioTense reports whether AudioFrench carries recordings for the
// tense. The site has no passé simple recordings.
func audioTense(t conjug.Tense) bool {
	return t == conjug.Present || t == conjug.Imparfait || t == conjug.Futur
}

func guideAttr() string {
	return " href='" + PronunciationGuideURL + "' target='_blank'" +
		" rel='noopener noreferrer' title='Guide de prononciation (IPA)'"
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Conjugaison des verbes français</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; font-size: 18px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 12px; text-align: left; vertical-align: top; }
th { background-color: #f2f2f2; font-weight: bold; }
.verb { font-weight: bold; font-size: 20px; }
.irregularity { font-size: 20px; display: block; margin-top: 5px; }
.wiktionary-link { font-size: 12px; font-weight: normal; }
.speaker { margin-left: 6px; font-weight: normal; }
.clickable-audio { cursor: pointer; user-select: none; }
.clickable-audio:hover { text-decoration: underline; }
.speaker.clickable-audio:hover { text-decoration: none; }
.ipa-link { text-decoration: none; }
.ipa-link:hover { text-decoration: underline; }
.audiofrench-link { text-decoration: none; color: inherit; cursor: pointer; }
.audiofrench-link:hover { text-decoration: underline; }
.tense-table td:nth-child(2) { font-kerning: none; font-feature-settings: "kern" 0; }
.tense-table { font-size: 14px; border-collapse: collapse; }
.tense-table td { padding: 3px 6px; border: none; text-align: left; }
.tense-table td:first-child { width: 35%; }
.tense-table td:last-child { width: 65%; font-style: italic; }
.participles { text-align: center; font-size: 16px; }
</style>
<script>
(function () {
    let currentAudio = null;
    function playUrl(url) {
        if (!url) return;
        try {
            if (currentAudio) currentAudio.pause();
            currentAudio = new Audio(url);
            currentAudio.play();
        } catch (e) {
            console.warn("Audio playback failed:", e);
        }
    }
    document.addEventListener("click", function (e) {
        const el = e.target.closest("[data-audio-url]");
        if (!el) return;
        e.preventDefault();
        playUrl(el.dataset.audioUrl);
    });
    document.addEventListener("keydown", function (e) {
        if (e.key !== "Enter" && e.key !== " ") return;
        const el = document.activeElement;
        if (!el || !el.dataset || !el.dataset.audioUrl) return;
        e.preventDefault();
        playUrl(el.dataset.audioUrl);
    });
})();
</script>
</head>
<body>
<h1>Conjugaison des verbes français</h1>
<p><a href="{{.GuideURL}}" target="_blank" rel="noopener noreferrer">Guide de prononciation (IPA)</a></p>
<p><a href="{{.TensesURL}}" target="_blank" rel="noopener noreferrer">Les temps de l’indicatif – La conjugaison française</a></p>
<p><strong>Légende :</strong> 🟢 Régulier | 🔴 Très irrégulier | 🟡 Irrégularité moyenne | 🟠 Radical irrégulier / changement de radical<br><small>Astuce : cliquez sur 🔊 (ou sur l'IPA sous l'infinitif) pour écouter. Cliquez sur l'IPA dans les tableaux pour ouvrir le guide. Cliquez sur une forme conjuguée (présent / imparfait / futur) pour écouter via <a href="{{.IndexURL}}" target="_blank" rel="noopener noreferrer">AudioFrench.com</a>.</small></p>
<table>
<thead>
<tr>
<th>Verbe / Infinitif</th>
<th>Participes<br><small>(présent / passé)</small></th>
<th>Présent</th>
<th>Imparfait</th>
<th>Passé simple</th>
<th>Futur simple</th>
</tr>
</thead>
<tbody>
{{range .Verbs}}<tr>
<td class="verb">{{.Infinitive}}<br><span class="irregularity"{{if .Hint}} title="{{.Hint}}"{{end}}>{{.Marker}}</span></td>
<td class="participles">{{.Participles}}</td>
{{range .Tenses}}<td>{{.}}</td>
{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`
