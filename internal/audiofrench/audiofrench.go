// Package audiofrench builds links into audiofrench.com's verb sound
// library, which indexes recordings under ASCII-folded verb and form
// names.
package audiofrench

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// BaseURL is the root of the per-verb sound directories.
	BaseURL = "http://www.audiofrench.com/verbs/sounds"
	// VerbIndexURL lists the verbs the site carries.
	VerbIndexURL = "http://www.audiofrench.com/verbs/verbes_index.htm"
)

var (
	foldReplacer = strings.NewReplacer(" ", " ", "’", "'", "œ", "oe", "Œ", "Oe")
	ilRe         = regexp.MustCompile(`^il/elle/on\s+`)
	ilsRe        = regexp.MustCompile(`^ils/elles\s+`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Normalize folds text to the site's ASCII spelling: NBSP to space,
// curly apostrophe to straight, œ ligature expanded, then NFKD with the
// combining marks dropped.
func Normalize(text string) string {
	text = foldReplacer.Replace(text)
	text = norm.NFKD.String(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Slug returns the per-verb directory name for an infinitive.
func Slug(infinitive string) string {
	return strings.ToLower(strings.TrimSpace(Normalize(infinitive)))
}

// FormFilename returns the file name (without extension) for a
// conjugated form. Wiktextract merges pronouns like "il/elle/on"; the
// site stores one recording per pronoun, so the first one stands in.
func FormFilename(form string) string {
	text := strings.ToLower(strings.TrimSpace(Normalize(form)))
	text = ilRe.ReplaceAllString(text, "il ")
	text = ilsRe.ReplaceAllString(text, "ils ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.ReplaceAll(text, " ", "_")
}

// URL returns the mp3 address for a conjugated form of an infinitive.
func URL(infinitive, form string) string {
	slug := escape(Slug(infinitive), "")
	filename := escape(FormFilename(form), "'!()")
	return BaseURL + "/" + slug + "/" + filename + ".mp3"
}

// escape percent-encodes every byte outside unreserved characters and
// the extra set, uppercase hex.
func escape(s, extra string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '.' || c == '_' || c == '~':
			b.WriteByte(c)
		case strings.IndexByte(extra, c) >= 0:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
