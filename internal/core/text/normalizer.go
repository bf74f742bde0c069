// Package text holds the string clean-up shared by every stage of the
// ingestion pipeline: name casing, unicode fraction rendering and the
// whitespace/quote normalisation applied to raw scraped or OCR'd lines.
package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// connectors stay lower-case unless they open the name.
var connectors = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "for": true, "to": true, "in": true, "on": true,
	"at": true, "by": true, "with": true,
}

const punctuationCutset = ",.;:"

var asciiReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u2009", " ", // thin space
	"\u202f", " ", // narrow no-break space
	"\u2007", " ",
	"\t", " ",
	"\u2018", "'", "\u2019", "'", "\u201a", "'",
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`,
	"\u2044", "/", // fraction slash
	"\u2215", "/", // division slash
)

// Clean applies NFC normalisation, maps typographic spaces, quotes and
// slashes to ASCII and collapses runs of whitespace.
func Clean(s string) string {
	s = norm.NFC.String(s)
	s = asciiReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// FoldAccents lower-cases s and strips combining marks, so "Jalapeño"
// becomes "jalapeno".
func FoldAccents(s string) string {
	// transformer chains carry state, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// CleanName collapses whitespace, strips surrounding ",.;:" and title-cases
// every word except interior connectors. CleanName(CleanName(s)) == CleanName(s).
func CleanName(s string) string {
	s = Clean(s)
	s = strings.Trim(s, punctuationCutset+" ")
	if s == "" {
		return ""
	}

	// cases.Caser is stateful, one per call
	title := cases.Title(language.English)
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && connectors[lower] {
			words[i] = lower
			continue
		}
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}

var glyphs = map[string]string{
	"1/2": "½",
	"1/3": "⅓", "2/3": "⅔",
	"1/4": "¼", "3/4": "¾",
	"1/5": "⅕", "2/5": "⅖", "3/5": "⅗", "4/5": "⅘",
	"1/6": "⅙", "5/6": "⅚",
	"1/8": "⅛", "3/8": "⅜", "5/8": "⅝", "7/8": "⅞",
}

// GlyphValues maps each fraction glyph to its numeric value.
var GlyphValues = map[rune]float64{
	'½': 1.0 / 2,
	'⅓': 1.0 / 3, '⅔': 2.0 / 3,
	'¼': 1.0 / 4, '¾': 3.0 / 4,
	'⅕': 1.0 / 5, '⅖': 2.0 / 5, '⅗': 3.0 / 5, '⅘': 4.0 / 5,
	'⅙': 1.0 / 6, '⅚': 5.0 / 6,
	'⅛': 1.0 / 8, '⅜': 3.0 / 8, '⅝': 5.0 / 8, '⅞': 7.0 / 8,
}

// GlyphClass is a regexp character class matching any fraction glyph.
const GlyphClass = `[½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞]`

// IsGlyph reports whether r is a unicode vulgar fraction.
func IsGlyph(r rune) bool {
	_, ok := GlyphValues[r]
	return ok
}

var (
	slashFractionRe = regexp.MustCompile(`(?:(\d+)(?:\s+|-))?(\d+)/(\d+)`)
	decimalRe       = regexp.MustCompile(`\d*\.\d+`)
	spacedGlyphRe   = regexp.MustCompile(`(\d)\s+(` + GlyphClass + `)`)

	repeatingThird      = regexp.MustCompile(`^3{2,}4?$`)
	repeatingTwoThirds  = regexp.MustCompile(`^6{2,}7?$|^67$`)
	repeatingSixth      = regexp.MustCompile(`^16{1,}7?$|^17$`)
	repeatingFiveSixths = regexp.MustCompile(`^83{1,}4?$`)
)

var decimalGlyphs = map[string]string{
	"5": "½", "50": "½", "500": "½",
	"25": "¼", "250": "¼",
	"75": "¾", "750": "¾",
	"125": "⅛", "375": "⅜", "625": "⅝", "875": "⅞",
}

func decimalGlyph(frac string) (string, bool) {
	if g, ok := decimalGlyphs[frac]; ok {
		return g, true
	}
	switch {
	case repeatingThird.MatchString(frac):
		return "⅓", true
	case repeatingTwoThirds.MatchString(frac):
		return "⅔", true
	case repeatingSixth.MatchString(frac):
		return "⅙", true
	case repeatingFiveSixths.MatchString(frac):
		return "⅚", true
	}
	return "", false
}

// NormalizeFractions rewrites slash fractions, mixed numbers and their decimal
// equivalents as unicode glyphs: "1/2" and "0.5" become "½", "1 1/2" becomes
// "1½". Only standalone numeric tokens are touched, so "0.55" and "5/16" pass
// through unchanged.
func NormalizeFractions(s string) string {
	s = replaceStandalone(s, slashFractionRe, func(m []string) (string, bool) {
		g, ok := glyphs[m[2]+"/"+m[3]]
		if !ok {
			return "", false
		}
		return m[1] + g, true
	})
	s = replaceStandalone(s, decimalRe, func(m []string) (string, bool) {
		whole, frac, _ := strings.Cut(m[0], ".")
		g, ok := decimalGlyph(frac)
		if !ok {
			return "", false
		}
		if strings.Trim(whole, "0") == "" {
			return g, true
		}
		return whole + g, true
	})
	return spacedGlyphRe.ReplaceAllString(s, "$1$2")
}

// replaceStandalone rewrites matches of re that are not embedded in a larger
// number or word (no adjacent digit or letter, no '.', '/' or ',' followed by a
// digit) and not followed by '%': percentages keep their decimal form.
func replaceStandalone(s string, re *regexp.Regexp, repl func(m []string) (string, bool)) string {
	idx := re.FindAllStringSubmatchIndex(s, -1)
	if idx == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, loc := range idx {
		start, end := loc[0], loc[1]
		if !standalone(s, start, end) {
			continue
		}
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[loc[2*g]:loc[2*g+1]]
			}
		}
		out, ok := repl(groups)
		if !ok {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(out)
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func standalone(s string, start, end int) bool {
	if start > 0 {
		prev := s[start-1]
		if isDigit(prev) || isLetter(prev) || prev == '.' || prev == '/' {
			return false
		}
	}
	if end < len(s) {
		next := s[end]
		if isDigit(next) || next == '/' {
			return false
		}
		if strings.HasPrefix(strings.TrimLeft(s[end:], " "), "%") {
			return false
		}
		if (next == '.' || next == ',') && end+1 < len(s) && isDigit(s[end+1]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
