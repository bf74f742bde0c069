package ingredient

import (
	"regexp"

	"recipe-ingest/internal/core/text"
	"recipe-ingest/internal/core/units"
)

var (
	numberPat = `(?:\d+\s+\d+/\d+|\d+/\d+|\d+(?:[.,]\d+)?` + text.GlyphClass + `?|` + text.GlyphClass + `)`
	amountPat = numberPat + `(?:\s*(?:-|–|—|\bto\b|\bor\b)\s*` + numberPat + `)?`
	unitPat   = units.Pattern()

	adverbPat   = alternation(adverbs)
	freeModPat  = `(?:(?:cut|sliced|torn|broken|chopped|diced)\s+into\s+[^,]+|plus\s+(?:more|extra)[^,]*|such\s+as\s+[^,]+)`
	modItemPat  = `(?:(?:` + adverbPat + `)\s+)*(?:` + modifierPattern() + `|` + freeModPat + `)`
	bareItemPat = `(?:(?:` + adverbPat + `)\s+)*` + alternation(bareModifiers)
	leadItemPat = `(?:(?:` + adverbPat + `)\s+)*` + alternation(leadingModifiers)
	joinPat     = `\s*(?:,|\band\b|\bor\b|&)\s*`
)

var (
	bulletRe    = regexp.MustCompile(`^(?:[-–—•·▪▢□☐✓✔*]+\s+|[•·▪▢□☐✓✔]+)`)
	footnoteRe  = regexp.MustCompile(`[*†‡§]+|[¹²³⁴⁵⁶⁷⁸⁹⁰]+|\[\d+\]`)
	spaceRunRe  = regexp.MustCompile(`\s{2,}`)
	digitRe     = regexp.MustCompile(`\d`)
	endsInQtyRe = regexp.MustCompile(`(?:\d|` + text.GlyphClass + `)$`)

	// sections
	bracketOnlyRe   = regexp.MustCompile(`^\[\s*([^\]]+?)\s*\]\s*:?$`)
	inlineSectionRe = regexp.MustCompile(`^\[\s*([^\]]+?)\s*\]\s*:?\s*(.+)$`)
	// parenthetical labels carry no digits so "(14 oz) can" stays an amount
	parenOnlyRe     = regexp.MustCompile(`^\(\s*([^()\d]+?)\s*\)\s*:?$`)
	inlineParenRe   = regexp.MustCompile(`^\(\s*([^()\d]+?)\s*\)\s*:?\s*(.+)$`)
	parenNoteRe     = regexp.MustCompile(`(?i)\b(?:optional|see|page|about|approx|divided|plus|to taste)\b`)
	forTheRe        = regexp.MustCompile(`(?i)^for\s+(?:the\s+)?[a-z][a-z\s&',/-]*:?$`)
	colonHeaderRe   = regexp.MustCompile(`^([^\d:]{1,40}):$`)

	sideNoteRe = regexp.MustCompile(`(?i)\s*\(([^)]*\b(?:page|optional|see|about)\b[^)]*)\)`)
	pageRefRe  = regexp.MustCompile(`(?i)[,;]?\s*\(?\s*see\s+(?:[^,()]*?\s)?(?:page|pg\.?|p\.)\s*\d+\s*\)?\s*\.?\s*$`)

	trailingModRe = regexp.MustCompile(`(?i),\s*(` + modItemPat + `(?:` + joinPat + modItemPat + `)*)\s*[.;]?\s*$`)
	bareModRe     = regexp.MustCompile(`(?i)\s+(` + bareItemPat + `)\s*[.;]?\s*$`)
	leadingModRe  = regexp.MustCompile(`(?i)^(` + leadItemPat + `(?:` + joinPat + leadItemPat + `)*)[,\s]+(\S.*)$`)

	alternativeRe = regexp.MustCompile(`(?i)^(.*?\S)\s+or\s+(\S.*)$`)

	wordNumberRe = regexp.MustCompile(`(?i)^(a\s+dozen|a\s+half|a\s+quarter|one[\s-]+half|one[\s-]+quarter|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|dozen|half|quarter|an?)\s+(.*)$`)
	andAHalfRe   = regexp.MustCompile(`(?i)^(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s+and\s+a\s+half\b\s*`)
	halfAnRe     = regexp.MustCompile(`(?i)^half\s+an?\s+`)

	// structural
	bakerRe      = regexp.MustCompile(`(?i)^(.+?)[,:]?\s+((?:\d+(?:\.\d+)?|\d*` + text.GlyphClass + `)\s*%)\s*(?:[–—:-]\s*)?(` + amountPat + `)\s*\(?\s*(` + unitPat + `)?\.?\s*\)?$`)
	standardRe   = regexp.MustCompile(`(?i)^(` + amountPat + `)\s*(?:\(([^)]*)\)\s*)?(` + unitPat + `)\.?(?:\s+of\b)?\s+(\S.*)$`)
	amountOnlyRe = regexp.MustCompile(`(?i)^(` + amountPat + `)\s*(\S.*)$`)
	partOfRe     = regexp.MustCompile(`(?i)^(` + alternation(partsOf) + `)\s+of\s+(?:(an?|the)\s+)?(?:(` + amountPat + `)\s+)?(\S.*)$`)
	unitOfRe     = regexp.MustCompile(`(?i)^(` + unitPat + `)\s+of\s+(\S.*)$`)

	parenRe       = regexp.MustCompile(`\s*\(([^)]*)\)`)
	instructionRe = regexp.MustCompile(`(?i)\b` + alternation(instructionWords) + `\b|°`)
)
