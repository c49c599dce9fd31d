// Package normalize rewrites input text into a form safe to hand to a
// speech engine: written-form numbers, currency, and percentages are
// expanded into spoken words, and punctuation that varies by source
// (smart quotes, en/em dashes, ellipsis glyphs, non-breaking spaces)
// is folded onto a small stable set before the text is put through
// Unicode NFC normalization.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizedText is the outcome of normalizing one piece of text.
type NormalizedText struct {
	// Original is the text exactly as given.
	Original string
	// Normalized is the text after semantic and Unicode normalization.
	Normalized string
	// CharMap maps each rune index of the space-collapsed text to the
	// rune index in the semantically-normalized intermediate it was
	// produced from. It is built before NFC composition, so it lines up
	// with the runes of Normalized only where NFC merged no runes.
	// It does not track positions through the semantic-expansion pass
	// (a currency amount that expands into ten words has no single
	// corresponding input position), only through the character-level
	// Unicode folding pass.
	CharMap []int
}

// Normalize runs the full two-stage pipeline: semantic expansion
// (currency, percentages, number words) followed by Unicode folding
// and NFC normalization.
func Normalize(text string) NormalizedText {
	semantic := normalizeSemantic(text)
	folded, charMap := foldUnicode(semantic)
	collapsed, charMap := collapseSpaces(folded, charMap)

	return NormalizedText{
		Original:   text,
		Normalized: norm.NFC.String(collapsed),
		CharMap:    charMap,
	}
}

// Simple runs the pipeline and returns only the normalized text,
// mirroring the convenience wrapper the original normalizer offers
// for callers that don't need the character map.
func Simple(text string) string {
	return Normalize(text).Normalized
}

const (
	leftDoubleQuote       = '\u201c'
	rightDoubleQuote      = '\u201d'
	doubleLowNineQuote    = '\u201e'
	doubleHighReversed9   = '\u201f'
	leftSingleQuote       = '\u2018'
	rightSingleQuote      = '\u2019'
	modifierApostrophe    = '\u02bc'
	modifierTurnedComma   = '\u02bb'
	modifierReversedComma = '\u02bd'
	modifierLetterMod     = '\u02c8'
	modifierLetterAcute   = '\u02ca'
	modifierLetterGrave   = '\u02cb'
	graveAccent           = '`'
	acuteAccent           = '\u00b4'
	enDash                = '\u2013'
	emDash                = '\u2014'
	nbsp                  = '\u00a0'
	ellipsisChar          = '\u2026'
	softHyphen            = '\u00ad'
)

// foldUnicode walks text rune by rune, folding punctuation variants
// onto a stable ASCII-ish set and dropping soft hyphens. It returns
// the folded text along with a map from each output rune to the rune
// index in text it came from.
func foldUnicode(text string) (string, []int) {
	input := []rune(text)

	var (
		out     strings.Builder
		charMap = make([]int, 0, len(input))
	)

	for i, r := range input {
		switch r {
		case leftDoubleQuote, rightDoubleQuote, doubleLowNineQuote, doubleHighReversed9:
			out.WriteRune('"')
			charMap = append(charMap, i)
		case leftSingleQuote, rightSingleQuote, modifierApostrophe, modifierTurnedComma,
			modifierReversedComma, modifierLetterMod, modifierLetterAcute, modifierLetterGrave,
			graveAccent, acuteAccent:
			out.WriteRune('\'')
			charMap = append(charMap, i)
		case enDash, emDash:
			out.WriteRune('-')
			charMap = append(charMap, i)
		case nbsp:
			out.WriteRune(' ')
			charMap = append(charMap, i)
		case ellipsisChar:
			out.WriteString("...")
			charMap = append(charMap, i, i, i)
		case softHyphen:
			// Dropped: contributes no output rune.
		default:
			out.WriteRune(r)
			charMap = append(charMap, i)
		}
	}

	return out.String(), charMap
}

// collapseSpaces folds runs of consecutive ASCII spaces down to a
// single space, keeping the character-map entry of the first space in
// each run.
func collapseSpaces(text string, charMap []int) (string, []int) {
	input := []rune(text)

	var (
		out        strings.Builder
		collapsed  = make([]int, 0, len(input))
		inSpaceRun bool
	)

	for i, r := range input {
		if r == ' ' {
			if inSpaceRun {
				continue
			}

			inSpaceRun = true
		} else {
			inSpaceRun = false
		}

		out.WriteRune(r)
		collapsed = append(collapsed, charMap[i])
	}

	return out.String(), collapsed
}
