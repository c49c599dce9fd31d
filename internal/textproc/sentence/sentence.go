// Package sentence splits normalized text into sentences, with smart
// boundary detection that leaves abbreviations, initials, and decimal
// numbers intact.
package sentence

import (
	"strings"
	"unicode"
)

// commonAbbreviations lists words whose trailing period does not end
// a sentence.
var commonAbbreviations = []string{
	"Dr", "Mr", "Mrs", "Ms", "Prof", "Sr", "Jr", "Ph.D", "M.D", "B.A", "M.A", "B.S", "M.S", "etc",
	"i.e", "e.g", "vs", "Inc", "Corp", "Ltd", "Ave", "St", "Rd", "Blvd", "Mt",
}

// Split breaks text into sentences. "!" and "?" always terminate a
// sentence; "." terminates only when it is not part of a known
// abbreviation or initial, not part of a decimal number, and is
// followed by whitespace and then an uppercase letter (or end of
// text).
func Split(text string) []string {
	chars := []rune(text)

	var (
		sentences []string
		current   []rune
	)

	for i := 0; i < len(chars); i++ {
		ch := chars[i]
		current = append(current, ch)

		if ch != '.' && ch != '!' && ch != '?' {
			continue
		}

		nextIsSpace := i+1 < len(chars) && unicode.IsSpace(chars[i+1])
		afterSpaceIsCapital := i+2 < len(chars) && isASCIIUpper(chars[i+2])
		isAbbrev := ch == '.' && isAbbreviation(chars, i)
		prevIsDigit := i > 0 && isASCIIDigit(chars[i-1])
		nextIsDigit := i+1 < len(chars) && isASCIIDigit(chars[i+1])
		isDecimal := ch == '.' && prevIsDigit && nextIsDigit

		endsSentence := !isAbbrev && !isDecimal && ((nextIsSpace && afterSpaceIsCapital) || ch != '.')
		if !endsSentence {
			continue
		}

		if s := strings.TrimSpace(string(current)); s != "" {
			sentences = append(sentences, s)
		}

		current = current[:0]
	}

	if s := strings.TrimSpace(string(current)); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// isAbbreviation reports whether the period at periodPos in chars is
// likely part of an abbreviation or a single-letter initial, by
// looking at the word immediately preceding it.
func isAbbreviation(chars []rune, periodPos int) bool {
	before := chars[:periodPos]

	lastWordStart := -1

	for i := len(before) - 1; i >= 0; i-- {
		if unicode.IsSpace(before[i]) {
			lastWordStart = i

			break
		}
	}

	var word []rune
	if lastWordStart >= 0 {
		word = before[lastWordStart+1:]
	} else {
		word = before
	}

	wordStr := string(word)

	for _, abbrev := range commonAbbreviations {
		if strings.EqualFold(wordStr, abbrev) {
			return true
		}
	}

	return len(word) == 1 && isASCIIUpper(word[0])
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
