package normalize

import "strings"

// Cardinal word tables, following the teacher's integerToWords layout
// (internal/tts/text/preprocessing.go) but extended through trillions
// and with hyphenated compounds ("twenty-three" rather than "twenty
// three"), which the spoken-currency and percentage phrasing requires.
var (
	onesWords = []string{
		"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	}
	teenWords = []string{
		"ten", "eleven", "twelve", "thirteen", "fourteen",
		"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	tensWords = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	scaleWords = []string{"", "thousand", "million", "billion", "trillion"}

	// digitWords is used for digit-by-digit decimal reading, where
	// "zero" through "nine" are spoken individually rather than as a
	// cardinal number.
	digitWords = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	}
)

// cardinal converts n into its spoken English form, grouped by
// thousand/million/billion/trillion scale words.
func cardinal(n int64) string {
	if n == 0 {
		return "zero"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	groups := splitGroups(n)

	var parts []string

	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		if group == 0 {
			continue
		}

		part := threeDigitWords(group)
		if scaleWords[i] != "" {
			part += " " + scaleWords[i]
		}

		parts = append(parts, part)
	}

	result := strings.Join(parts, " ")
	if negative {
		result = "negative " + result
	}

	return result
}

// splitGroups splits n into base-1000 groups, least-significant first:
// groups[0] is units, groups[1] is thousands, and so on through
// trillions. Digits above the trillions group are discarded, so a
// value of a quadrillion or more loses its highest digits.
func splitGroups(n int64) []int64 {
	groups := make([]int64, len(scaleWords))

	for i := range groups {
		groups[i] = n % 1000
		n /= 1000
	}

	return groups
}

// threeDigitWords converts a value in [0, 999] into words.
func threeDigitWords(n int64) string {
	var parts []string

	hundreds := n / 100
	remainder := n % 100

	if hundreds > 0 {
		parts = append(parts, onesWords[hundreds]+" hundred")
	}

	if remainder > 0 {
		parts = append(parts, twoDigitWords(remainder))
	}

	return strings.Join(parts, " ")
}

// twoDigitWords converts a value in [0, 99] into words, hyphenating
// compounds like "twenty-three".
func twoDigitWords(n int64) string {
	switch {
	case n < 10:
		return onesWords[n]
	case n < 20:
		return teenWords[n-10]
	default:
		tens := tensWords[n/10]
		ones := n % 10

		if ones == 0 {
			return tens
		}

		return tens + "-" + onesWords[ones]
	}
}
