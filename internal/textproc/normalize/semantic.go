package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Semantic normalization rewrites written forms into spoken forms:
// currency amounts, currency with a scale word, and percentages.
// Order matters: currency-with-scale must run before simple currency,
// or "$10.3 billion" would be read as "$10.3" followed by "billion".
var (
	currencyScaleRegex  = regexp.MustCompile(`(?i)\$(\d+(?:\.\d+)?)\s*(billion|million|trillion|B|M|T)\b`)
	currencySimpleRegex = regexp.MustCompile(`\$(\d+(?:\.\d+)?)\b`)
	percentageRegex     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// normalizeSemantic applies the currency and percentage passes, in
// that order, to text.
func normalizeSemantic(text string) string {
	result := normalizeCurrencyWithScale(text)
	result = normalizeCurrencySimple(result)
	result = normalizePercentages(result)

	return result
}

func normalizeCurrencyWithScale(text string) string {
	return currencyScaleRegex.ReplaceAllStringFunc(text, func(match string) string {
		groups := currencyScaleRegex.FindStringSubmatch(match)

		amount, err := strconv.ParseFloat(groups[1], 64)
		if err != nil {
			return match
		}

		scale := strings.ToLower(groups[2])

		switch scale {
		case "b":
			scale = "billion"
		case "m":
			scale = "million"
		case "t":
			scale = "trillion"
		}

		return formatNumberForSpeech(amount) + " " + scale + " dollars"
	})
}

func normalizeCurrencySimple(text string) string {
	return currencySimpleRegex.ReplaceAllStringFunc(text, func(match string) string {
		groups := currencySimpleRegex.FindStringSubmatch(match)

		amount, err := strconv.ParseFloat(groups[1], 64)
		if err != nil {
			return match
		}

		return formatCurrencyForSpeech(amount)
	})
}

func normalizePercentages(text string) string {
	return percentageRegex.ReplaceAllStringFunc(text, func(match string) string {
		groups := percentageRegex.FindStringSubmatch(match)

		number, err := strconv.ParseFloat(groups[1], 64)
		if err != nil {
			return match
		}

		return formatNumberForSpeech(number) + " percent"
	})
}

// formatNumberForSpeech handles both integers ("ten") and decimals
// ("ten point three").
func formatNumberForSpeech(n float64) string {
	if math.Abs(n-math.Round(n)) < 0.0001 {
		return cardinal(int64(math.Round(n)))
	}

	return formatDecimalForSpeech(n)
}

// formatDecimalForSpeech reads the integer part as a cardinal and the
// fractional part digit by digit: 23.45 -> "twenty-three point four
// five".
func formatDecimalForSpeech(n float64) string {
	formatted := strconv.FormatFloat(n, 'f', 10, 64)
	formatted = strings.TrimRight(formatted, "0")

	parts := strings.SplitN(formatted, ".", 2)

	integerPart, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		integerPart = 0
	}

	integerWords := cardinal(integerPart)

	if len(parts) < 2 || parts[1] == "" {
		return integerWords
	}

	decimalWords := make([]string, 0, len(parts[1]))

	for _, digit := range parts[1] {
		if digit < '0' || digit > '9' {
			continue
		}

		decimalWords = append(decimalWords, digitWords[digit-'0'])
	}

	if len(decimalWords) == 0 {
		return integerWords
	}

	return integerWords + " point " + strings.Join(decimalWords, " ")
}

// formatCurrencyForSpeech reads an amount as dollars and cents:
// 23.45 -> "twenty-three dollars and forty-five cents".
func formatCurrencyForSpeech(amount float64) string {
	dollars := int64(math.Floor(amount))
	cents := int64(math.Round((amount - math.Floor(amount)) * 100))

	dollarWords := cardinal(dollars)
	centWords := cardinal(cents)

	switch {
	case dollars == 0 && cents == 0:
		return "zero dollars"
	case dollars == 0 && cents == 1:
		return centWords + " cent"
	case dollars == 0:
		return centWords + " cents"
	case dollars == 1 && cents == 0:
		return dollarWords + " dollar"
	case cents == 0:
		return dollarWords + " dollars"
	case cents == 1:
		return dollarWords + " dollars and " + centWords + " cent"
	default:
		return dollarWords + " dollars and " + centWords + " cents"
	}
}
