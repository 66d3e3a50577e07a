package domain

import "strings"

const (
	cardNumberDigits   = 16
	cardGroupSize      = 4
	cardGroupSeparator = "."
	securityCodeDigits = 3
)

var networksByPrefix = map[string]CardNetwork{
	"1111": NetworkMister,
	"2222": NetworkVista,
	"3333": NetworkDaciolo,
}

// ClassifyCard maps the first four digits of a (possibly partial or formatted)
// card number to a network. Fewer than four digits, or an unknown prefix,
// yields the unclassified zero value.
func ClassifyCard(number string) CardNetwork {
	digits := stripSeparators(number)
	if len(digits) < cardGroupSize {
		return ""
	}
	return networksByPrefix[digits[:cardGroupSize]]
}

// FormatCardNumber groups digits in fours joined by ".": "1111.2222.33".
func FormatCardNumber(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%cardGroupSize == 0 {
			b.WriteString(cardGroupSeparator)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LastFour returns the trailing four digits of a card number for logs.
func LastFour(number string) string {
	digits := stripSeparators(number)
	if len(digits) > cardGroupSize {
		return digits[len(digits)-cardGroupSize:]
	}
	return digits
}

// acceptDigits mimics a digit input mask: separators are dropped, anything
// else that is not a digit rejects the whole value, and extra digits past max
// are cut off.
func acceptDigits(value string, max int) (string, bool) {
	digits := stripSeparators(value)
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	if len(digits) > max {
		digits = digits[:max]
	}
	return digits, true
}

func stripSeparators(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ' ':
			return -1
		}
		return r
	}, value)
}
