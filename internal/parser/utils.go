package parser

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// parseAmount converts a matched amount string to a decimal. Thousands
// separators and currency symbols are stripped first.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return val, true
}

// dateFormats are tried in order; first match wins.
var dateFormats = []string{
	"1/2/06",
	"1/2/2006",
	"1-2-06",
	"1-2-2006",
	"1.2.06",
	"1.2.2006",
}

// parseDateValue parses the value of an explicit "date:" label.
func parseDateValue(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}

	return nil
}

// isNameToken reports whether a line could be a technician name: one
// or two purely alphabetic words that aren't all stop-words.
func isNameToken(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.ContainsAny(line, "0123456789$") {
		return false
	}

	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 2 {
		return false
	}

	allStop := true
	for _, w := range words {
		for _, r := range w {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		if !stopWords[strings.ToLower(w)] {
			allStop = false
		}
	}

	return !allStop
}

// isNewJobStart reports whether a line looks like the first line of a
// fresh job message: a street-number address, a phone number, or a
// chat timestamp.
func isNewJobStart(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if chatTimestampRe.MatchString(line) {
		return true
	}
	if phoneRe.MatchString(line) {
		return true
	}
	return newJobAddressRe.MatchString(line)
}

// isPricingLine reports whether a line carries any pricing signal. A
// block may only end after at least one of these has been seen, which
// keeps short address lines from being misread as names.
func isPricingLine(line string) bool {
	return totalCashRe.MatchString(line) ||
		totalCheckRe.MatchString(line) ||
		totalCCRe.MatchString(line) ||
		totalZelleRe.MatchString(line) ||
		priceWithPartsRe.MatchString(line) ||
		inCashRe.MatchString(line) ||
		inCheckRe.MatchString(line) ||
		inCCRe.MatchString(line) ||
		zelleRe.MatchString(line) ||
		standalonePriceRe.MatchString(line) ||
		partsRe.MatchString(line)
}

// containsHebrew reports whether the line has any Hebrew-script runes.
// Some dispatch messages mix in Hebrew chatter that is never a name.
func containsHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// titleCase upper-cases the first letter of each word ("john smith"
// becomes "John Smith").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// stripChatPrefix removes a "[timestamp] sender:" prefix if present.
func stripChatPrefix(line string) string {
	if chatTimestampRe.MatchString(strings.TrimSpace(line)) {
		return strings.TrimSpace(chatPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
	}
	return line
}
