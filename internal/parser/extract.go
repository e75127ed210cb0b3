package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avilevy18/techpay.git/internal/commission"
)

// paymentRule is one entry in the ordered total-extraction chain.
// Rules are tried top to bottom and the first match wins: explicit
// "Total <method> <amount>" phrasing is most authoritative, inline
// "<amount> in <method>" phrasing next, bare standalone numbers last.
type paymentRule struct {
	name   string
	re     *regexp.Regexp
	method commission.PaymentMethod
}

var paymentRules = []paymentRule{
	{"total-cash", totalCashRe, commission.PaymentCash},
	{"total-check", totalCheckRe, commission.PaymentCheck},
	{"total-cc", totalCCRe, commission.PaymentCC},
	{"total-zelle", totalZelleRe, commission.PaymentCheck},
	{"price-with-parts", priceWithPartsRe, commission.PaymentCash},
	{"in-cash", inCashRe, commission.PaymentCash},
	{"in-check", inCheckRe, commission.PaymentCheck},
	{"in-cc", inCCRe, commission.PaymentCC},
	{"zelle", zelleRe, commission.PaymentCheck},
	{"run-cc", runCCRe, commission.PaymentCC},
	{"standalone", standalonePriceRe, commission.PaymentCash},
}

// extractTotal runs the payment rule chain and returns the first
// matching amount and method.
func extractTotal(text string) (decimal.Decimal, commission.PaymentMethod, bool) {
	for _, rule := range paymentRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if amount, ok := parseAmount(firstGroup(m)); ok {
			return amount, rule.method, true
		}
	}
	return decimal.Zero, commission.PaymentCash, false
}

// firstGroup returns the first non-empty capture group. The standalone
// price pattern has two alternatives ("$446" vs "446$"), so group one
// may be empty.
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// splitPayment holds per-channel amounts detected in one message.
type splitPayment struct {
	Cash  decimal.Decimal
	CC    decimal.Decimal
	Check decimal.Decimal
	Total decimal.Decimal
}

// extractSplit looks for multiple distinct payment-channel mentions
// ("200 cash ... 150 with the credit card ... 50 check"). Two or more
// channels make the job a split payment; the total is the declared
// "Total N" when present, otherwise the sum of the channel amounts.
func extractSplit(text string) (splitPayment, bool) {
	var sp splitPayment
	channels := 0

	if sum, ok := sumMatches(inCashRe, text); ok {
		sp.Cash = sum
		channels++
	}
	if sum, ok := sumMatches(inCCRe, text); ok {
		sp.CC = sum
		channels++
	}
	checkSum := decimal.Zero
	checkSeen := false
	if sum, ok := sumMatches(inCheckRe, text); ok {
		checkSum = checkSum.Add(sum)
		checkSeen = true
	}
	if sum, ok := sumMatches(zelleRe, text); ok {
		checkSum = checkSum.Add(sum)
		checkSeen = true
	}
	if checkSeen {
		sp.Check = checkSum
		channels++
	}

	if channels < 2 {
		return splitPayment{}, false
	}

	sp.Total = sp.Cash.Add(sp.CC).Add(sp.Check)
	if m := genericTotalRe.FindStringSubmatch(text); m != nil {
		if declared, ok := parseAmount(m[1]); ok {
			sp.Total = declared
		}
	}

	return sp, true
}

func sumMatches(re *regexp.Regexp, text string) (decimal.Decimal, bool) {
	sum := decimal.Zero
	found := false
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if amount, ok := parseAmount(firstGroup(m)); ok {
			sum = sum.Add(amount)
			found = true
		}
	}
	return sum, found
}

// extractParts returns the parts cost, zero when absent.
func extractParts(text string) decimal.Decimal {
	if m := priceWithPartsRe.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[2]); ok {
			return amount
		}
	}
	if m := partsRe.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[1]); ok {
			return amount
		}
	}
	return decimal.Zero
}

// extractTechAmount returns the fixed technician payout override from
// a "Tech 120" line, nil when absent.
func extractTechAmount(text string) *decimal.Decimal {
	m := techAmountRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, ok := parseAmount(m[1])
	if !ok {
		return nil
	}
	return &amount
}

// extractPhone prefers an explicit "Ph:" label, then any phone-shaped
// substring.
func extractPhone(text string) string {
	if m := phoneLabelRe.FindStringSubmatch(text); m != nil {
		value := strings.TrimSpace(m[1])
		if pm := phoneRe.FindString(value); pm != "" {
			return strings.TrimSpace(pm)
		}
		return value
	}

	if m := phoneRe.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

// extractDate parses an explicit "date:" label. There is no implicit
// date inference from chat timestamps.
func extractDate(text string) *time.Time {
	m := dateLabelRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return parseDateValue(m[1])
}

// extractAddress tries progressively looser address heuristics.
func extractAddress(text string, lines []string) string {
	if m := addrLabelRe.FindStringSubmatch(text); m != nil {
		return cleanAddress(m[1])
	}

	// Chat-style line whose content after the prefix is address-shaped.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !chatTimestampRe.MatchString(trimmed) {
			continue
		}
		content := stripChatPrefix(trimmed)
		if looksAddressShaped(content) {
			return cleanAddress(content)
		}
	}

	// A bare date pasted ahead of the address on the same line.
	for _, line := range lines {
		m := bareDatePrefixRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil && looksAddressShaped(m[1]) {
			return cleanAddress(m[1])
		}
	}

	if m := addressFullRe.FindString(text); m != "" {
		return cleanAddress(m)
	}

	for _, line := range lines {
		if streetKeywordRe.MatchString(line) {
			return cleanAddress(line)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if looksAddressShaped(trimmed) &&
			!phoneRe.MatchString(trimmed) &&
			!chatTimestampRe.MatchString(trimmed) {
			return cleanAddress(trimmed)
		}
	}

	// Last resort: first non-empty line that isn't the job marker.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !alphaJobRe.MatchString(trimmed) {
			return cleanAddress(trimmed)
		}
	}

	return ""
}

// looksAddressShaped: starts with a digit and is long enough not to be
// a price or a date.
func looksAddressShaped(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) <= 10 {
		return false
	}
	return s[0] >= '0' && s[0] <= '9' && newJobAddressRe.MatchString(s)
}

// cleanAddress strips chat prefixes and cuts the address at the first
// phone number or description phrase.
func cleanAddress(s string) string {
	s = stripChatPrefix(strings.TrimSpace(s))

	if loc := phoneRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}

	lower := strings.ToLower(s)
	cut := len(s)
	for _, sep := range descriptionSeparators {
		if idx := strings.Index(lower, sep); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	s = s[:cut]

	return strings.Trim(strings.TrimSpace(s), ",.")
}

// extractDescription takes an explicit "Desc:" label, otherwise the
// text between the address line and the first phone, job marker, or
// pricing line. Capped at three lines.
func extractDescription(text, address string, lines []string) string {
	if m := descLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if address == "" {
		return ""
	}

	key := address
	if len(key) > 12 {
		key = key[:12]
	}

	var descLines []string
	started := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(stripChatPrefix(line))

		if !started {
			if strings.Contains(trimmed, key) {
				started = true
				// Same-line remainder after the address text.
				if idx := strings.Index(trimmed, address); idx >= 0 {
					rest := strings.Trim(strings.TrimSpace(trimmed[idx+len(address):]), ",.")
					if rest != "" && !phoneRe.MatchString(rest) && !isPricingLine(rest) {
						descLines = append(descLines, rest)
					}
				}
			}
			continue
		}

		if phoneRe.MatchString(line) ||
			alphaJobRe.MatchString(line) ||
			isPricingLine(line) {
			break
		}
		if trimmed != "" {
			descLines = append(descLines, trimmed)
		}
	}

	if len(descLines) > 3 {
		descLines = descLines[:3]
	}
	return strings.Join(descLines, " | ")
}

// extractTechnician scans backward from the end of the message for a
// line of one or two alphabetic words. Lines with digits, currency,
// or Hebrew chatter are skipped; a line of more than two words means
// description text, so the scan gives up.
func extractTechnician(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(stripChatPrefix(lines[i]))
		if line == "" {
			continue
		}
		if containsDigit(line) || strings.Contains(line, "$") || containsHebrew(line) {
			continue
		}
		if alphaJobRe.MatchString(line) {
			continue
		}
		if len(strings.Fields(line)) > 2 {
			return ""
		}
		if isNameToken(line) {
			return titleCase(line)
		}
	}
	return ""
}
