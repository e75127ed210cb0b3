package parser

import "regexp"

// amt matches a dollar amount, optionally with thousands separators.
// Separators are stripped before conversion.
const amt = `([\d,]+(?:\.\d{1,2})?)`

var (
	phoneRe = regexp.MustCompile(`\+?1?\s*[(\-]?\d{3}[)\-\s]*\d{3}[\-\s]*\d{4}`)

	// Chat exports prefix lines with "[3:42" or "[12/5/25, 3:42".
	chatTimestampRe = regexp.MustCompile(`^\[(?:\d{1,2}/\d{1,2}/\d{2,4},\s*)?\d{1,2}:\d{2}`)
	// Full chat prefix including the sender: "[12/5/25, 3:42 PM] Avi: "
	chatPrefixRe = regexp.MustCompile(`^\[[^\]\n]+\]\s*(?:[^:\n]{1,40}:\s*)?`)

	// A bare date pasted before the address: "12/5 27 Deepwood Hill St...".
	bareDatePrefixRe = regexp.MustCompile(`^\d{1,2}[/.\-]\d{1,2}(?:[/.\-]\d{2,4})?\s+(.+)$`)

	// Full US address with street suffix, city/state and zip.
	addressFullRe = regexp.MustCompile(`(?i)\d+[A-Za-z]?\s+[\w\s]+(?:St|Street|Ave|Avenue|Rd|Road|Blvd|Boulevard|Dr|Drive|Ln|Lane|Way|Pl|Place|Ct|Court|Circle|Cir|Terrace|Ter|Highway|Hwy|Pkwy|Parkway)\.?\s*,?\s*[\w\s]+,?\s*(?:NY|New York|NJ|New Jersey|CT|Connecticut)\s*\d{5}`)

	// Looser: digits plus a street suffix keyword somewhere on the line.
	streetKeywordRe = regexp.MustCompile(`(?i)\d+.*(?:\bSt\b|\bStreet\b|\bAve\b|\bAvenue\b|\bRd\b|\bRoad\b|\bBlvd\b|\bDr\b|\bDrive\b|\bLn\b|\bLane\b|\bWay\b|\bPl\b|\bPlace\b|\bCt\b|\bCourt\b|\bCir\b|\bTer\b|\bHwy\b|\bPkwy\b|Broadway)`)

	// Street number followed by a street name, like "27 Deepwood".
	newJobAddressRe = regexp.MustCompile(`^\d+[A-Za-z]?\s+[A-Za-z]`)

	// Total lines, most authoritative first.
	totalCashRe  = regexp.MustCompile(`(?i)total\s*cash\s*:?\s*\$?` + amt + `\$?`)
	totalCheckRe = regexp.MustCompile(`(?i)total\s*check\s*:?\s*\$?` + amt + `\$?`)
	totalCCRe    = regexp.MustCompile(`(?i)total\s*(?:cc|credit(?:\s*card)?|card)\s*:?\s*\$?` + amt + `\$?`)
	totalZelleRe = regexp.MustCompile(`(?i)total\s*:?\s*\$?` + amt + `\$?\s*zelle`)

	// Total and parts on one line: "$325 parts $10".
	priceWithPartsRe = regexp.MustCompile(`(?i)\$` + amt + `\s*parts?\s*\$?` + amt)

	// Inline "<amount> in <method>" phrasing. A few filler words are
	// allowed before the card words ("150 with the credit card").
	inCashRe  = regexp.MustCompile(`(?i)\$?` + amt + `\$?\s*(?:in\s+)?cash\b`)
	inCheckRe = regexp.MustCompile(`(?i)\$?` + amt + `\$?\s*(?:in\s+)?check\b`)
	inCCRe    = regexp.MustCompile(`(?i)\$?` + amt + `\$?(?:\s+(?:in|with|the|on|by|via))*\s+(?:cc\b|credit(?:\s+card)?|card\b)`)
	zelleRe   = regexp.MustCompile(`(?i)\$?` + amt + `\$?\s*(?:in\s+)?zelle\b`)

	// "run cc 325" / "cc 325".
	runCCRe = regexp.MustCompile(`(?i)(?:run\s+)?\bcc\b\s*:?\s*\$?` + amt)

	// Standalone "$446" or "446$" on its own line. Defaults to cash.
	standalonePriceRe = regexp.MustCompile(`(?m)^\s*\$` + amt + `\s*$|^\s*` + amt + `\$\s*$`)

	// Bare "Total 400", the declared total of a split payment.
	genericTotalRe = regexp.MustCompile(`(?i)\btotal\s*:?\s*\$?` + amt + `\$?`)

	partsRe      = regexp.MustCompile(`(?i)parts?\s*\$?\s*` + amt)
	techAmountRe = regexp.MustCompile(`(?im)^\s*tech\s*:?\s*\$?` + amt + `\$?\s*$`)

	alphaJobRe = regexp.MustCompile(`(?i)alpha\s*job`)

	addrLabelRe  = regexp.MustCompile(`(?i)\baddr(?:ess)?\s*:\s*(.+)`)
	phoneLabelRe = regexp.MustCompile(`(?i)\bph(?:one)?\s*:\s*(.+)`)
	descLabelRe  = regexp.MustCompile(`(?i)\bdesc(?:ription)?\s*:\s*(.+)`)
	dateLabelRe  = regexp.MustCompile(`(?i)\bdate\s*:\s*(.+)`)
)
