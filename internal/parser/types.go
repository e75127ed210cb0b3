package parser

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avilevy18/techpay.git/internal/commission"
)

// ParsedJob is the output of parsing one job-closure message. Fields
// the parser could not locate are left at their zero values; address
// and a nonzero total are the only fields required for a parse to
// succeed.
type ParsedJob struct {
	Address       string
	Total         decimal.Decimal
	Parts         decimal.Decimal
	PaymentMethod commission.PaymentMethod
	Description   string
	Phone         string
	JobDate       *time.Time

	// Empty when auto-detection failed; the operator fills it in.
	TechnicianName string

	// Populated for split payments. Their sum should equal Total.
	CashAmount  decimal.Decimal
	CCAmount    decimal.Decimal
	CheckAmount decimal.Decimal

	// Fixed technician payout override, when the message names one.
	TechAmount *decimal.Decimal
}

// stopWords are tokens that can never be a technician name. Lines made
// up entirely of these are skipped during the backward name scan and
// are never treated as block boundaries.
var stopWords = map[string]bool{
	"alpha":    true,
	"job":      true,
	"jobs":     true,
	"parts":    true,
	"part":     true,
	"total":    true,
	"cash":     true,
	"check":    true,
	"cc":       true,
	"zelle":    true,
	"credit":   true,
	"card":     true,
	"transfer": true,
	"fee":      true,
	"tech":     true,
	"paid":     true,
	"done":     true,
	"ok":       true,
	"okay":     true,
	"thanks":   true,
	"hlo":      true,
	"hello":    true,
	"hi":       true,
	"hey":      true,
	"yes":      true,
	"no":       true,
	"lock":     true,
	"locks":    true,
	"change":   true,
	"lockout":  true,
	"rekey":    true,
	"safe":     true,
	"opening":  true,
	"car":      true,
	"house":    true,
	"door":     true,
	"front":    true,
	"back":     true,
	"key":      true,
	"keys":     true,
	"install":  true,
	"new":      true,
}

// descriptionSeparators mark where an address line stops and job
// description text begins.
var descriptionSeparators = []string{
	"alpha job",
	"lock change",
	"locks change",
	"lockout",
	"lock out",
	"rekey",
	"car opening",
	"house opening",
}
