package commission

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a job was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCC       PaymentMethod = "cc"
	PaymentCheck    PaymentMethod = "check"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentSplit    PaymentMethod = "split"
)

// CompanyCollected reports whether funds land with the company rather
// than in the technician's hand.
func (m PaymentMethod) CompanyCollected() bool {
	switch m {
	case PaymentCC, PaymentCheck, PaymentTransfer:
		return true
	}
	return false
}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCC, PaymentCheck, PaymentTransfer, PaymentSplit:
		return true
	}
	return false
}

// Technician represents a technician on the payroll.
type Technician struct {
	ID             string
	Name           string
	CommissionRate decimal.Decimal
}

// NewTechnician creates a technician, rejecting commission rates
// outside [0, 1].
func NewTechnician(id, name string, rate decimal.Decimal) (Technician, error) {
	if err := ValidateRate(rate); err != nil {
		return Technician{}, err
	}
	return Technician{
		ID:             id,
		Name:           strings.TrimSpace(name),
		CommissionRate: rate,
	}, nil
}

// Job is the calculation input for a single service call.
type Job struct {
	ID             string
	TechnicianID   string
	TechnicianName string

	Address       string
	Description   string
	Phone         string
	Total         decimal.Decimal
	Parts         decimal.Decimal
	PaymentMethod PaymentMethod
	JobDate       *time.Time

	// Fraction of net (total - parts) owed to the technician.
	CommissionRate decimal.Decimal

	// Processing fee (informational, e.g. CC surcharge).
	Fee decimal.Decimal

	// Payment breakdown. For single-method jobs the matching field
	// defaults to Total; for split jobs the parser fills all three.
	CashAmount  decimal.Decimal
	CCAmount    decimal.Decimal
	CheckAmount decimal.Decimal

	// When set, a flat-dollar payout that overrides the
	// commission-rate computation for this job.
	TechAmount *decimal.Decimal

	Paid     bool
	PaidDate *time.Time
	Notes    string
}

// NewJob validates the commission rate and fills the payment breakdown
// for single-method jobs (the matching channel defaults to Total).
func NewJob(job Job) (Job, error) {
	if err := ValidateRate(job.CommissionRate); err != nil {
		return Job{}, err
	}
	if !job.PaymentMethod.Valid() {
		return Job{}, fmt.Errorf("unknown payment method %q", job.PaymentMethod)
	}

	switch job.PaymentMethod {
	case PaymentCash:
		if job.CashAmount.IsZero() {
			job.CashAmount = job.Total
		}
	case PaymentCC:
		if job.CCAmount.IsZero() {
			job.CCAmount = job.Total
		}
	case PaymentCheck, PaymentTransfer:
		if job.CheckAmount.IsZero() {
			job.CheckAmount = job.Total
		}
	}

	return job, nil
}

// SplitMismatch reports whether a split job's channel amounts disagree
// with the declared total. The correct resolution is business
// judgment, so callers warn the operator instead of adjusting data.
func (j Job) SplitMismatch() bool {
	if j.PaymentMethod != PaymentSplit {
		return false
	}
	sum := j.CashAmount.Add(j.CCAmount).Add(j.CheckAmount)
	return !sum.Equal(j.Total)
}

// JobResult wraps a job with its settlement outcome.
type JobResult struct {
	Job Job

	// Total - Parts.
	NetAmount decimal.Decimal

	// Everything the technician is entitled to keep.
	TechProfit decimal.Decimal

	// Positive = technician owes the company, negative = company owes
	// the technician. This sign convention holds in every branch.
	Balance decimal.Decimal
}

// TechOwesCompany reports whether the technician currently holds
// company money.
func (r JobResult) TechOwesCompany() bool {
	return r.Balance.GreaterThan(decimal.Zero)
}

// ValidateRate rejects commission rates outside [0, 1].
func ValidateRate(rate decimal.Decimal) error {
	if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("commission rate %s out of range [0, 1]", rate)
	}
	return nil
}
