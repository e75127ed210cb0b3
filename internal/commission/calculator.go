package commission

import "github.com/shopspring/decimal"

// Calculator computes the technician/company settlement for jobs.
//
// When the customer pays cash, the technician is holding the money:
// they keep their commission on net (total - parts) plus the parts
// reimbursement, and bring the remainder back to the company.
//
// When the customer pays the company (cc, check, transfer), the
// company is holding the money: it owes the technician commission on
// net plus the parts reimbursement.
//
// Split payments settle each channel separately and sum the balances;
// parts come out of the cash portion first. A fixed tech amount, when
// present, replaces the percentage commission in every regime.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculateSingle computes the settlement for one job. It is a pure
// function of the job's fields.
func (c *Calculator) CalculateSingle(job Job) JobResult {
	net := job.Total.Sub(job.Parts)

	if job.PaymentMethod == PaymentSplit {
		return c.calculateSplit(job, net)
	}

	if job.TechAmount != nil {
		return c.calculateFixedAmount(job, net)
	}

	commission := net.Mul(job.CommissionRate)

	if job.PaymentMethod.CompanyCollected() {
		// Company holds the payment, reimburses parts on top of
		// commission.
		techProfit := commission.Add(job.Parts)
		return JobResult{
			Job:        job,
			NetAmount:  net,
			TechProfit: techProfit,
			Balance:    techProfit.Neg(),
		}
	}

	// Technician holds the cash. They already kept parts, so profit is
	// the commission alone; the rest comes back to the company.
	return JobResult{
		Job:        job,
		NetAmount:  net,
		TechProfit: commission,
		Balance:    job.Total.Sub(job.Parts).Sub(commission),
	}
}

func (c *Calculator) calculateFixedAmount(job Job, net decimal.Decimal) JobResult {
	techAmount := *job.TechAmount

	if job.PaymentMethod.CompanyCollected() {
		techProfit := techAmount.Add(job.Parts)
		return JobResult{
			Job:        job,
			NetAmount:  net,
			TechProfit: techProfit,
			Balance:    techProfit.Neg(),
		}
	}

	return JobResult{
		Job:        job,
		NetAmount:  net,
		TechProfit: techAmount,
		Balance:    job.Total.Sub(job.Parts).Sub(techAmount),
	}
}

// calculateSplit settles a job paid through more than one channel.
// The cash portion behaves like a cash job, the cc/check portion like
// a company-collected job, and the signed balances sum.
func (c *Calculator) calculateSplit(job Job, net decimal.Decimal) JobResult {
	companyAmount := job.CCAmount.Add(job.CheckAmount)

	if job.TechAmount != nil {
		techAmount := *job.TechAmount
		totalTechOwed := techAmount.Add(job.Parts)

		// Technician keeps what they can out of cash; the company
		// covers the shortfall.
		techKeepsFromCash := decimal.Min(job.CashAmount, totalTechOwed)
		techOwesFromCash := job.CashAmount.Sub(techKeepsFromCash)
		companyOwesToTech := decimal.Max(decimal.Zero, totalTechOwed.Sub(job.CashAmount))

		return JobResult{
			Job:        job,
			NetAmount:  net,
			TechProfit: techAmount.Add(job.Parts),
			Balance:    techOwesFromCash.Sub(companyOwesToTech),
		}
	}

	commission := net.Mul(job.CommissionRate)

	// Profit does not depend on how the money was collected.
	techProfit := commission.Add(job.Parts)

	// Parts come out of the cash portion first.
	cashAfterParts := job.CashAmount.Sub(job.Parts)
	cashCommission := decimal.Zero
	techOwesFromCash := decimal.Zero
	if cashAfterParts.GreaterThan(decimal.Zero) {
		cashCommission = cashAfterParts.Mul(job.CommissionRate)
		techOwesFromCash = cashAfterParts.Sub(cashCommission)
	}

	companyOwesToTech := companyAmount.Mul(job.CommissionRate)

	return JobResult{
		Job:        job,
		NetAmount:  net,
		TechProfit: techProfit,
		Balance:    techOwesFromCash.Sub(companyOwesToTech),
	}
}

// CalculateBatch computes settlements for jobs in order.
func (c *Calculator) CalculateBatch(jobs []Job) []JobResult {
	results := make([]JobResult, 0, len(jobs))
	for _, job := range jobs {
		results = append(results, c.CalculateSingle(job))
	}
	return results
}

// Summary holds aggregate totals for a batch of results.
type Summary struct {
	JobCount        int
	TotalSales      decimal.Decimal
	TotalParts      decimal.Decimal
	TotalCash       decimal.Decimal
	TotalCC         decimal.Decimal
	TotalCheck      decimal.Decimal
	TotalFee        decimal.Decimal
	TotalTechProfit decimal.Decimal
	TotalBalance    decimal.Decimal
}

// CalculateSummary reduces a batch of results to totals. The reduction
// is commutative and associative, so result order does not matter.
func (c *Calculator) CalculateSummary(results []JobResult) Summary {
	s := Summary{JobCount: len(results)}
	for _, r := range results {
		s.TotalSales = s.TotalSales.Add(r.Job.Total)
		s.TotalParts = s.TotalParts.Add(r.Job.Parts)
		s.TotalCash = s.TotalCash.Add(r.Job.CashAmount)
		s.TotalCC = s.TotalCC.Add(r.Job.CCAmount)
		s.TotalCheck = s.TotalCheck.Add(r.Job.CheckAmount)
		s.TotalFee = s.TotalFee.Add(r.Job.Fee)
		s.TotalTechProfit = s.TotalTechProfit.Add(r.TechProfit)
		s.TotalBalance = s.TotalBalance.Add(r.Balance)
	}
	return s
}
