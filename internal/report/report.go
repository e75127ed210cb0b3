// Package report turns calculated job results into technician
// commission statements: HTML, CSV and PDF.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avilevy18/techpay.git/internal/commission"
)

// Row is one job line on a technician statement.
type Row struct {
	Date       *time.Time
	Address    string
	Rate       decimal.Decimal
	Total      decimal.Decimal
	Parts      decimal.Decimal
	Cash       decimal.Decimal
	CC         decimal.Decimal
	Check      decimal.Decimal
	Fee        decimal.Decimal
	TechProfit decimal.Decimal
	Balance    decimal.Decimal
	Paid       bool
}

// TechnicianReport is a commission statement for one technician over
// an optional date range.
type TechnicianReport struct {
	GeneratedAt    time.Time
	TechnicianName string
	FromDate       *time.Time
	ToDate         *time.Time

	Rows    []Row
	Summary commission.Summary
}

// TechnicianLine is one row of the cross-technician overview.
type TechnicianLine struct {
	Name       string
	JobCount   int
	TotalSales decimal.Decimal
	TechProfit decimal.Decimal
	Balance    decimal.Decimal
}

// OverviewReport aggregates every technician's jobs side by side.
type OverviewReport struct {
	GeneratedAt time.Time
	FromDate    *time.Time
	ToDate      *time.Time

	Technicians []TechnicianLine
	Summary     commission.Summary
}

// BuildTechnicianReport settles the given jobs and lays them out as a
// statement. Jobs are expected to belong to a single technician and
// arrive in the order they should print.
func BuildTechnicianReport(name string, jobs []commission.Job, from, to *time.Time) *TechnicianReport {
	calc := commission.NewCalculator()
	results := calc.CalculateBatch(jobs)

	r := &TechnicianReport{
		GeneratedAt:    time.Now(),
		TechnicianName: name,
		FromDate:       from,
		ToDate:         to,
		Summary:        calc.CalculateSummary(results),
	}

	for _, res := range results {
		cash, cc, check := channelAmounts(res.Job)
		r.Rows = append(r.Rows, Row{
			Date:       res.Job.JobDate,
			Address:    res.Job.Address,
			Rate:       res.Job.CommissionRate,
			Total:      res.Job.Total,
			Parts:      res.Job.Parts,
			Cash:       cash,
			CC:         cc,
			Check:      check,
			Fee:        res.Job.Fee,
			TechProfit: res.TechProfit,
			Balance:    res.Balance,
			Paid:       res.Job.Paid,
		})
	}

	return r
}

// BuildOverviewReport settles jobs grouped per technician. Order of
// technicians follows first appearance in jobs.
func BuildOverviewReport(jobs []commission.Job, from, to *time.Time) *OverviewReport {
	calc := commission.NewCalculator()
	results := calc.CalculateBatch(jobs)

	r := &OverviewReport{
		GeneratedAt: time.Now(),
		FromDate:    from,
		ToDate:      to,
		Summary:     calc.CalculateSummary(results),
	}

	index := map[string]int{}
	for _, res := range results {
		name := res.Job.TechnicianName
		if name == "" {
			name = "Unassigned"
		}
		i, ok := index[name]
		if !ok {
			i = len(r.Technicians)
			index[name] = i
			r.Technicians = append(r.Technicians, TechnicianLine{Name: name})
		}
		line := &r.Technicians[i]
		line.JobCount++
		line.TotalSales = line.TotalSales.Add(res.Job.Total)
		line.TechProfit = line.TechProfit.Add(res.TechProfit)
		line.Balance = line.Balance.Add(res.Balance)
	}

	return r
}

// channelAmounts slots a job's money into the cash/cc/check columns.
// Split jobs carry explicit per-channel amounts; single-method jobs
// put the full total in their method's column.
func channelAmounts(job commission.Job) (cash, cc, check decimal.Decimal) {
	if job.PaymentMethod == commission.PaymentSplit {
		return job.CashAmount, job.CCAmount, job.CheckAmount
	}
	switch job.PaymentMethod {
	case commission.PaymentCash:
		cash = job.Total
	case commission.PaymentCC:
		cc = job.Total
	case commission.PaymentCheck, commission.PaymentTransfer:
		check = job.Total
	}
	return cash, cc, check
}
