package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteTechnicianCSV writes a technician statement as CSV with the
// same columns as the HTML table, followed by a totals row.
func WriteTechnicianCSV(w io.Writer, report *TechnicianReport) error {
	cw := csv.NewWriter(w)

	header := []string{"Date", "Address", "Rate", "Total", "Parts", "Cash", "CC", "Check", "Fee", "Tech Profit", "Balance", "Paid"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range report.Rows {
		date := ""
		if row.Date != nil {
			date = row.Date.Format("1/2/2006")
		}
		paid := "no"
		if row.Paid {
			paid = "yes"
		}
		record := []string{
			date,
			row.Address,
			row.Rate.String(),
			row.Total.StringFixed(2),
			row.Parts.StringFixed(2),
			row.Cash.StringFixed(2),
			row.CC.StringFixed(2),
			row.Check.StringFixed(2),
			row.Fee.StringFixed(2),
			row.TechProfit.StringFixed(2),
			row.Balance.StringFixed(2),
			paid,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	s := report.Summary
	totals := []string{
		"Totals",
		fmt.Sprintf("%d jobs", s.JobCount),
		"",
		s.TotalSales.StringFixed(2),
		s.TotalParts.StringFixed(2),
		s.TotalCash.StringFixed(2),
		s.TotalCC.StringFixed(2),
		s.TotalCheck.StringFixed(2),
		s.TotalFee.StringFixed(2),
		s.TotalTechProfit.StringFixed(2),
		s.TotalBalance.StringFixed(2),
		"",
	}
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("writing csv totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
