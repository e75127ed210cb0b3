package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// WriteTechnicianPDF renders a technician statement as a landscape PDF
// with the same columns as the HTML table.
func WriteTechnicianPDF(w io.Writer, report *TechnicianReport) error {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AliasNbPages("{nb}")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// Header bar
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, "COMMISSION STATEMENT  "+report.TechnicianName, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, dateRangeLabel(report), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(marginT + 14)

	// Column widths: address gets the slack, amounts are fixed
	amtW := contentW * 0.072
	dateW := contentW * 0.08
	rateW := contentW * 0.05
	addrW := contentW - dateW - rateW - amtW*8

	drawHeader := func() {
		pdf.SetFillColor(30, 30, 30)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(dateW, 6.5, "Date", "1", 0, "L", true, 0, "")
		pdf.CellFormat(addrW, 6.5, "Address", "1", 0, "L", true, 0, "")
		pdf.CellFormat(rateW, 6.5, "%", "1", 0, "C", true, 0, "")
		for _, h := range []string{"Total", "Parts", "Cash", "CC", "Check", "Fee", "Tech Profit", "Balance"} {
			pdf.CellFormat(amtW, 6.5, h, "1", 0, "R", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
	drawHeader()

	rowH := 6.0
	pdf.SetFont("Helvetica", "", 8)
	for i, row := range report.Rows {
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(dateW, rowH, formatDate(row.Date), "1", 0, "L", true, 0, "")
		pdf.CellFormat(addrW, rowH, truncate(row.Address, 52), "1", 0, "L", true, 0, "")
		pdf.CellFormat(rateW, rowH, formatPercent(row.Rate), "1", 0, "C", true, 0, "")
		for _, amt := range []decimal.Decimal{row.Total, row.Parts, row.Cash, row.CC, row.Check, row.Fee, row.TechProfit, row.Balance} {
			drawAmount(pdf, amtW, rowH, amt, true)
		}
		pdf.Ln(-1)
	}

	// Totals row
	s := report.Summary
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(dateW, rowH, "Totals", "1", 0, "L", true, 0, "")
	pdf.CellFormat(addrW, rowH, jobCountLabel(s.JobCount), "1", 0, "L", true, 0, "")
	pdf.CellFormat(rateW, rowH, "", "1", 0, "C", true, 0, "")
	for _, amt := range []decimal.Decimal{s.TotalSales, s.TotalParts, s.TotalCash, s.TotalCC, s.TotalCheck, s.TotalFee, s.TotalTechProfit, s.TotalBalance} {
		drawAmount(pdf, amtW, rowH, amt, true)
	}
	pdf.Ln(-1)

	// Footer
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.SetY(-14)
	pdf.CellFormat(contentW/2, 5, "Generated "+report.GeneratedAt.Format("1/2/2006 3:04 PM"), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 0, "R", false, 0, "")

	return pdf.Output(w)
}

func drawAmount(pdf *fpdf.Fpdf, w, h float64, amt decimal.Decimal, fill bool) {
	if amt.IsNegative() {
		pdf.SetTextColor(176, 0, 32)
	}
	pdf.CellFormat(w, h, formatMoney(amt), "1", 0, "R", fill, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func dateRangeLabel(report *TechnicianReport) string {
	switch {
	case report.FromDate != nil && report.ToDate != nil:
		return formatDate(report.FromDate) + " - " + formatDate(report.ToDate)
	case report.FromDate != nil:
		return "from " + formatDate(report.FromDate)
	case report.ToDate != nil:
		return "through " + formatDate(report.ToDate)
	}
	return "all dates"
}

func jobCountLabel(n int) string {
	if n == 1 {
		return "1 job"
	}
	return fmt.Sprintf("%d jobs", n)
}
