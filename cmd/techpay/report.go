package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avilevy18/techpay.git/internal/report"
	"github.com/avilevy18/techpay.git/internal/store"
)

func handleReport(ctx context.Context, st *store.Store, args []string) {
	techName, args := parseStringFlag(args, "tech")
	output, args := parseStringFlag(args, "output")
	from, to, _ := parseDateFlags(args)

	if techName == "" {
		reportOverview(ctx, st, output, from, to)
		return
	}

	tech, err := st.GetTechnicianByName(ctx, techName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if tech == nil {
		fmt.Printf("Unknown technician: %s\n", techName)
		os.Exit(1)
	}

	jobs, err := st.ListJobs(ctx, store.JobFilter{TechnicianID: tech.ID, From: from, To: to})
	if err != nil {
		fmt.Printf("Error loading jobs: %v\n", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs in range")
		return
	}

	r := report.BuildTechnicianReport(tech.Name, jobs, from, to)

	// Without --output the statement prints to the screen.
	if output == "" {
		printTechnicianTable(r)
		return
	}

	file, err := os.Create(output)
	if err != nil {
		fmt.Printf("Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(output)) {
	case ".csv":
		err = report.WriteTechnicianCSV(file, r)
	case ".pdf":
		err = report.WriteTechnicianPDF(file, r)
	default:
		var renderer *report.Renderer
		renderer, err = report.NewRenderer()
		if err == nil {
			err = renderer.RenderTechnicianReport(file, r)
		}
	}
	if err != nil {
		fmt.Printf("Error rendering report: %v\n", err)
		os.Exit(1)
	}

	absPath, _ := filepath.Abs(output)
	fmt.Printf("Report generated: %s\n", absPath)
	fmt.Printf("  %d jobs, %s total sales, %s tech profit, %s balance\n",
		r.Summary.JobCount,
		formatCurrency(r.Summary.TotalSales),
		formatCurrency(r.Summary.TotalTechProfit),
		formatCurrency(r.Summary.TotalBalance))
}

func printTechnicianTable(r *report.TechnicianReport) {
	fmt.Printf("Commission statement for %s (%s)\n\n", r.TechnicianName, dateRangeText(r.FromDate, r.ToDate))
	fmt.Printf("%-10s  %-28s  %6s  %10s  %10s  %10s  %10s\n",
		"DATE", "ADDRESS", "RATE", "TOTAL", "PARTS", "PROFIT", "BALANCE")
	for _, row := range r.Rows {
		date := "N/A"
		if row.Date != nil {
			date = row.Date.Format("1/2/2006")
		}
		addr := row.Address
		if len(addr) > 28 {
			addr = addr[:25] + "..."
		}
		fmt.Printf("%-10s  %-28s  %6s  %10s  %10s  %10s  %10s\n",
			date, addr, row.Rate.Mul(hundred).StringFixed(0)+"%",
			formatCurrency(row.Total), formatCurrency(row.Parts),
			formatCurrency(row.TechProfit), formatCurrency(row.Balance))
	}
	fmt.Printf("\nTotals: %d jobs, %s sales, %s parts, %s tech profit, %s balance\n",
		r.Summary.JobCount,
		formatCurrency(r.Summary.TotalSales),
		formatCurrency(r.Summary.TotalParts),
		formatCurrency(r.Summary.TotalTechProfit),
		formatCurrency(r.Summary.TotalBalance))
}

func dateRangeText(from, to *time.Time) string {
	switch {
	case from != nil && to != nil:
		return from.Format("1/2/2006") + " - " + to.Format("1/2/2006")
	case from != nil:
		return "since " + from.Format("1/2/2006")
	case to != nil:
		return "through " + to.Format("1/2/2006")
	}
	return "all time"
}

func reportOverview(ctx context.Context, st *store.Store, output string, from, to *time.Time) {
	jobs, err := st.ListJobs(ctx, store.JobFilter{From: from, To: to})
	if err != nil {
		fmt.Printf("Error loading jobs: %v\n", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs in range")
		return
	}

	r := report.BuildOverviewReport(jobs, from, to)

	if output == "" {
		output = fmt.Sprintf("overview-%s.html", time.Now().Format("2006-01-02"))
	}
	if !strings.HasSuffix(strings.ToLower(output), ".html") {
		output += ".html"
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		fmt.Printf("Error initializing renderer: %v\n", err)
		os.Exit(1)
	}

	file, err := os.Create(output)
	if err != nil {
		fmt.Printf("Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := renderer.RenderOverview(file, r); err != nil {
		fmt.Printf("Error rendering report: %v\n", err)
		os.Exit(1)
	}

	absPath, _ := filepath.Abs(output)
	fmt.Printf("Report generated: %s\n", absPath)
}
