package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avilevy18/techpay.git/internal/commission"
	"github.com/avilevy18/techpay.git/internal/store"
)

func handleSummary(ctx context.Context, st *store.Store, args []string) {
	from, to, _ := parseDateFlags(args)

	jobs, err := st.ListJobs(ctx, store.JobFilter{From: from, To: to})
	if err != nil {
		fmt.Printf("Error loading jobs: %v\n", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs in range")
		return
	}

	calc := commission.NewCalculator()
	s := calc.CalculateSummary(calc.CalculateBatch(jobs))

	fmt.Println("Summary")
	fmt.Println("=======================================")
	fmt.Printf("  Jobs:          %d\n", s.JobCount)
	fmt.Printf("  Total sales:   %s\n", formatCurrency(s.TotalSales))
	fmt.Printf("  Parts:         %s\n", formatCurrency(s.TotalParts))
	fmt.Printf("  Cash:          %s\n", formatCurrency(s.TotalCash))
	fmt.Printf("  CC:            %s\n", formatCurrency(s.TotalCC))
	fmt.Printf("  Check:         %s\n", formatCurrency(s.TotalCheck))
	fmt.Printf("  Fees:          %s\n", formatCurrency(s.TotalFee))
	fmt.Printf("  Tech profit:   %s\n", formatCurrency(s.TotalTechProfit))
	fmt.Printf("  Balance:       %s\n", formatCurrency(s.TotalBalance))
	if s.TotalBalance.IsPositive() {
		fmt.Println("\n  Technicians owe the company on balance.")
	} else if s.TotalBalance.IsNegative() {
		fmt.Println("\n  The company owes technicians on balance.")
	}
}
