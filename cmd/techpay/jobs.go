package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avilevy18/techpay.git/internal/commission"
	"github.com/avilevy18/techpay.git/internal/store"
)

func handleJobs(ctx context.Context, st *store.Store, args []string) {
	if len(args) > 0 {
		switch args[0] {
		case "paid":
			setJobPaid(ctx, st, args[1:], true)
			return
		case "unpaid":
			// bare "jobs unpaid" with no id is a list filter, not a
			// state change
			if len(args) > 1 {
				setJobPaid(ctx, st, args[1:], false)
				return
			}
		case "delete":
			deleteJob(ctx, st, args[1:])
			return
		}
	}

	listJobs(ctx, st, args)
}

func listJobs(ctx context.Context, st *store.Store, args []string) {
	techName, args := parseStringFlag(args, "tech")
	unpaidOnly, args := parseBoolFlag(args, "unpaid")
	if !unpaidOnly && len(args) > 0 && args[0] == "unpaid" {
		unpaidOnly = true
		args = args[1:]
	}
	from, to, _ := parseDateFlags(args)

	filter := store.JobFilter{UnpaidOnly: unpaidOnly, From: from, To: to}
	if techName != "" {
		tech, err := st.GetTechnicianByName(ctx, techName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if tech == nil {
			fmt.Printf("Unknown technician: %s\n", techName)
			os.Exit(1)
		}
		filter.TechnicianID = tech.ID
	}

	jobs, err := st.ListJobs(ctx, filter)
	if err != nil {
		fmt.Printf("Error listing jobs: %v\n", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return
	}

	calc := commission.NewCalculator()
	results := calc.CalculateBatch(jobs)

	fmt.Printf("%-36s  %-10s  %-28s  %-12s  %-8s  %10s  %10s  %5s\n",
		"ID", "Date", "Address", "Technician", "Method", "Total", "Balance", "Paid")
	fmt.Println("----------------------------------------------------------------------------------------------------------------------------")
	for _, r := range results {
		j := r.Job
		date := ""
		if j.JobDate != nil {
			date = j.JobDate.Format("1/2/2006")
		}
		addr := j.Address
		if len(addr) > 28 {
			addr = addr[:25] + "..."
		}
		paid := ""
		if j.Paid {
			paid = "yes"
		}
		fmt.Printf("%-36s  %-10s  %-28s  %-12s  %-8s  %10s  %10s  %5s\n",
			j.ID, date, addr, j.TechnicianName, j.PaymentMethod,
			j.Total.StringFixed(2), r.Balance.StringFixed(2), paid)
	}

	summary := calc.CalculateSummary(results)
	fmt.Println()
	fmt.Printf("%d jobs, %s total sales, %s outstanding balance\n",
		summary.JobCount, formatCurrency(summary.TotalSales), formatCurrency(summary.TotalBalance))
}

func setJobPaid(ctx context.Context, st *store.Store, args []string, paid bool) {
	if len(args) < 1 {
		fmt.Println("Error: job id required")
		os.Exit(1)
	}
	if err := st.SetJobPaid(ctx, args[0], paid); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if paid {
		fmt.Printf("Job %s marked paid\n", args[0])
	} else {
		fmt.Printf("Job %s reopened\n", args[0])
	}
}

func deleteJob(ctx context.Context, st *store.Store, args []string) {
	if len(args) < 1 {
		fmt.Println("Error: job id required")
		os.Exit(1)
	}
	if err := st.DeleteJob(ctx, args[0]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Job %s deleted\n", args[0])
}
