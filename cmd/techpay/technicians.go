package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avilevy18/techpay.git/internal/store"
)

func handleTechnicians(ctx context.Context, st *store.Store, args []string) {
	if len(args) == 0 {
		listTechnicians(ctx, st)
		return
	}

	switch args[0] {
	case "list":
		listTechnicians(ctx, st)
	case "add":
		addTechnician(ctx, st, args[1:])
	case "rate":
		setTechnicianRate(ctx, st, args[1:])
	case "delete":
		deleteTechnician(ctx, st, args[1:])
	default:
		fmt.Printf("Unknown technicians subcommand: %s\n", args[0])
		fmt.Println("Available: list, add, rate, delete")
		os.Exit(1)
	}
}

func listTechnicians(ctx context.Context, st *store.Store) {
	techs, err := st.ListTechnicians(ctx)
	if err != nil {
		fmt.Printf("Error listing technicians: %v\n", err)
		os.Exit(1)
	}
	if len(techs) == 0 {
		fmt.Println("No technicians registered")
		return
	}

	fmt.Printf("%-14s  %5s  %5s  %7s  %12s  %12s  %14s\n",
		"Name", "Rate", "Jobs", "Unpaid", "Sales", "Profit", "Unpaid Balance")
	fmt.Println("------------------------------------------------------------------------------------")
	for _, t := range techs {
		stats, err := st.TechnicianStats(ctx, t.ID)
		if err != nil {
			fmt.Printf("Error computing stats for %s: %v\n", t.Name, err)
			os.Exit(1)
		}
		fmt.Printf("%-14s  %5s  %5d  %7d  %12s  %12s  %14s\n",
			t.Name,
			t.CommissionRate.Mul(hundred).StringFixed(0)+"%",
			stats.JobCount,
			stats.UnpaidCount,
			stats.TotalSales.StringFixed(2),
			stats.TotalTechProfit.StringFixed(2),
			stats.UnpaidBalance.StringFixed(2))
	}
}

func addTechnician(ctx context.Context, st *store.Store, args []string) {
	if len(args) < 2 {
		fmt.Println("Error: technicians add requires a name and a rate")
		fmt.Println("Usage: techpay technicians add <name> <rate>")
		os.Exit(1)
	}
	rate, err := parseRate(args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	tech, err := st.GetOrCreateTechnician(ctx, args[0], rate)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Technician %s registered at %s%%\n",
		tech.Name, tech.CommissionRate.Mul(hundred).StringFixed(0))
}

func setTechnicianRate(ctx context.Context, st *store.Store, args []string) {
	if len(args) < 2 {
		fmt.Println("Error: technicians rate requires a name and a rate")
		fmt.Println("Usage: techpay technicians rate <name> <rate>")
		os.Exit(1)
	}
	rate, err := parseRate(args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	tech, err := st.GetTechnicianByName(ctx, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if tech == nil {
		fmt.Printf("Unknown technician: %s\n", args[0])
		os.Exit(1)
	}
	if err := st.SetTechnicianRate(ctx, tech.ID, rate); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s now at %s%%\n", tech.Name, rate.Mul(hundred).StringFixed(0))
}

func deleteTechnician(ctx context.Context, st *store.Store, args []string) {
	if len(args) < 1 {
		fmt.Println("Error: technician name required")
		os.Exit(1)
	}
	tech, err := st.GetTechnicianByName(ctx, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if tech == nil {
		fmt.Printf("Unknown technician: %s\n", args[0])
		os.Exit(1)
	}
	if err := st.DeleteTechnician(ctx, tech.ID); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Technician %s deleted\n", tech.Name)
}
