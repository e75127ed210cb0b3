package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avilevy18/techpay.git/internal/commission"
	"github.com/avilevy18/techpay.git/internal/store"
)

func handleAdd(ctx context.Context, st *store.Store, args []string) {
	address, args := parseStringFlag(args, "address")
	totalStr, args := parseStringFlag(args, "total")
	partsStr, args := parseStringFlag(args, "parts")
	method, args := parseStringFlag(args, "method")
	tech, args := parseStringFlag(args, "tech")
	rateStr, args := parseStringFlag(args, "rate")
	dateStr, args := parseStringFlag(args, "date")
	desc, args := parseStringFlag(args, "desc")
	phone, args := parseStringFlag(args, "phone")
	techAmountStr, args := parseStringFlag(args, "tech-amount")
	cashStr, args := parseStringFlag(args, "cash")
	ccStr, args := parseStringFlag(args, "cc")
	checkStr, _ := parseStringFlag(args, "check")

	if address == "" || totalStr == "" || method == "" {
		fmt.Println("Error: add requires --address, --total and --method")
		fmt.Println(`Usage: techpay add --address "303 Maple Dr" --total 550 --method cash [--parts 9] [--tech NAME] [--rate PCT] [--date YYYY-MM-DD] [--desc TEXT] [--phone N] [--tech-amount N] [--cash N --cc N --check N]`)
		os.Exit(1)
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		fmt.Printf("Error: invalid --total %q\n", totalStr)
		os.Exit(1)
	}

	job := commission.Job{
		Address:        address,
		Description:    desc,
		Phone:          phone,
		Total:          total,
		PaymentMethod:  commission.PaymentMethod(method),
		CommissionRate: defaultRate(),
		TechnicianName: tech,
	}

	if partsStr != "" {
		if job.Parts, err = decimal.NewFromString(partsStr); err != nil {
			fmt.Printf("Error: invalid --parts %q\n", partsStr)
			os.Exit(1)
		}
	}
	if rateStr != "" {
		if job.CommissionRate, err = parseRate(rateStr); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if dateStr != "" {
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Printf("Error: invalid --date %q (expected YYYY-MM-DD)\n", dateStr)
			os.Exit(1)
		}
		job.JobDate = &t
	}
	if techAmountStr != "" {
		amt, err := decimal.NewFromString(techAmountStr)
		if err != nil {
			fmt.Printf("Error: invalid --tech-amount %q\n", techAmountStr)
			os.Exit(1)
		}
		job.TechAmount = &amt
	}
	for _, f := range []struct {
		val  string
		dest *decimal.Decimal
		name string
	}{
		{cashStr, &job.CashAmount, "cash"},
		{ccStr, &job.CCAmount, "cc"},
		{checkStr, &job.CheckAmount, "check"},
	} {
		if f.val == "" {
			continue
		}
		if *f.dest, err = decimal.NewFromString(f.val); err != nil {
			fmt.Printf("Error: invalid --%s %q\n", f.name, f.val)
			os.Exit(1)
		}
	}

	if tech != "" {
		technician, err := st.GetOrCreateTechnician(ctx, tech, job.CommissionRate)
		if err != nil {
			fmt.Printf("Error resolving technician: %v\n", err)
			os.Exit(1)
		}
		job.TechnicianID = technician.ID
		job.TechnicianName = technician.Name
		if rateStr == "" {
			job.CommissionRate = technician.CommissionRate
		}
	}

	job, err = commission.NewJob(job)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if job.SplitMismatch() {
		sum := job.CashAmount.Add(job.CCAmount).Add(job.CheckAmount)
		fmt.Printf("Warning: split amounts (%s) do not add up to total (%s)\n",
			formatCurrency(sum), formatCurrency(job.Total))
	}

	saved, err := st.CreateJob(ctx, job)
	if err != nil {
		fmt.Printf("Error saving job: %v\n", err)
		os.Exit(1)
	}

	result := commission.NewCalculator().CalculateSingle(saved)
	fmt.Printf("Recorded job %s\n", saved.ID)
	fmt.Printf("  tech profit: %s, balance: %s\n",
		formatCurrency(result.TechProfit), formatCurrency(result.Balance))
}
