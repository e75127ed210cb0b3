package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avilevy18/techpay.git/internal/commission"
	"github.com/avilevy18/techpay.git/internal/parser"
	"github.com/avilevy18/techpay.git/internal/store"
)

// defaultRate applies when neither --rate nor a stored technician rate
// is available. TECHPAY_DEFAULT_RATE overrides it.
func defaultRate() decimal.Decimal {
	if s := os.Getenv("TECHPAY_DEFAULT_RATE"); s != "" {
		if rate, err := parseRate(s); err == nil {
			return rate
		}
		fmt.Printf("Warning: ignoring invalid TECHPAY_DEFAULT_RATE %q\n", s)
	}
	return decimal.NewFromFloat(0.5)
}

func handleParse(ctx context.Context, st *store.Store, args []string) {
	save, args := parseBoolFlag(args, "save")
	techOverride, args := parseStringFlag(args, "tech")
	rateStr, args := parseStringFlag(args, "rate")
	dateStr, args := parseStringFlag(args, "date")

	if len(args) < 1 {
		fmt.Println("Error: parse requires a file argument")
		fmt.Println("Usage: techpay parse <messages.txt> [--save] [--tech NAME] [--rate PCT] [--date YYYY-MM-DD]")
		os.Exit(1)
	}

	var fallbackDate *time.Time
	if dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Printf("Error: invalid --date %q (expected YYYY-MM-DD)\n", dateStr)
			os.Exit(1)
		}
		fallbackDate = &d
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	rate := defaultRate()
	if rateStr != "" {
		rate, err = parseRate(rateStr)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	p := parser.NewMessageParser()
	parsed := p.ParseMultipleJobs(string(data))
	for i := range parsed {
		if parsed[i].JobDate == nil {
			parsed[i].JobDate = fallbackDate
		}
	}

	if len(parsed) == 0 {
		fmt.Println("No jobs found in message")
		return
	}
	if len(parsed) == 1 {
		fmt.Println("1 job found")
	} else {
		fmt.Printf("%d jobs found\n", len(parsed))
	}
	fmt.Println()

	fmt.Printf("%-3s  %-34s  %-8s  %-9s  %-8s  %-12s  %s\n",
		"#", "Address", "Total", "Parts", "Method", "Technician", "Date")
	fmt.Println("--------------------------------------------------------------------------------------------")
	for i, pj := range parsed {
		addr := pj.Address
		if len(addr) > 34 {
			addr = addr[:31] + "..."
		}
		tech := pj.TechnicianName
		if techOverride != "" {
			tech = techOverride
		}
		date := ""
		if pj.JobDate != nil {
			date = pj.JobDate.Format("1/2/2006")
		}
		fmt.Printf("%-3d  %-34s  %-8s  %-9s  %-8s  %-12s  %s\n",
			i+1, addr, pj.Total.StringFixed(2), pj.Parts.StringFixed(2),
			pj.PaymentMethod, tech, date)
		if pj.TechAmount != nil {
			fmt.Printf("     fixed tech amount: %s\n", formatCurrency(*pj.TechAmount))
		}
	}
	fmt.Println()

	if !save {
		fmt.Println("Dry run. Re-run with --save to record these jobs.")
		return
	}

	saved := 0
	for i, pj := range parsed {
		job, err := buildJob(ctx, st, pj, techOverride, rate, rateStr != "")
		if err != nil {
			fmt.Printf("Skipping job %d: %v\n", i+1, err)
			continue
		}
		if job.SplitMismatch() {
			sum := job.CashAmount.Add(job.CCAmount).Add(job.CheckAmount)
			fmt.Printf("Warning: job %d split amounts (%s) do not add up to total (%s)\n",
				i+1, formatCurrency(sum), formatCurrency(job.Total))
		}
		if _, err := st.CreateJob(ctx, job); err != nil {
			fmt.Printf("Error saving job %d: %v\n", i+1, err)
			continue
		}
		saved++
	}
	fmt.Printf("Saved %d of %d jobs\n", saved, len(parsed))
}

// buildJob resolves the technician (creating on first sight) and turns
// a parsed job into a validated record. The technician's stored rate
// applies unless the operator passed --rate explicitly.
func buildJob(ctx context.Context, st *store.Store, pj parser.ParsedJob, techOverride string, rate decimal.Decimal, rateExplicit bool) (commission.Job, error) {
	name := pj.TechnicianName
	if techOverride != "" {
		name = techOverride
	}

	job := commission.Job{
		Address:        pj.Address,
		Description:    pj.Description,
		Phone:          pj.Phone,
		Total:          pj.Total,
		Parts:          pj.Parts,
		PaymentMethod:  pj.PaymentMethod,
		JobDate:        pj.JobDate,
		CommissionRate: rate,
		CashAmount:     pj.CashAmount,
		CCAmount:       pj.CCAmount,
		CheckAmount:    pj.CheckAmount,
		TechAmount:     pj.TechAmount,
		TechnicianName: name,
	}

	if name != "" {
		tech, err := st.GetOrCreateTechnician(ctx, name, rate)
		if err != nil {
			return commission.Job{}, err
		}
		job.TechnicianID = tech.ID
		job.TechnicianName = tech.Name
		if !rateExplicit {
			job.CommissionRate = tech.CommissionRate
		}
	}

	return commission.NewJob(job)
}
