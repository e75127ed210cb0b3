package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseStringFlag extracts a --name VALUE or --name=VALUE flag from
// args, returning the value and the remaining args.
func parseStringFlag(args []string, name string) (string, []string) {
	flag := "--" + name
	var value string
	var remaining []string

	i := 0
	for i < len(args) {
		if args[i] == flag && i+1 < len(args) {
			value = args[i+1]
			i += 2
		} else if strings.HasPrefix(args[i], flag+"=") {
			value = strings.TrimPrefix(args[i], flag+"=")
			i++
		} else {
			remaining = append(remaining, args[i])
			i++
		}
	}

	return value, remaining
}

// parseBoolFlag extracts a bare --name flag from args.
func parseBoolFlag(args []string, name string) (bool, []string) {
	flag := "--" + name
	var found bool
	var remaining []string

	for _, arg := range args {
		if arg == flag {
			found = true
			continue
		}
		remaining = append(remaining, arg)
	}

	return found, remaining
}

// parseDateFlags extracts --from and --to flags (YYYY-MM-DD).
func parseDateFlags(args []string) (*time.Time, *time.Time, []string) {
	fromStr, remaining := parseStringFlag(args, "from")
	toStr, remaining := parseStringFlag(remaining, "to")

	var fromDate, toDate *time.Time
	if fromStr != "" {
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			fromDate = &t
		} else {
			fmt.Printf("Warning: ignoring invalid --from date %q (expected YYYY-MM-DD)\n", fromStr)
		}
	}
	if toStr != "" {
		if t, err := time.Parse("2006-01-02", toStr); err == nil {
			toDate = &t
		} else {
			fmt.Printf("Warning: ignoring invalid --to date %q (expected YYYY-MM-DD)\n", toStr)
		}
	}

	return fromDate, toDate, remaining
}

var hundred = decimal.NewFromInt(100)

// parseRate accepts a commission rate as either a fraction ("0.5") or
// a percentage ("50").
func parseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q", s)
	}
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		rate = rate.Div(decimal.NewFromInt(100))
	}
	return rate, nil
}

func formatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "($" + amount.Neg().StringFixed(2) + ")"
	}
	return "$" + amount.StringFixed(2)
}
