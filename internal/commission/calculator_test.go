package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// assertDecimal compares by numeric value, not exponent.
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s (%v)", want, got, msgAndArgs)
}

func TestCalculateSingleCash(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	// Whole job in cash, no parts: commission stays with the tech,
	// everything else comes back.
	r := calc.CalculateSingle(Job{
		Total:          d("1000"),
		PaymentMethod:  PaymentCash,
		CommissionRate: d("0.5"),
	})
	assertDecimal(t, "1000", r.NetAmount)
	assertDecimal(t, "500", r.TechProfit)
	assertDecimal(t, "500", r.Balance)
	assert.True(t, r.TechOwesCompany())
}

func TestCalculateSingleCompanyCollected(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	r := calc.CalculateSingle(Job{
		Total:          d("1000"),
		Parts:          d("50"),
		PaymentMethod:  PaymentCC,
		CommissionRate: d("0.5"),
	})
	assertDecimal(t, "950", r.NetAmount)
	assertDecimal(t, "525", r.TechProfit)
	assertDecimal(t, "-525", r.Balance)
	assert.False(t, r.TechOwesCompany())
}

func TestCalculateSingleCashWithParts(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	r := calc.CalculateSingle(Job{
		Total:          d("550"),
		Parts:          d("9"),
		PaymentMethod:  PaymentCash,
		CommissionRate: d("0.4"),
	})
	assertDecimal(t, "541", r.NetAmount)
	assertDecimal(t, "216.40", r.TechProfit)
	assertDecimal(t, "324.60", r.Balance)
}

func TestCompanyCollectedMethodsAllSettleAlike(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	for _, method := range []PaymentMethod{PaymentCC, PaymentCheck, PaymentTransfer} {
		r := calc.CalculateSingle(Job{
			Total:          d("400"),
			Parts:          d("40"),
			PaymentMethod:  method,
			CommissionRate: d("0.5"),
		})
		assertDecimal(t, "220", r.TechProfit, method)
		assertDecimal(t, "-220", r.Balance, method)
	}
}

func TestCashMoneyConservation(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	// On the cash path profit + balance + parts must reassemble the
	// original total.
	cases := []struct {
		total, parts, rate string
	}{
		{"1000", "0", "0.5"},
		{"550", "9", "0.4"},
		{"325", "10", "0.5"},
		{"100", "100", "0.45"},
	}
	for _, tc := range cases {
		r := calc.CalculateSingle(Job{
			Total:          d(tc.total),
			Parts:          d(tc.parts),
			PaymentMethod:  PaymentCash,
			CommissionRate: d(tc.rate),
		})
		sum := r.TechProfit.Add(r.Balance).Add(r.Job.Parts)
		assert.Truef(t, d(tc.total).Equal(sum),
			"total %s parts %s rate %s: profit %s + balance %s + parts %s != total",
			tc.total, tc.parts, tc.rate, r.TechProfit, r.Balance, r.Job.Parts)
	}
}

func TestFixedAmountOverrideCash(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	// "Tech 120" on a $300 cash job: flat payout replaces the
	// percentage entirely.
	r := calc.CalculateSingle(Job{
		Total:          d("300"),
		Parts:          d("20"),
		PaymentMethod:  PaymentCash,
		CommissionRate: d("0.5"),
		TechAmount:     dp("120"),
	})
	assertDecimal(t, "120", r.TechProfit)
	assertDecimal(t, "160", r.Balance)
}

func TestFixedAmountOverrideCompanyCollected(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	r := calc.CalculateSingle(Job{
		Total:          d("300"),
		Parts:          d("20"),
		PaymentMethod:  PaymentCheck,
		CommissionRate: d("0.5"),
		TechAmount:     dp("120"),
	})
	assertDecimal(t, "140", r.TechProfit)
	assertDecimal(t, "-140", r.Balance)
}

func TestCalculateSplit(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	// 200 cash / 150 cc / 50 check, 25 parts, 50% rate.
	// net = 375, profit = 187.50 + 25 parts.
	// cash side: 200 - 25 = 175, tech keeps 87.50, owes 87.50.
	// company side: 200 collected, owes tech 100.
	r := calc.CalculateSingle(Job{
		Total:          d("400"),
		Parts:          d("25"),
		PaymentMethod:  PaymentSplit,
		CommissionRate: d("0.5"),
		CashAmount:     d("200"),
		CCAmount:       d("150"),
		CheckAmount:    d("50"),
	})
	assertDecimal(t, "375", r.NetAmount)
	assertDecimal(t, "212.5", r.TechProfit)
	assertDecimal(t, "-12.5", r.Balance)
}

func TestCalculateSplitPartsExceedCash(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	// Parts swallow the whole cash portion: no cash commission, no
	// cash owed back, the company side alone drives the balance.
	r := calc.CalculateSingle(Job{
		Total:          d("300"),
		Parts:          d("100"),
		PaymentMethod:  PaymentSplit,
		CommissionRate: d("0.5"),
		CashAmount:     d("80"),
		CCAmount:       d("220"),
	})
	assertDecimal(t, "200", r.NetAmount)
	assertDecimal(t, "200", r.TechProfit)
	assertDecimal(t, "-110", r.Balance)
}

func TestCalculateSplitWithOverride(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	// Fixed $100 payout, $20 parts: tech is owed 120 and holds 200 in
	// cash, so 80 comes back to the company.
	r := calc.CalculateSingle(Job{
		Total:          d("350"),
		Parts:          d("20"),
		PaymentMethod:  PaymentSplit,
		CommissionRate: d("0.5"),
		CashAmount:     d("200"),
		CCAmount:       d("150"),
		TechAmount:     dp("100"),
	})
	assertDecimal(t, "120", r.TechProfit)
	assertDecimal(t, "80", r.Balance)
}

func TestCalculateSplitWithOverrideCashShortfall(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	// Tech is owed 120 but holds only 50 in cash: company covers the
	// remaining 70.
	r := calc.CalculateSingle(Job{
		Total:          d("350"),
		Parts:          d("20"),
		PaymentMethod:  PaymentSplit,
		CommissionRate: d("0.5"),
		CashAmount:     d("50"),
		CCAmount:       d("300"),
		TechAmount:     dp("100"),
	})
	assertDecimal(t, "120", r.TechProfit)
	assertDecimal(t, "-70", r.Balance)
}

func TestCalculateSingleIsPure(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	job := Job{
		Total:          d("550"),
		Parts:          d("9"),
		PaymentMethod:  PaymentCash,
		CommissionRate: d("0.4"),
	}
	first := calc.CalculateSingle(job)
	second := calc.CalculateSingle(job)
	assert.True(t, first.NetAmount.Equal(second.NetAmount))
	assert.True(t, first.TechProfit.Equal(second.TechProfit))
	assert.True(t, first.Balance.Equal(second.Balance))
}

func TestCalculateSummaryMatchesFieldwiseSums(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	jobs := []Job{
		{Total: d("1000"), PaymentMethod: PaymentCash, CommissionRate: d("0.5"), CashAmount: d("1000")},
		{Total: d("1000"), Parts: d("50"), PaymentMethod: PaymentCC, CommissionRate: d("0.5"), CCAmount: d("1000")},
		{Total: d("400"), Parts: d("25"), PaymentMethod: PaymentSplit, CommissionRate: d("0.5"),
			CashAmount: d("200"), CCAmount: d("150"), CheckAmount: d("50")},
	}
	results := calc.CalculateBatch(jobs)
	require.Len(t, results, 3)

	summary := calc.CalculateSummary(results)
	assert.Equal(t, 3, summary.JobCount)

	profit := decimal.Zero
	balance := decimal.Zero
	for _, r := range results {
		profit = profit.Add(r.TechProfit)
		balance = balance.Add(r.Balance)
	}
	assert.True(t, summary.TotalTechProfit.Equal(profit))
	assert.True(t, summary.TotalBalance.Equal(balance))
	assertDecimal(t, "2400", summary.TotalSales)
	assertDecimal(t, "75", summary.TotalParts)
	assertDecimal(t, "1200", summary.TotalCash)
	assertDecimal(t, "1150", summary.TotalCC)
	assertDecimal(t, "50", summary.TotalCheck)
}

func TestNewJobValidation(t *testing.T) {
	t.Parallel()

	_, err := NewJob(Job{Total: d("100"), PaymentMethod: PaymentCash, CommissionRate: d("1.5")})
	require.Error(t, err)

	_, err = NewJob(Job{Total: d("100"), PaymentMethod: "venmo", CommissionRate: d("0.5")})
	require.Error(t, err)

	job, err := NewJob(Job{Total: d("100"), PaymentMethod: PaymentCC, CommissionRate: d("0.5")})
	require.NoError(t, err)
	assertDecimal(t, "100", job.CCAmount)
	assert.True(t, job.CashAmount.IsZero())
}

func TestNewTechnicianValidation(t *testing.T) {
	t.Parallel()

	_, err := NewTechnician("id", "Avi", d("-0.1"))
	require.Error(t, err)

	tech, err := NewTechnician("id", "  Avi ", d("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "Avi", tech.Name)
}

func TestSplitMismatch(t *testing.T) {
	t.Parallel()

	job := Job{
		Total:         d("400"),
		PaymentMethod: PaymentSplit,
		CashAmount:    d("200"),
		CCAmount:      d("150"),
		CheckAmount:   d("40"),
	}
	assert.True(t, job.SplitMismatch())

	job.CheckAmount = d("50")
	assert.False(t, job.SplitMismatch())

	// Only split jobs can mismatch.
	cash := Job{Total: d("400"), PaymentMethod: PaymentCash}
	assert.False(t, cash.SplitMismatch())
}

func TestZeroRateAndFullRate(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	r := calc.CalculateSingle(Job{
		Total:          d("200"),
		PaymentMethod:  PaymentCash,
		CommissionRate: d("0"),
	})
	assertDecimal(t, "0", r.TechProfit)
	assertDecimal(t, "200", r.Balance)

	r = calc.CalculateSingle(Job{
		Total:          d("200"),
		PaymentMethod:  PaymentCash,
		CommissionRate: d("1"),
	})
	assertDecimal(t, "200", r.TechProfit)
	assertDecimal(t, "0", r.Balance)
}
