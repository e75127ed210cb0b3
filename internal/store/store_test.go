package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilevy18/techpay.git/internal/commission"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "techpay-test.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestJobRoundTrip(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	tech, err := st.GetOrCreateTechnician(ctx, "David", d("0.5"))
	require.NoError(t, err)

	jobDate := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	techAmount := d("120")
	job, err := commission.NewJob(commission.Job{
		TechnicianID:   tech.ID,
		TechnicianName: tech.Name,
		Address:        "123 Main St",
		Description:    "lock change",
		Phone:          "917-555-1234",
		Total:          d("450.50"),
		Parts:          d("50"),
		PaymentMethod:  commission.PaymentCash,
		JobDate:        &jobDate,
		CommissionRate: d("0.5"),
		TechAmount:     &techAmount,
	})
	require.NoError(t, err)

	saved, err := st.CreateJob(ctx, job)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := st.GetJob(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, tech.ID, got.TechnicianID)
	assert.Equal(t, "David", got.TechnicianName)
	assert.Equal(t, "123 Main St", got.Address)
	assert.Equal(t, "lock change", got.Description)
	assert.True(t, d("450.50").Equal(got.Total), "total %s", got.Total)
	assert.True(t, d("50").Equal(got.Parts))
	assert.True(t, d("450.50").Equal(got.CashAmount), "cash default-filled")
	assert.Equal(t, commission.PaymentCash, got.PaymentMethod)
	require.NotNil(t, got.JobDate)
	assert.True(t, jobDate.Equal(*got.JobDate))
	require.NotNil(t, got.TechAmount)
	assert.True(t, d("120").Equal(*got.TechAmount))
	assert.False(t, got.Paid)
	assert.Nil(t, got.PaidDate)
}

func TestGetJobNotFound(t *testing.T) {
	t.Parallel()
	st := testStore(t)

	got, err := st.GetJob(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJobWithoutTechnician(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	job, err := commission.NewJob(commission.Job{
		Address:        "456 Elm Ave",
		Total:          d("200"),
		PaymentMethod:  commission.PaymentCC,
		CommissionRate: d("0.5"),
	})
	require.NoError(t, err)

	saved, err := st.CreateJob(ctx, job)
	require.NoError(t, err)

	got, err := st.GetJob(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.TechnicianID)
}

func TestListJobsFilters(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	david, err := st.GetOrCreateTechnician(ctx, "David", d("0.5"))
	require.NoError(t, err)
	john, err := st.GetOrCreateTechnician(ctx, "John", d("0.4"))
	require.NoError(t, err)

	mkJob := func(techID string, day int) commission.Job {
		date := time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)
		job, err := commission.NewJob(commission.Job{
			TechnicianID:   techID,
			Address:        "123 Main St",
			Total:          d("100"),
			PaymentMethod:  commission.PaymentCash,
			JobDate:        &date,
			CommissionRate: d("0.5"),
		})
		require.NoError(t, err)
		saved, err := st.CreateJob(ctx, job)
		require.NoError(t, err)
		return saved
	}

	j1 := mkJob(david.ID, 5)
	mkJob(david.ID, 10)
	mkJob(john.ID, 15)

	all, err := st.ListJobs(ctx, JobFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	davids, err := st.ListJobs(ctx, JobFilter{TechnicianID: david.ID})
	require.NoError(t, err)
	assert.Len(t, davids, 2)

	from := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	late, err := st.ListJobs(ctx, JobFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, late, 2)

	to := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	early, err := st.ListJobs(ctx, JobFilter{To: &to})
	require.NoError(t, err)
	require.Len(t, early, 1)
	assert.Equal(t, j1.ID, early[0].ID)

	require.NoError(t, st.SetJobPaid(ctx, j1.ID, true))
	unpaid, err := st.ListJobs(ctx, JobFilter{UnpaidOnly: true})
	require.NoError(t, err)
	assert.Len(t, unpaid, 2)
}

func TestSetJobPaid(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	job, err := commission.NewJob(commission.Job{
		Address:        "123 Main St",
		Total:          d("100"),
		PaymentMethod:  commission.PaymentCash,
		CommissionRate: d("0.5"),
	})
	require.NoError(t, err)
	saved, err := st.CreateJob(ctx, job)
	require.NoError(t, err)

	require.NoError(t, st.SetJobPaid(ctx, saved.ID, true))
	got, err := st.GetJob(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.NotNil(t, got.PaidDate)

	require.NoError(t, st.SetJobPaid(ctx, saved.ID, false))
	got, err = st.GetJob(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, got.Paid)
	assert.Nil(t, got.PaidDate)

	assert.Error(t, st.SetJobPaid(ctx, "nope", true))
}

func TestDeleteJob(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	job, err := commission.NewJob(commission.Job{
		Address:        "123 Main St",
		Total:          d("100"),
		PaymentMethod:  commission.PaymentCash,
		CommissionRate: d("0.5"),
	})
	require.NoError(t, err)
	saved, err := st.CreateJob(ctx, job)
	require.NoError(t, err)

	require.NoError(t, st.DeleteJob(ctx, saved.ID))
	got, err := st.GetJob(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, st.DeleteJob(ctx, saved.ID))
}

func TestGetOrCreateDedupesNames(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	first, err := st.GetOrCreateTechnician(ctx, "John", d("0.5"))
	require.NoError(t, err)

	// Case and whitespace variants resolve to the same technician.
	same, err := st.GetOrCreateTechnician(ctx, "  john ", d("0.4"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, same.ID)
	assert.True(t, d("0.5").Equal(same.CommissionRate), "existing rate kept")

	// One-character typos do too.
	typo, err := st.GetOrCreateTechnician(ctx, "Jhon", d("0.4"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, typo.ID)

	// A genuinely different name is a new technician.
	other, err := st.GetOrCreateTechnician(ctx, "David", d("0.4"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	techs, err := st.ListTechnicians(ctx)
	require.NoError(t, err)
	assert.Len(t, techs, 2)
}

func TestNameDistance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, nameDistance("john", "john"))
	assert.Equal(t, 1, nameDistance("jon", "john"))
	assert.Equal(t, 1, nameDistance("jhon", "john"), "adjacent swap is one edit")
	assert.Equal(t, 1, nameDistance("mkie", "mike"))
	assert.Equal(t, 2, nameDistance("jnoh", "john"), "non-adjacent rearrangement is not")
	assert.Equal(t, 2, nameDistance("joy", "john"))
}

func TestGetOrCreateRejectsBadInput(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	_, err := st.GetOrCreateTechnician(ctx, "", d("0.5"))
	assert.Error(t, err)

	_, err = st.GetOrCreateTechnician(ctx, "Avi", d("1.5"))
	assert.Error(t, err)
}

func TestSetTechnicianRate(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	tech, err := st.GetOrCreateTechnician(ctx, "Avi", d("0.5"))
	require.NoError(t, err)

	require.NoError(t, st.SetTechnicianRate(ctx, tech.ID, d("0.45")))
	got, err := st.GetTechnicianByName(ctx, "avi")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, d("0.45").Equal(got.CommissionRate))

	assert.Error(t, st.SetTechnicianRate(ctx, tech.ID, d("2")))
	assert.Error(t, st.SetTechnicianRate(ctx, "nope", d("0.5")))
}

func TestTechnicianStats(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	ctx := context.Background()

	tech, err := st.GetOrCreateTechnician(ctx, "David", d("0.5"))
	require.NoError(t, err)

	add := func(total string, method commission.PaymentMethod) commission.Job {
		job, err := commission.NewJob(commission.Job{
			TechnicianID:   tech.ID,
			Address:        "123 Main St",
			Total:          d(total),
			PaymentMethod:  method,
			CommissionRate: tech.CommissionRate,
		})
		require.NoError(t, err)
		saved, err := st.CreateJob(ctx, job)
		require.NoError(t, err)
		return saved
	}

	cashJob := add("1000", commission.PaymentCash) // balance +500
	add("1000", commission.PaymentCC)              // balance -500

	stats, err := st.TechnicianStats(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.JobCount)
	assert.Equal(t, 2, stats.UnpaidCount)
	assert.True(t, d("2000").Equal(stats.TotalSales))
	assert.True(t, d("1000").Equal(stats.TotalTechProfit))
	assert.True(t, stats.UnpaidBalance.IsZero(), "balances cancel: %s", stats.UnpaidBalance)

	require.NoError(t, st.SetJobPaid(ctx, cashJob.ID, true))
	stats, err = st.TechnicianStats(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.UnpaidCount)
	assert.True(t, d("-500").Equal(stats.UnpaidBalance))
}
