// Package store persists jobs and technicians. It speaks Postgres
// when a DATABASE_URL is available and falls back to a local SQLite
// file otherwise, so the tool works with no setup at all.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/avilevy18/techpay.git/internal/commission"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite3"
)

// Store is a database-backed job/technician repository.
type Store struct {
	db     *sql.DB
	driver string
}

// OpenPostgres connects to Postgres and ensures the schema exists.
func OpenPostgres(dsn string) (*Store, error) {
	db, err := sql.Open(driverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db, driver: driverPostgres}, nil
}

// OpenSQLite opens (creating if needed) a local SQLite database.
func OpenSQLite(path string) (*Store, error) {
	db, err := sql.Open(driverSQLite, path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db, driver: driverSQLite}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// bind rewrites ? placeholders to $1..$N for Postgres. Queries are
// written once in SQLite style.
func (s *Store) bind(query string) string {
	if s.driver != driverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ── Technicians ──────────────────────────────────────────────────────

// nameDistance is edit distance over lowercase names, counting an
// adjacent transposition ("jhon" for "john") as a single edit.
func nameDistance(a, b string) int {
	d := levenshtein.ComputeDistance(a, b)
	if d == 2 && isTransposition([]rune(a), []rune(b)) {
		return 1
	}
	return d
}

func isTransposition(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	diff := -1
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if diff >= 0 {
			// A second mismatch only qualifies when it completes
			// the swap started at the first one.
			return i == diff+1 && a[i] == b[diff] && a[diff] == b[i] && string(a[i+1:]) == string(b[i+1:])
		}
		diff = i
	}
	return false
}

// GetOrCreateTechnician finds a technician by name or creates one.
// Matching is case-insensitive and trimmed, and a one-character typo
// ("Jhon" for "John") still resolves to the existing technician
// rather than creating a duplicate.
func (s *Store) GetOrCreateTechnician(ctx context.Context, name string, rate decimal.Decimal) (commission.Technician, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return commission.Technician{}, fmt.Errorf("technician name is empty")
	}

	existing, err := s.ListTechnicians(ctx)
	if err != nil {
		return commission.Technician{}, err
	}

	lower := strings.ToLower(name)
	for _, t := range existing {
		if strings.ToLower(t.Name) == lower {
			return t, nil
		}
	}
	for _, t := range existing {
		if nameDistance(strings.ToLower(t.Name), lower) <= 1 {
			return t, nil
		}
	}

	tech, err := commission.NewTechnician(uuid.NewString(), name, rate)
	if err != nil {
		return commission.Technician{}, err
	}

	_, err = s.db.ExecContext(ctx, s.bind(`
		INSERT INTO technicians (id, name, commission_rate, created_at)
		VALUES (?, ?, ?, ?)`),
		tech.ID, tech.Name, tech.CommissionRate, time.Now())
	if err != nil {
		return commission.Technician{}, fmt.Errorf("failed to insert technician: %w", err)
	}

	return tech, nil
}

// ListTechnicians returns all technicians ordered by name.
func (s *Store) ListTechnicians(ctx context.Context) ([]commission.Technician, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, commission_rate
		FROM technicians
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}
	defer rows.Close()

	var techs []commission.Technician
	for rows.Next() {
		var t commission.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.CommissionRate); err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}

// GetTechnicianByName looks a technician up by exact (case-folded)
// name. Returns nil when not found.
func (s *Store) GetTechnicianByName(ctx context.Context, name string) (*commission.Technician, error) {
	techs, err := s.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for i := range techs {
		if strings.ToLower(techs[i].Name) == lower {
			return &techs[i], nil
		}
	}
	return nil, nil
}

// SetTechnicianRate updates a technician's commission rate. Stored
// jobs keep the rate they were created with; reports computed from
// the technician's current rate change retroactively by design.
func (s *Store) SetTechnicianRate(ctx context.Context, id string, rate decimal.Decimal) error {
	if err := commission.ValidateRate(rate); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		s.bind(`UPDATE technicians SET commission_rate = ? WHERE id = ?`),
		rate, id)
	if err != nil {
		return fmt.Errorf("failed to update rate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("technician %s not found", id)
	}
	return nil
}

// DeleteTechnician removes a technician. Fails while jobs still
// reference them.
func (s *Store) DeleteTechnician(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx,
		s.bind(`DELETE FROM technicians WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete technician: %w", err)
	}
	return nil
}

// ── Jobs ─────────────────────────────────────────────────────────────

// CreateJob persists a job, assigning an ID when absent.
func (s *Store) CreateJob(ctx context.Context, job commission.Job) (commission.Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	var techAmount decimal.NullDecimal
	if job.TechAmount != nil {
		techAmount = decimal.NullDecimal{Decimal: *job.TechAmount, Valid: true}
	}
	var techID sql.NullString
	if job.TechnicianID != "" {
		techID = sql.NullString{String: job.TechnicianID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, s.bind(`
		INSERT INTO jobs (
			id, technician_id, technician_name, address, description,
			phone, total, parts, payment_method, job_date,
			commission_rate, fee, cash_amount, cc_amount, check_amount,
			tech_amount, is_paid, paid_date, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		job.ID, techID, job.TechnicianName, job.Address, job.Description,
		job.Phone, job.Total, job.Parts, string(job.PaymentMethod), nullTime(job.JobDate),
		job.CommissionRate, job.Fee, job.CashAmount, job.CCAmount, job.CheckAmount,
		techAmount, job.Paid, nullTime(job.PaidDate), job.Notes, time.Now())
	if err != nil {
		return commission.Job{}, fmt.Errorf("failed to insert job: %w", err)
	}

	return job, nil
}

// JobFilter narrows ListJobs results. Zero values mean "no filter".
type JobFilter struct {
	TechnicianID string
	UnpaidOnly   bool
	From         *time.Time
	To           *time.Time
}

// ListJobs returns jobs newest-first, optionally filtered.
func (s *Store) ListJobs(ctx context.Context, filter JobFilter) ([]commission.Job, error) {
	query := `
		SELECT id, technician_id, technician_name, address, description,
		       phone, total, parts, payment_method, job_date,
		       commission_rate, fee, cash_amount, cc_amount, check_amount,
		       tech_amount, is_paid, paid_date, notes
		FROM jobs
		WHERE 1=1`
	var args []interface{}

	if filter.TechnicianID != "" {
		query += ` AND technician_id = ?`
		args = append(args, filter.TechnicianID)
	}
	if filter.UnpaidOnly {
		query += ` AND is_paid = ?`
		args = append(args, false)
	}
	if filter.From != nil {
		query += ` AND job_date >= ?`
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += ` AND job_date <= ?`
		args = append(args, *filter.To)
	}
	query += ` ORDER BY job_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, s.bind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []commission.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// GetJob fetches one job by ID. Returns nil when not found.
func (s *Store) GetJob(ctx context.Context, id string) (*commission.Job, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT id, technician_id, technician_name, address, description,
		       phone, total, parts, payment_method, job_date,
		       commission_rate, fee, cash_amount, cc_amount, check_amount,
		       tech_amount, is_paid, paid_date, notes
		FROM jobs WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	job, err := scanJob(rows)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// SetJobPaid marks a job paid (stamping today) or unpaid.
func (s *Store) SetJobPaid(ctx context.Context, id string, paid bool) error {
	var paidDate interface{}
	if paid {
		paidDate = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		s.bind(`UPDATE jobs SET is_paid = ?, paid_date = ? WHERE id = ?`),
		paid, paidDate, id)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s not found", id)
	}
	return nil
}

// DeleteJob removes a job.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.bind(`DELETE FROM jobs WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s not found", id)
	}
	return nil
}

// TechnicianStats summarizes a technician's stored jobs. Settlement
// figures are always derived fresh from the stored jobs, never
// persisted.
type TechnicianStats struct {
	JobCount        int
	UnpaidCount     int
	TotalSales      decimal.Decimal
	TotalTechProfit decimal.Decimal
	UnpaidBalance   decimal.Decimal
}

func (s *Store) TechnicianStats(ctx context.Context, technicianID string) (TechnicianStats, error) {
	jobs, err := s.ListJobs(ctx, JobFilter{TechnicianID: technicianID})
	if err != nil {
		return TechnicianStats{}, err
	}

	calc := commission.NewCalculator()
	stats := TechnicianStats{JobCount: len(jobs)}
	for _, r := range calc.CalculateBatch(jobs) {
		stats.TotalSales = stats.TotalSales.Add(r.Job.Total)
		stats.TotalTechProfit = stats.TotalTechProfit.Add(r.TechProfit)
		if !r.Job.Paid {
			stats.UnpaidCount++
			stats.UnpaidBalance = stats.UnpaidBalance.Add(r.Balance)
		}
	}
	return stats, nil
}

func scanJob(rows *sql.Rows) (commission.Job, error) {
	var job commission.Job
	var method string
	var techID sql.NullString
	var jobDate, paidDate sql.NullTime
	var techAmount decimal.NullDecimal

	err := rows.Scan(
		&job.ID, &techID, &job.TechnicianName, &job.Address, &job.Description,
		&job.Phone, &job.Total, &job.Parts, &method, &jobDate,
		&job.CommissionRate, &job.Fee, &job.CashAmount, &job.CCAmount, &job.CheckAmount,
		&techAmount, &job.Paid, &paidDate, &job.Notes,
	)
	if err != nil {
		return commission.Job{}, fmt.Errorf("failed to scan job: %w", err)
	}

	job.PaymentMethod = commission.PaymentMethod(method)
	job.TechnicianID = techID.String
	if jobDate.Valid {
		t := jobDate.Time
		job.JobDate = &t
	}
	if paidDate.Valid {
		t := paidDate.Time
		job.PaidDate = &t
	}
	if techAmount.Valid {
		d := techAmount.Decimal
		job.TechAmount = &d
	}
	return job, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
