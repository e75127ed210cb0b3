package store

// Schema is small enough to apply on open; both backends create the
// same two tables in their own dialect.

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS technicians (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	commission_rate TEXT NOT NULL DEFAULT '0.5',
	created_at      TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS jobs (
	id              TEXT PRIMARY KEY,
	technician_id   TEXT REFERENCES technicians(id),
	technician_name TEXT NOT NULL,
	address         TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL DEFAULT '',
	total           TEXT NOT NULL,
	parts           TEXT NOT NULL DEFAULT '0',
	payment_method  TEXT NOT NULL,
	job_date        TIMESTAMP,
	commission_rate TEXT NOT NULL,
	fee             TEXT NOT NULL DEFAULT '0',
	cash_amount     TEXT NOT NULL DEFAULT '0',
	cc_amount       TEXT NOT NULL DEFAULT '0',
	check_amount    TEXT NOT NULL DEFAULT '0',
	tech_amount     TEXT,
	is_paid         INTEGER NOT NULL DEFAULT 0,
	paid_date       TIMESTAMP,
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_technician ON jobs(technician_id);
CREATE INDEX IF NOT EXISTS idx_jobs_date ON jobs(job_date);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS technicians (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	commission_rate NUMERIC(5,4) NOT NULL DEFAULT 0.5,
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS jobs (
	id              TEXT PRIMARY KEY,
	technician_id   TEXT REFERENCES technicians(id),
	technician_name TEXT NOT NULL,
	address         TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL DEFAULT '',
	total           NUMERIC(12,2) NOT NULL,
	parts           NUMERIC(12,2) NOT NULL DEFAULT 0,
	payment_method  TEXT NOT NULL,
	job_date        DATE,
	commission_rate NUMERIC(5,4) NOT NULL,
	fee             NUMERIC(12,2) NOT NULL DEFAULT 0,
	cash_amount     NUMERIC(12,2) NOT NULL DEFAULT 0,
	cc_amount       NUMERIC(12,2) NOT NULL DEFAULT 0,
	check_amount    NUMERIC(12,2) NOT NULL DEFAULT 0,
	tech_amount     NUMERIC(12,2),
	is_paid         BOOLEAN NOT NULL DEFAULT FALSE,
	paid_date       DATE,
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_technician ON jobs(technician_id);
CREATE INDEX IF NOT EXISTS idx_jobs_date ON jobs(job_date);
`
