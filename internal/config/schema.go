package config

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of a pgx pool needed to apply the schema
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS leads (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT 'other'
		CHECK (source IN ('website', 'facebook_ads', 'google_ads', 'referral', 'events', 'other')),
	status TEXT NOT NULL DEFAULT 'new'
		CHECK (status IN ('new', 'contacted', 'qualified', 'lost', 'won')),
	score INTEGER NOT NULL DEFAULT 0 CHECK (score BETWEEN 0 AND 100),
	lead_value DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (lead_value >= 0),
	last_activity_at TIMESTAMPTZ,
	is_qualified BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Listing is always owner-scoped and newest first
CREATE INDEX IF NOT EXISTS idx_leads_user_created ON leads(user_id, created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_leads_user_status ON leads(user_id, status);
CREATE INDEX IF NOT EXISTS idx_leads_user_source ON leads(user_id, source);
`

// EnsureSchema creates tables and indexes if they don't exist
func EnsureSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("unable to apply schema: %w", err)
	}
	return nil
}
