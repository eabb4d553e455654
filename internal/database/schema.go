package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema creates the monitor's tables when they do not exist yet. The
// incidents table carries its dedup-relevant columns (location, date)
// indexed, since the comparison window query runs once per candidate.
const schema = `
CREATE TABLE IF NOT EXISTS incidents (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	injured INTEGER NOT NULL DEFAULT 0,
	killed INTEGER NOT NULL DEFAULT 0,
	political_party TEXT NOT NULL,
	perpetrator_role TEXT NOT NULL DEFAULT 'unclear',
	date TIMESTAMPTZ NOT NULL,
	severity TEXT NOT NULL DEFAULT 'medium',
	description TEXT NOT NULL DEFAULT '',
	source_url TEXT NOT NULL DEFAULT '',
	images JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_incidents_location_date ON incidents (location, date DESC);
CREATE INDEX IF NOT EXISTS idx_incidents_created_at ON incidents (created_at DESC);

CREATE TABLE IF NOT EXISTS sources (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	url TEXT NOT NULL,
	selectors JSONB NOT NULL,
	enabled BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the required tables and indexes if missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
