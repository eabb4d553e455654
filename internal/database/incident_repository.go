package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
)

// incidentSelectColumns lists columns for SELECT queries on incidents.
const incidentSelectColumns = `id, title, location, latitude, longitude, injured, killed,
	political_party, perpetrator_role, date, severity, description, source_url, images,
	created_at, updated_at`

// IncidentRepository handles database operations for incidents.
type IncidentRepository struct {
	db *sqlx.DB
}

// NewIncidentRepository creates a new incident repository.
func NewIncidentRepository(db *sqlx.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Create persists a new incident. The incident's invariants are validated
// first: an unattributed incident must never be written.
func (r *IncidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	if err := incident.Validate(); err != nil {
		return fmt.Errorf("invalid incident: %w", err)
	}

	incident.ID = uuid.New().String()
	now := time.Now()
	incident.CreatedAt = now
	incident.UpdatedAt = now

	query := `
		INSERT INTO incidents (
			id, title, location, latitude, longitude, injured, killed,
			political_party, perpetrator_role, date, severity, description,
			source_url, images, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		incident.ID,
		incident.Title,
		incident.Location,
		incident.Latitude,
		incident.Longitude,
		incident.Injured,
		incident.Killed,
		incident.PoliticalParty,
		incident.Role,
		incident.Date,
		incident.Severity,
		incident.Description,
		incident.SourceURL,
		incident.Images,
		incident.CreatedAt,
		incident.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert incident: %w", err)
	}

	return nil
}

// FindByLocationSince returns incidents at the given location dated at or
// after since, newest first. This is the dedup comparison window query.
func (r *IncidentRepository) FindByLocationSince(
	ctx context.Context,
	location string,
	since time.Time,
) ([]domain.Incident, error) {
	query := `
		SELECT ` + incidentSelectColumns + `
		FROM incidents
		WHERE location = $1 AND date >= $2
		ORDER BY date DESC
	`

	var incidents []domain.Incident
	if err := r.db.SelectContext(ctx, &incidents, query, location, since); err != nil {
		return nil, fmt.Errorf("select incidents by location: %w", err)
	}
	return incidents, nil
}

// ListAll returns every incident, newest first by creation time.
func (r *IncidentRepository) ListAll(ctx context.Context) ([]domain.Incident, error) {
	query := `
		SELECT ` + incidentSelectColumns + `
		FROM incidents
		ORDER BY created_at DESC
	`

	var incidents []domain.Incident
	if err := r.db.SelectContext(ctx, &incidents, query); err != nil {
		return nil, fmt.Errorf("select all incidents: %w", err)
	}
	return incidents, nil
}

// DeleteByIDs removes the incidents with the given ids and returns how
// many rows were deleted.
func (r *IncidentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM incidents WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("delete incidents: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// DeleteUnattributed removes incidents whose party is empty or the unknown
// sentinel. Such rows should never exist; this backstops older data.
func (r *IncidentRepository) DeleteUnattributed(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM incidents WHERE political_party = '' OR political_party = $1`,
		domain.UnknownParty,
	)
	if err != nil {
		return 0, fmt.Errorf("delete unattributed incidents: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// Count returns the total number of persisted incidents.
func (r *IncidentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM incidents`); err != nil {
		return 0, fmt.Errorf("count incidents: %w", err)
	}
	return count, nil
}
