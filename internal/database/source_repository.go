package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
)

// ErrSourceNotFound is returned when a source lookup matches no row.
var ErrSourceNotFound = errors.New("source not found")

// SourceRepository handles database operations for news sources.
type SourceRepository struct {
	db *sqlx.DB
}

// NewSourceRepository creates a new source repository.
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// Create persists a new source configuration.
func (r *SourceRepository) Create(ctx context.Context, source *domain.Source) error {
	if err := source.Validate(); err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}

	source.ID = uuid.New().String()
	now := time.Now()
	source.CreatedAt = now
	source.UpdatedAt = now

	selectorsJSON, err := json.Marshal(source.Selectors)
	if err != nil {
		return fmt.Errorf("marshal selectors: %w", err)
	}

	query := `
		INSERT INTO sources (id, name, url, selectors, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(ctx, query,
		source.ID, source.Name, source.URL, selectorsJSON,
		source.Enabled, source.CreatedAt, source.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert source: %w", err)
	}

	return nil
}

// ListActive returns all enabled sources ordered by name.
func (r *SourceRepository) ListActive(ctx context.Context) ([]domain.Source, error) {
	query := `
		SELECT id, name, url, selectors, enabled, created_at, updated_at
		FROM sources
		WHERE enabled = true
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select active sources: %w", err)
	}
	defer rows.Close()

	var list []domain.Source
	for rows.Next() {
		source, scanErr := scanSource(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		list = append(list, *source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}
	return list, nil
}

// GetByName returns the source with the given name.
func (r *SourceRepository) GetByName(ctx context.Context, name string) (*domain.Source, error) {
	query := `
		SELECT id, name, url, selectors, enabled, created_at, updated_at
		FROM sources
		WHERE name = $1
	`

	row := r.db.QueryRowContext(ctx, query, name)
	source, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSourceNotFound
	}
	return source, err
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanSource.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSource(row rowScanner) (*domain.Source, error) {
	var source domain.Source
	var selectorsJSON []byte

	err := row.Scan(
		&source.ID,
		&source.Name,
		&source.URL,
		&selectorsJSON,
		&source.Enabled,
		&source.CreatedAt,
		&source.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan source: %w", err)
	}

	if len(selectorsJSON) > 0 {
		if err := json.Unmarshal(selectorsJSON, &source.Selectors); err != nil {
			return nil, fmt.Errorf("unmarshal selectors: %w", err)
		}
	}
	return &source, nil
}
