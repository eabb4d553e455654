package database_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redoy0/political-violence-monitor/internal/database"
	"github.com/Redoy0/political-violence-monitor/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func incidentColumns() []string {
	return []string{
		"id", "title", "location", "latitude", "longitude", "injured", "killed",
		"political_party", "perpetrator_role", "date", "severity", "description",
		"source_url", "images", "created_at", "updated_at",
	}
}

func incidentRow(id, title string, date time.Time) []driver.Value {
	return []driver.Value{
		id, title, "ঢাকা", 23.8103, 90.4125, 5, 0,
		"বিএনপি", "aggressor", date, "heavy", "বর্ণনা",
		"https://news.example.com/a", `["https://img.example.com/1.jpg"]`,
		date, date,
	}
}

func TestIncidentRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewIncidentRepository(db)

	incident := &domain.Incident{
		Title:          "ঢাকায় সংঘর্ষে আহত ৫",
		Location:       "ঢাকা",
		Latitude:       23.8103,
		Longitude:      90.4125,
		Injured:        5,
		PoliticalParty: "বিএনপি",
		Role:           domain.RoleAggressor,
		Date:           time.Now(),
		Severity:       domain.SeverityHeavy,
		Description:    "বর্ণনা",
		SourceURL:      "https://news.example.com/a",
		Images:         domain.StringArray{"https://img.example.com/1.jpg"},
	}

	mock.ExpectExec("INSERT INTO incidents").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), incident))
	assert.NotEmpty(t, incident.ID)
	assert.False(t, incident.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_CreateRejectsUnattributed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewIncidentRepository(db)

	incident := &domain.Incident{
		Title:          "ঢাকায় সংঘর্ষে আহত ৫",
		PoliticalParty: domain.UnknownParty,
		Role:           domain.RoleUnclear,
		Severity:       domain.SeverityMedium,
	}

	// No INSERT is expected: validation fails before the database is touched.
	err := repo.Create(context.Background(), incident)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_FindByLocationSince(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewIncidentRepository(db)

	date := time.Date(2024, 8, 5, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(incidentColumns()).
		AddRow(incidentRow("id-1", "ঢাকায় সংঘর্ষে আহত ৫", date)...)

	mock.ExpectQuery("SELECT (.+) FROM incidents").
		WithArgs("ঢাকা", sqlmock.AnyArg()).
		WillReturnRows(rows)

	got, err := repo.FindByLocationSince(context.Background(), "ঢাকা", date.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "ঢাকায় সংঘর্ষে আহত ৫", got[0].Title)
	assert.Equal(t, 5, got[0].Injured)
	assert.Equal(t, domain.SeverityHeavy, got[0].Severity)
	assert.Equal(t, domain.StringArray{"https://img.example.com/1.jpg"}, got[0].Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_DeleteByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewIncidentRepository(db)

	mock.ExpectExec("DELETE FROM incidents WHERE id = ANY").
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := repo.DeleteByIDs(context.Background(), []string{"id-1", "id-2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_DeleteByIDsEmptyIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewIncidentRepository(db)

	count, err := repo.DeleteByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_DeleteUnattributed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewIncidentRepository(db)

	mock.ExpectExec("DELETE FROM incidents WHERE political_party").
		WithArgs(domain.UnknownParty).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.DeleteUnattributed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewIncidentRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM incidents").
		WillReturnError(sql.ErrConnDone)

	_, err := repo.ListAll(context.Background())
	assert.Error(t, err)
}
