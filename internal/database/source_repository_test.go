package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redoy0/political-violence-monitor/internal/database"
	"github.com/Redoy0/political-violence-monitor/internal/domain"
)

func sourceColumns() []string {
	return []string{"id", "name", "url", "selectors", "enabled", "created_at", "updated_at"}
}

func TestSourceRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSourceRepository(db)

	source := &domain.Source{
		Name: "Prothom Alo",
		URL:  "https://www.prothomalo.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".news_item",
			Title:    "h2 a",
		},
		Enabled: true,
	}

	mock.ExpectExec("INSERT INTO sources").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), source))
	assert.NotEmpty(t, source.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSourceRepository(db)

	source := &domain.Source{Name: "No Selectors", URL: "https://example.com"}

	assert.Error(t, repo.Create(context.Background(), source))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceRepository_ListActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSourceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(sourceColumns()).
		AddRow("id-1", "Prothom Alo", "https://www.prothomalo.com/politics",
			[]byte(`{"articles":".news_item","title":"h2 a","link":"a"}`), true, now, now)

	mock.ExpectQuery("SELECT (.+) FROM sources").WillReturnRows(rows)

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Prothom Alo", got[0].Name)
	assert.Equal(t, ".news_item", got[0].Selectors.Articles)
	assert.Equal(t, "a", got[0].Selectors.Link)
	assert.True(t, got[0].Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceRepository_GetByNameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSourceRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM sources").
		WithArgs("Nonexistent").
		WillReturnRows(sqlmock.NewRows(sourceColumns()))

	_, err := repo.GetByName(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, database.ErrSourceNotFound)
}
