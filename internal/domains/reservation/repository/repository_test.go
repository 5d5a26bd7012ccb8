package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"mesa/infras/otel/mocks"
	"mesa/infras/postgres"
	"mesa/internal/domains/reservation/repository"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConflictRepo(t *testing.T) (repository.Reservation, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{Read: sqlx.NewDb(db, "sqlmock")}

	return repository.New(conn, mocks.NewOtel()), mock
}

// The exclusion parameter compares against id::text so callers without a
// reservation to exclude bind an empty string instead of an invalid uuid.
func TestReservationRepository_HasConflict_EmptyExclusionBindsAsText(t *testing.T) {
	repo, mock := newConflictRepo(t)

	start := time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`($2 = '' OR id::text <> $2)`)).
		WithArgs("t1", "", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	conflict, err := repo.HasConflict(context.Background(), "t1", start, end, "")

	assert.NoError(t, err)
	assert.True(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_HasConflict_ExcludesGivenReservation(t *testing.T) {
	repo, mock := newConflictRepo(t)

	start := time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`($2 = '' OR id::text <> $2)`)).
		WithArgs("t1", "res-1", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	conflict, err := repo.HasConflict(context.Background(), "t1", start, end, "res-1")

	assert.NoError(t, err)
	assert.False(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_HasConflict_QueryError(t *testing.T) {
	repo, mock := newConflictRepo(t)

	start := time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WillReturnError(assert.AnError)

	_, err := repo.HasConflict(context.Background(), "t1", start, start.Add(time.Hour), "")

	assert.Error(t, err)
}
