package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mesa/infras/otel"
	"mesa/infras/postgres"
	"mesa/internal/domains/reservation/model"
	"mesa/shared/constant"
	"mesa/shared/failure"
	"mesa/shared/logger"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Filter narrows list queries. Zero values mean "no constraint".
type Filter struct {
	Status     string
	CustomerID string
	TableID    string
	From       *time.Time
	To         *time.Time
}

type Reservation interface {
	Insert(ctx context.Context, reservation model.Reservation) error
	UpdateSlot(ctx context.Context, reservation model.Reservation) error
	HasConflict(ctx context.Context, tableID string, start, end time.Time, excludeID string) (bool, error)
	Get(ctx context.Context, id string) (model.Reservation, error)
	GetAll(ctx context.Context, filter Filter) ([]model.Reservation, error)
	HistoryByCustomer(ctx context.Context, customerID string) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	OccupiedTableIDs(ctx context.Context, reference time.Time) ([]string, error)
	FindStartingBetween(ctx context.Context, from, to time.Time, statuses []string) ([]model.Reservation, error)
	MarkElapsedDone(ctx context.Context, before time.Time) (int64, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// overlapQuery is the half-open interval test: an existing row
// conflicts iff existing.starts_at < end AND existing.ends_at > start.
// The exclusion compares on id::text so an empty $2 (no exclusion)
// stays a valid text bind instead of failing the uuid cast.
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM reservations
		WHERE table_id = $1
			AND status <> 'CANCELLED'
			AND ($2 = '' OR id::text <> $2)
			AND starts_at < $4
			AND ends_at > $3
	)`

// lockQuery serializes writers per table. The advisory lock is held
// until the surrounding transaction commits or rolls back, so the
// conflict re-check and the write form one atomic unit.
const lockQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`

// Insert writes a new reservation after re-checking the interval under
// a per-table advisory lock. Returns a slot-conflict failure when the
// interval is taken, with the unique (table_id, starts_at) index as a
// backstop for identical start instants.
func (repo *repositoryImpl) Insert(ctx context.Context, reservation model.Reservation) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, customer_id, table_id, party_size, starts_at, ends_at, status, notes, created_at, updated_at)
		VALUES (:id, :customer_id, :table_id, :party_size, :starts_at, :ends_at, :status, :notes, :created_at, :updated_at)`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.writeSlot(ctx, scope, reservation, constant.Empty, query)
}

// UpdateSlot rewrites a reservation under the same locking discipline
// as Insert, excluding the reservation itself from the conflict check.
func (repo *repositoryImpl) UpdateSlot(ctx context.Context, reservation model.Reservation) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.UpdateSlot", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`
		UPDATE %s
		SET customer_id = :customer_id,
			table_id = :table_id,
			party_size = :party_size,
			starts_at = :starts_at,
			ends_at = :ends_at,
			status = :status,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.writeSlot(ctx, scope, reservation, reservation.ID, query)
}

func (repo *repositoryImpl) writeSlot(ctx context.Context, scope otel.Scope, reservation model.Reservation, excludeID, writeQuery string) (err error) {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, lockQuery, reservation.TableID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock table for reservation: %w", err)
	}

	conflict, err := hasConflictOn(ctx, tx, reservation.TableID, reservation.StartsAt, reservation.EndsAt, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return err
	}

	if conflict {
		return failure.SlotConflict() //nolint:wrapcheck
	}

	if _, err = tx.NamedExecContext(ctx, writeQuery, reservation); err != nil {
		if isUniqueViolation(err) {
			return failure.SlotConflict() //nolint:wrapcheck
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to write reservation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) HasConflict(ctx context.Context, tableID string, start, end time.Time, excludeID string) (res bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.HasConflict", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, overlapQuery)

	res, err = hasConflictOn(ctx, repo.db.Read, tableID, start, end, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, err
	}

	return res, nil
}

type getter interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func hasConflictOn(ctx context.Context, db getter, tableID string, start, end time.Time, excludeID string) (bool, error) {
	var conflict bool
	if err := db.GetContext(ctx, &conflict, overlapQuery, tableID, excludeID, start, end); err != nil {
		return false, fmt.Errorf("failed to check reservation conflict: %w", err)
	}

	return conflict, nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (res model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &res, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, filter Filter) (res []model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	var (
		clauses []string
		args    []any
	)

	appendClause := func(condition string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(condition, len(args)))
	}

	if filter.Status != constant.Empty {
		appendClause("status = $%d", filter.Status)
	}

	if filter.CustomerID != constant.Empty {
		appendClause("customer_id = $%d", filter.CustomerID)
	}

	if filter.TableID != constant.Empty {
		appendClause("table_id = $%d", filter.TableID)
	}

	if filter.From != nil {
		appendClause("starts_at >= $%d", *filter.From)
	}

	if filter.To != nil {
		appendClause("starts_at < $%d", *filter.To)
	}

	query := fmt.Sprintf("SELECT * FROM %s", model.TableName)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY starts_at ASC"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &res, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) HistoryByCustomer(ctx context.Context, customerID string) (res []model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.HistoryByCustomer", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("SELECT * FROM %s WHERE customer_id = $1 ORDER BY starts_at DESC", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &res, query, customerID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get customer reservations: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.UpdateStatus", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET status = $2, updated_at = $3 WHERE id = $1", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.ExecContext(ctx, query, id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	return nil
}

// OccupiedTableIDs lists tables with a non-cancelled reservation
// covering the reference instant (starts_at <= ref < ends_at).
func (repo *repositoryImpl) OccupiedTableIDs(ctx context.Context, reference time.Time) (res []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.OccupiedTableIDs", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`
		SELECT DISTINCT table_id FROM %s
		WHERE status <> $1 AND starts_at <= $2 AND ends_at > $2`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &res, query, model.StatusCancelled, reference)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get occupied tables: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) FindStartingBetween(ctx context.Context, from, to time.Time, statuses []string) (res []model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.FindStartingBetween", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("SELECT * FROM %s WHERE starts_at >= ? AND starts_at < ?", model.TableName)
	args := []any{from, to}

	if len(statuses) > 0 {
		var inQuery string

		inQuery, args, err = sqlx.In(query+" AND status IN (?)", from, to, statuses)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return res, fmt.Errorf("failed to build reservation range query: %w", err)
		}

		query = inQuery
	}

	query = repo.db.Read.Rebind(query + " ORDER BY starts_at ASC")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &res, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get reservations in range: %w", err)
	}

	return res, nil
}

// MarkElapsedDone rolls PENDING and CONFIRMED reservations whose end
// has passed over to DONE in one statement. Used by the end-of-day
// sweep; the single UPDATE keeps the rollover atomic.
func (repo *repositoryImpl) MarkElapsedDone(ctx context.Context, before time.Time) (res int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.MarkElapsedDone", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, updated_at = $2
		WHERE status IN ($3, $4) AND ends_at <= $5`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, model.StatusDone, time.Now().UTC(), model.StatusPending, model.StatusConfirmed, before)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to mark reservations done: %w", err)
	}

	res, err = result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to read affected reservations: %w", err)
	}

	return res, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}
