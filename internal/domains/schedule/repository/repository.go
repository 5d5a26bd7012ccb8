package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mesa/infras/otel"
	"mesa/infras/postgres"
	"mesa/internal/domains/schedule/model"
	"mesa/shared/constant"
	"mesa/shared/logger"
)

// ErrNotSeeded signals that the settings table has no row yet.
var ErrNotSeeded = errors.New("schedule not seeded")

type Schedule interface {
	Get(ctx context.Context) (model.Schedule, error)
	Insert(ctx context.Context, sched model.Schedule) error
	Update(ctx context.Context, sched model.Schedule) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Get(ctx context.Context) (res model.Schedule, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY created_at ASC LIMIT 1", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &res, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, ErrNotSeeded
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get schedule: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) Insert(ctx context.Context, sched model.Schedule) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, open_time, close_time, timezone, slot_minutes, closed_weekdays, created_at, updated_at)
		VALUES (:id, :open_time, :close_time, :timezone, :slot_minutes, :closed_weekdays, :created_at, :updated_at)`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, sched); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert schedule: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) Update(ctx context.Context, sched model.Schedule) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`
		UPDATE %s
		SET open_time = :open_time,
			close_time = :close_time,
			timezone = :timezone,
			slot_minutes = :slot_minutes,
			closed_weekdays = :closed_weekdays,
			updated_at = :updated_at
		WHERE id = :id`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, sched); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update schedule: %w", err)
	}

	return nil
}
