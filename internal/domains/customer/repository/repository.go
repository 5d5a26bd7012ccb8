package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mesa/infras/otel"
	"mesa/infras/postgres"
	"mesa/internal/domains/customer/model"
	"mesa/shared/constant"
	gDto "mesa/shared/dto"
	"mesa/shared/logger"
)

var sortableColumns = map[string]bool{
	model.FieldFullName:         true,
	model.FieldEmail:            true,
	model.FieldLoyaltyPoints:    true,
	constant.DefaultValueSortBy: true,
}

type Customer interface {
	Insert(ctx context.Context, customer model.Customer) error
	Get(ctx context.Context, id string) (model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, search string) ([]model.Customer, error)
	Count(ctx context.Context, search string) (int, error)
	Exist(ctx context.Context, id string) (bool, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, customer model.Customer) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, customer model.Customer) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, full_name, email, phone, loyalty_points, created_at, updated_at)
		VALUES (:id, :full_name, :email, :phone, :loyalty_points, :created_at, :updated_at)`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, customer); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert customer: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (res model.Customer, err error) {
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

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, search string) (res []model.Customer, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	where, args := searchClause(search)

	sortBy := params.SortBy
	if !sortableColumns[sortBy] {
		sortBy = constant.DefaultValueSortBy
	}

	sortDir := gDto.SortDirDesc
	if strings.EqualFold(params.SortDir, gDto.SortDirAsc) {
		sortDir = gDto.SortDirAsc
	}

	query := fmt.Sprintf("SELECT * FROM %s%s ORDER BY %s %s LIMIT %d OFFSET %d",
		model.TableName, where, sortBy, sortDir, params.Limit, (params.Page-1)*params.Limit)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &res, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) Count(ctx context.Context, search string) (res int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	where, args := searchClause(search)

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", model.TableName, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &res, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) Exist(ctx context.Context, id string) (res bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &res, query, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) EmailTaken(ctx context.Context, email, excludeID string) (res bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.EmailTaken", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE LOWER(email) = LOWER($1) AND id <> $2)", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &res, query, email, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to check if email is taken: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) Update(ctx context.Context, customer model.Customer) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`
		UPDATE %s
		SET full_name = :full_name,
			email = :email,
			phone = :phone,
			loyalty_points = :loyalty_points,
			updated_at = :updated_at
		WHERE id = :id`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, customer); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update customer: %w", err)
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

		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}

// searchClause matches name, email or phone case-insensitively.
func searchClause(search string) (string, []any) {
	if strings.TrimSpace(search) == "" {
		return "", nil
	}

	pattern := "%" + strings.TrimSpace(search) + "%"

	return " WHERE full_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1", []any{pattern}
}
