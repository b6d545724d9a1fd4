package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/psqlbuilder"
)

var clientColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"notes",
	"total_visits",
	"last_visit_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByPhoneOrEmail ищет клиента по телефону или email
// Используется при бронировании: повторный клиент не плодит дубликатов
func (r *Repository) FindByPhoneOrEmail(ctx context.Context, phone string, email *string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	match := squirrel.Or{squirrel.Eq{"phone": phone}}
	if email != nil && *email != "" {
		match = append(match, squirrel.Eq{"email": *email})
	}

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(match).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByPhoneOrEmail - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	found, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByPhoneOrEmail - scan client: %v", ErrScanRow, err)
	}

	return found, nil
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("name", "email", "phone", "notes").
		Values(c.Name, c.Email, c.Phone, c.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// UpdateContact обновляет контактные данные клиента при повторном бронировании
func (r *Repository) UpdateContact(ctx context.Context, id int64, name string, email *string, phone string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("name", name).
		Set("email", email).
		Set("phone", phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateContact - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateContact - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateContact - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(s scanner) (*domain.Client, error) {
	var (
		c           domain.Client
		email       sql.NullString
		notes       sql.NullString
		lastVisitAt sql.NullTime
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := s.Scan(
		&c.ID,
		&c.Name,
		&email,
		&c.Phone,
		&notes,
		&c.TotalVisits,
		&lastVisitAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		c.Email = &email.String
	}
	if notes.Valid {
		c.Notes = &notes.String
	}
	if lastVisitAt.Valid {
		c.LastVisitAt = &lastVisitAt.Time
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
