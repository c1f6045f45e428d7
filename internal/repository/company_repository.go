package repository

import (
	"context"
	"errors"

	"copymill/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CompanyRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCompanyRepository(db *pgxpool.Pool, logger *zap.Logger) *CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := squirrel.Select("id", "name", "industry", "website", "writing_dna",
		"brand_values", "philosophy", "founders", "history", "achievements", "created_at", "updated_at").
		From("companies").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var company models.Company
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&company.ID, &company.Name, &company.Industry, &company.Website, &company.WritingDNA,
		&company.Values, &company.Philosophy, &company.Founders, &company.History, &company.Achievements,
		&company.CreatedAt, &company.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &company, nil
}
