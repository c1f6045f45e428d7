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

type TemplateRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTemplateRepository(db *pgxpool.Pool, logger *zap.Logger) *TemplateRepository {
	return &TemplateRepository{
		db:     db,
		logger: logger,
	}
}

// GetActive returns the one active template override for a company and
// category, newest-first if more than one slipped in.
func (r *TemplateRepository) GetActive(ctx context.Context, companyID uuid.UUID, category models.ContentCategory) (*models.PromptTemplate, error) {
	query := squirrel.Select("id", "company_id", "category", "content", "active", "created_at").
		From("prompt_templates").
		Where(squirrel.Eq{"company_id": companyID, "category": category, "active": true}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var tmpl models.PromptTemplate
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&tmpl.ID, &tmpl.CompanyID, &tmpl.Category, &tmpl.Content, &tmpl.Active, &tmpl.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &tmpl, nil
}
