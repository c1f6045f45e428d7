package repository

import (
	"context"

	"copymill/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UsageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUsageRepository(db *pgxpool.Pool, logger *zap.Logger) *UsageRepository {
	return &UsageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UsageRepository) Create(ctx context.Context, entry *models.UsageLogEntry) error {
	query := squirrel.Insert("usage_log").
		Columns("id", "model", "feature", "prompt_tokens", "completion_tokens",
			"total_tokens", "cost_usd", "company_id", "user_id", "created_at").
		Values(entry.ID, entry.Model, entry.Feature, entry.PromptTokens, entry.CompletionTokens,
			entry.TotalTokens, entry.CostUSD, entry.CompanyID, entry.UserID, entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
