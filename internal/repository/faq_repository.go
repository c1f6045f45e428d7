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

type FAQRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFAQRepository(db *pgxpool.Pool, logger *zap.Logger) *FAQRepository {
	return &FAQRepository{
		db:     db,
		logger: logger,
	}
}

// GetDefaultBot resolves the single active default bot for a company.
func (r *FAQRepository) GetDefaultBot(ctx context.Context, companyID uuid.UUID) (*models.Bot, error) {
	query := squirrel.Select("id", "company_id", "name", "is_default", "active", "created_at").
		From("bots").
		Where(squirrel.Eq{"company_id": companyID, "is_default": true, "active": true}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var bot models.Bot
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&bot.ID, &bot.CompanyID, &bot.Name, &bot.IsDefault, &bot.Active, &bot.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &bot, nil
}

// GetActiveEntries returns active FAQ rows for a bot. When category is
// non-empty, rows are filtered to that category or "general"; an empty
// category returns everything active.
func (r *FAQRepository) GetActiveEntries(ctx context.Context, botID uuid.UUID, category string, limit int) ([]*models.FAQEntry, error) {
	query := squirrel.Select("id", "bot_id", "question", "answer", "category", "active", "created_at").
		From("faq_entries").
		Where(squirrel.Eq{"bot_id": botID, "active": true}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if category != "" {
		query = query.Where(squirrel.Eq{"category": []string{category, "general"}})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.FAQEntry
	for rows.Next() {
		var entry models.FAQEntry
		if err := rows.Scan(&entry.ID, &entry.BotID, &entry.Question, &entry.Answer, &entry.Category, &entry.Active, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
