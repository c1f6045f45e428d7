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

type StyleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewStyleRepository(db *pgxpool.Pool, logger *zap.Logger) *StyleRepository {
	return &StyleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *StyleRepository) GetByCompany(ctx context.Context, companyID uuid.UUID) (*models.StyleProfile, error) {
	query := squirrel.Select("id", "company_id", "tone", "avg_word_count", "vocabulary",
		"common_phrases", "preferred_formats", "summary", "created_at", "updated_at").
		From("style_profiles").
		Where(squirrel.Eq{"company_id": companyID}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var profile models.StyleProfile
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.ID, &profile.CompanyID, &profile.Tone, &profile.AvgWordCount, &profile.Vocabulary,
		&profile.CommonPhrases, &profile.PreferredFormats, &profile.Summary, &profile.CreatedAt, &profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// Upsert replaces the single profile a company may have.
func (r *StyleRepository) Upsert(ctx context.Context, profile *models.StyleProfile) error {
	query := squirrel.Insert("style_profiles").
		Columns("id", "company_id", "tone", "avg_word_count", "vocabulary",
			"common_phrases", "preferred_formats", "summary", "created_at", "updated_at").
		Values(profile.ID, profile.CompanyID, profile.Tone, profile.AvgWordCount, profile.Vocabulary,
			profile.CommonPhrases, profile.PreferredFormats, profile.Summary, profile.CreatedAt, profile.UpdatedAt).
		Suffix(`ON CONFLICT (company_id) DO UPDATE SET
			tone = EXCLUDED.tone,
			avg_word_count = EXCLUDED.avg_word_count,
			vocabulary = EXCLUDED.vocabulary,
			common_phrases = EXCLUDED.common_phrases,
			preferred_formats = EXCLUDED.preferred_formats,
			summary = EXCLUDED.summary,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
