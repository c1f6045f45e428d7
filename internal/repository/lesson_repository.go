package repository

import (
	"context"

	"copymill/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var lessonColumns = []string{
	"id", "company_id", "feedback", "severity", "content_type", "source", "active", "created_at",
}

type LessonRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewLessonRepository(db *pgxpool.Pool, logger *zap.Logger) *LessonRepository {
	return &LessonRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := squirrel.Insert("lessons").
		Columns(lessonColumns...).
		Values(lesson.ID, lesson.CompanyID, lesson.Feedback, lesson.Severity,
			lesson.ContentType, lesson.Source, lesson.Active, lesson.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *LessonRepository) CreateBatch(ctx context.Context, lessons []*models.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	builder := squirrel.Insert("lessons").
		Columns(lessonColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, lesson := range lessons {
		builder = builder.Values(lesson.ID, lesson.CompanyID, lesson.Feedback, lesson.Severity,
			lesson.ContentType, lesson.Source, lesson.Active, lesson.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *LessonRepository) CountActive(ctx context.Context, companyID uuid.UUID) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("lessons").
		Where(squirrel.Eq{"company_id": companyID, "active": true}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetActive returns active lessons ordered severity-first (high, medium, low)
// then newest-first within each severity.
func (r *LessonRepository) GetActive(ctx context.Context, companyID uuid.UUID) ([]*models.Lesson, error) {
	query := squirrel.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"company_id": companyID, "active": true}).
		OrderBy("CASE severity WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		if err := rows.Scan(&lesson.ID, &lesson.CompanyID, &lesson.Feedback, &lesson.Severity,
			&lesson.ContentType, &lesson.Source, &lesson.Active, &lesson.CreatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, &lesson)
	}

	return lessons, rows.Err()
}

// GetActiveScoped returns up to limit active lessons that are either global
// (content_type IS NULL) or scoped to the given category, for prompt
// assembly.
func (r *LessonRepository) GetActiveScoped(ctx context.Context, companyID uuid.UUID, category models.ContentCategory, limit int) ([]*models.Lesson, error) {
	query := squirrel.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"company_id": companyID, "active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"content_type": nil},
			squirrel.Eq{"content_type": category},
		}).
		OrderBy("CASE severity WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END", "created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		if err := rows.Scan(&lesson.ID, &lesson.CompanyID, &lesson.Feedback, &lesson.Severity,
			&lesson.ContentType, &lesson.Source, &lesson.Active, &lesson.CreatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, &lesson)
	}

	return lessons, rows.Err()
}

// DeactivateAll soft-deletes every active lesson for a company. Rows are kept
// for the audit trail; only the active flag flips.
func (r *LessonRepository) DeactivateAll(ctx context.Context, companyID uuid.UUID) error {
	query := squirrel.Update("lessons").
		Set("active", false).
		Where(squirrel.Eq{"company_id": companyID, "active": true}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
