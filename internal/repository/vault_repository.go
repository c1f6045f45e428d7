package repository

import (
	"context"

	"copymill/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type VaultRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewVaultRepository(db *pgxpool.Pool, logger *zap.Logger) *VaultRepository {
	return &VaultRepository{
		db:     db,
		logger: logger,
	}
}

// GetByCompany returns vault documents newest-first. The assembler consumes
// them in this order when applying the context budget.
func (r *VaultRepository) GetByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.VaultDocument, error) {
	query := squirrel.Select("id", "company_id", "filename", "content", "category", "created_at").
		From("vault_documents").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("created_at DESC").
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

	var docs []*models.VaultDocument
	for rows.Next() {
		var doc models.VaultDocument
		if err := rows.Scan(&doc.ID, &doc.CompanyID, &doc.Filename, &doc.Content, &doc.Category, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
