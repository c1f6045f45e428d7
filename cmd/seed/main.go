package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"copymill/internal/models"
	"copymill/internal/repository"
	"copymill/pkg/config"
	"copymill/pkg/logger"
	"copymill/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if err := createSchema(ctx, db); err != nil {
		appLogger.Fatal("Failed to create schema", zap.Error(err))
	}
	appLogger.Info("Schema ready")

	if err := seedDemoCompany(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to seed demo data", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

const contentTableDDL = `CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	company_id UUID NOT NULL,
	user_id UUID NOT NULL,
	prompt TEXT NOT NULL DEFAULT '',
	output TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	feedback TEXT,
	revision_of UUID,
	revision_number INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_%s_company_created ON %s (company_id, created_at DESC);`

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		industry TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		writing_dna TEXT NOT NULL DEFAULT '',
		brand_values TEXT NOT NULL DEFAULT '',
		philosophy TEXT NOT NULL DEFAULT '',
		founders TEXT NOT NULL DEFAULT '',
		history TEXT NOT NULL DEFAULT '',
		achievements TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vault_documents (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		filename TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bots (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		name TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS faq_entries (
		id UUID PRIMARY KEY,
		bot_id UUID NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'general',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS style_profiles (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL UNIQUE,
		tone TEXT NOT NULL DEFAULT '',
		avg_word_count INT NOT NULL DEFAULT 0,
		vocabulary TEXT[] NOT NULL DEFAULT '{}',
		common_phrases TEXT[] NOT NULL DEFAULT '{}',
		preferred_formats TEXT[] NOT NULL DEFAULT '{}',
		summary TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS prompt_templates (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		category TEXT NOT NULL,
		content TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lessons (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		feedback TEXT NOT NULL,
		severity TEXT NOT NULL DEFAULT 'medium',
		content_type TEXT,
		source TEXT NOT NULL DEFAULT 'rejection',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_company_active ON lessons (company_id, active)`,
	`CREATE TABLE IF NOT EXISTS usage_log (
		id UUID PRIMARY KEY,
		model TEXT NOT NULL,
		feature TEXT NOT NULL,
		prompt_tokens INT NOT NULL DEFAULT 0,
		completion_tokens INT NOT NULL DEFAULT 0,
		total_tokens INT NOT NULL DEFAULT 0,
		cost_usd DOUBLE PRECISION NOT NULL DEFAULT 0,
		company_id UUID NOT NULL,
		user_id UUID,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

var contentTables = []string{
	"content_newsletters", "content_offers", "content_webinars",
	"content_social_media", "content_announcements", "content_blog_posts",
	"content_course_content", "content_sales_pages", "content_cold_emails",
}

func createSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	for _, table := range contentTables {
		ddl := fmt.Sprintf(contentTableDDL, table, table, table)
		if _, err := db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("content table %s failed: %w", table, err)
		}
	}
	return nil
}

func seedDemoCompany(ctx context.Context, db *pgxpool.Pool, appLogger *zap.Logger) error {
	now := time.Now().UTC()
	companyID := uuid.MustParse("0b51a6d2-3f6e-4b38-9c78-2f1f6a1d9e01")

	var exists bool
	if err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)", companyID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		appLogger.Info("Demo company already seeded, skipping")
		return nil
	}

	_, err := db.Exec(ctx, `INSERT INTO companies
		(id, name, industry, website, writing_dna, brand_values, philosophy, founders, history, achievements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		companyID, "Fernweh Coffee Roasters", "specialty coffee", "https://fernweh.example",
		"Warm, direct, a little nerdy about origin and process. Short sentences. We talk to one reader, never to a crowd.",
		"Transparency from farm to cup", "Coffee is a craft, not a commodity",
		"Mara and Jonas Lindqvist", "Founded 2017 in a converted tram depot",
		"Roaster of the Year 2023 (Nordic Coffee Awards)",
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert demo company: %w", err)
	}

	vaultRepoDocs := []struct {
		filename, content, category string
	}{
		{"sourcing-guide.md", "We buy directly from eleven farms across Ethiopia, Colombia and Guatemala. Every lot is cupped twice before purchase...", "sourcing"},
		{"brand-voice.md", "Never say 'premium'. We show quality through detail: altitude, varietal, process, roast date.", "brand"},
	}
	for i, doc := range vaultRepoDocs {
		_, err := db.Exec(ctx, `INSERT INTO vault_documents (id, company_id, filename, content, category, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), companyID, doc.filename, doc.content, doc.category, now.Add(time.Duration(i)*time.Minute))
		if err != nil {
			return fmt.Errorf("failed to insert vault document: %w", err)
		}
	}

	botID := uuid.New()
	_, err = db.Exec(ctx, `INSERT INTO bots (id, company_id, name, is_default, active, created_at)
		VALUES ($1, $2, $3, TRUE, TRUE, $4)`, botID, companyID, "Fernweh Support", now)
	if err != nil {
		return fmt.Errorf("failed to insert demo bot: %w", err)
	}

	faqs := []struct{ q, a, cat string }{
		{"Do you ship internationally?", "Yes, to all EU countries within 3-5 business days.", "general"},
		{"How fresh is the coffee?", "We roast to order and ship within 48 hours of roasting.", "general"},
		{"Can I gift a subscription?", "Yes, gift subscriptions run 3, 6 or 12 months.", "newsletter"},
	}
	for _, faq := range faqs {
		_, err := db.Exec(ctx, `INSERT INTO faq_entries (id, bot_id, question, answer, category, active, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6)`, uuid.New(), botID, faq.q, faq.a, faq.cat, now)
		if err != nil {
			return fmt.Errorf("failed to insert FAQ entry: %w", err)
		}
	}

	lessonRepo := repository.NewLessonRepository(db, appLogger)
	lessons := []*models.Lesson{
		{
			ID: uuid.New(), CompanyID: companyID,
			Feedback: "Never promise specific health benefits of coffee.",
			Severity: models.SeverityHigh, Source: models.LessonSourceRejection,
			Active: true, CreatedAt: now,
		},
		{
			ID: uuid.New(), CompanyID: companyID,
			Feedback: "Subject lines over 50 characters get cut off, keep them short.",
			Severity: models.SeverityMedium, Source: models.LessonSourceRejection,
			Active: true, CreatedAt: now,
		},
	}
	category := models.CategoryNewsletter
	lessons[1].ContentType = &category
	if err := lessonRepo.CreateBatch(ctx, lessons); err != nil {
		return fmt.Errorf("failed to insert demo lessons: %w", err)
	}

	appLogger.Info("Demo company seeded", zap.String("company_id", companyID.String()))
	return nil
}
