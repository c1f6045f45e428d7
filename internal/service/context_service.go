package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"copymill/internal/models"
	"copymill/internal/repository"
	"copymill/pkg/cache"
	"copymill/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerationContext is the bundle of everything the prompt compiler needs for
// one company and category. Nil Style and empty Template mean the source was
// absent, not an error.
type GenerationContext struct {
	Company    *models.Company
	Style      *models.StyleProfile
	Examples   []*models.ContentItem
	Template   *models.PromptTemplate
	Lessons    []*models.Lesson
	VaultBlock string
	FAQBlock   string
}

// FAQQuery selects FAQ context. A nil BotID resolves to the company's default
// active bot. Category narrows entries to that category or "general".
type FAQQuery struct {
	BotID     *uuid.UUID
	CompanyID uuid.UUID
	Category  string
	Limit     int
}

// ContextService assembles generation context from the heterogeneous sources
// and caches the result per company and category.
type ContextService struct {
	companyRepo  *repository.CompanyRepository
	vaultRepo    *repository.VaultRepository
	faqRepo      *repository.FAQRepository
	styleRepo    *repository.StyleRepository
	templateRepo *repository.TemplateRepository
	lessonRepo   *repository.LessonRepository
	contentRepo  *repository.ContentRepository
	cache        *cache.Cache
	cfg          *config.GenerationConfig
	logger       *zap.Logger
}

func NewContextService(
	companyRepo *repository.CompanyRepository,
	vaultRepo *repository.VaultRepository,
	faqRepo *repository.FAQRepository,
	styleRepo *repository.StyleRepository,
	templateRepo *repository.TemplateRepository,
	lessonRepo *repository.LessonRepository,
	contentRepo *repository.ContentRepository,
	contextCache *cache.Cache,
	cfg *config.GenerationConfig,
	logger *zap.Logger,
) *ContextService {
	return &ContextService{
		companyRepo:  companyRepo,
		vaultRepo:    vaultRepo,
		faqRepo:      faqRepo,
		styleRepo:    styleRepo,
		templateRepo: templateRepo,
		lessonRepo:   lessonRepo,
		contentRepo:  contentRepo,
		cache:        contextCache,
		cfg:          cfg,
		logger:       logger,
	}
}

func generationContextKey(companyID uuid.UUID, category models.ContentCategory) string {
	return fmt.Sprintf("gen-ctx:%s:%s", companyID, category)
}

func companyKey(companyID uuid.UUID) string {
	return fmt.Sprintf("company:%s", companyID)
}

// GetCompanyContext returns the company record and its rendered identity
// block, cached under the slower company-level TTL.
func (s *ContextService) GetCompanyContext(ctx context.Context, companyID uuid.UUID) (*models.Company, string, error) {
	if cached, ok := s.cache.Get(companyKey(companyID)); ok {
		company := cached.(*models.Company)
		return company, buildCompanyBlock(company), nil
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	s.cache.Set(companyKey(companyID), company, s.cfg.CompanyTTL)
	return company, buildCompanyBlock(company), nil
}

func buildCompanyBlock(company *models.Company) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s)", company.Name, company.Industry))
	if company.Website != "" {
		sb.WriteString(fmt.Sprintf(" - %s", company.Website))
	}
	sb.WriteString("\n")
	return sb.String()
}

// GetVaultContext returns vault documents and a budget-capped rendered block.
// The block is bounded regardless of how much raw material exists.
func (s *ContextService) GetVaultContext(ctx context.Context, companyID uuid.UUID) ([]*models.VaultDocument, string, error) {
	docs, err := s.vaultRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	return docs, buildVaultBlock(docs, s.cfg.VaultBudgetChars, s.cfg.VaultDocChars), nil
}

// buildVaultBlock spends the character budget greedily over documents in the
// order given (newest first): each document contributes up to perDoc
// characters, capped by whatever budget remains, and the loop stops once the
// budget is gone. Only document content counts against the budget.
func buildVaultBlock(docs []*models.VaultDocument, budget, perDoc int) string {
	if len(docs) == 0 {
		return ""
	}

	var sb strings.Builder
	remaining := budget
	for _, doc := range docs {
		if remaining <= 0 {
			break
		}
		take := perDoc
		if take > remaining {
			take = remaining
		}
		content := doc.Content
		if len(content) > take {
			content = content[:take]
		}
		sb.WriteString(fmt.Sprintf("[%s]\n%s\n\n", doc.Filename, content))
		remaining -= len(content)
	}
	return sb.String()
}

// GetFAQContext returns active FAQ entries and their rendered block,
// resolving the company's default bot when the query names none. A company
// with no bot simply has no FAQ context.
func (s *ContextService) GetFAQContext(ctx context.Context, query FAQQuery) ([]*models.FAQEntry, string, error) {
	if query.Limit <= 0 {
		query.Limit = 20
	}

	botID := query.BotID
	if botID == nil {
		bot, err := s.faqRepo.GetDefaultBot(ctx, query.CompanyID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, "", nil
			}
			return nil, "", err
		}
		botID = &bot.ID
	}

	entries, err := s.faqRepo.GetActiveEntries(ctx, *botID, query.Category, query.Limit)
	if err != nil {
		return nil, "", err
	}
	return entries, buildFAQBlock(entries), nil
}

func buildFAQBlock(entries []*models.FAQEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("Q: %s\nA: %s\n\n", entry.Question, entry.Answer))
	}
	return sb.String()
}

// LoadGenerationContext assembles the full bundle for one company and
// category: all sources are fetched in a parallel fork/join and the result is
// cached for the context TTL. A cache hit re-issues no fetch at all.
func (s *ContextService) LoadGenerationContext(ctx context.Context, companyID uuid.UUID, category models.ContentCategory) (*GenerationContext, error) {
	key := generationContextKey(companyID, category)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*GenerationContext), nil
	}

	bundle := &GenerationContext{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		company, _, err := s.GetCompanyContext(gctx, companyID)
		if err != nil {
			return err
		}
		bundle.Company = company
		return nil
	})

	g.Go(func() error {
		style, err := s.styleRepo.GetByCompany(gctx, companyID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		bundle.Style = style
		return nil
	})

	g.Go(func() error {
		examples, err := s.contentRepo.GetRecentByStatus(gctx, companyID, category, models.StatusApproved, s.cfg.ExamplePostsLimit)
		if err != nil {
			return err
		}
		bundle.Examples = examples
		return nil
	})

	g.Go(func() error {
		tmpl, err := s.templateRepo.GetActive(gctx, companyID, category)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		bundle.Template = tmpl
		return nil
	})

	g.Go(func() error {
		lessons, err := s.lessonRepo.GetActiveScoped(gctx, companyID, category, s.cfg.MaxActiveLessons)
		if err != nil {
			return err
		}
		bundle.Lessons = lessons
		return nil
	})

	g.Go(func() error {
		_, block, err := s.GetVaultContext(gctx, companyID)
		if err != nil {
			return err
		}
		bundle.VaultBlock = block
		return nil
	})

	g.Go(func() error {
		_, block, err := s.GetFAQContext(gctx, FAQQuery{CompanyID: companyID, Category: string(category)})
		if err != nil {
			return err
		}
		bundle.FAQBlock = block
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(key, bundle, s.cfg.ContextTTL)
	return bundle, nil
}

// InvalidateCompany drops every cached bundle for a company, for callers that
// just changed company-owned source data.
func (s *ContextService) InvalidateCompany(companyID uuid.UUID) {
	s.cache.InvalidatePrefix(fmt.Sprintf("gen-ctx:%s:", companyID))
	s.cache.Invalidate(companyKey(companyID))
}
