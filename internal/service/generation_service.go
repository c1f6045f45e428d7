package service

import (
	"context"
	"fmt"
	"time"

	"copymill/internal/dto"
	"copymill/internal/models"
	"copymill/internal/prompt"
	"copymill/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerationService drives one generation request end to end: assemble
// context, compile the prompt, call the model, persist the draft. Approval,
// rejection, and regeneration operate on the stored item afterwards.
type GenerationService struct {
	contentRepo *repository.ContentRepository
	contextSvc  *ContextService
	llm         Completer
	usage       *UsageService
	lessons     *LessonService
	model       string
	logger      *zap.Logger
}

func NewGenerationService(
	contentRepo *repository.ContentRepository,
	contextSvc *ContextService,
	llm Completer,
	usage *UsageService,
	lessons *LessonService,
	model string,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		contentRepo: contentRepo,
		contextSvc:  contextSvc,
		llm:         llm,
		usage:       usage,
		lessons:     lessons,
		model:       model,
		logger:      logger,
	}
}

// Generate produces a draft ContentItem for the company and category. The
// category is validated before any I/O; usage is logged detached from this
// request.
func (s *GenerationService) Generate(ctx context.Context, companyID, userID uuid.UUID, category models.ContentCategory, brief *dto.Brief) (*models.ContentItem, error) {
	if !category.Valid() {
		return nil, repository.ErrInvalidCategory
	}

	genCtx, err := s.contextSvc.LoadGenerationContext(ctx, companyID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load generation context: %w", err)
	}

	systemPrompt, userPrompt := s.compile(genCtx, category, brief)

	output, usage, err := s.llm.Complete(ctx, systemPrompt, userPrompt, CompleteOptions{
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	s.usage.Record(s.model, "generation", usage, companyID, &userID)

	now := time.Now().UTC()
	item := &models.ContentItem{
		ID:        uuid.New(),
		CompanyID: companyID,
		UserID:    userID,
		Category:  category,
		Prompt:    userPrompt,
		Output:    output,
		Status:    models.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.contentRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save generated content: %w", err)
	}

	s.logger.Info("Content generated",
		zap.String("company_id", companyID.String()),
		zap.String("category", string(category)),
		zap.String("content_id", item.ID.String()),
	)
	return item, nil
}

func (s *GenerationService) compile(genCtx *GenerationContext, category models.ContentCategory, brief *dto.Brief) (string, string) {
	var template string
	if genCtx.Template != nil {
		template = genCtx.Template.Content
	}

	systemPrompt := prompt.BuildSystemPrompt(prompt.Inputs{
		Company:          genCtx.Company,
		Style:            genCtx.Style,
		Examples:         genCtx.Examples,
		TemplateOverride: template,
		Lessons:          genCtx.Lessons,
		VaultBlock:       genCtx.VaultBlock,
		FAQBlock:         genCtx.FAQBlock,
		Category:         category,
		Brief:            brief,
	})
	return systemPrompt, prompt.BuildUserPrompt(category, brief)
}

// Regenerate produces a new revision of an existing item: a fresh row whose
// RevisionOf points at the predecessor and whose revision number increments.
// The predecessor row is left as it stands.
func (s *GenerationService) Regenerate(ctx context.Context, contentID uuid.UUID, brief *dto.Brief) (*models.ContentItem, error) {
	previous, err := s.contentRepo.FindByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	genCtx, err := s.contextSvc.LoadGenerationContext(ctx, previous.CompanyID, previous.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to load generation context: %w", err)
	}

	systemPrompt, userPrompt := s.compile(genCtx, previous.Category, brief)

	output, usage, err := s.llm.Complete(ctx, systemPrompt, userPrompt, CompleteOptions{
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	s.usage.Record(s.model, "regeneration", usage, previous.CompanyID, &previous.UserID)

	now := time.Now().UTC()
	revisionOf := previous.ID
	item := &models.ContentItem{
		ID:             uuid.New(),
		CompanyID:      previous.CompanyID,
		UserID:         previous.UserID,
		Category:       previous.Category,
		Prompt:         userPrompt,
		Output:         output,
		Status:         models.StatusDraft,
		RevisionOf:     &revisionOf,
		RevisionNumber: previous.RevisionNumber + 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.contentRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save regenerated content: %w", err)
	}
	return item, nil
}

// Approve marks an item approved.
func (s *GenerationService) Approve(ctx context.Context, contentID uuid.UUID) (*models.ContentItem, error) {
	item, err := s.contentRepo.FindByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	item.Status = models.StatusApproved
	item.UpdatedAt = time.Now().UTC()
	if err := s.contentRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Reject marks an item rejected, stores the feedback on it, and feeds the
// feedback into the lesson loop. The consolidation check that may follow runs
// detached and cannot fail this call.
func (s *GenerationService) Reject(ctx context.Context, contentID uuid.UUID, feedback string, severity models.LessonSeverity) (*models.ContentItem, error) {
	item, err := s.contentRepo.FindByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	item.Status = models.StatusRejected
	item.Feedback = &feedback
	item.UpdatedAt = time.Now().UTC()
	if err := s.contentRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err := s.lessons.RecordRejection(ctx, item.CompanyID, item.Category, feedback, severity); err != nil {
		// The rejection itself succeeded; a lost lesson is logged, not fatal.
		s.logger.Warn("Failed to record rejection lesson",
			zap.String("content_id", contentID.String()),
			zap.Error(err),
		)
	}
	return item, nil
}

// GetHistory returns the unified cross-category page for a company.
func (s *GenerationService) GetHistory(ctx context.Context, companyID uuid.UUID, page, limit int) ([]*models.ContentItem, int, error) {
	return s.contentRepo.GetHistory(ctx, companyID, page, limit)
}

// GetByID looks an item up across all partitions.
func (s *GenerationService) GetByID(ctx context.Context, contentID uuid.UUID) (*models.ContentItem, error) {
	return s.contentRepo.FindByID(ctx, contentID)
}
