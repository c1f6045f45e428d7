package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"copymill/internal/models"
	"copymill/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const styleSamplesPerCategory = 3

// StyleService derives a company's style profile from its approved content.
// Structurally a twin of generation (samples in, model call, parsed JSON,
// stored result) but it runs on demand, never inside a generation request.
type StyleService struct {
	contentRepo *repository.ContentRepository
	styleRepo   *repository.StyleRepository
	contextSvc  *ContextService
	llm         Completer
	usage       *UsageService
	model       string
	logger      *zap.Logger
}

func NewStyleService(
	contentRepo *repository.ContentRepository,
	styleRepo *repository.StyleRepository,
	contextSvc *ContextService,
	llm Completer,
	usage *UsageService,
	model string,
	logger *zap.Logger,
) *StyleService {
	return &StyleService{
		contentRepo: contentRepo,
		styleRepo:   styleRepo,
		contextSvc:  contextSvc,
		llm:         llm,
		usage:       usage,
		model:       model,
		logger:      logger,
	}
}

type styleAnalysis struct {
	Tone             string   `json:"tone"`
	AvgWordCount     int      `json:"avg_word_count"`
	Vocabulary       []string `json:"vocabulary"`
	CommonPhrases    []string `json:"common_phrases"`
	PreferredFormats []string `json:"preferred_formats"`
	Summary          string   `json:"summary"`
}

// AnalyzeStyle samples recent approved content across every category, asks
// the model for a structured style read, and upserts the company's single
// profile. Cached generation context for the company is invalidated so the
// next generation sees the new profile.
func (s *StyleService) AnalyzeStyle(ctx context.Context, companyID uuid.UUID, userID *uuid.UUID) (*models.StyleProfile, error) {
	samples, err := s.collectSamples(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no approved content to analyse for company %s", companyID)
	}

	var analysis styleAnalysis
	usage, err := s.llm.CompleteJSON(ctx,
		styleAnalysisSystemPrompt,
		renderSamples(samples),
		CompleteOptions{MaxTokens: 1024, Temperature: 0.2},
		&analysis,
	)
	if err != nil {
		return nil, err
	}
	s.usage.Record(s.model, "style-analysis", usage, companyID, userID)

	now := time.Now().UTC()
	profile := &models.StyleProfile{
		ID:               uuid.New(),
		CompanyID:        companyID,
		Tone:             analysis.Tone,
		AvgWordCount:     analysis.AvgWordCount,
		Vocabulary:       analysis.Vocabulary,
		CommonPhrases:    analysis.CommonPhrases,
		PreferredFormats: analysis.PreferredFormats,
		Summary:          analysis.Summary,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.styleRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store style profile: %w", err)
	}

	s.contextSvc.InvalidateCompany(companyID)
	s.logger.Info("Style profile updated",
		zap.String("company_id", companyID.String()),
		zap.Int("samples", len(samples)),
	)
	return profile, nil
}

func (s *StyleService) collectSamples(ctx context.Context, companyID uuid.UUID) ([]*models.ContentItem, error) {
	var (
		mu      sync.Mutex
		samples []*models.ContentItem
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range models.AllCategories {
		category := category
		g.Go(func() error {
			items, err := s.contentRepo.GetRecentByStatus(gctx, companyID, category, models.StatusApproved, styleSamplesPerCategory)
			if err != nil {
				return err
			}
			mu.Lock()
			samples = append(samples, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

const styleAnalysisSystemPrompt = `You analyse writing samples and describe the author's style.
Return a JSON object:
{"tone": "...", "avg_word_count": <int>, "vocabulary": ["..."], "common_phrases": ["..."], "preferred_formats": ["..."], "summary": "..."}
Base every field only on the samples provided.`

func renderSamples(samples []*models.ContentItem) string {
	var sb strings.Builder
	for i, sample := range samples {
		sb.WriteString(fmt.Sprintf("--- Sample %d (%s) ---\n%s\n\n", i+1, sample.Category, sample.Output))
	}
	return sb.String()
}
