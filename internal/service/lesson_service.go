package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"copymill/internal/models"
	"copymill/pkg/background"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LessonStore is the persistence surface for lessons. Narrowed to an
// interface so the consolidator's no-mutation-on-failure property is testable
// without a database.
type LessonStore interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	CreateBatch(ctx context.Context, lessons []*models.Lesson) error
	CountActive(ctx context.Context, companyID uuid.UUID) (int, error)
	GetActive(ctx context.Context, companyID uuid.UUID) ([]*models.Lesson, error)
	DeactivateAll(ctx context.Context, companyID uuid.UUID) error
}

// LessonService turns rejection feedback into scoped rules and keeps the
// active rule set bounded: once it grows past maxActive, the set is merged
// down to roughly target rules via the completion client.
type LessonService struct {
	store     LessonStore
	llm       Completer
	usage     *UsageService
	runner    *background.Runner
	model     string
	maxActive int
	target    int
	logger    *zap.Logger
}

func NewLessonService(
	store LessonStore,
	llm Completer,
	usage *UsageService,
	runner *background.Runner,
	model string,
	maxActive, target int,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		store:     store,
		llm:       llm,
		usage:     usage,
		runner:    runner,
		model:     model,
		maxActive: maxActive,
		target:    target,
		logger:    logger,
	}
}

// RecordRejection stores one rejection as an active lesson and schedules a
// consolidation check detached from the caller's request.
func (s *LessonService) RecordRejection(ctx context.Context, companyID uuid.UUID, category models.ContentCategory, feedback string, severity models.LessonSeverity) error {
	switch severity {
	case models.SeverityHigh, models.SeverityMedium, models.SeverityLow:
	default:
		severity = models.SeverityMedium
	}

	lesson := &models.Lesson{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Feedback:    feedback,
		Severity:    severity,
		ContentType: &category,
		Source:      models.LessonSourceRejection,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Create(ctx, lesson); err != nil {
		return fmt.Errorf("failed to record rejection lesson: %w", err)
	}

	s.runner.Go("lesson-consolidation", func() {
		s.MaybeConsolidate(context.Background(), companyID)
	})
	return nil
}

// MaybeConsolidate merges the active lesson set down to roughly the target
// size once it exceeds the threshold. Every failure path leaves the existing
// set completely untouched and nothing ever propagates to the caller: losing
// accumulated feedback is worse than a temporarily oversized rule set.
func (s *LessonService) MaybeConsolidate(ctx context.Context, companyID uuid.UUID) {
	if err := s.consolidate(ctx, companyID); err != nil {
		s.logger.Warn("Lesson consolidation skipped",
			zap.String("company_id", companyID.String()),
			zap.Error(err),
		)
	}
}

type consolidatedRule struct {
	Feedback    string `json:"feedback"`
	Severity    string `json:"severity"`
	ContentType string `json:"content_type"`
}

func (s *LessonService) consolidate(ctx context.Context, companyID uuid.UUID) error {
	count, err := s.store.CountActive(ctx, companyID)
	if err != nil {
		return err
	}
	if count <= s.maxActive {
		return nil
	}

	lessons, err := s.store.GetActive(ctx, companyID)
	if err != nil {
		return err
	}

	var wrapper struct {
		Rules []consolidatedRule `json:"rules"`
	}
	usage, err := s.llm.CompleteJSON(ctx,
		consolidationSystemPrompt(s.target),
		renderLessonList(lessons),
		CompleteOptions{MaxTokens: 2048, Temperature: 0.2},
		&wrapper,
	)
	if err != nil {
		return err
	}

	replacement := s.buildReplacement(companyID, wrapper.Rules)
	if len(replacement) == 0 {
		return fmt.Errorf("consolidation produced no usable rules")
	}

	// Mutations begin only after the response parsed cleanly.
	if err := s.store.DeactivateAll(ctx, companyID); err != nil {
		return err
	}
	if err := s.store.CreateBatch(ctx, replacement); err != nil {
		return err
	}

	s.usage.Record(s.model, "lesson-consolidation", usage, companyID, nil)
	s.logger.Info("Lesson set consolidated",
		zap.String("company_id", companyID.String()),
		zap.Int("before", len(lessons)),
		zap.Int("after", len(replacement)),
	)
	return nil
}

func consolidationSystemPrompt(target int) string {
	return fmt.Sprintf(`You maintain a rule set distilled from content rejection feedback.
Merge the numbered rules below into at most %d non-redundant rules. Combine duplicates,
keep the strictest severity of anything you merge, and keep each rule's category scope
("all" only when the merged rules genuinely apply everywhere).

Return a JSON object of the form:
{"rules": [{"feedback": "...", "severity": "high|medium|low", "content_type": "<category or \"all\">"}]}`, target)
}

func renderLessonList(lessons []*models.Lesson) string {
	var sb strings.Builder
	for i, lesson := range lessons {
		scope := "all"
		if lesson.ContentType != nil {
			scope = string(*lesson.ContentType)
		}
		sb.WriteString(fmt.Sprintf("%d. [%s, %s] %s\n", i+1, lesson.Severity, scope, lesson.Feedback))
	}
	return sb.String()
}

func (s *LessonService) buildReplacement(companyID uuid.UUID, rules []consolidatedRule) []*models.Lesson {
	now := time.Now().UTC()
	var replacement []*models.Lesson
	for _, rule := range rules {
		feedback := strings.TrimSpace(rule.Feedback)
		if feedback == "" {
			continue
		}

		severity := models.LessonSeverity(rule.Severity)
		switch severity {
		case models.SeverityHigh, models.SeverityMedium, models.SeverityLow:
		default:
			severity = models.SeverityMedium
		}

		var contentType *models.ContentCategory
		if category := models.ContentCategory(rule.ContentType); category.Valid() {
			contentType = &category
		}

		replacement = append(replacement, &models.Lesson{
			ID:          uuid.New(),
			CompanyID:   companyID,
			Feedback:    feedback,
			Severity:    severity,
			ContentType: contentType,
			Source:      models.LessonSourceConsolidation,
			Active:      true,
			CreatedAt:   now,
		})
	}
	return replacement
}
