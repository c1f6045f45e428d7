package service

import (
	"context"
	"time"

	"copymill/internal/models"
	"copymill/pkg/background"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// modelRates are USD per million tokens, input and output.
type modelRates struct {
	input  float64
	output float64
}

var rateTable = map[string]modelRates{
	"gpt-4o":       {input: 2.50, output: 10.00},
	"gpt-4o-mini":  {input: 0.15, output: 0.60},
	"gpt-4.1":      {input: 2.00, output: 8.00},
	"gpt-4.1-mini": {input: 0.40, output: 1.60},
	"o3-mini":      {input: 1.10, output: 4.40},
}

// fallbackModel supplies rates for model ids missing from the table. Billing
// must never block generation, so unknown models are priced, not rejected.
const fallbackModel = "gpt-4o-mini"

// CalcCostUSD computes the cost of one call from the static rate table,
// falling back to fallbackModel rates for unknown model ids.
func CalcCostUSD(model string, promptTokens, completionTokens int) float64 {
	rates, ok := rateTable[model]
	if !ok {
		rates = rateTable[fallbackModel]
	}
	return float64(promptTokens)/1e6*rates.input + float64(completionTokens)/1e6*rates.output
}

// UsageStore is the persistence surface for usage records.
type UsageStore interface {
	Create(ctx context.Context, entry *models.UsageLogEntry) error
}

// UsageService writes billing telemetry. Every write runs detached from the
// request that produced it and every failure is discarded after a warning.
type UsageService struct {
	store  UsageStore
	runner *background.Runner
	logger *zap.Logger
}

func NewUsageService(store UsageStore, runner *background.Runner, logger *zap.Logger) *UsageService {
	return &UsageService{
		store:  store,
		runner: runner,
		logger: logger,
	}
}

// Record schedules a fire-and-forget usage log write. The triggering request
// does not wait for it and never sees its errors.
func (s *UsageService) Record(model, feature string, usage Usage, companyID uuid.UUID, userID *uuid.UUID) {
	entry := &models.UsageLogEntry{
		ID:               uuid.New(),
		Model:            model,
		Feature:          feature,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		CostUSD:          CalcCostUSD(model, usage.PromptTokens, usage.CompletionTokens),
		CompanyID:        companyID,
		UserID:           userID,
		CreatedAt:        time.Now().UTC(),
	}

	s.runner.Go("usage-log", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.Create(ctx, entry); err != nil {
			s.logger.Warn("Failed to write usage log entry",
				zap.String("feature", feature),
				zap.Error(err),
			)
		}
	})
}
