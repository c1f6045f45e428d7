package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"copymill/internal/models"
	"copymill/pkg/background"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalcCostUSD_KnownModel(t *testing.T) {
	// gpt-4o: 2.50 in, 10.00 out per million tokens.
	cost := CalcCostUSD("gpt-4o", 1_000_000, 1_000_000)
	assert.InDelta(t, 12.50, cost, 1e-9)
}

func TestCalcCostUSD_UnknownModelFallsBack(t *testing.T) {
	cost := CalcCostUSD("unknown-model-x", 1000, 500)
	fallback := CalcCostUSD(fallbackModel, 1000, 500)
	assert.InDelta(t, fallback, cost, 1e-12)
	assert.Greater(t, cost, 0.0)
}

type fakeUsageStore struct {
	mu      sync.Mutex
	entries []*models.UsageLogEntry
	err     error
}

func (f *fakeUsageStore) Create(_ context.Context, entry *models.UsageLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func TestUsageService_RecordIsDetached(t *testing.T) {
	store := &fakeUsageStore{}
	runner := background.NewRunner(zap.NewNop())
	svc := NewUsageService(store, runner, zap.NewNop())

	companyID := uuid.New()
	svc.Record("gpt-4o", "generation", Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, companyID, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, runner.Shutdown(ctx))

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, "generation", entry.Feature)
	assert.Equal(t, 15, entry.TotalTokens)
	assert.Equal(t, companyID, entry.CompanyID)
	assert.InDelta(t, CalcCostUSD("gpt-4o", 10, 5), entry.CostUSD, 1e-12)
}

func TestUsageService_StoreFailureIsSwallowed(t *testing.T) {
	store := &fakeUsageStore{err: errors.New("db down")}
	runner := background.NewRunner(zap.NewNop())
	svc := NewUsageService(store, runner, zap.NewNop())

	// Must not panic or surface anywhere.
	svc.Record("gpt-4o", "generation", Usage{}, uuid.New(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, runner.Shutdown(ctx))
	assert.Empty(t, store.entries)
}
