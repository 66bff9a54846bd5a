package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/webfolio-ai/webfolio/internal/models"
)

// StateManager owns the portfolio lifecycle around the generation core:
// PENDING -> GENERATING -> COMPLETE | INCOMPLETE | FAILED.
type StateManager struct {
	store Store
}

func NewStateManager(store Store) *StateManager {
	return &StateManager{store: store}
}

func (m *StateManager) GeneratePortfolioID() string {
	return uuid.New().String()
}

func (m *StateManager) InitializePortfolio(ctx context.Context, portfolioID string, req *models.GenerationRequest) error {
	p := &models.Portfolio{
		PortfolioID: portfolioID,
		PersonName:  req.Profile.Name,
		Title:       req.Profile.Title,
		Status:      models.StatusPending,
		Request:     req,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := m.store.CreatePortfolio(ctx, p); err != nil {
		return fmt.Errorf("failed to create portfolio record: %w", err)
	}
	return nil
}

func (m *StateManager) MarkGenerating(ctx context.Context, portfolioID string) error {
	return m.store.SetStatus(ctx, portfolioID, models.StatusGenerating)
}

// RecordResult persists the outcome of a generation or continuation run and
// moves the portfolio to its terminal status for this round.
func (m *StateManager) RecordResult(ctx context.Context, portfolioID string, result *models.GenerationResult) error {
	if err := m.store.SaveResult(ctx, portfolioID, result); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

func (m *StateManager) GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error) {
	return m.store.GetPortfolio(ctx, portfolioID)
}

func (m *StateManager) ListPortfolios(ctx context.Context, offset, limit int) ([]*models.Portfolio, error) {
	return m.store.ListPortfolios(ctx, offset, limit)
}
