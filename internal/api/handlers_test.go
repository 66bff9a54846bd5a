package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webfolio-ai/webfolio/internal/models"
	"github.com/webfolio-ai/webfolio/internal/state"
)

type memStore struct {
	mu         sync.Mutex
	portfolios map[string]*models.Portfolio
}

func newMemStore() *memStore {
	return &memStore{portfolios: make(map[string]*models.Portfolio)}
}

func (s *memStore) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.portfolios[p.PortfolioID] = &cp
	return nil
}

func (s *memStore) GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.portfolios[portfolioID]
	if !ok {
		return nil, fmt.Errorf("portfolio %s not found", portfolioID)
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) ListPortfolios(ctx context.Context, offset, limit int) ([]*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Portfolio, 0, len(s.portfolios))
	for _, p := range s.portfolios {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memStore) SetStatus(ctx context.Context, portfolioID string, status models.PortfolioStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.portfolios[portfolioID]; ok {
		p.Status = status
	}
	return nil
}

func (s *memStore) SaveResult(ctx context.Context, portfolioID string, result *models.GenerationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.portfolios[portfolioID]
	if !ok {
		return fmt.Errorf("portfolio %s not found", portfolioID)
	}
	p.Status = models.StatusFor(result)
	p.AttemptsMade = result.AttemptsMade
	if result.Success {
		p.HTML = &result.HTML
		p.PartialHTML = nil
	} else if result.Incomplete {
		p.PartialHTML = &result.PartialHTML
	}
	return nil
}

func (s *memStore) IncrementGenerationCost(ctx context.Context, portfolioID string, tokensIn, tokensOut int) error {
	return nil
}

func (s *memStore) Close() error { return nil }

type stubGenerator struct {
	result *models.GenerationResult
}

func (g *stubGenerator) Generate(ctx context.Context, req models.GenerationRequest) *models.GenerationResult {
	return g.result
}

func (g *stubGenerator) Continue(ctx context.Context, partialHTML string, genCtx models.GenerationContext, projects []models.Project) *models.GenerationResult {
	return g.result
}

func newTestHandler(result *models.GenerationResult) (*PortfolioHandler, *memStore) {
	store := newMemStore()
	handler := NewPortfolioHandler(&stubGenerator{result: result}, state.NewStateManager(store))
	return handler, store
}

func validBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	req := models.GenerationRequest{
		Profile: models.Profile{Name: "Jane Doe", Title: "Frontend Engineer"},
		Projects: []models.Project{
			{Name: "Telemetry Dashboard"},
		},
	}
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestCreatePortfolioRejectsInvalidRequest(t *testing.T) {
	handler, _ := newTestHandler(&models.GenerationResult{Success: true})
	router := SetupRoutes(handler)

	body := bytes.NewBufferString(`{"profile":{"name":""},"projects":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePortfolioAccepted(t *testing.T) {
	handler, store := newTestHandler(&models.GenerationResult{Success: true, HTML: "<html></html>"})
	router := SetupRoutes(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios", validBody(t))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["portfolio_id"])

	_, err := store.GetPortfolio(context.Background(), resp["portfolio_id"])
	assert.NoError(t, err)
}

func TestGetPortfolioNotFound(t *testing.T) {
	handler, _ := newTestHandler(nil)
	router := SetupRoutes(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolios/does-not-exist", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContinuePortfolioWithoutPartial(t *testing.T) {
	handler, store := newTestHandler(nil)
	router := SetupRoutes(handler)

	req := models.GenerationRequest{Profile: models.Profile{Name: "Jane", Title: "Dev"}}
	require.NoError(t, store.CreatePortfolio(context.Background(), &models.Portfolio{
		PortfolioID: "abc",
		Status:      models.StatusComplete,
		Request:     &req,
	}))

	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/abc/continue", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httpReq)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestContinuePortfolioReturnsResult(t *testing.T) {
	partial := "<html><body>partial"
	result := &models.GenerationResult{Success: true, HTML: "<html><body>done</body></html>", AttemptsMade: 1}
	handler, store := newTestHandler(result)
	router := SetupRoutes(handler)

	req := models.GenerationRequest{Profile: models.Profile{Name: "Jane", Title: "Dev"}}
	require.NoError(t, store.CreatePortfolio(context.Background(), &models.Portfolio{
		PortfolioID: "abc",
		Status:      models.StatusIncomplete,
		Request:     &req,
		PartialHTML: &partial,
	}))

	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/abc/continue", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httpReq)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.GenerationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.True(t, got.Success)
	assert.Equal(t, 1, got.AttemptsMade)

	stored, err := store.GetPortfolio(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, stored.Status)
}
