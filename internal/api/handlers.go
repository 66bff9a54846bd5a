package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/webfolio-ai/webfolio/internal/models"
	"github.com/webfolio-ai/webfolio/internal/services"
	"github.com/webfolio-ai/webfolio/internal/state"
)

// Generator is the slice of the orchestrator the HTTP layer needs.
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) *models.GenerationResult
	Continue(ctx context.Context, partialHTML string, genCtx models.GenerationContext, projects []models.Project) *models.GenerationResult
}

type PortfolioHandler struct {
	generator Generator
	state     *state.StateManager
}

func NewPortfolioHandler(generator Generator, stateManager *state.StateManager) *PortfolioHandler {
	return &PortfolioHandler{
		generator: generator,
		state:     stateManager,
	}
}

// CreatePortfolio validates the request, records a pending portfolio and runs
// generation in the background. Payloads are validated once here; the
// generation core only ever sees typed, validated values.
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	portfolioID := h.state.GeneratePortfolioID()
	if err := h.state.InitializePortfolio(r.Context(), portfolioID, &req); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().Str("portfolioID", portfolioID).Str("person", req.Profile.Name).Msg("portfolio generation requested")

	go h.runGeneration(portfolioID, req)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"portfolio_id": portfolioID,
		"message":      "Generation started",
	})
}

func (h *PortfolioHandler) runGeneration(portfolioID string, req models.GenerationRequest) {
	ctx := services.ContextWithPortfolioID(context.Background(), portfolioID)

	if err := h.state.MarkGenerating(ctx, portfolioID); err != nil {
		log.Error().Err(err).Str("portfolioID", portfolioID).Msg("failed to mark portfolio generating")
	}

	result := h.generator.Generate(ctx, req)

	if err := h.state.RecordResult(ctx, portfolioID, result); err != nil {
		log.Error().Err(err).Str("portfolioID", portfolioID).Msg("failed to record generation result")
	}
}

func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	portfolioID := vars["portfolioID"]

	portfolio, err := h.state.GetPortfolio(r.Context(), portfolioID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(portfolio)
}

// ContinuePortfolio re-enters the continuation loop for a portfolio that was
// returned incomplete, on explicit user request. Runs synchronously; the
// caller gets the new GenerationResult directly.
func (h *PortfolioHandler) ContinuePortfolio(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	portfolioID := vars["portfolioID"]

	portfolio, err := h.state.GetPortfolio(r.Context(), portfolioID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if portfolio.PartialHTML == nil || *portfolio.PartialHTML == "" {
		http.Error(w, "portfolio has no partial document to continue", http.StatusConflict)
		return
	}
	if portfolio.Request == nil {
		http.Error(w, "portfolio has no stored generation parameters", http.StatusConflict)
		return
	}

	ctx := services.ContextWithPortfolioID(r.Context(), portfolioID)
	if err := h.state.MarkGenerating(ctx, portfolioID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result := h.generator.Continue(ctx, *portfolio.PartialHTML, portfolio.Request.Context(), portfolio.Request.Projects)

	if err := h.state.RecordResult(ctx, portfolioID, result); err != nil {
		log.Error().Err(err).Str("portfolioID", portfolioID).Msg("failed to record continuation result")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *PortfolioHandler) ListPortfolios(w http.ResponseWriter, r *http.Request) {
	offset := 0
	limit := 0

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if _, err := fmt.Sscanf(offsetStr, "%d", &offset); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if _, err := fmt.Sscanf(limitStr, "%d", &limit); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	portfolios, err := h.state.ListPortfolios(r.Context(), offset, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(portfolios)
}
