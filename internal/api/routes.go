package api

import (
	"github.com/gorilla/mux"
)

func SetupRoutes(handler *PortfolioHandler) *mux.Router {
	r := mux.NewRouter()

	r.Use(CORSMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.HandleFunc("/api/v1/portfolios", handler.CreatePortfolio).Methods("POST")
	r.HandleFunc("/api/v1/portfolios", handler.ListPortfolios).Methods("GET")
	r.HandleFunc("/api/v1/portfolios/{portfolioID}", handler.GetPortfolio).Methods("GET")
	r.HandleFunc("/api/v1/portfolios/{portfolioID}/continue", handler.ContinuePortfolio).Methods("POST")

	return r
}
