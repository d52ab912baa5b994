package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.ListCategories).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.CreateCategory).Methods("POST")
	r.HandleFunc("/api/category/{id}/budget", deps.CategoryHandler.UpdateBudget).Methods("PUT")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.AddTransaction).Methods("POST")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.DeleteTransaction).Methods("DELETE")
	r.HandleFunc("/api/transaction/{id}/category", deps.TransactionHandler.UpdateCategory).Methods("PUT")

	// Summary and stats
	r.HandleFunc("/api/summary", deps.StatsHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/stats/monthly", deps.StatsHandler.GetMonthlyStats).Methods("GET")
	r.HandleFunc("/api/stats/categories", deps.StatsHandler.GetCategoryBreakdown).Methods("GET")
	r.HandleFunc("/api/stats/drilldown", deps.StatsHandler.GetDrilldown).Methods("GET")
	r.HandleFunc("/api/stats/budgets", deps.StatsHandler.GetBudgetStatus).Methods("GET")

	// Financial report
	r.HandleFunc("/api/report", deps.ReportHandler.GenerateReport).Methods("POST")
}
