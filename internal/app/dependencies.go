package app

import (
	"github.com/centavo/centavo/internal/ai"
	"github.com/centavo/centavo/internal/config"
	"github.com/centavo/centavo/pkg/categorizer"
	"github.com/centavo/centavo/pkg/category"
	"github.com/centavo/centavo/pkg/report"
	"github.com/centavo/centavo/pkg/stats"
	"github.com/centavo/centavo/pkg/transaction"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	AIClient ai.Client

	CategoryRepo    category.Repository
	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	Categorizer *categorizer.Categorizer

	TransactionRepo    transaction.Repository
	TransactionService *transaction.ServiceImpl
	TransactionHandler *transaction.Handler

	StatsService *stats.ServiceImpl
	StatsHandler *stats.Handler

	ReportService *report.ServiceImpl
	ReportHandler *report.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	aiClient, err := ai.NewClient(ai.Config{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
	})
	if err != nil {
		return nil, err
	}
	deps.AIClient = aiClient

	deps.CategoryRepo = category.NewRepository(db)
	deps.CategoryService = category.NewService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.TransactionRepo = transaction.NewRepository(db)
	deps.Categorizer = categorizer.New(deps.TransactionRepo, deps.AIClient)
	deps.TransactionService = transaction.NewService(deps.TransactionRepo, deps.CategoryRepo, deps.Categorizer)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.StatsService = stats.NewService(deps.TransactionRepo, deps.CategoryRepo)
	deps.StatsHandler = stats.NewHandler(deps.StatsService)

	deps.ReportService = report.NewService(deps.StatsService, deps.AIClient)
	deps.ReportHandler = report.NewHandler(deps.ReportService)

	return deps, nil
}
