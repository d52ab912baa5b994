package stats

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/centavo/centavo/internal/rest"
	"github.com/centavo/centavo/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type SummaryDTO struct {
	Income       float64                      `json:"income"`
	Expenses     float64                      `json:"expenses"`
	Transactions []transaction.TransactionDTO `json:"transactions"`
}

type CycleStatsDTO struct {
	Label    string  `json:"label"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
	FromDate string  `json:"fromDate"`
	ToDate   string  `json:"toDate"`
}

type CategoryAmountDTO struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type BudgetStatusDTO struct {
	Category   string  `json:"category"`
	Icon       string  `json:"icon,omitempty"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	IsOver     bool    `json:"isOver"`
	HasBudget  bool    `json:"hasBudget"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	summary := handler.service.Summary(r.Context(), from, to)

	transactions := make([]transaction.TransactionDTO, 0, len(summary.Transactions))
	for _, item := range summary.Transactions {
		transactions = append(transactions, transaction.TransactionToDTO(item))
	}
	writeJSON(w, SummaryDTO{
		Income:       summary.Income,
		Expenses:     summary.Expenses,
		Transactions: transactions,
	})
}

func (handler *Handler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	mode := Mode(r.URL.Query().Get("mode"))
	if mode != "" && !mode.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid mode", "mode must be \"cycle\" or \"calendar\"")
		return
	}
	months := 0
	if monthsString := r.URL.Query().Get("months"); monthsString != "" {
		parsed, err := strconv.Atoi(monthsString)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid months", "months must be a positive integer")
			return
		}
		months = parsed
	}

	stats := handler.service.MonthlyStats(r.Context(), mode, months)

	response := make([]CycleStatsDTO, 0, len(stats))
	for _, period := range stats {
		response = append(response, CycleStatsDTO{
			Label:    period.Label,
			Income:   period.Income,
			Expenses: period.Expenses,
			Savings:  period.Savings,
			FromDate: period.FromDate.Format(dateLayout),
			ToDate:   period.ToDate.Format(dateLayout),
		})
	}
	writeJSON(w, response)
}

func (handler *Handler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	writeJSON(w, toAmountDTOs(handler.service.CategoryBreakdown(r.Context(), from, to)))
}

func (handler *Handler) GetDrilldown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categoryName := r.URL.Query().Get("category")
	if categoryName == "" {
		writeError(w, http.StatusBadRequest, "Missing category", "category query parameter is required")
		return
	}
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	writeJSON(w, toAmountDTOs(handler.service.Drilldown(r.Context(), categoryName, from, to)))
}

func (handler *Handler) GetBudgetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	statuses := handler.service.BudgetStatus(r.Context(), from, to)

	response := make([]BudgetStatusDTO, 0, len(statuses))
	for _, status := range statuses {
		response = append(response, BudgetStatusDTO{
			Category:   status.Category.Name,
			Icon:       status.Category.Icon,
			Budget:     status.Category.Budget,
			Spent:      status.Spent,
			Percentage: status.Percentage,
			Remaining:  status.Remaining,
			IsOver:     status.IsOver,
			HasBudget:  status.HasBudget,
		})
	}
	writeJSON(w, response)
}

// dateRange reads the optional fromDate/toDate query parameters. It writes a
// 400 response and returns ok=false when either is present but malformed.
func dateRange(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Time, bool) {
	from, ok := queryDate(w, r, "fromDate")
	if !ok {
		return nil, nil, false
	}
	to, ok := queryDate(w, r, "toDate")
	if !ok {
		return nil, nil, false
	}
	return from, to, true
}

func queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" format", name+" must be in YYYY-MM-DD format")
		return nil, false
	}
	return &date, true
}

func toAmountDTOs(amounts []CategoryAmount) []CategoryAmountDTO {
	response := make([]CategoryAmountDTO, 0, len(amounts))
	for _, amount := range amounts {
		response = append(response, CategoryAmountDTO{Name: amount.Name, Amount: amount.Amount})
	}
	return response
}

func writeJSON(w http.ResponseWriter, payload any) {
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}
