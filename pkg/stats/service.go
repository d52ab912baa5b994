package stats

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/category"
	"github.com/centavo/centavo/pkg/transaction"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultMonths = 6

// uncategorizedLabel groups transactions whose category no longer resolves.
const uncategorizedLabel = "Otros"

// Service answers the read-only reporting questions. Storage failures are
// logged and masked as empty results, so a dashboard renders zeros instead of
// erroring out.
type Service interface {
	Summary(ctx context.Context, from *time.Time, to *time.Time) Summary
	MonthlyStats(ctx context.Context, mode Mode, months int) []CycleStats
	CategoryBreakdown(ctx context.Context, from *time.Time, to *time.Time) []CategoryAmount
	Drilldown(ctx context.Context, categoryName string, from *time.Time, to *time.Time) []CategoryAmount
	BudgetStatus(ctx context.Context, from *time.Time, to *time.Time) []BudgetStatus
}

type ServiceImpl struct {
	transactionRepo transaction.Repository
	categoryRepo    category.Repository
	clock           utils.Clock
}

func NewService(transactionRepo transaction.Repository, categoryRepo category.Repository) *ServiceImpl {
	return &ServiceImpl{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           &utils.SystemClock{},
	}
}

func (s *ServiceImpl) Summary(ctx context.Context, from *time.Time, to *time.Time) Summary {
	transactions, err := s.transactionRepo.Find(ctx, transaction.Filter{From: from, To: to})
	if err != nil {
		log.Errorf("Failed to load transactions for summary: %v", err)
		return Summary{Transactions: []transaction.Transaction{}}
	}

	summary := Summary{Transactions: transactions}
	for _, item := range transactions {
		switch item.Type {
		case category.TypeIncome:
			summary.Income += item.Amount
		case category.TypeExpense:
			summary.Expenses += item.Amount
		}
	}
	return summary
}

func (s *ServiceImpl) MonthlyStats(ctx context.Context, mode Mode, months int) []CycleStats {
	if months <= 0 {
		months = defaultMonths
	}
	if !mode.Valid() {
		mode = ModeCycle
	}

	now := s.clock.Now()
	results := make([]CycleStats, months)

	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < months; i++ {
		group.Go(func() error {
			from, to := periodWindow(now, mode, i)
			summary := s.Summary(groupCtx, &from, &to)
			results[i] = CycleStats{
				Label:    periodLabel(to),
				Income:   summary.Income,
				Expenses: summary.Expenses,
				Savings:  summary.Income - summary.Expenses,
				FromDate: from,
				ToDate:   to,
			}
			return nil
		})
	}
	// Summary never fails, it masks read errors.
	_ = group.Wait()

	slices.Reverse(results)
	return results
}

func (s *ServiceImpl) CategoryBreakdown(ctx context.Context, from *time.Time, to *time.Time) []CategoryAmount {
	transactions, err := s.transactionRepo.Find(ctx, transaction.Filter{From: from, To: to})
	if err != nil {
		log.Errorf("Failed to load transactions for category breakdown: %v", err)
		return []CategoryAmount{}
	}

	totals := map[string]float64{}
	for _, item := range transactions {
		if item.Type != category.TypeExpense {
			continue
		}
		totals[displayName(item)] += item.Amount
	}
	return sortedByAmount(totals)
}

func (s *ServiceImpl) Drilldown(ctx context.Context, categoryName string, from *time.Time, to *time.Time) []CategoryAmount {
	transactions, err := s.transactionRepo.Find(ctx, transaction.Filter{From: from, To: to})
	if err != nil {
		log.Errorf("Failed to load transactions for drilldown of %q: %v", categoryName, err)
		return []CategoryAmount{}
	}

	totals := map[string]float64{}
	for _, item := range transactions {
		if item.Type != category.TypeExpense || displayName(item) != categoryName {
			continue
		}
		merchant := strings.ToUpper(strings.TrimSpace(item.Description))
		totals[merchant] += item.Amount
	}
	return sortedByAmount(totals)
}

func (s *ServiceImpl) BudgetStatus(ctx context.Context, from *time.Time, to *time.Time) []BudgetStatus {
	categories, err := s.categoryRepo.GetByType(ctx, category.TypeExpense)
	if err != nil {
		log.Errorf("Failed to load categories for budget status: %v", err)
		return []BudgetStatus{}
	}
	transactions, err := s.transactionRepo.Find(ctx, transaction.Filter{From: from, To: to})
	if err != nil {
		log.Errorf("Failed to load transactions for budget status: %v", err)
		transactions = nil
	}

	spentByCategory := map[string]float64{}
	for _, item := range transactions {
		if item.Type != category.TypeExpense {
			continue
		}
		spentByCategory[item.CategoryID.String()] += item.Amount
	}

	statuses := make([]BudgetStatus, 0, len(categories))
	for _, cat := range categories {
		spent := spentByCategory[cat.ID.String()]
		status := BudgetStatus{
			Category:  cat,
			Spent:     spent,
			HasBudget: cat.Budget > 0,
		}
		if status.HasBudget {
			status.Percentage = math.Min(spent/cat.Budget*100, 100)
			status.Remaining = cat.Budget - spent
			status.IsOver = spent > cat.Budget
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// periodWindow returns the inclusive bounds of the i-th most recent window.
// time.Date normalizes out-of-range months and days, so February arithmetic
// just works.
func periodWindow(now time.Time, mode Mode, i int) (time.Time, time.Time) {
	year, month := now.Year(), now.Month()
	if mode == ModeCalendar {
		from := time.Date(year, month-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month-time.Month(i)+1, 0, 0, 0, 0, 0, time.UTC)
		return from, to
	}
	from := time.Date(year, month-time.Month(i)-1, 23, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, month-time.Month(i), 22, 0, 0, 0, 0, time.UTC)
	return from, to
}

var spanishMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// periodLabel names the window after its end date, e.g. "mar 24".
func periodLabel(to time.Time) string {
	return fmt.Sprintf("%s %02d", spanishMonths[to.Month()-1], to.Year()%100)
}

func displayName(item transaction.Transaction) string {
	if item.CategoryName == "" {
		return uncategorizedLabel
	}
	return item.CategoryName
}

func sortedByAmount(totals map[string]float64) []CategoryAmount {
	amounts := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		amounts = append(amounts, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(amounts, func(i, j int) bool {
		if amounts[i].Amount != amounts[j].Amount {
			return amounts[i].Amount > amounts[j].Amount
		}
		return amounts[i].Name < amounts[j].Name
	})
	return amounts
}
