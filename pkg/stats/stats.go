package stats

import (
	"time"

	"github.com/centavo/centavo/pkg/category"
	"github.com/centavo/centavo/pkg/transaction"
)

// Mode selects how a month-sized reporting window is cut.
type Mode string

const (
	// ModeCycle follows the card billing cycle: the 23rd of one month through
	// the 22nd of the next.
	ModeCycle Mode = "cycle"
	// ModeCalendar uses plain calendar months.
	ModeCalendar Mode = "calendar"
)

func (m Mode) Valid() bool {
	return m == ModeCycle || m == ModeCalendar
}

// Summary aggregates a date range: totals per direction plus the listing that
// produced them, newest first.
type Summary struct {
	Income       float64
	Expenses     float64
	Transactions []transaction.Transaction
}

// CycleStats holds the totals of one reporting window.
type CycleStats struct {
	Label    string
	Income   float64
	Expenses float64
	Savings  float64
	FromDate time.Time
	ToDate   time.Time
}

// CategoryAmount is one slice of a breakdown, either a category total or a
// per-merchant total inside a category.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// BudgetStatus compares an expense category's spending against its budget.
type BudgetStatus struct {
	Category   category.Category
	Spent      float64
	Percentage float64
	Remaining  float64
	IsOver     bool
	HasBudget  bool
}
