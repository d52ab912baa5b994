package transaction

import (
	"time"

	"github.com/centavo/centavo/pkg/category"
	"github.com/google/uuid"
)

type Transaction struct {
	ID          uuid.UUID
	Amount      float64
	Description string
	Type        category.Type
	// Date is a calendar date; the time component is always midnight UTC.
	Date       time.Time
	CategoryID uuid.UUID
	// CategoryName and CategoryIcon are joined from the category store for
	// display. They are not written back.
	CategoryName string
	CategoryIcon string
}

// Filter restricts a transaction listing to an inclusive date range. A nil
// bound leaves that side unbounded.
type Filter struct {
	From *time.Time
	To   *time.Time
}
