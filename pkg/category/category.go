package category

import "github.com/google/uuid"

// Type partitions categories (and the transactions referencing them) into the
// two money directions.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

type Category struct {
	ID   uuid.UUID
	Name string
	Type Type
	Icon string
	// Budget is a monthly spending ceiling. Zero means no budget is set.
	Budget float64
}
