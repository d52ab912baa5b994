package transaction

import (
	"context"
	"sort"
	"strings"

	"github.com/centavo/centavo/pkg/category"
	"github.com/google/uuid"
)

type StubRepository struct {
	data map[uuid.UUID]Transaction
	// Err, when set, is returned by every read so failure masking can be tested.
	Err error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[uuid.UUID]Transaction{}}
}

func (s *StubRepository) Store(ctx context.Context, transaction Transaction) (uuid.UUID, error) {
	s.data[transaction.ID] = transaction
	return transaction.ID, nil
}

func (s *StubRepository) Find(ctx context.Context, filter Filter) ([]Transaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var transactions []Transaction
	for _, transaction := range s.data {
		if filter.From != nil && transaction.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && transaction.Date.After(*filter.To) {
			continue
		}
		transactions = append(transactions, transaction)
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

func (s *StubRepository) FindLatestByDescription(ctx context.Context, description string, txType category.Type) (*Transaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var latest *Transaction
	for _, transaction := range s.data {
		if transaction.Type != txType || !strings.EqualFold(transaction.Description, description) {
			continue
		}
		if latest == nil || transaction.Date.After(latest.Date) {
			t := transaction
			latest = &t
		}
	}
	return latest, nil
}

func (s *StubRepository) Get(ctx context.Context, id uuid.UUID) (Transaction, error) {
	transaction, ok := s.data[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *StubRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepository) UpdateCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) (bool, error) {
	transaction, ok := s.data[id]
	if !ok {
		return false, nil
	}
	transaction.CategoryID = categoryID
	s.data[id] = transaction
	return true, nil
}

func (s *StubRepository) All() []Transaction {
	transactions, _ := s.Find(context.Background(), Filter{})
	return transactions
}

func (s *StubRepository) Cleanup() {
	s.data = map[uuid.UUID]Transaction{}
	s.Err = nil
}
