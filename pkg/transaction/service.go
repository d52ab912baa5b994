package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/centavo/centavo/pkg/category"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrTypeMismatch = errors.New("category type does not match transaction type")
var ErrInvalidTransaction = errors.New("invalid transaction")

// CategoryResolver decides which category a new transaction belongs to.
// Candidates are pre-filtered to the transaction's type.
type CategoryResolver interface {
	Resolve(ctx context.Context, description string, txType category.Type, candidates []category.Category) (uuid.UUID, error)
}

type Service interface {
	// Add runs the categorization pipeline and persists the transaction.
	Add(ctx context.Context, amount float64, description string, txType category.Type, date time.Time) (Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Recategorize is the explicit user override of an assigned category. The
	// new category must share the transaction's type.
	Recategorize(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) error
}

type ServiceImpl struct {
	repo         Repository
	categoryRepo category.Repository
	resolver     CategoryResolver
}

func NewService(repo Repository, categoryRepo category.Repository, resolver CategoryResolver) *ServiceImpl {
	return &ServiceImpl{repo: repo, categoryRepo: categoryRepo, resolver: resolver}
}

func (s *ServiceImpl) Add(ctx context.Context, amount float64, description string, txType category.Type, date time.Time) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return Transaction{}, fmt.Errorf("%w: description must not be empty", ErrInvalidTransaction)
	}
	if !txType.Valid() {
		return Transaction{}, fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txType)
	}

	candidates, err := s.categoryRepo.GetByType(ctx, txType)
	if err != nil {
		return Transaction{}, fmt.Errorf("could not load categories: %w", err)
	}

	categoryID, err := s.resolver.Resolve(ctx, description, txType, candidates)
	if err != nil {
		return Transaction{}, err
	}

	transaction := Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Description: description,
		Type:        txType,
		Date:        truncateToDate(date),
		CategoryID:  categoryID,
	}
	for _, candidate := range candidates {
		if candidate.ID == categoryID {
			transaction.CategoryName = candidate.Name
			transaction.CategoryIcon = candidate.Icon
			break
		}
	}

	if _, err := s.repo.Store(ctx, transaction); err != nil {
		return Transaction{}, err
	}

	log.Infof("recorded %s %q in category %q", transaction.Type, transaction.Description, transaction.CategoryName)
	return transaction, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

func (s *ServiceImpl) Recategorize(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) error {
	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	newCategory, err := s.categoryRepo.Get(ctx, categoryID)
	if err != nil {
		return err
	}
	if newCategory.Type != transaction.Type {
		return fmt.Errorf("%w: %s category %q cannot hold %s transaction", ErrTypeMismatch, newCategory.Type, newCategory.Name, transaction.Type)
	}

	updated, err := s.repo.UpdateCategory(ctx, id, categoryID)
	if err != nil {
		return err
	}
	if !updated {
		return ErrTransactionNotFound
	}
	return nil
}

func truncateToDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
