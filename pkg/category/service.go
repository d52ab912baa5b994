package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidCategory = errors.New("invalid category")

type Service interface {
	// List returns all categories, or only those of the given type when
	// categoryType is non-nil. Ordered by name.
	List(ctx context.Context, categoryType *Type) ([]Category, error)
	Create(ctx context.Context, name, icon string, categoryType Type) (Category, error)
	SetBudget(ctx context.Context, id uuid.UUID, budget float64) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, categoryType *Type) ([]Category, error) {
	if categoryType != nil {
		return s.repo.GetByType(ctx, *categoryType)
	}
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Create(ctx context.Context, name, icon string, categoryType Type) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: name must not be empty", ErrInvalidCategory)
	}
	if !categoryType.Valid() {
		return Category{}, fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, categoryType)
	}

	category := Category{
		ID:   uuid.New(),
		Name: name,
		Type: categoryType,
		Icon: icon,
	}
	return s.repo.Store(ctx, category)
}

func (s *ServiceImpl) SetBudget(ctx context.Context, id uuid.UUID, budget float64) error {
	if budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidCategory)
	}

	updated, err := s.repo.UpdateBudget(ctx, id, budget)
	if err != nil {
		return err
	}
	if !updated {
		log.Warnf("budget not updated, category %s does not exist", id)
		return ErrCategoryNotFound
	}
	return nil
}
