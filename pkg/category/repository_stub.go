package category

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

type StubRepository struct {
	data map[uuid.UUID]Category
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[uuid.UUID]Category{}}
}

func (s *StubRepository) Store(ctx context.Context, category Category) (Category, error) {
	for _, existing := range s.data {
		if existing.Name == category.Name && existing.Type == category.Type {
			return Category{}, ErrCategoryExists
		}
	}
	s.data[category.ID] = category
	return category, nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	sortByName(categories)
	return categories, nil
}

func (s *StubRepository) GetByType(ctx context.Context, categoryType Type) ([]Category, error) {
	var categories []Category
	for _, category := range s.data {
		if category.Type == categoryType {
			categories = append(categories, category)
		}
	}
	sortByName(categories)
	return categories, nil
}

func (s *StubRepository) Get(ctx context.Context, id uuid.UUID) (Category, error) {
	category, ok := s.data[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *StubRepository) UpdateBudget(ctx context.Context, id uuid.UUID, budget float64) (bool, error) {
	category, ok := s.data[id]
	if !ok {
		return false, nil
	}
	category.Budget = budget
	s.data[id] = category
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[uuid.UUID]Category{}
}

func sortByName(categories []Category) {
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
}
