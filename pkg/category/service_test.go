package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_Create(t *testing.T) {
	service := NewService(NewStubRepository())

	created, err := service.Create(context.Background(), "Comida", "🍔", TypeExpense)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Comida", created.Name)
	assert.Equal(t, TypeExpense, created.Type)
	assert.Equal(t, 0.0, created.Budget)
}

func TestServiceImpl_Create_TrimsName(t *testing.T) {
	service := NewService(NewStubRepository())

	created, err := service.Create(context.Background(), "  Transporte  ", "🚌", TypeExpense)

	require.NoError(t, err)
	assert.Equal(t, "Transporte", created.Name)
}

func TestServiceImpl_Create_RejectsEmptyName(t *testing.T) {
	service := NewService(NewStubRepository())

	_, err := service.Create(context.Background(), "   ", "", TypeExpense)

	assert.Error(t, err)
}

func TestServiceImpl_Create_RejectsInvalidType(t *testing.T) {
	service := NewService(NewStubRepository())

	_, err := service.Create(context.Background(), "Comida", "", Type("transfer"))

	assert.Error(t, err)
}

func TestServiceImpl_Create_DuplicateNameAndType(t *testing.T) {
	service := NewService(NewStubRepository())
	_, err := service.Create(context.Background(), "Comida", "", TypeExpense)
	require.NoError(t, err)

	// same name under the other type partition is fine
	_, err = service.Create(context.Background(), "Comida", "", TypeIncome)
	require.NoError(t, err)

	_, err = service.Create(context.Background(), "Comida", "", TypeExpense)
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestServiceImpl_List_FiltersByType(t *testing.T) {
	repo := NewStubRepository()
	service := NewService(repo)
	_, _ = service.Create(context.Background(), "Sueldo", "", TypeIncome)
	_, _ = service.Create(context.Background(), "Comida", "", TypeExpense)
	_, _ = service.Create(context.Background(), "Alquiler", "", TypeExpense)

	expense := TypeExpense
	categories, err := service.List(context.Background(), &expense)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	// ordered by name
	assert.Equal(t, "Alquiler", categories[0].Name)
	assert.Equal(t, "Comida", categories[1].Name)
}

func TestServiceImpl_SetBudget(t *testing.T) {
	repo := NewStubRepository()
	service := NewService(repo)
	created, _ := service.Create(context.Background(), "Comida", "", TypeExpense)

	err := service.SetBudget(context.Background(), created.ID, 500)

	require.NoError(t, err)
	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, stored.Budget)
}

func TestServiceImpl_SetBudget_UnknownCategory(t *testing.T) {
	service := NewService(NewStubRepository())

	err := service.SetBudget(context.Background(), uuid.New(), 500)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestServiceImpl_SetBudget_RejectsNegative(t *testing.T) {
	repo := NewStubRepository()
	service := NewService(repo)
	created, _ := service.Create(context.Background(), "Comida", "", TypeExpense)

	err := service.SetBudget(context.Background(), created.ID, -10)

	assert.Error(t, err)
}
