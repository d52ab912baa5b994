package transaction

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/centavo/centavo/internal/test_utils"
	"github.com/centavo/centavo/pkg/category"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var container *postgres.PostgresContainer
	var connect func() *pgxpool.Pool
	container, connect = test_utils.TestWithDB()
	db = connect()
	code := m.Run()
	db.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

type repoFixture struct {
	ctx      context.Context
	repo     *RepositoryImpl
	category category.Category
}

func setupRepoFixture(t *testing.T, categoryName string) repoFixture {
	t.Helper()
	ctx := context.Background()
	stored, err := category.NewRepository(db).Store(ctx, category.Category{
		ID:   uuid.New(),
		Name: categoryName,
		Type: category.TypeExpense,
		Icon: "🎬",
	})
	require.NoError(t, err)
	return repoFixture{ctx: ctx, repo: NewRepository(db), category: stored}
}

func (f repoFixture) storeTransaction(t *testing.T, amount float64, description string, day time.Time) Transaction {
	t.Helper()
	item := Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Description: description,
		Type:        category.TypeExpense,
		Date:        day,
		CategoryID:  f.category.ID,
	}
	_, err := f.repo.Store(f.ctx, item)
	require.NoError(t, err)
	return item
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestRepositoryImpl_StoreAndGetJoinsCategory(t *testing.T) {
	// given
	f := setupRepoFixture(t, "Cine")

	// when
	stored := f.storeTransaction(t, 150, "CINEPOLIS", day(2024, 3, 5))

	// then
	found, err := f.repo.Get(f.ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, found.ID)
	assert.Equal(t, 150.0, found.Amount)
	assert.Equal(t, "Cine", found.CategoryName)
	assert.Equal(t, "🎬", found.CategoryIcon)
	assert.Equal(t, day(2024, 3, 5), found.Date)
}

func TestRepositoryImpl_FindFiltersInclusiveAndOrdersByDateDesc(t *testing.T) {
	// given
	f := setupRepoFixture(t, "Despensa")
	f.storeTransaction(t, 1, "FUERA ANTES", day(2024, 4, 30))
	first := f.storeTransaction(t, 2, "EN LIMITE INICIAL", day(2024, 5, 1))
	last := f.storeTransaction(t, 3, "EN LIMITE FINAL", day(2024, 5, 31))
	f.storeTransaction(t, 4, "FUERA DESPUES", day(2024, 6, 1))
	from, to := day(2024, 5, 1), day(2024, 5, 31)

	// when
	found, err := f.repo.Find(f.ctx, Filter{From: &from, To: &to})

	// then
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, last.ID, found[0].ID)
	assert.Equal(t, first.ID, found[1].ID)
}

func TestRepositoryImpl_FindLatestByDescription(t *testing.T) {
	// given
	f := setupRepoFixture(t, "Streaming")
	f.storeTransaction(t, 120, "Netflix", day(2024, 1, 5))
	latest := f.storeTransaction(t, 135, "NETFLIX", day(2024, 2, 5))

	// when: lookup is case-insensitive and picks the most recent
	found, err := f.repo.FindLatestByDescription(f.ctx, "netflix", category.TypeExpense)

	// then
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, latest.ID, found.ID)
}

func TestRepositoryImpl_FindLatestByDescriptionHonorsType(t *testing.T) {
	// given
	f := setupRepoFixture(t, "Reembolsos")
	f.storeTransaction(t, 120, "DEVOLUCION AMAZON", day(2024, 1, 5))

	// when
	found, err := f.repo.FindLatestByDescription(f.ctx, "DEVOLUCION AMAZON", category.TypeIncome)

	// then
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	// given
	f := setupRepoFixture(t, "Suscripciones")
	stored := f.storeTransaction(t, 99, "SPOTIFY", day(2024, 3, 1))

	// when
	deleted, err := f.repo.Delete(f.ctx, stored.ID)

	// then
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = f.repo.Get(f.ctx, stored.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	// deleting again reports nothing to delete
	deleted, err = f.repo.Delete(f.ctx, stored.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepositoryImpl_UpdateCategory(t *testing.T) {
	// given
	f := setupRepoFixture(t, "Comida rapida")
	other, err := category.NewRepository(db).Store(f.ctx, category.Category{
		ID:   uuid.New(),
		Name: "Restaurantes finos",
		Type: category.TypeExpense,
	})
	require.NoError(t, err)
	stored := f.storeTransaction(t, 450, "PUJOL", day(2024, 3, 9))

	// when
	updated, err := f.repo.UpdateCategory(f.ctx, stored.ID, other.ID)

	// then
	require.NoError(t, err)
	assert.True(t, updated)
	found, err := f.repo.Get(f.ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, found.CategoryID)
	assert.Equal(t, "Restaurantes finos", found.CategoryName)
}

func TestRepositoryImpl_UpdateCategoryUnknownTransaction(t *testing.T) {
	// given
	f := setupRepoFixture(t, "Gimnasio")

	// when
	updated, err := f.repo.UpdateCategory(f.ctx, uuid.New(), f.category.ID)

	// then
	require.NoError(t, err)
	assert.False(t, updated)
}
