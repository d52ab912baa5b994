package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/centavo/centavo/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryExists = errors.New("category with this name and type already exists")
var ErrNoCategories = errors.New("no categories configured")

type Repository interface {
	Store(ctx context.Context, category Category) (Category, error)
	GetAll(ctx context.Context) ([]Category, error)
	// GetByType returns the categories of the given type ordered by name, so
	// downstream consumers see a deterministic candidate order.
	GetByType(ctx context.Context, categoryType Type) ([]Category, error)
	Get(ctx context.Context, id uuid.UUID) (Category, error)
	UpdateBudget(ctx context.Context, id uuid.UUID, budget float64) (bool, error)
}

type RepositoryImpl struct {
	db database.Querier
}

func NewRepository(db database.Querier) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, category Category) (Category, error) {
	query := `INSERT INTO categories (id, name, type, icon, budget) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		string(category.Type),
		category.Icon,
		category.Budget,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Category{}, ErrCategoryExists
		}
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return Category{}, err
	}

	return category, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name, type, icon, budget FROM categories ORDER BY name`
	return r.queryCategories(ctx, query)
}

func (r *RepositoryImpl) GetByType(ctx context.Context, categoryType Type) ([]Category, error) {
	query := `SELECT id, name, type, icon, budget FROM categories WHERE type = $1 ORDER BY name`
	return r.queryCategories(ctx, query, string(categoryType))
}

func (r *RepositoryImpl) queryCategories(ctx context.Context, query string, args ...any) ([]Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Type,
			&category.Icon,
			&category.Budget,
		); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return categories, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (Category, error) {
	query := `SELECT id, name, type, icon, budget FROM categories WHERE id = $1`

	var category Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Type,
		&category.Icon,
		&category.Budget,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		err := fmt.Errorf("could not get category: %w", err)
		log.Error(err)
		return Category{}, err
	}

	return category, nil
}

func (r *RepositoryImpl) UpdateBudget(ctx context.Context, id uuid.UUID, budget float64) (bool, error) {
	query := `UPDATE categories SET budget = $1 WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, budget, id)
	if err != nil {
		err := fmt.Errorf("could not update category budget: %w", err)
		log.Error(err)
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}
