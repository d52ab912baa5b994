package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/centavo/centavo/internal/database"
	"github.com/centavo/centavo/pkg/category"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Repository interface {
	Store(ctx context.Context, transaction Transaction) (uuid.UUID, error)
	// Find returns transactions within the filter bounds (inclusive), newest
	// first, with the category name and icon joined in.
	Find(ctx context.Context, filter Filter) ([]Transaction, error)
	// FindLatestByDescription returns the most recent transaction whose
	// description equals the given one under case-insensitive comparison and
	// whose type matches, or nil when there is none.
	FindLatestByDescription(ctx context.Context, description string, txType category.Type) (*Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db database.Querier
}

func NewRepository(db database.Querier) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `t.id, t.amount, t.description, t.type, t.date, t.category_id, c.name, c.icon`

func (r *RepositoryImpl) Store(ctx context.Context, transaction Transaction) (uuid.UUID, error) {
	query := `INSERT INTO transactions (id, amount, description, type, date, category_id)
				VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		transaction.ID,
		transaction.Amount,
		transaction.Description,
		string(transaction.Type),
		transaction.Date,
		transaction.CategoryID,
	)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}

	return transaction.ID, nil
}

func (r *RepositoryImpl) Find(ctx context.Context, filter Filter) ([]Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions t
				LEFT JOIN categories c ON c.id = t.category_id`, selectColumns)

	var conditions []string
	var args []any
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.date DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return transactions, nil
}

func (r *RepositoryImpl) FindLatestByDescription(ctx context.Context, description string, txType category.Type) (*Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions t
				LEFT JOIN categories c ON c.id = t.category_id
				WHERE lower(t.description) = lower($1) AND t.type = $2
				ORDER BY t.date DESC
				LIMIT 1`, selectColumns)

	row := r.db.QueryRow(ctx, query, description, string(txType))
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not find transaction by description: %w", err)
		log.Error(err)
		return nil, err
	}

	return &transaction, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions t
				LEFT JOIN categories c ON c.id = t.category_id
				WHERE t.id = $1`, selectColumns)

	transaction, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrTransactionNotFound
		}
		err := fmt.Errorf("could not get transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}

	return transaction, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM transactions WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
		log.Error(err)
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) UpdateCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) (bool, error) {
	query := `UPDATE transactions SET category_id = $1 WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, categoryID, id)
	if err != nil {
		err := fmt.Errorf("could not update transaction category: %w", err)
		log.Error(err)
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var transaction Transaction
	var categoryName, categoryIcon *string
	if err := row.Scan(
		&transaction.ID,
		&transaction.Amount,
		&transaction.Description,
		&transaction.Type,
		&transaction.Date,
		&transaction.CategoryID,
		&categoryName,
		&categoryIcon,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, err
		}
		return Transaction{}, fmt.Errorf("could not scan transaction: %w", err)
	}
	if categoryName != nil {
		transaction.CategoryName = *categoryName
	}
	if categoryIcon != nil {
		transaction.CategoryIcon = *categoryIcon
	}
	return transaction, nil
}
