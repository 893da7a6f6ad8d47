package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// liabilityRepository implements domain.LiabilityRepository
type liabilityRepository struct {
	db *DB
}

// NewLiabilityRepository creates a new liability repository
func NewLiabilityRepository(db *DB) domain.LiabilityRepository {
	return &liabilityRepository{db: db}
}

// List retrieves all liabilities, newest first
func (r *liabilityRepository) List(ctx context.Context) ([]*domain.Liability, error) {
	query := `
		SELECT id, created_at, category, description, amount
		FROM liabilities
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	defer rows.Close()

	var liabilities []*domain.Liability
	for rows.Next() {
		var (
			id, category, description, amountStr string
			createdAt                            time.Time
		)
		if err := rows.Scan(&id, &createdAt, &category, &description, &amountStr); err != nil {
			return nil, fmt.Errorf("failed to scan liability: %w", err)
		}

		liability, err := liabilityFromRow(id, createdAt, category, description, amountStr)
		if err != nil {
			return nil, err
		}
		liabilities = append(liabilities, liability)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liabilities: %w", err)
	}

	return liabilities, nil
}

// Create inserts a new liability and returns the stored representation
func (r *liabilityRepository) Create(ctx context.Context, input domain.NewLiability) (*domain.Liability, error) {
	query := `
		INSERT INTO liabilities (id, category, description, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, category, description, amount
	`

	var (
		id, category, description, amountStr string
		createdAt                            time.Time
	)
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		string(input.Category),
		input.Description,
		input.Amount.String(),
	).Scan(&id, &createdAt, &category, &description, &amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create liability: %w", err)
	}

	return liabilityFromRow(id, createdAt, category, description, amountStr)
}

// Delete removes the liability with the given ID
func (r *liabilityRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "liabilities", id)
}

func liabilityFromRow(id string, createdAt time.Time, category, description, amountStr string) (*domain.Liability, error) {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, &domain.MalformedRecordError{Kind: "liability", Field: "amount", Err: err}
	}

	return &domain.Liability{
		ID:          id,
		Category:    domain.LiabilityCategory(category),
		Description: description,
		Amount:      amount,
		CreatedAt:   createdAt,
	}, nil
}
