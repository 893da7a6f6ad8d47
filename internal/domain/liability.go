package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// LiabilityCategory is the enumerated label of a liability
type LiabilityCategory string

const (
	LiabilityCategoryCreditCards LiabilityCategory = "Credit Cards"
	LiabilityCategoryLoans       LiabilityCategory = "Loans"
	LiabilityCategoryMortgage    LiabilityCategory = "Mortgage"
	LiabilityCategoryOther       LiabilityCategory = "Other"
)

// DefaultLiabilityCategories lists the liability categories offered when no catalog file is configured
var DefaultLiabilityCategories = []LiabilityCategory{
	LiabilityCategoryCreditCards,
	LiabilityCategoryLoans,
	LiabilityCategoryMortgage,
	LiabilityCategoryOther,
}

// Liability represents a debt that subtracts from net worth.
// ID and CreatedAt are assigned by the store.
type Liability struct {
	ID          string
	Category    LiabilityCategory
	Description string
	Amount      decimal.Decimal // Non-negative
	CreatedAt   time.Time
}

// NewLiability carries the user-supplied fields of a liability
type NewLiability struct {
	Category    LiabilityCategory
	Description string
	Amount      decimal.Decimal
}

// Validate ensures the liability input adheres to domain rules
func (l *NewLiability) Validate(catalog *Catalog) error {
	if l.Category == "" {
		return &ValidationError{Field: "category", Reason: "liability category cannot be empty"}
	}
	if catalog != nil && !catalog.HasLiabilityCategory(l.Category) {
		return &ValidationError{Field: "category", Reason: "unknown liability category " + string(l.Category)}
	}
	if l.Description == "" {
		return &ValidationError{Field: "description", Reason: "liability description cannot be empty"}
	}
	if l.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "liability amount must not be negative"}
	}
	return nil
}

// CheckRecord verifies the shape of a liability returned by a store
func (l *Liability) CheckRecord() error {
	if l == nil {
		return &MalformedRecordError{Kind: "liability", Err: errors.New("record is nil")}
	}
	if l.ID == "" {
		return &MalformedRecordError{Kind: "liability", Field: "id", Err: errors.New("missing identifier")}
	}
	if l.Category == "" {
		return &MalformedRecordError{Kind: "liability", Field: "category", Err: errors.New("missing category")}
	}
	if l.Amount.IsNegative() {
		return &MalformedRecordError{Kind: "liability", Field: "amount", Err: errors.New("negative amount")}
	}
	return nil
}
