package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewLiability_Validate(t *testing.T) {
	tests := []struct {
		name      string
		liability NewLiability
		wantErr   bool
		errMsg    string
	}{
		{
			name: "Valid car loan should pass",
			liability: NewLiability{
				Category:    LiabilityCategoryLoans,
				Description: "Car Loan",
				Amount:      decimal.NewFromInt(400),
			},
			wantErr: false,
		},
		{
			name: "Asset category should fail",
			liability: NewLiability{
				Category:    LiabilityCategory("Cash"),
				Description: "Wallet",
				Amount:      decimal.NewFromInt(400),
			},
			wantErr: true,
			errMsg:  "unknown liability category Cash",
		},
		{
			name: "Empty description should fail",
			liability: NewLiability{
				Category: LiabilityCategoryMortgage,
				Amount:   decimal.NewFromInt(400),
			},
			wantErr: true,
			errMsg:  "liability description cannot be empty",
		},
		{
			name: "Negative amount should fail",
			liability: NewLiability{
				Category:    LiabilityCategoryCreditCards,
				Description: "Visa",
				Amount:      decimal.RequireFromString("-0.01"),
			},
			wantErr: true,
			errMsg:  "liability amount must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.liability.Validate(DefaultCatalog())
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLiability_CheckRecord(t *testing.T) {
	ok := &Liability{ID: "l1", Category: LiabilityCategoryLoans, Amount: decimal.NewFromInt(1)}
	assert.NoError(t, ok.CheckRecord())

	missingID := &Liability{Category: LiabilityCategoryLoans, Amount: decimal.NewFromInt(1)}
	var mErr *MalformedRecordError
	assert.True(t, errors.As(missingID.CheckRecord(), &mErr))
	assert.Equal(t, "liability", mErr.Kind)
	assert.Equal(t, "id", mErr.Field)
}
