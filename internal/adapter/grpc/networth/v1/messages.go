package networthv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages travel as google.protobuf.Struct. Money is always a decimal string.

// Asset is the wire form of a ledger asset
type Asset struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Value       string `json:"value"`
	CreatedAt   string `json:"created_at,omitempty"` // RFC 3339
}

// Liability is the wire form of a ledger liability
type Liability struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// HistoryEntry is one dated net worth snapshot
type HistoryEntry struct {
	Date             string `json:"date"`
	TotalAssets      string `json:"total_assets"`
	TotalLiabilities string `json:"total_liabilities"`
	NetWorth         string `json:"net_worth"`
}

// Totals holds the aggregates derived from the current collections
type Totals struct {
	TotalAssets      string `json:"total_assets"`
	TotalLiabilities string `json:"total_liabilities"`
	NetWorth         string `json:"net_worth"`
}

// Ledger is the response of GetLedger
type Ledger struct {
	Phase       string         `json:"phase"`
	Degraded    bool           `json:"degraded"`
	Totals      Totals         `json:"totals"`
	Assets      []Asset        `json:"assets"`
	Liabilities []Liability    `json:"liabilities"`
	History     []HistoryEntry `json:"history"`
}

// AddAssetRequest is the input of AddAsset. Value is a decimal string.
type AddAssetRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Value       string `json:"value"`
}

// AddLiabilityRequest is the input of AddLiability. Amount is a decimal string.
type AddLiabilityRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// MutationResult is returned by every mutating method.
// Warning is set when the change was applied but its history entry could not be recorded.
type MutationResult struct {
	Asset     *Asset        `json:"asset,omitempty"`
	Liability *Liability    `json:"liability,omitempty"`
	Entry     *HistoryEntry `json:"entry,omitempty"`
	Warning   string        `json:"warning,omitempty"`
}

// ToStruct encodes a message into a protobuf Struct
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return structpb.NewStruct(fields)
}

// FromStruct decodes a protobuf Struct into a message
func FromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}
