package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/simaogato/networth-backend/internal/config"
	"github.com/simaogato/networth-backend/internal/domain"
)

const (
	tableAssets      = "assets"
	tableLiabilities = "liabilities"
	tableHistory     = "net_worth_history"
)

// Store is a resty-backed domain.LedgerStore talking to a Supabase PostgREST endpoint.
type Store struct {
	httpClient *resty.Client
}

// NewStore builds a Supabase store using the provided configuration values.
func NewStore(cfg config.SupabaseConfig) *Store {
	base := strings.TrimSuffix(cfg.URL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base+"/rest/v1").
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AnonKey)).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Store{httpClient: restyClient}
}

// Assets returns the asset repository
func (s *Store) Assets() domain.AssetRepository { return assetRepo{s} }

// Liabilities returns the liability repository
func (s *Store) Liabilities() domain.LiabilityRepository { return liabilityRepo{s} }

// History returns the net worth history repository
func (s *Store) History() domain.HistoryRepository { return historyRepo{s} }

// Ping selects a single asset id, which fails when the endpoint, key or table is unusable
func (s *Store) Ping(ctx context.Context) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"select": "id", "limit": "1"}).
		SetError(new(apiError)).
		Get(tableAssets)
	if err != nil {
		return fmt.Errorf("supabase connection test: %w", err)
	}
	return checkResponse(resp, "connection test")
}

// Close is a no-op; the HTTP client holds no dedicated resources
func (s *Store) Close() error { return nil }

// apiError represents a PostgREST error payload.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase %s: status=%d, code=%s, message=%s", e.Op, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase %s: status=%d, message=%s", e.Op, e.StatusCode, e.Message)
}

func checkResponse(resp *resty.Response, op string) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	statusErr := &StatusError{Op: op, StatusCode: resp.StatusCode()}
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr != nil {
		statusErr.Code = apiErr.Code
		statusErr.Message = apiErr.Message
	}
	if statusErr.Message == "" {
		statusErr.Message = http.StatusText(resp.StatusCode())
	}
	return statusErr
}

// list fetches every row of table in the given PostgREST order into result
func (s *Store) list(ctx context.Context, table, order string, result any) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"select": "*", "order": order}).
		SetResult(result).
		SetError(new(apiError)).
		Get(table)
	if err != nil {
		return fmt.Errorf("list %s: %w", table, err)
	}
	return checkResponse(resp, "list "+table)
}

// insert posts one row and decodes the returned representation into result
func (s *Store) insert(ctx context.Context, table string, row any, result any) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(row).
		SetResult(result).
		SetError(new(apiError)).
		Post(table)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return checkResponse(resp, "insert into "+table)
}

// deleteByID deletes by id and reports domain.ErrNotFound when nothing matched
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	var deleted []map[string]any
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		SetResult(&deleted).
		SetError(new(apiError)).
		Delete(table)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if err := checkResponse(resp, "delete from "+table); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return fmt.Errorf("%s %q: %w", table, id, domain.ErrNotFound)
	}
	return nil
}
