package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	networthv1 "github.com/simaogato/networth-backend/internal/adapter/grpc/networth/v1"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/usecase/aggregator"
	"github.com/simaogato/networth-backend/internal/usecase/ledger"
)

// Server implements the LedgerService gRPC server
type Server struct {
	Controller *ledger.Controller
}

var _ networthv1.LedgerServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(controller *ledger.Controller) *Server {
	return &Server{Controller: controller}
}

// GetLedger returns the current mirrors, totals and lifecycle phase
func (s *Server) GetLedger(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.ledgerView()
}

// AddAsset handles the AddAsset RPC
func (s *Server) AddAsset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in networthv1.AddAssetRequest
	if err := networthv1.FromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	// Parse value from string to decimal
	value, err := decimal.NewFromString(in.Value)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid value format: %v", err)
	}

	asset, entry, err := s.Controller.AddAsset(ctx, domain.NewAsset{
		Category:    domain.AssetCategory(in.Category),
		Description: in.Description,
		Value:       value,
	})
	if asset == nil {
		return nil, mapError(err)
	}

	return result(&networthv1.MutationResult{Asset: networthv1.FromAsset(asset)}, entry, err)
}

// AddLiability handles the AddLiability RPC
func (s *Server) AddLiability(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in networthv1.AddLiabilityRequest
	if err := networthv1.FromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount format: %v", err)
	}

	liability, entry, err := s.Controller.AddLiability(ctx, domain.NewLiability{
		Category:    domain.LiabilityCategory(in.Category),
		Description: in.Description,
		Amount:      amount,
	})
	if liability == nil {
		return nil, mapError(err)
	}

	return result(&networthv1.MutationResult{Liability: networthv1.FromLiability(liability)}, entry, err)
}

// RemoveAsset handles the RemoveAsset RPC
func (s *Server) RemoveAsset(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	entry, err := s.Controller.RemoveAsset(ctx, req.GetValue())
	if err != nil && !isPersistenceError(err) {
		return nil, mapError(err)
	}
	return result(&networthv1.MutationResult{}, entry, err)
}

// RemoveLiability handles the RemoveLiability RPC
func (s *Server) RemoveLiability(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	entry, err := s.Controller.RemoveLiability(ctx, req.GetValue())
	if err != nil && !isPersistenceError(err) {
		return nil, mapError(err)
	}
	return result(&networthv1.MutationResult{}, entry, err)
}

// RecordSnapshot records the current totals; a failed append is an Internal error here
func (s *Server) RecordSnapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	entry, err := s.Controller.RecordSnapshot(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return networthv1.ToStruct(&networthv1.MutationResult{Entry: networthv1.FromEntry(entry)})
}

// result attaches the entry recorded by the mutation, or a warning when the applied change was not recorded
func result(res *networthv1.MutationResult, entry *domain.NetWorthEntry, historyErr error) (*structpb.Struct, error) {
	if historyErr != nil {
		res.Warning = historyErr.Error()
	} else if entry != nil {
		res.Entry = networthv1.FromEntry(entry)
	}
	return networthv1.ToStruct(res)
}

func (s *Server) ledgerView() (*structpb.Struct, error) {
	state := s.Controller.State()
	return networthv1.ToStruct(networthv1.NewLedger(
		string(state.Phase), state.Degraded, aggregator.Aggregate(state.Assets, state.Liabilities),
		state.Assets, state.Liabilities, state.History,
	))
}

func isPersistenceError(err error) bool {
	var pErr *domain.PersistenceError
	return errors.As(err, &pErr)
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var (
		validationErr *domain.ValidationError
		connErr       *domain.ConnectivityError
		persistErr    *domain.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrNotReady), errors.As(err, &connErr):
		return status.Error(codes.Unavailable, err.Error())
	case errors.As(err, &persistErr):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Error(codes.Internal, err.Error())
}
