package networthv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// LedgerServiceClient is a typed client for the ledger service
type LedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerServiceClient creates a client over an established connection
func NewLedgerServiceClient(cc grpc.ClientConnInterface) *LedgerServiceClient {
	return &LedgerServiceClient{cc: cc}
}

// GetLedger returns the current phase, collections, totals and history
func (c *LedgerServiceClient) GetLedger(ctx context.Context, opts ...grpc.CallOption) (*Ledger, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetLedgerMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	ledger := new(Ledger)
	if err := FromStruct(out, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// AddAsset creates an asset and records a snapshot
func (c *LedgerServiceClient) AddAsset(ctx context.Context, req AddAssetRequest, opts ...grpc.CallOption) (*MutationResult, error) {
	return c.mutate(ctx, AddAssetMethod, req, opts)
}

// AddLiability creates a liability and records a snapshot
func (c *LedgerServiceClient) AddLiability(ctx context.Context, req AddLiabilityRequest, opts ...grpc.CallOption) (*MutationResult, error) {
	return c.mutate(ctx, AddLiabilityMethod, req, opts)
}

// RemoveAsset deletes the asset with the given id
func (c *LedgerServiceClient) RemoveAsset(ctx context.Context, id string, opts ...grpc.CallOption) (*MutationResult, error) {
	return c.remove(ctx, RemoveAssetMethod, id, opts)
}

// RemoveLiability deletes the liability with the given id
func (c *LedgerServiceClient) RemoveLiability(ctx context.Context, id string, opts ...grpc.CallOption) (*MutationResult, error) {
	return c.remove(ctx, RemoveLiabilityMethod, id, opts)
}

// RecordSnapshot appends a history entry for the current totals
func (c *LedgerServiceClient) RecordSnapshot(ctx context.Context, opts ...grpc.CallOption) (*MutationResult, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RecordSnapshotMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return decodeResult(out)
}

func (c *LedgerServiceClient) mutate(ctx context.Context, method string, req any, opts []grpc.CallOption) (*MutationResult, error) {
	in, err := ToStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return decodeResult(out)
}

func (c *LedgerServiceClient) remove(ctx context.Context, method, id string, opts []grpc.CallOption) (*MutationResult, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, wrapperspb.String(id), out, opts...); err != nil {
		return nil, err
	}
	return decodeResult(out)
}

func decodeResult(out *structpb.Struct) (*MutationResult, error) {
	result := new(MutationResult)
	if err := FromStruct(out, result); err != nil {
		return nil, err
	}
	return result, nil
}
