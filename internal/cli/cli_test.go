package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	networthv1 "github.com/simaogato/networth-backend/internal/adapter/grpc/networth/v1"
)

type fakeClient struct {
	ledger     *networthv1.Ledger
	result     *networthv1.MutationResult
	err        error
	removedID  string
	addedAsset networthv1.AddAssetRequest
	token      string
}

func (f *fakeClient) capture(ctx context.Context) {
	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		if v := md.Get("authorization"); len(v) > 0 {
			f.token = v[0]
		}
	}
}

func (f *fakeClient) GetLedger(ctx context.Context, _ ...grpc.CallOption) (*networthv1.Ledger, error) {
	f.capture(ctx)
	return f.ledger, f.err
}

func (f *fakeClient) AddAsset(ctx context.Context, req networthv1.AddAssetRequest, _ ...grpc.CallOption) (*networthv1.MutationResult, error) {
	f.capture(ctx)
	f.addedAsset = req
	return f.result, f.err
}

func (f *fakeClient) AddLiability(ctx context.Context, _ networthv1.AddLiabilityRequest, _ ...grpc.CallOption) (*networthv1.MutationResult, error) {
	f.capture(ctx)
	return f.result, f.err
}

func (f *fakeClient) RemoveAsset(ctx context.Context, id string, _ ...grpc.CallOption) (*networthv1.MutationResult, error) {
	f.capture(ctx)
	f.removedID = id
	return f.result, f.err
}

func (f *fakeClient) RemoveLiability(ctx context.Context, id string, _ ...grpc.CallOption) (*networthv1.MutationResult, error) {
	f.capture(ctx)
	f.removedID = id
	return f.result, f.err
}

func (f *fakeClient) RecordSnapshot(ctx context.Context, _ ...grpc.CallOption) (*networthv1.MutationResult, error) {
	f.capture(ctx)
	return f.result, f.err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newTestApp(client *fakeClient) (*App, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	app := &App{
		ServerAddr: "test",
		Currency:   "USD",
		Plain:      true,
		Out:        out,
		Err:        errOut,
		Connect: func(string) (LedgerClient, io.Closer, error) {
			return client, nopCloser{}, nil
		},
	}
	return app, out, errOut
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return cmd.Execute(context.Background(), f)
}

func sampleLedger() *networthv1.Ledger {
	return &networthv1.Ledger{
		Phase:  "READY",
		Totals: networthv1.Totals{TotalAssets: "11000", TotalLiabilities: "2500.5", NetWorth: "8499.5"},
		Assets: []networthv1.Asset{
			{ID: "a1", Category: "Cash", Description: "Checking", Value: "1000"},
			{ID: "a2", Category: "Investment", Description: "Index | fund", Value: "10000"},
		},
		Liabilities: []networthv1.Liability{
			{ID: "l1", Category: "Credit Card", Amount: "2500.5"},
		},
		History: []networthv1.HistoryEntry{
			{Date: "2024-03-01", TotalAssets: "1000", TotalLiabilities: "0", NetWorth: "1000"},
			{Date: "2024-03-02", TotalAssets: "11000", TotalLiabilities: "0", NetWorth: "11000"},
			{Date: "2024-03-03", TotalAssets: "11000", TotalLiabilities: "2500.5", NetWorth: "8499.5"},
		},
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount, currency, want string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"0", "USD", "$0.00"},
		{"10.005", "usd", "$10.01"},
		{"12.5", "XYZ", "12.50 XYZ"},
		{"not-a-number", "USD", "not-a-number"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+"_"+tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(tt.amount, tt.currency))
		})
	}
}

func TestSummaryMarkdown(t *testing.T) {
	md := summaryMarkdown(sampleLedger(), "USD")

	assert.Contains(t, md, "| Total assets | $11,000.00 |")
	assert.Contains(t, md, "| **Net worth** | **$8,499.50** |")
	assert.Contains(t, md, "| a2 | Investment | Index \\| fund | $10,000.00 |")
	assert.Contains(t, md, "| l1 | Credit Card |  | $2,500.50 |")
	assert.NotContains(t, md, "> ")
}

func TestSummaryMarkdown_EmptyAndDegraded(t *testing.T) {
	md := summaryMarkdown(&networthv1.Ledger{Phase: "READY", Degraded: true}, "USD")

	assert.Contains(t, md, "could not be loaded")
	assert.Contains(t, md, "No assets recorded.")
	assert.Contains(t, md, "No liabilities recorded.")
}

func TestSummaryCmd(t *testing.T) {
	client := &fakeClient{ledger: sampleLedger()}
	app, out, _ := newTestApp(client)
	app.Token = "secret"

	status := run(t, &summaryCmd{app: app})

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "# Net Worth")
	assert.Equal(t, "secret", client.token)
}

func TestHistoryCmd_Limit(t *testing.T) {
	client := &fakeClient{ledger: sampleLedger()}
	app, out, _ := newTestApp(client)

	status := run(t, &historyCmd{app: app}, "-n", "2")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.NotContains(t, out.String(), "2024-03-01")
	assert.Contains(t, out.String(), "| 2024-03-03 | $11,000.00 | $2,500.50 | $8,499.50 |")
}

func TestAddAssetCmd(t *testing.T) {
	client := &fakeClient{result: &networthv1.MutationResult{
		Asset: &networthv1.Asset{ID: "a9", Category: "Cash", Value: "50"},
		Entry: &networthv1.HistoryEntry{Date: "2024-03-04", NetWorth: "8549.5"},
	}}
	app, out, _ := newTestApp(client)

	status := run(t, &addAssetCmd{app: app}, "-c", "Cash", "-v", "50", "-d", "Wallet")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, networthv1.AddAssetRequest{Category: "Cash", Description: "Wallet", Value: "50"}, client.addedAsset)
	assert.Contains(t, out.String(), "Net worth on 2024-03-04: **$8,549.50**")
}

func TestAddAssetCmd_MissingFlags(t *testing.T) {
	app, _, errOut := newTestApp(&fakeClient{})

	status := run(t, &addAssetCmd{app: app}, "-c", "Cash")

	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.Contains(t, errOut.String(), "required")
}

func TestAddCmds_DescriptionIsRequired(t *testing.T) {
	client := &fakeClient{result: &networthv1.MutationResult{}}
	app, _, errOut := newTestApp(client)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &addAssetCmd{app: app}, "-c", "Cash", "-v", "50"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &addLiabilityCmd{app: app}, "-c", "Loans", "-a", "50"))
	assert.Contains(t, errOut.String(), "-d")
	assert.Empty(t, client.addedAsset.Category, "nothing is sent to the server")
}

func TestRemoveAssetCmd(t *testing.T) {
	client := &fakeClient{result: &networthv1.MutationResult{Warning: "history entry could not be recorded"}}
	app, out, _ := newTestApp(client)

	status := run(t, &removeAssetCmd{app: app}, "a1")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "a1", client.removedID)
	assert.Contains(t, out.String(), "> Warning: history entry could not be recorded")
}

func TestRemoveLiabilityCmd_RequiresID(t *testing.T) {
	app, _, _ := newTestApp(&fakeClient{})

	assert.Equal(t, subcommands.ExitUsageError, run(t, &removeLiabilityCmd{app: app}))
}

func TestSnapshotCmd_Failure(t *testing.T) {
	client := &fakeClient{err: errors.New("rpc error: code = Unavailable desc = ledger is not ready")}
	app, _, errOut := newTestApp(client)

	status := run(t, &snapshotCmd{app: app})

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut.String(), "not ready")
}

func TestConnectFailure(t *testing.T) {
	app, _, errOut := newTestApp(nil)
	app.Connect = func(addr string) (LedgerClient, io.Closer, error) {
		return nil, nil, errors.New("connection refused")
	}

	status := run(t, &summaryCmd{app: app})

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut.String(), "connection refused")
}

func TestRegister(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("networth", flag.ContinueOnError), "networth")
	Register(commander, &App{})

	var names []string
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		names = append(names, c.Name())
	})

	assert.Subset(t, names, []string{"summary", "history", "add-asset", "add-liability", "remove-asset", "remove-liability", "snapshot"})
}
