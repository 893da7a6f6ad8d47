package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	networthv1 "github.com/simaogato/networth-backend/internal/adapter/grpc/networth/v1"
)

// LedgerClient is the part of the gRPC client used by the commands
type LedgerClient interface {
	GetLedger(ctx context.Context, opts ...grpc.CallOption) (*networthv1.Ledger, error)
	AddAsset(ctx context.Context, req networthv1.AddAssetRequest, opts ...grpc.CallOption) (*networthv1.MutationResult, error)
	AddLiability(ctx context.Context, req networthv1.AddLiabilityRequest, opts ...grpc.CallOption) (*networthv1.MutationResult, error)
	RemoveAsset(ctx context.Context, id string, opts ...grpc.CallOption) (*networthv1.MutationResult, error)
	RemoveLiability(ctx context.Context, id string, opts ...grpc.CallOption) (*networthv1.MutationResult, error)
	RecordSnapshot(ctx context.Context, opts ...grpc.CallOption) (*networthv1.MutationResult, error)
}

// App holds the settings shared by every subcommand.
type App struct {
	ServerAddr string
	Token      string
	Currency   string
	Plain      bool // print raw markdown instead of rendering it

	Out io.Writer
	Err io.Writer

	// Connect opens a client to ServerAddr. Defaults to an insecure gRPC connection.
	Connect func(addr string) (LedgerClient, io.Closer, error)
}

// Register adds the ledger subcommands to the commander.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&summaryCmd{app: app}, "ledger")
	c.Register(&historyCmd{app: app}, "ledger")
	c.Register(&addAssetCmd{app: app}, "mutations")
	c.Register(&addLiabilityCmd{app: app}, "mutations")
	c.Register(&removeAssetCmd{app: app}, "mutations")
	c.Register(&removeLiabilityCmd{app: app}, "mutations")
	c.Register(&snapshotCmd{app: app}, "mutations")
}

func dialGRPC(addr string) (LedgerClient, io.Closer, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return networthv1.NewLedgerServiceClient(conn), conn, nil
}

// withClient connects, runs fn with an authorized context and closes the connection
func (a *App) withClient(ctx context.Context, fn func(ctx context.Context, client LedgerClient) error) subcommands.ExitStatus {
	connect := a.Connect
	if connect == nil {
		connect = dialGRPC
	}

	client, closer, err := connect(a.ServerAddr)
	if err != nil {
		fmt.Fprintf(a.stderr(), "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	if a.Token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", a.Token)
	}

	if err := fn(ctx, client); err != nil {
		fmt.Fprintf(a.stderr(), "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it as is in plain mode
func (a *App) printMarkdown(md string) {
	if a.Plain {
		fmt.Fprint(a.stdout(), md)
		return
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(a.stdout(), out)
			return
		}
	}
	fmt.Fprint(a.stdout(), md)
}

func (a *App) stdout() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) stderr() io.Writer {
	if a.Err == nil {
		return os.Stderr
	}
	return a.Err
}
