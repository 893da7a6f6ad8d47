package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	networthv1 "github.com/simaogato/networth-backend/internal/adapter/grpc/networth/v1"
)

type summaryCmd struct {
	app *App
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display totals, assets and liabilities" }
func (*summaryCmd) Usage() string {
	return `networth summary

  Displays the current net worth along with every asset and liability.
`
}

func (c *summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.withClient(ctx, func(ctx context.Context, client LedgerClient) error {
		ledger, err := client.GetLedger(ctx)
		if err != nil {
			return err
		}
		c.app.printMarkdown(summaryMarkdown(ledger, c.app.Currency))
		return nil
	})
}

type historyCmd struct {
	app   *App
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display net worth snapshots" }
func (*historyCmd) Usage() string {
	return `networth history [-n <count>]

  Displays recorded net worth snapshots, oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 0, "only show the most recent n snapshots (0 shows all)")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.withClient(ctx, func(ctx context.Context, client LedgerClient) error {
		ledger, err := client.GetLedger(ctx)
		if err != nil {
			return err
		}
		entries := ledger.History
		if c.limit > 0 && len(entries) > c.limit {
			entries = entries[len(entries)-c.limit:]
		}
		c.app.printMarkdown(historyMarkdown(entries, c.app.Currency))
		return nil
	})
}

type addAssetCmd struct {
	app         *App
	category    string
	description string
	value       string
}

func (*addAssetCmd) Name() string     { return "add-asset" }
func (*addAssetCmd) Synopsis() string { return "record a new asset" }
func (*addAssetCmd) Usage() string {
	return `networth add-asset -c <category> -d <description> -v <value>

  Records an asset and a net worth snapshot.
`
}

func (c *addAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "asset category")
	f.StringVar(&c.description, "d", "", "free-text description")
	f.StringVar(&c.value, "v", "", "asset value, a non-negative decimal")
}

func (c *addAssetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.category == "" || c.description == "" || c.value == "" {
		fmt.Fprintln(c.app.stderr(), "Error: -c, -d and -v are required")
		return subcommands.ExitUsageError
	}
	return c.app.withClient(ctx, func(ctx context.Context, client LedgerClient) error {
		result, err := client.AddAsset(ctx, networthv1.AddAssetRequest{
			Category:    c.category,
			Description: c.description,
			Value:       c.value,
		})
		if err != nil {
			return err
		}
		c.app.printMarkdown(resultMarkdown(result, c.app.Currency))
		return nil
	})
}

type addLiabilityCmd struct {
	app         *App
	category    string
	description string
	amount      string
}

func (*addLiabilityCmd) Name() string     { return "add-liability" }
func (*addLiabilityCmd) Synopsis() string { return "record a new liability" }
func (*addLiabilityCmd) Usage() string {
	return `networth add-liability -c <category> -d <description> -a <amount>

  Records a liability and a net worth snapshot.
`
}

func (c *addLiabilityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "liability category")
	f.StringVar(&c.description, "d", "", "free-text description")
	f.StringVar(&c.amount, "a", "", "amount owed, a non-negative decimal")
}

func (c *addLiabilityCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.category == "" || c.description == "" || c.amount == "" {
		fmt.Fprintln(c.app.stderr(), "Error: -c, -d and -a are required")
		return subcommands.ExitUsageError
	}
	return c.app.withClient(ctx, func(ctx context.Context, client LedgerClient) error {
		result, err := client.AddLiability(ctx, networthv1.AddLiabilityRequest{
			Category:    c.category,
			Description: c.description,
			Amount:      c.amount,
		})
		if err != nil {
			return err
		}
		c.app.printMarkdown(resultMarkdown(result, c.app.Currency))
		return nil
	})
}

type removeAssetCmd struct {
	app *App
}

func (*removeAssetCmd) Name() string     { return "remove-asset" }
func (*removeAssetCmd) Synopsis() string { return "delete an asset by id" }
func (*removeAssetCmd) Usage() string {
	return `networth remove-asset <id>

  Deletes the asset and records a net worth snapshot.
`
}

func (c *removeAssetCmd) SetFlags(*flag.FlagSet) {}

func (c *removeAssetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := singleArg(f)
	if err != nil {
		fmt.Fprintf(c.app.stderr(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.app.withClient(ctx, func(ctx context.Context, client LedgerClient) error {
		result, err := client.RemoveAsset(ctx, id)
		if err != nil {
			return err
		}
		c.app.printMarkdown(fmt.Sprintf("Removed asset `%s`\n\n", id) + resultMarkdown(result, c.app.Currency))
		return nil
	})
}

type removeLiabilityCmd struct {
	app *App
}

func (*removeLiabilityCmd) Name() string     { return "remove-liability" }
func (*removeLiabilityCmd) Synopsis() string { return "delete a liability by id" }
func (*removeLiabilityCmd) Usage() string {
	return `networth remove-liability <id>

  Deletes the liability and records a net worth snapshot.
`
}

func (c *removeLiabilityCmd) SetFlags(*flag.FlagSet) {}

func (c *removeLiabilityCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := singleArg(f)
	if err != nil {
		fmt.Fprintf(c.app.stderr(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.app.withClient(ctx, func(ctx context.Context, client LedgerClient) error {
		result, err := client.RemoveLiability(ctx, id)
		if err != nil {
			return err
		}
		c.app.printMarkdown(fmt.Sprintf("Removed liability `%s`\n\n", id) + resultMarkdown(result, c.app.Currency))
		return nil
	})
}

type snapshotCmd struct {
	app *App
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record a net worth snapshot without changing the ledger" }
func (*snapshotCmd) Usage() string {
	return `networth snapshot

  Records today's net worth in the history.
`
}

func (c *snapshotCmd) SetFlags(*flag.FlagSet) {}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.withClient(ctx, func(ctx context.Context, client LedgerClient) error {
		result, err := client.RecordSnapshot(ctx)
		if err != nil {
			return err
		}
		c.app.printMarkdown(resultMarkdown(result, c.app.Currency))
		return nil
	})
}

func singleArg(f *flag.FlagSet) (string, error) {
	if f.NArg() != 1 {
		return "", errors.New("expected exactly one id argument")
	}
	return f.Arg(0), nil
}
