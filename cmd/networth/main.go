package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/simaogato/networth-backend/internal/cli"
	"github.com/simaogato/networth-backend/internal/config"
)

func main() {
	cfg, err := config.LoadClient(os.Getenv("NETWORTH_ENV_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	app := &cli.App{}
	flag.StringVar(&app.ServerAddr, "server", cfg.CLI.ServerAddr, "address of the networth gRPC server")
	flag.StringVar(&app.Token, "token", cfg.APIToken, "API token sent as authorization metadata")
	flag.StringVar(&app.Currency, "currency", cfg.CLI.Currency, "ISO 4217 currency used to format amounts")
	flag.BoolVar(&app.Plain, "plain", false, "print raw markdown")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, app)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
