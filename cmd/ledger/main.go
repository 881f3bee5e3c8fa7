// Command ledger records and reports investment transactions from the
// command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"investment-ledger-go/internal/client"
	"investment-ledger-go/internal/config"
	"investment-ledger-go/internal/ledger"
	"investment-ledger-go/internal/logger"
	"investment-ledger-go/internal/store"
)

var (
	configDir = flag.String("config", "./configs", "Directory containing config.yml")
	remote    = flag.Bool("remote", false, "Send commands to the API server at client.base_url instead of the local ledger")
)

// app is handed to every subcommand.
type app struct {
	backend backend
	out     io.Writer
}

func register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&addCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")

	c.Register(&listCmd{}, "reports")
	c.Register(&statsCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, os.Args[0])
	register(commander)
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	defer log.Sync()

	a := &app{out: os.Stdout}
	if *remote {
		log.Debug("Using remote ledger", zap.String("base_url", cfg.Client.BaseURL))
		a.backend = remoteBackend{client: client.NewClient(cfg.Client, log)}
	} else {
		s, err := store.Open(cfg.Storage)
		if err != nil {
			log.Error("Failed to open ledger storage", zap.Error(err))
			os.Exit(int(subcommands.ExitFailure))
		}
		a.backend = localBackend{service: ledger.NewService(s, log)}
	}
	os.Exit(int(commander.Execute(context.Background(), a)))
}

func appFrom(args []interface{}) *app {
	return args[0].(*app)
}
