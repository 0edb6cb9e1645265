package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/nimasrn/debt-ledger/internal/app"
	"github.com/nimasrn/debt-ledger/internal/config"
	"github.com/nimasrn/debt-ledger/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	args := config.StripFlags(argv[1:])
	if len(args) == 0 {
		printUsage()
		return 2
	}

	if err := config.Load(config.EnvPathFromArgs(argv)); err != nil {
		color.Red("failed to load config: %v", err)
		return 1
	}
	cfg := config.Get()
	if err := app.SetupLogging(cfg); err != nil {
		color.Red("failed to set up logging: %v", err)
		return 1
	}
	defer logger.Sync()

	cmd, ok := commands[args[0]]
	if !ok {
		color.Red("unknown command %q", args[0])
		printUsage()
		return 2
	}
	if len(args)-1 < cmd.minArgs {
		color.Red("usage: ledger %s %s", args[0], cmd.usage)
		return 2
	}

	ctx := context.Background()
	if cmd.offline != nil {
		return exitCode(cmd.offline(ctx, cfg, args[1:]))
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to start ledger", "error", err)
		color.Red("failed to open the ledger: %v", err)
		return 1
	}
	defer a.Close()

	return exitCode(cmd.run(ctx, a, args[1:]))
}

func exitCode(err error) int {
	if err != nil {
		color.Red("%v", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: ledger [--env=<file>] <command> [args]")
	fmt.Fprintln(os.Stderr)
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-20s %s\n", name, commands[name].usage)
	}
}
