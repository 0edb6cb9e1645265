package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nimasrn/debt-ledger/internal/app"
	"github.com/nimasrn/debt-ledger/internal/backup"
	"github.com/nimasrn/debt-ledger/internal/config"
	"github.com/nimasrn/debt-ledger/internal/controller"
	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/nimasrn/debt-ledger/pkg/store"
	"github.com/shopspring/decimal"
)

var errFailed = errors.New("command failed")

type command struct {
	usage   string
	minArgs int
	run     func(ctx context.Context, a *app.App, args []string) error
	// offline commands run without opening the ledger database
	offline func(ctx context.Context, cfg *config.Config, args []string) error
}

var commandOrder = []string{
	"customers", "add-customer", "update-customer", "delete-customer",
	"loan", "payment", "balance", "history", "delete-transaction", "summary",
	"migrate", "version", "backup", "backups", "restore",
}

var commands = map[string]command{
	"customers":          {usage: "", run: listCustomers},
	"add-customer":       {usage: "<name> [phone] [address]", minArgs: 1, run: addCustomer},
	"update-customer":    {usage: "<id> <name> [phone] [address]", minArgs: 2, run: updateCustomer},
	"delete-customer":    {usage: "<id>", minArgs: 1, run: deleteCustomer},
	"loan":               {usage: "<customer-id> <amount> [note]", minArgs: 2, run: addLoan},
	"payment":            {usage: "<customer-id> <amount> [note]", minArgs: 2, run: addPayment},
	"balance":            {usage: "<customer-id>", minArgs: 1, run: showBalance},
	"history":            {usage: "<customer-id>", minArgs: 1, run: showHistory},
	"delete-transaction": {usage: "<transaction-id>", minArgs: 1, run: deleteTransaction},
	"summary":            {usage: "", run: showSummary},
	"migrate":            {usage: "", run: showMigrations},
	"version":            {usage: "", offline: showVersion},
	"backup":             {usage: "", offline: takeBackup},
	"backups":            {usage: "", offline: listBackups},
	"restore":            {usage: "<backup-file-name>", minArgs: 1, offline: restoreBackup},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// report prints the result message and turns a failed result into an error.
func report(res controller.Result) error {
	if !res.Success {
		printFailure(res.Message)
		return errFailed
	}
	printSuccess(res.Message)
	return nil
}

func listCustomers(ctx context.Context, a *app.App, _ []string) error {
	res := a.Controller.GetCustomerBalances(ctx)
	if !res.Success {
		return report(res)
	}
	printCustomerTable(a.Controller.Printer(), res.Data.([]*model.CustomerBalance))
	return showSummary(ctx, a, nil)
}

func addCustomer(ctx context.Context, a *app.App, args []string) error {
	res := a.Controller.CreateCustomer(ctx, model.CustomerInput{
		Name:    args[0],
		Phone:   optional(args, 1),
		Address: optional(args, 2),
	})
	if err := report(res); err != nil {
		return err
	}
	fmt.Printf("id: %d\n", res.Data.(*model.Customer).ID)
	return nil
}

func updateCustomer(ctx context.Context, a *app.App, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return report(a.Controller.UpdateCustomer(ctx, id, model.CustomerInput{
		Name:    args[1],
		Phone:   optional(args, 2),
		Address: optional(args, 3),
	}))
}

func deleteCustomer(ctx context.Context, a *app.App, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return report(a.Controller.DeleteCustomer(ctx, id))
}

func addLoan(ctx context.Context, a *app.App, args []string) error {
	return recordTransaction(ctx, args, a.Controller.AddLoan)
}

func addPayment(ctx context.Context, a *app.App, args []string) error {
	return recordTransaction(ctx, args, a.Controller.AddPayment)
}

func recordTransaction(ctx context.Context, args []string, record func(context.Context, int64, decimal.Decimal, string) controller.Result) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	return report(record(ctx, id, amount, strings.Join(args[2:], " ")))
}

func showBalance(ctx context.Context, a *app.App, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	res := a.Controller.GetCustomerDebt(ctx, id)
	if !res.Success {
		return report(res)
	}
	printBalance(a.Controller.Printer(), res.Data.(decimal.Decimal))
	return nil
}

func showHistory(ctx context.Context, a *app.App, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	res := a.Controller.GetCustomerHistory(ctx, id)
	if !res.Success {
		return report(res)
	}
	printHistory(a.Controller.Printer(), res.Data.([]*model.Transaction))
	return nil
}

func deleteTransaction(ctx context.Context, a *app.App, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return report(a.Controller.DeleteTransaction(ctx, id))
}

func showSummary(ctx context.Context, a *app.App, _ []string) error {
	res := a.Controller.GetSummary(ctx)
	if !res.Success {
		return report(res)
	}
	printSummary(a.Controller.Printer(), res.Data.(*model.LedgerSummary))
	return nil
}

// showMigrations runs after app.New has already applied pending migrations.
func showMigrations(ctx context.Context, a *app.App, _ []string) error {
	versions, err := store.AppliedVersions(ctx, a.DB)
	if err != nil {
		return err
	}
	for _, v := range versions {
		fmt.Printf("%4d  %s  %s\n", v.Version, v.AppliedAt.Local().Format("2006-01-02 15:04:05"), v.Description)
	}
	current, err := store.CurrentVersion(ctx, a.DB)
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("schema version %d", current))
	return nil
}

func showVersion(_ context.Context, _ *config.Config, _ []string) error {
	fmt.Printf("ledger %s (commit %s, built %s)\n", version, commit, date)
	return nil
}

func backups(cfg *config.Config) (*backup.Service, error) {
	s, err := app.NewBackupService(cfg)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("backups are only available for the %s driver", store.DriverSQLite)
	}
	return s, nil
}

func takeBackup(ctx context.Context, cfg *config.Config, _ []string) error {
	s, err := backups(cfg)
	if err != nil {
		return err
	}
	a, err := s.SnapshotNow(ctx)
	if err != nil {
		return err
	}
	printSuccess("backup created: " + a.Path)
	return nil
}

func listBackups(_ context.Context, cfg *config.Config, _ []string) error {
	s, err := backups(cfg)
	if err != nil {
		return err
	}
	artifacts, err := s.List()
	if err != nil {
		return err
	}
	printBackups(artifacts)
	return nil
}

func restoreBackup(ctx context.Context, cfg *config.Config, args []string) error {
	s, err := backups(cfg)
	if err != nil {
		return err
	}
	a, err := s.Find(args[0])
	if err != nil {
		return err
	}
	if err := s.Restore(ctx, *a); err != nil {
		return err
	}
	printSuccess("restored " + a.Name)
	return nil
}
