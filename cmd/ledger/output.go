package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/nimasrn/debt-ledger/internal/backup"
	"github.com/nimasrn/debt-ledger/internal/controller"
	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	debt    = color.New(color.FgRed, color.Bold)
	credit  = color.New(color.FgGreen, color.Bold)
	header  = color.New(color.Bold)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printFailure(msg string) {
	failure.Println(msg)
}

// balanceColor marks a positive balance as debt and a negative one as credit.
func balanceColor(amount decimal.Decimal) *color.Color {
	switch {
	case amount.IsPositive():
		return debt
	case amount.IsNegative():
		return credit
	default:
		return nil
	}
}

func money(p *message.Printer, amount decimal.Decimal) string {
	s := controller.FormatMoney(p, amount)
	if c := balanceColor(amount); c != nil {
		return c.Sprint(s)
	}
	return s
}

type cell struct {
	text  string
	color *color.Color
}

func plain(format string, a ...any) cell {
	return cell{text: fmt.Sprintf(format, a...)}
}

// writeTable pads every cell to its column width before colouring it, so
// escape codes never count towards the width.
func writeTable(w io.Writer, headers []string, rows [][]cell) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(c.text))
		}
	}

	line := func(cells []cell) {
		var b strings.Builder
		for i, c := range cells {
			text := c.text
			if i < len(cells)-1 {
				text += strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c.text)+2)
			}
			if c.color != nil {
				text = c.color.Sprint(text)
			}
			b.WriteString(text)
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	head := make([]cell, len(headers))
	for i, h := range headers {
		head[i] = cell{text: h, color: header}
	}
	line(head)
	for _, row := range rows {
		line(row)
	}
}

func printCustomerTable(p *message.Printer, rows []*model.CustomerBalance) {
	cells := make([][]cell, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []cell{
			plain("%d", r.Customer.ID),
			plain("%s", r.Customer.Name),
			plain("%s", r.Customer.Phone),
			plain("%s", r.Customer.Address),
			{text: controller.FormatMoney(p, r.Balance), color: balanceColor(r.Balance)},
		})
	}
	writeTable(os.Stdout, []string{"ID", "NAME", "PHONE", "ADDRESS", "BALANCE"}, cells)
}

func printHistory(p *message.Printer, rows []*model.Transaction) {
	cells := make([][]cell, 0, len(rows))
	for _, t := range rows {
		cells = append(cells, []cell{
			plain("%d", t.ID),
			plain("%s", t.CreatedAt.Local().Format("2006-01-02 15:04")),
			plain("%s", t.Type),
			plain("%s", controller.FormatMoney(p, t.Amount)),
			plain("%s", t.Note),
		})
	}
	writeTable(os.Stdout, []string{"ID", "DATE", "TYPE", "AMOUNT", "NOTE"}, cells)
}

func printBalance(p *message.Printer, balance decimal.Decimal) {
	fmt.Printf("balance: %s\n", money(p, balance))
}

func printSummary(p *message.Printer, s *model.LedgerSummary) {
	fmt.Printf("customers: %d | total debt: %s\n", s.CustomerCount, money(p, s.TotalDebt))
}

func printBackups(artifacts []backup.Artifact) {
	cells := make([][]cell, 0, len(artifacts))
	for _, a := range artifacts {
		cells = append(cells, []cell{
			plain("%s", a.Name),
			plain("%s", a.TakenAt.Format("2006-01-02 15:04:05")),
			plain("%d", a.Size),
		})
	}
	writeTable(os.Stdout, []string{"NAME", "TAKEN AT", "SIZE"}, cells)
}
