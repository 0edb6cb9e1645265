package main

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/nimasrn/debt-ledger/internal/controller"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestWriteTable_ColoursDoNotShiftColumns(t *testing.T) {
	bold := color.New(color.Bold)
	bold.EnableColor()
	red := color.New(color.FgRed)
	red.EnableColor()

	var buf bytes.Buffer
	writeTable(&buf, []string{"ID", "NAME", "BALANCE"}, [][]cell{
		{plain("1"), {text: "Nguyễn Văn An", color: bold}, {text: "500,000", color: red}},
		{plain("12"), plain("Bình"), plain("0")},
	})

	require.Contains(t, buf.String(), "\x1b[")
	lines := strings.Split(strings.TrimRight(ansi.ReplaceAllString(buf.String(), ""), "\n"), "\n")
	require.Len(t, lines, 3)

	column := func(line, value string) int {
		return len([]rune(line[:strings.Index(line, value)]))
	}
	assert.Equal(t, column(lines[0], "NAME"), column(lines[1], "Nguyễn"))
	assert.Equal(t, column(lines[0], "NAME"), column(lines[2], "Bình"))
	assert.Equal(t, column(lines[0], "BALANCE"), column(lines[1], "500,000"))
	assert.Equal(t, column(lines[0], "BALANCE"), column(lines[2], "0"))
}

func TestHistoryAmountsKeepFractions(t *testing.T) {
	p := controller.NewPrinter("en")
	assert.Equal(t, "0.40", controller.FormatMoney(p, decimal.RequireFromString("0.4")))
	assert.Equal(t, "500,000", controller.FormatMoney(p, decimal.NewFromInt(500000)))
}
