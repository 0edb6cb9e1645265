package fixtures

import (
	"github.com/nimasrn/debt-ledger/internal/model"
)

var (
	CustomerAn = model.CustomerInput{
		Name:    "An",
		Phone:   "0901234567",
		Address: "12 Lê Lợi, Huế",
	}

	CustomerBinh = model.CustomerInput{
		Name:  "Bình",
		Phone: "0912345678",
	}

	CustomerNameOnly = model.CustomerInput{
		Name: "Chị Hoa",
	}
)

var (
	ValidAmounts = []string{
		"1",
		"500000",
		"1250000",
		"0.5",
	}

	InvalidAmounts = []string{
		"0",
		"-50",
		"-0.01",
	}

	BlankNames = []string{
		"",
		"   ",
		"\n\t",
	}
)
