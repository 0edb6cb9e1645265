package model

import (
	"strings"
	"time"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerInput carries the editable fields of a customer.
type CustomerInput struct {
	Name    string
	Phone   string
	Address string
}

// Normalize trims surrounding whitespace from every field.
func (in CustomerInput) Normalize() CustomerInput {
	return CustomerInput{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
}

type CustomerBalance struct {
	Customer *Customer `json:"customer"`
	Balance  Amount    `json:"balance"`
}
