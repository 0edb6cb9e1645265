package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrCustomerNotFound = errors.New("customer not found")

	ErrEmptyName         = fmt.Errorf("%w: customer name cannot be empty", ErrValidation)
	ErrInvalidAmount     = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidCustomerID = fmt.Errorf("%w: invalid customer id", ErrValidation)

	ErrAmountNotPositive = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	ErrAmountTooLarge    = fmt.Errorf("%w: amount exceeds the maximum", ErrInvalidAmount)
	ErrAmountTooPrecise  = fmt.Errorf("%w: amount has too many decimal places", ErrInvalidAmount)
)
