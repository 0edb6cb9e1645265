package handlers

import (
	"context"
	"encoding/json"

	"github.com/fasthttp/router"
	"github.com/nimasrn/debt-ledger/internal/controller"
	"github.com/nimasrn/debt-ledger/internal/model"
	xhttp "github.com/nimasrn/debt-ledger/pkg/http"
	"github.com/shopspring/decimal"
)

type LedgerController interface {
	CreateCustomer(ctx context.Context, in model.CustomerInput) controller.Result
	UpdateCustomer(ctx context.Context, id int64, in model.CustomerInput) controller.Result
	DeleteCustomer(ctx context.Context, id int64) controller.Result
	GetCustomer(ctx context.Context, id int64) controller.Result
	GetCustomerBalances(ctx context.Context) controller.Result
	AddLoan(ctx context.Context, customerID int64, amount decimal.Decimal, note string) controller.Result
	AddPayment(ctx context.Context, customerID int64, amount decimal.Decimal, note string) controller.Result
	GetCustomerDebt(ctx context.Context, customerID int64) controller.Result
	GetCustomerHistory(ctx context.Context, customerID int64) controller.Result
	DeleteTransaction(ctx context.Context, id int64) controller.Result
	GetSummary(ctx context.Context) controller.Result
}

type LedgerHandler struct {
	ctrl LedgerController
}

func RegisterLedgerRoutes(e *router.Group, h *LedgerHandler) {
	e.GET("/summary", h.GetSummary)
	e.GET("/customers", h.ListCustomers)
	e.POST("/customers", h.CreateCustomer)
	e.GET("/customers/{id}", h.GetCustomer)
	e.PUT("/customers/{id}", h.UpdateCustomer)
	e.DELETE("/customers/{id}", h.DeleteCustomer)
	e.GET("/customers/{id}/balance", h.GetBalance)
	e.GET("/customers/{id}/transactions", h.GetHistory)
	e.POST("/customers/{id}/loans", h.AddLoan)
	e.POST("/customers/{id}/payments", h.AddPayment)
	e.DELETE("/transactions/{id}", h.DeleteTransaction)
}

func NewLedgerHandler(ctrl LedgerController) *LedgerHandler {
	return &LedgerHandler{
		ctrl: ctrl,
	}
}

type customerRequest struct {
	Name    string `json:"name"    validate:"max=200"`
	Phone   string `json:"phone"   validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
}

func (r customerRequest) input() model.CustomerInput {
	return model.CustomerInput{Name: r.Name, Phone: r.Phone, Address: r.Address}
}

// Amount accepts a JSON number or a numeric string.
type transactionRequest struct {
	Amount string `json:"amount" validate:"required,numeric"`
	Note   string `json:"note"   validate:"max=500"`
}

type balanceResponse struct {
	CustomerID int64           `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

func (r *transactionRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Amount decimal.NullDecimal `json:"amount"`
		Note   string              `json:"note"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Note = raw.Note
	r.Amount = ""
	if raw.Amount.Valid {
		r.Amount = raw.Amount.Decimal.String()
	}
	return nil
}

func (h *LedgerHandler) GetSummary(ctx *xhttp.RequestCtx) {
	writeResult(ctx, h.ctrl.GetSummary(ctx), xhttp.StatusOK)
}

func (h *LedgerHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	writeResult(ctx, h.ctrl.GetCustomerBalances(ctx), xhttp.StatusOK)
}

func (h *LedgerHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var req customerRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, h.ctrl.CreateCustomer(ctx, req.input()), xhttp.StatusCreated)
}

func (h *LedgerHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, h.ctrl.GetCustomer(ctx, id), xhttp.StatusOK)
}

func (h *LedgerHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	var req customerRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, h.ctrl.UpdateCustomer(ctx, id, req.input()), xhttp.StatusOK)
}

func (h *LedgerHandler) DeleteCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, h.ctrl.DeleteCustomer(ctx, id), xhttp.StatusOK)
}

func (h *LedgerHandler) GetBalance(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	res := h.ctrl.GetCustomerDebt(ctx, id)
	if balance, ok := res.Data.(decimal.Decimal); ok {
		res.Data = balanceResponse{CustomerID: id, Balance: balance}
	}
	writeResult(ctx, res, xhttp.StatusOK)
}

func (h *LedgerHandler) GetHistory(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, h.ctrl.GetCustomerHistory(ctx, id), xhttp.StatusOK)
}

func (h *LedgerHandler) AddLoan(ctx *xhttp.RequestCtx) {
	h.addTransaction(ctx, h.ctrl.AddLoan)
}

func (h *LedgerHandler) AddPayment(ctx *xhttp.RequestCtx) {
	h.addTransaction(ctx, h.ctrl.AddPayment)
}

func (h *LedgerHandler) addTransaction(ctx *xhttp.RequestCtx, record func(context.Context, int64, decimal.Decimal, string) controller.Result) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	var req transactionRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, record(ctx, id, amount, req.Note), xhttp.StatusCreated)
}

func (h *LedgerHandler) DeleteTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, h.ctrl.DeleteTransaction(ctx, id), xhttp.StatusOK)
}
