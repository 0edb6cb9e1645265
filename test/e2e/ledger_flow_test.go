package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/nimasrn/debt-ledger/internal/controller"
	"github.com/nimasrn/debt-ledger/internal/handlers"
	"github.com/nimasrn/debt-ledger/internal/model"
	xhttp "github.com/nimasrn/debt-ledger/pkg/http"
	"github.com/nimasrn/debt-ledger/test/fixtures"
	"github.com/nimasrn/debt-ledger/test/helpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func balanceOf(t *testing.T, ctrl *controller.LedgerController, id int64) decimal.Decimal {
	t.Helper()
	res := ctrl.GetCustomerDebt(context.Background(), id)
	require.True(t, res.Success, res.Message)
	return res.Data.(decimal.Decimal)
}

func TestE2E_LedgerScenario(t *testing.T) {
	env := helpers.SetupLedger(t, "vi")
	ctx := context.Background()
	ctrl := env.Controller

	res := ctrl.CreateCustomer(ctx, model.CustomerInput{Name: "An"})
	require.True(t, res.Success)
	id := res.Data.(*model.Customer).ID
	assert.Equal(t, int64(1), id)

	res = ctrl.AddLoan(ctx, id, helpers.Amount(500000), "xe máy")
	require.True(t, res.Success)
	assert.Equal(t, "Đã thêm khoản cho vay thành công", res.Message)
	assert.True(t, balanceOf(t, ctrl, id).Equal(helpers.Amount(500000)))

	res = ctrl.AddPayment(ctx, id, helpers.Amount(200000), "trả góp")
	require.True(t, res.Success)
	assert.True(t, balanceOf(t, ctrl, id).Equal(helpers.Amount(300000)))

	res = ctrl.AddPayment(ctx, id, helpers.Amount(400000), "")
	require.True(t, res.Success)
	assert.True(t, balanceOf(t, ctrl, id).Equal(helpers.Amount(-100000)))

	res = ctrl.AddLoan(ctx, 999, helpers.Amount(100), "")
	assert.False(t, res.Success)
	assert.Equal(t, controller.KindNotFound, res.Kind)
	assert.Equal(t, "Không tìm thấy khách hàng với ID: 999", res.Message)
	assert.Zero(t, env.CountTransactions(t, 999))

	res = ctrl.AddLoan(ctx, id, helpers.Amount(-50), "")
	assert.False(t, res.Success)
	assert.Equal(t, controller.KindValidation, res.Kind)
	assert.Equal(t, "Số tiền cho vay phải lớn hơn 0", res.Message)
	assert.Equal(t, int64(3), env.CountTransactions(t, id))

	res = ctrl.DeleteCustomer(ctx, id)
	require.True(t, res.Success)

	res = ctrl.GetCustomerHistory(ctx, id)
	assert.False(t, res.Success)
	assert.Equal(t, controller.KindNotFound, res.Kind)
	assert.Zero(t, env.CountTransactions(t, id))
}

func TestE2E_InvalidInputLeavesNoRows(t *testing.T) {
	env := helpers.SetupLedger(t, "en")
	ctx := context.Background()
	ctrl := env.Controller

	for _, name := range fixtures.BlankNames {
		res := ctrl.CreateCustomer(ctx, model.CustomerInput{Name: name})
		assert.Equal(t, controller.KindValidation, res.Kind, "%q", name)
		assert.Equal(t, "Customer name must not be empty", res.Message)
	}
	count, err := env.CustomerRepo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	created := ctrl.CreateCustomer(ctx, fixtures.CustomerAn).Data.(*model.Customer)
	for _, s := range fixtures.InvalidAmounts {
		res := ctrl.AddPayment(ctx, created.ID, decimal.RequireFromString(s), "")
		assert.Equal(t, controller.KindValidation, res.Kind, s)
		assert.Equal(t, "Payment amount must be greater than 0", res.Message)
	}
	assert.Zero(t, env.CountTransactions(t, created.ID))
}

func TestE2E_SummaryAcrossCustomers(t *testing.T) {
	env := helpers.SetupLedger(t, "vi")
	ctx := context.Background()
	ctrl := env.Controller

	an := ctrl.CreateCustomer(ctx, fixtures.CustomerAn).Data.(*model.Customer)
	binh := ctrl.CreateCustomer(ctx, fixtures.CustomerBinh).Data.(*model.Customer)
	ctrl.CreateCustomer(ctx, fixtures.CustomerNameOnly)

	for _, s := range fixtures.ValidAmounts {
		require.True(t, ctrl.AddLoan(ctx, an.ID, decimal.RequireFromString(s), "").Success)
	}
	require.True(t, ctrl.AddLoan(ctx, binh.ID, helpers.Amount(100000), "").Success)
	require.True(t, ctrl.AddPayment(ctx, binh.ID, helpers.Amount(30000), "").Success)

	res := ctrl.GetSummary(ctx)
	require.True(t, res.Success)
	summary := res.Data.(*model.LedgerSummary)
	assert.Equal(t, int64(3), summary.CustomerCount)
	assert.True(t, summary.TotalDebt.Equal(decimal.RequireFromString("1820001.5")), summary.TotalDebt.String())

	res = ctrl.GetCustomerBalances(ctx)
	require.True(t, res.Success)
	rows := res.Data.([]*model.CustomerBalance)
	require.Len(t, rows, 3)
	var total decimal.Decimal
	for _, r := range rows {
		total = total.Add(r.Balance)
	}
	assert.True(t, total.Equal(summary.TotalDebt))
}

func TestE2E_DeleteTransactionRestoresBalance(t *testing.T) {
	env := helpers.SetupLedger(t, "vi")
	ctx := context.Background()
	ctrl := env.Controller

	c := ctrl.CreateCustomer(ctx, fixtures.CustomerAn).Data.(*model.Customer)
	require.True(t, ctrl.AddLoan(ctx, c.ID, helpers.Amount(500000), "").Success)
	payment := ctrl.AddPayment(ctx, c.ID, helpers.Amount(200000), "").Data.(*model.Transaction)

	res := ctrl.DeleteTransaction(ctx, payment.ID)
	require.True(t, res.Success)
	assert.True(t, balanceOf(t, ctrl, c.ID).Equal(helpers.Amount(500000)))

	res = ctrl.DeleteTransaction(ctx, payment.ID)
	assert.Equal(t, controller.KindNotFound, res.Kind)
}

type httpEnv struct {
	handler xhttp.RequestHandler
}

func newHTTPEnv(t *testing.T) *httpEnv {
	env := helpers.SetupLedger(t, "en")
	r := xhttp.CreateDefaultRouter()
	g := r.Group("/api/v1")
	handlers.RegisterHealthRoutes(g, handlers.NewHealthHandler(env.DB))
	handlers.RegisterLedgerRoutes(g, handlers.NewLedgerHandler(env.Controller))
	return &httpEnv{handler: xhttp.RecoverMiddleware(r.Handler)}
}

func (e *httpEnv) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.SetBodyString(body)
	}
	// Init attaches a server so the request context can be cancelled.
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	e.handler(ctx)

	var out map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &out), string(ctx.Response.Body()))
	return ctx.Response.StatusCode(), out
}

func TestE2E_HTTPFlow(t *testing.T) {
	e := newHTTPEnv(t)

	status, body := e.do(t, "GET", "/api/v1/health", "")
	assert.Equal(t, fasthttp.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = e.do(t, "POST", "/api/v1/customers", `{"name":"An","phone":"0901"}`)
	require.Equal(t, fasthttp.StatusCreated, status)
	id := int64(body["data"].(map[string]any)["id"].(float64))

	status, _ = e.do(t, "POST", fmt.Sprintf("/api/v1/customers/%d/loans", id), `{"amount":500000,"note":"xe máy"}`)
	assert.Equal(t, fasthttp.StatusCreated, status)

	status, _ = e.do(t, "POST", fmt.Sprintf("/api/v1/customers/%d/payments", id), `{"amount":"200000"}`)
	assert.Equal(t, fasthttp.StatusCreated, status)

	status, body = e.do(t, "GET", fmt.Sprintf("/api/v1/customers/%d/balance", id), "")
	require.Equal(t, fasthttp.StatusOK, status)
	balance := decimal.RequireFromString(body["data"].(map[string]any)["balance"].(string))
	assert.True(t, balance.Equal(decimal.NewFromInt(300000)))

	status, body = e.do(t, "GET", fmt.Sprintf("/api/v1/customers/%d/transactions", id), "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Len(t, body["data"], 2)

	status, body = e.do(t, "POST", fmt.Sprintf("/api/v1/customers/%d/loans", id), `{"amount":-5}`)
	assert.Equal(t, fasthttp.StatusBadRequest, status)
	assert.Equal(t, "Loan amount must be greater than 0", body["message"])

	status, _ = e.do(t, "POST", "/api/v1/customers/999/loans", `{"amount":100}`)
	assert.Equal(t, fasthttp.StatusNotFound, status)

	status, _ = e.do(t, "DELETE", fmt.Sprintf("/api/v1/customers/%d", id), "")
	assert.Equal(t, fasthttp.StatusOK, status)

	status, _ = e.do(t, "GET", fmt.Sprintf("/api/v1/customers/%d/transactions", id), "")
	assert.Equal(t, fasthttp.StatusNotFound, status)

	status, body = e.do(t, "GET", "/api/v1/summary", "")
	require.Equal(t, fasthttp.StatusOK, status)
	summary := body["data"].(map[string]any)
	assert.Equal(t, float64(0), summary["customer_count"])
}
