package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nimasrn/debt-ledger/internal/controller"
	"github.com/nimasrn/debt-ledger/internal/model"
	xhttp "github.com/nimasrn/debt-ledger/pkg/http"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockLedgerController struct {
	mock.Mock
}

func (m *MockLedgerController) CreateCustomer(ctx context.Context, in model.CustomerInput) controller.Result {
	return m.Called(ctx, in).Get(0).(controller.Result)
}

func (m *MockLedgerController) UpdateCustomer(ctx context.Context, id int64, in model.CustomerInput) controller.Result {
	return m.Called(ctx, id, in).Get(0).(controller.Result)
}

func (m *MockLedgerController) DeleteCustomer(ctx context.Context, id int64) controller.Result {
	return m.Called(ctx, id).Get(0).(controller.Result)
}

func (m *MockLedgerController) GetCustomer(ctx context.Context, id int64) controller.Result {
	return m.Called(ctx, id).Get(0).(controller.Result)
}

func (m *MockLedgerController) GetCustomerBalances(ctx context.Context) controller.Result {
	return m.Called(ctx).Get(0).(controller.Result)
}

func (m *MockLedgerController) AddLoan(ctx context.Context, customerID int64, amount decimal.Decimal, note string) controller.Result {
	return m.Called(ctx, customerID, amount, note).Get(0).(controller.Result)
}

func (m *MockLedgerController) AddPayment(ctx context.Context, customerID int64, amount decimal.Decimal, note string) controller.Result {
	return m.Called(ctx, customerID, amount, note).Get(0).(controller.Result)
}

func (m *MockLedgerController) GetCustomerDebt(ctx context.Context, customerID int64) controller.Result {
	return m.Called(ctx, customerID).Get(0).(controller.Result)
}

func (m *MockLedgerController) GetCustomerHistory(ctx context.Context, customerID int64) controller.Result {
	return m.Called(ctx, customerID).Get(0).(controller.Result)
}

func (m *MockLedgerController) DeleteTransaction(ctx context.Context, id int64) controller.Result {
	return m.Called(ctx, id).Get(0).(controller.Result)
}

func (m *MockLedgerController) GetSummary(ctx context.Context) controller.Result {
	return m.Called(ctx).Get(0).(controller.Result)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

// serve dispatches the request through the registered routes.
func serve(h *LedgerHandler, ctx *xhttp.RequestCtx) {
	r := xhttp.CreateDefaultRouter()
	RegisterLedgerRoutes(r.Group("/api/v1"), h)
	r.Handler(ctx)
}

func decodeResult(t *testing.T, ctx *xhttp.RequestCtx) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	return body
}

func TestLedgerHandler_CreateCustomer(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := new(MockLedgerController)
		h := NewLedgerHandler(ctrl)

		ctrl.On("CreateCustomer", mock.Anything, model.CustomerInput{Name: "Nguyen Van A", Phone: "0901"}).
			Return(controller.Result{Success: true, Message: "Tạo khách hàng thành công", Data: &model.Customer{ID: 1}, Kind: controller.KindOK})

		ctx := setupTestContext("POST", "/api/v1/customers", []byte(`{"name":"Nguyen Van A","phone":"0901"}`))
		serve(h, ctx)

		assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
		body := decodeResult(t, ctx)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Tạo khách hàng thành công", body["message"])
		ctrl.AssertExpectations(t)
	})

	t.Run("validation failure from controller", func(t *testing.T) {
		ctrl := new(MockLedgerController)
		h := NewLedgerHandler(ctrl)

		ctrl.On("CreateCustomer", mock.Anything, mock.Anything).
			Return(controller.Result{Message: "Tên khách hàng không được để trống", Kind: controller.KindValidation})

		ctx := setupTestContext("POST", "/api/v1/customers", []byte(`{"name":"  "}`))
		serve(h, ctx)

		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
		assert.Equal(t, false, decodeResult(t, ctx)["success"])
	})

	t.Run("malformed JSON", func(t *testing.T) {
		ctrl := new(MockLedgerController)
		h := NewLedgerHandler(ctrl)

		ctx := setupTestContext("POST", "/api/v1/customers", []byte(`{"name":`))
		serve(h, ctx)

		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
		ctrl.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})
}

func TestLedgerHandler_AddLoan(t *testing.T) {
	t.Run("numeric amount", func(t *testing.T) {
		ctrl := new(MockLedgerController)
		h := NewLedgerHandler(ctrl)

		ctrl.On("AddLoan", mock.Anything, int64(1), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(500000))
		}), "rice").Return(controller.Result{Success: true, Kind: controller.KindOK})

		ctx := setupTestContext("POST", "/api/v1/customers/1/loans", []byte(`{"amount":500000,"note":"rice"}`))
		serve(h, ctx)

		assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
		ctrl.AssertExpectations(t)
	})

	t.Run("string amount", func(t *testing.T) {
		ctrl := new(MockLedgerController)
		h := NewLedgerHandler(ctrl)

		ctrl.On("AddPayment", mock.Anything, int64(2), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("150000.5"))
		}), "").Return(controller.Result{Success: true, Kind: controller.KindOK})

		ctx := setupTestContext("POST", "/api/v1/customers/2/payments", []byte(`{"amount":"150000.5"}`))
		serve(h, ctx)

		assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	})

	t.Run("missing amount", func(t *testing.T) {
		ctrl := new(MockLedgerController)
		h := NewLedgerHandler(ctrl)

		ctx := setupTestContext("POST", "/api/v1/customers/1/loans", []byte(`{"note":"x"}`))
		serve(h, ctx)

		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
		ctrl.AssertNotCalled(t, "AddLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("customer not found", func(t *testing.T) {
		ctrl := new(MockLedgerController)
		h := NewLedgerHandler(ctrl)

		ctrl.On("AddLoan", mock.Anything, int64(999), mock.Anything, "").
			Return(controller.Result{Message: "Không tìm thấy khách hàng với ID: 999", Kind: controller.KindNotFound})

		ctx := setupTestContext("POST", "/api/v1/customers/999/loans", []byte(`{"amount":10}`))
		serve(h, ctx)

		assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	})

	t.Run("bad path id", func(t *testing.T) {
		ctrl := new(MockLedgerController)
		h := NewLedgerHandler(ctrl)

		ctx := setupTestContext("POST", "/api/v1/customers/abc/loans", []byte(`{"amount":10}`))
		serve(h, ctx)

		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	})
}

func TestLedgerHandler_GetBalance(t *testing.T) {
	ctrl := new(MockLedgerController)
	h := NewLedgerHandler(ctrl)

	ctrl.On("GetCustomerDebt", mock.Anything, int64(3)).
		Return(controller.Result{Success: true, Message: "OK", Data: decimal.NewFromInt(300000), Kind: controller.KindOK})

	ctx := setupTestContext("GET", "/api/v1/customers/3/balance", nil)
	serve(h, ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	data := decodeResult(t, ctx)["data"].(map[string]any)
	assert.Equal(t, float64(3), data["customer_id"])
	assert.Equal(t, "300000", data["balance"])
}

func TestLedgerHandler_UpdateAndDelete(t *testing.T) {
	ctrl := new(MockLedgerController)
	h := NewLedgerHandler(ctrl)

	ctrl.On("UpdateCustomer", mock.Anything, int64(5), model.CustomerInput{Name: "B"}).
		Return(controller.Result{Message: "Không tìm thấy khách hàng", Kind: controller.KindNotFound})
	ctrl.On("DeleteCustomer", mock.Anything, int64(5)).
		Return(controller.Result{Success: true, Kind: controller.KindOK})
	ctrl.On("DeleteTransaction", mock.Anything, int64(9)).
		Return(controller.Result{Kind: controller.KindUnexpected, Message: "Lỗi"})

	ctx := setupTestContext("PUT", "/api/v1/customers/5", []byte(`{"name":"B"}`))
	serve(h, ctx)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())

	ctx = setupTestContext("DELETE", "/api/v1/customers/5", nil)
	serve(h, ctx)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	ctx = setupTestContext("DELETE", "/api/v1/transactions/9", nil)
	serve(h, ctx)
	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
}

func TestLedgerHandler_Queries(t *testing.T) {
	ctrl := new(MockLedgerController)
	h := NewLedgerHandler(ctrl)

	ctrl.On("GetSummary", mock.Anything).Return(controller.Result{Success: true, Kind: controller.KindOK,
		Data: &model.LedgerSummary{CustomerCount: 2, TotalDebt: decimal.NewFromInt(250000)}})
	ctrl.On("GetCustomerBalances", mock.Anything).Return(controller.Result{Success: true, Kind: controller.KindOK,
		Data: []*model.CustomerBalance{}})
	ctrl.On("GetCustomer", mock.Anything, int64(1)).Return(controller.Result{Success: true, Kind: controller.KindOK})
	ctrl.On("GetCustomerHistory", mock.Anything, int64(1)).Return(controller.Result{Success: true, Kind: controller.KindOK})

	for _, path := range []string{
		"/api/v1/summary",
		"/api/v1/customers",
		"/api/v1/customers/1",
		"/api/v1/customers/1/transactions",
	} {
		ctx := setupTestContext("GET", path, nil)
		serve(h, ctx)
		assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), path)
	}

	ctx := setupTestContext("GET", "/api/v1/summary", nil)
	serve(h, ctx)
	data := decodeResult(t, ctx)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["customer_count"])
	assert.Equal(t, "250000", data["total_debt"])
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		checker := new(MockHealthChecker)
		checker.On("Ping", mock.Anything).Return(nil)

		ctx := setupTestContext("GET", "/api/v1/health", nil)
		NewHealthHandler(checker).GetHealth(ctx)

		assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
	})

	t.Run("database unavailable", func(t *testing.T) {
		checker := new(MockHealthChecker)
		checker.On("Ping", mock.Anything).Return(errors.New("database is closed"))

		ctx := setupTestContext("GET", "/api/v1/health", nil)
		NewHealthHandler(checker).GetHealth(ctx)

		assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	})
}
