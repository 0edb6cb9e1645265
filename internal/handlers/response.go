package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/nimasrn/debt-ledger/internal/controller"
	xhttp "github.com/nimasrn/debt-ledger/pkg/http"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindAndValidate decodes the JSON body into dst and checks its struct tags.
func bindAndValidate(ctx *xhttp.RequestCtx, dst any) error {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, controller.Result{Success: false, Message: msg})
}

// writeResult renders a controller result with the status code of its kind.
func writeResult(ctx *xhttp.RequestCtx, res controller.Result, okStatus int) {
	writeJSON(ctx, statusFor(res, okStatus), res)
}

func statusFor(res controller.Result, okStatus int) int {
	switch res.Kind {
	case controller.KindOK:
		return okStatus
	case controller.KindValidation:
		return xhttp.StatusBadRequest
	case controller.KindNotFound:
		return xhttp.StatusNotFound
	default:
		return xhttp.StatusInternalServerError
	}
}

func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, _ := ctx.UserValue(name).(string)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return id, nil
}
