package controller

import (
	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Message keys double as the English text.
const (
	msgCustomerCreated        = "Customer created successfully"
	msgCustomerUpdated        = "Customer updated successfully"
	msgCustomerDeleted        = "Customer deleted successfully"
	msgCustomerNotFound       = "Customer not found"
	msgCustomerNotFoundWithID = "Customer not found with ID: %d"
	msgCustomerNameRequired   = "Customer name must not be empty"
	msgInvalidCustomerID      = "Invalid customer ID"
	msgLoanAdded              = "Loan recorded successfully"
	msgPaymentAdded           = "Payment recorded successfully"
	msgLoanAmountInvalid      = "Loan amount must be greater than 0"
	msgPaymentAmountInvalid   = "Payment amount must be greater than 0"
	msgAmountTooLarge         = "Amount must not exceed %s"
	msgAmountTooPrecise       = "Amount may have at most %d decimal places"
	msgInvalidInput           = "Invalid input"
	msgTransactionDeleted     = "Transaction deleted successfully"
	msgTransactionNotFound    = "Transaction not found"
	msgOperationFailed        = "Error: the operation could not be completed, see the log for details"
	msgOK                     = "OK"
)

var supportedLocales = []language.Tag{
	language.Vietnamese,
	language.English,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Vietnamese))
	set := func(key, vi string) {
		_ = b.SetString(language.Vietnamese, key, vi)
		_ = b.SetString(language.English, key, key)
	}

	set(msgCustomerCreated, "Tạo khách hàng thành công")
	set(msgCustomerUpdated, "Cập nhật khách hàng thành công")
	set(msgCustomerDeleted, "Xóa khách hàng thành công")
	set(msgCustomerNotFound, "Không tìm thấy khách hàng")
	set(msgCustomerNotFoundWithID, "Không tìm thấy khách hàng với ID: %d")
	set(msgCustomerNameRequired, "Tên khách hàng không được để trống")
	set(msgInvalidCustomerID, "ID khách hàng không hợp lệ")
	set(msgLoanAdded, "Đã thêm khoản cho vay thành công")
	set(msgPaymentAdded, "Đã thu nợ thành công")
	set(msgLoanAmountInvalid, "Số tiền cho vay phải lớn hơn 0")
	set(msgPaymentAmountInvalid, "Số tiền thu nợ phải lớn hơn 0")
	set(msgAmountTooLarge, "Số tiền không được vượt quá %s")
	set(msgAmountTooPrecise, "Số tiền chỉ được có tối đa %d chữ số thập phân")
	set(msgInvalidInput, "Dữ liệu không hợp lệ")
	set(msgTransactionDeleted, "Xóa giao dịch thành công")
	set(msgTransactionNotFound, "Không tìm thấy giao dịch")
	set(msgOperationFailed, "Lỗi: không thể thực hiện thao tác, vui lòng xem log để biết chi tiết")
	set(msgOK, "OK")
	return b
}

// NewPrinter returns a printer for the closest supported locale. Unknown or
// empty locales fall back to Vietnamese.
func NewPrinter(locale string) *message.Printer {
	tag := language.Vietnamese
	if locale != "" {
		_, index, confidence := localeMatcher.Match(language.Make(locale))
		if confidence != language.No {
			tag = supportedLocales[index]
		}
	}
	return message.NewPrinter(tag, message.Catalog(messages))
}

// FormatMoney renders an amount with the locale's digit grouping. Fraction
// digits are shown only when the amount has them.
func FormatMoney(p *message.Printer, amount decimal.Decimal) string {
	amount = amount.Round(model.AmountScale)
	if amount.Equal(amount.Truncate(0)) {
		return p.Sprint(number.Decimal(amount.IntPart(), number.MaxFractionDigits(0)))
	}
	f, _ := amount.Float64()
	return p.Sprint(number.Decimal(f, number.MinFractionDigits(model.AmountScale), number.MaxFractionDigits(model.AmountScale)))
}
