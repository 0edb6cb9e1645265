package controller

type Kind int

const (
	KindOK Kind = iota
	KindValidation
	KindNotFound
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Result is the uniform outcome of every controller operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Kind    Kind   `json:"-"`
}

func ok(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data, Kind: KindOK}
}

func fail(kind Kind, message string) Result {
	return Result{Success: false, Message: message, Kind: kind}
}
