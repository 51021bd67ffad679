package usecase

// Error codes surfaced to the HTTP layer.
const (
	CodeOrderNotFound        = "ORDER_NOT_FOUND"
	CodePhoneMismatch        = "PHONE_MISMATCH"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeGatewayNotConfigured = "GATEWAY_NOT_CONFIGURED"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func ErrOrderNotFound() *DomainError {
	return &DomainError{Code: CodeOrderNotFound, Message: "Order not found in database"}
}

func ErrPhoneMismatch() *DomainError {
	return &DomainError{Code: CodePhoneMismatch, Message: "Phone number does not match this order"}
}
