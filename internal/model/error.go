package model

// Standard error codes for API responses
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeIOFailure     = "IO_FAILURE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// DomainError is a typed business-rule failure. The HTTP boundary maps the
// code to a status; the message is returned to the client verbatim.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrUserNotFound       = NewDomainError(ErrCodeNotFound, "User not found")
	ErrAddressNotFound    = NewDomainError(ErrCodeNotFound, "Address not found")
	ErrInvalidCoupon      = NewDomainError(ErrCodeNotFound, "Invalid Coupon")
	ErrCouponExpired      = NewDomainError(ErrCodeConflict, "Coupon expired or inactive")
	ErrEmailExists        = NewDomainError(ErrCodeConflict, "Email already exists")
	ErrAddressNotOwned    = NewDomainError(ErrCodeForbidden, "Address does not belong to user")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorised, "Invalid credentials")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidInput, "Quantity must be greater than zero")
	ErrOrderTokenTaken    = NewDomainError(ErrCodeConflict, "Order token already in use")
)

// NewInsufficientStockError reports a line item asking for more units than
// the product has left.
func NewInsufficientStockError(title string) *DomainError {
	return NewDomainError(ErrCodeConflict, "Insufficient stock for product: "+title)
}
