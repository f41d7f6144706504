package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeInvalidAddress       = "INVALID_ADDRESS"
	ErrCodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
	ErrCodeProductUnavailable   = "PRODUCT_UNAVAILABLE"
	ErrCodeInsufficientStock    = "INSUFFICIENT_STOCK"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodePaymentRecorded      = "PAYMENT_ALREADY_RECORDED"
	ErrCodeTxConflict           = "TRANSACTION_CONFLICT"
	ErrCodeUndeliverableZip     = "UNDELIVERABLE_ZIP"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation carrying a stable error code.
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
	ErrInvalidQuantity        = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrProductUnavailable     = NewDomainError(ErrCodeProductUnavailable, "One or more products do not exist or are inactive")
	ErrOrderNotFound          = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrProductNotFound        = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrPaymentAlreadyRecorded = NewDomainError(ErrCodePaymentRecorded, "Payment outcome has already been recorded for this order")
	ErrTransactionConflict    = NewDomainError(ErrCodeTxConflict, "Order could not be placed due to concurrent checkout activity")
	ErrUndeliverableZip       = NewDomainError(ErrCodeUndeliverableZip, "Shipping address is outside the delivery area")
)

// InsufficientStockError reports a line whose requested quantity exceeds the
// available stock. Unlike the sentinel errors above it carries per-product
// detail, so callers can tell the customer exactly which product is short.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (%s): requested %d, available %d",
		e.ProductID, e.ProductName, e.Requested, e.Available)
}
