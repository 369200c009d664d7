package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a billing failure independently of its transport status.
type Kind string

const (
	KindCatalogUnavailable Kind = "catalog_unavailable"
	KindProductNotFound    Kind = "product_not_found"
	KindInvalidQuantity    Kind = "invalid_quantity"
	KindInsufficientStock  Kind = "insufficient_stock"
	KindInvalidDiscount    Kind = "invalid_discount"
	KindEmptyCart          Kind = "empty_cart"
	KindLogAppendFailed    Kind = "log_append_failed"
	KindBadRequest         Kind = "bad_request"
	KindInternal           Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int                    `json:"code"`
	Kind    Kind                   `json:"kind"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches another AppError of the same kind, so sentinels work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t.Kind == "" {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels, one per kind. Compare with errors.Is; never mutate.
var (
	ErrCatalogUnavailable = &AppError{Code: http.StatusServiceUnavailable, Kind: KindCatalogUnavailable, Message: "Catalog source unavailable"}
	ErrProductNotFound    = &AppError{Code: http.StatusNotFound, Kind: KindProductNotFound, Message: "Product not found"}
	ErrInvalidQuantity    = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidQuantity, Message: "Quantity must be greater than 0"}
	ErrInsufficientStock  = &AppError{Code: http.StatusConflict, Kind: KindInsufficientStock, Message: "Insufficient stock"}
	ErrInvalidDiscount    = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidDiscount, Message: "Discount must not be negative"}
	ErrEmptyCart          = &AppError{Code: http.StatusConflict, Kind: KindEmptyCart, Message: "No items in bill"}
	ErrLogAppendFailed    = &AppError{Code: http.StatusInternalServerError, Kind: KindLogAppendFailed, Message: "Failed to append sale record"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewProductNotFoundError names the missing product.
func NewProductNotFoundError(name string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindProductNotFound,
		Message: fmt.Sprintf("Product %q not found", name),
		Details: map[string]interface{}{"product": name},
	}
}

// NewInsufficientStockError reports the stock that is actually available.
func NewInsufficientStockError(name string, available int) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock. Available: %d", available),
		Details: map[string]interface{}{"product": name, "available": available},
	}
}

// NewCatalogUnavailableError wraps the reason the catalog source could not be read.
func NewCatalogUnavailableError(source string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindCatalogUnavailable,
		Message: fmt.Sprintf("Catalog source %s unavailable", source),
		Details: map[string]interface{}{"source": source},
		cause:   cause,
	}
}

// NewLogAppendFailedError wraps a sale-log write failure.
func NewLogAppendFailedError(billNumber int, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindLogAppendFailed,
		Message: fmt.Sprintf("Failed to append sale record for bill #%d", billNumber),
		Details: map[string]interface{}{"bill_number": billNumber},
		cause:   cause,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}

// KindOf returns the kind of err, or "" when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
