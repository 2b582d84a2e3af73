package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
	Transient  bool   `json:"-"` // Retryable store-level fault
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// IsTransient reports whether err is a retryable store-level fault.
// Business-rule violations are never transient.
func IsTransient(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Transient
	}
	return false
}

// ---- Ledger Business Logic (LED) ----

func ErrInsufficientFunds() *AppError {
	return New("LED_001", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("LED_002", "Invalid amount", http.StatusBadRequest)
}

func ErrWalletBlocked() *AppError {
	return New("LED_003", "Wallet is blocked", http.StatusForbidden)
}

func ErrNotFound(entity string) *AppError {
	return New("LED_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrFeeExceedsAmount() *AppError {
	return New("LED_005", "Fee exceeds gross amount", http.StatusUnprocessableEntity)
}

func ErrDuplicateTransfer() *AppError {
	return New("LED_006", "Duplicate transfer reference", http.StatusConflict)
}

func ErrSelfTransfer() *AppError {
	return New("LED_007", "Sender and receiver wallets are the same", http.StatusBadRequest)
}

// ---- Identifier Allocation (ID) ----

func ErrCollisionExhausted(attempts int) *AppError {
	return New("ID_001", fmt.Sprintf("Identifier allocation budget exhausted after %d attempts", attempts), http.StatusConflict)
}

func ErrInvalidIdentifier() *AppError {
	return New("ID_002", "Malformed public identifier", http.StatusBadRequest)
}

// ---- Currency Exchange (FX) ----

func ErrRateNotFound(from, to string) *AppError {
	return New("FX_001", fmt.Sprintf("No active exchange rate for %s/%s", from, to), http.StatusNotFound)
}

// ---- System & Infrastructure (SYS) ----

// ErrTransientStore wraps a retryable store fault (timeout, deadlock,
// serialization failure).
func ErrTransientStore(err error) *AppError {
	e := Wrap("SYS_002", "Transient datastore error", http.StatusServiceUnavailable, err)
	e.Transient = true
	return e
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("LED_002", message, http.StatusBadRequest)
}
