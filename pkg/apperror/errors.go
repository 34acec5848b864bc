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
	Err        error  `json:"-"` // internal cause, never sent to clients
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

// As extracts an *AppError from err, converting anything else into an
// internal error.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ---- Validation (VAL) ----

func ErrInvalidAmount(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// Validation returns a VAL_002 validation error.
func Validation(message string) *AppError {
	return New("VAL_002", message, http.StatusBadRequest)
}

func ErrBodyTooLarge() *AppError {
	return New("VAL_003", "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- Wallet (WAL) ----

func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found. Please create a wallet first.", http.StatusNotFound)
}

func ErrWalletExists() *AppError {
	return New("WAL_002", "Wallet already exists for this owner", http.StatusConflict)
}

// ---- Transaction (TXN) ----

func ErrTransactionNotFound() *AppError {
	return New("TXN_001", "No transactions found for this reference", http.StatusNotFound)
}

// ---- Balance (BAL) ----

func ErrInsufficientBalance() *AppError {
	return New("BAL_001", "Insufficient balance", http.StatusPaymentRequired)
}

// ---- External ledger (EXT) ----

func ErrLedgerUnavailable(err error) *AppError {
	return Wrap("EXT_001", "External ledger unavailable", http.StatusServiceUnavailable, err)
}

// ---- Custody (CUS) ----

func ErrCustodyFailure(err error) *AppError {
	return Wrap("CUS_001", "Key custody failure", http.StatusInternalServerError, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrRequestCanceled(err error) *AppError {
	return Wrap("SYS_002", "Request canceled", http.StatusRequestTimeout, err)
}
