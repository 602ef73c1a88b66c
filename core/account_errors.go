package core

import (
	"fmt"
	"net/http"
)

type AccountErrorType string

const (
	// Account creation errors
	ErrKeyAccountCreationFailed AccountErrorType = "ErrAccountCreationFailed"
	ErrKeyEmailAlreadyExists    AccountErrorType = "ErrEmailAlreadyExists"
	ErrKeyPasswordHashingFailed AccountErrorType = "ErrPasswordHashingFailed"

	// Account lookup errors
	ErrKeyUserNotFound      AccountErrorType = "ErrUserNotFound"
	ErrKeyAssistantNotFound AccountErrorType = "ErrAssistantNotFound"

	// Authentication and login errors
	ErrKeyInvalidLogin       AccountErrorType = "ErrInvalidLogin"
	ErrKeyInvalidOTPCode     AccountErrorType = "ErrInvalidOTPCode"
	ErrKeyAccountNotVerified AccountErrorType = "ErrAccountNotVerified"
	ErrKeyLoginFailed        AccountErrorType = "ErrLoginFailed"

	// Request validation errors
	ErrKeyInvalidObjectID AccountErrorType = "ErrInvalidObjectID"
	ErrKeyInvalidRequest  AccountErrorType = "ErrInvalidRequest"

	// JWT generation errors
	ErrKeyJWTGenerationFailed AccountErrorType = "ErrJWTGenerationFailed"

	// Mail delivery errors
	ErrKeyMailDeliveryFailed AccountErrorType = "ErrMailDeliveryFailed"

	// General errors
	ErrKeyDatabaseOperationFailed AccountErrorType = "ErrDatabaseOperationFailed"
)

var defaultErrorMessages = map[AccountErrorType]string{
	ErrKeyAccountCreationFailed: "Account creation failed due to an internal error.",
	ErrKeyEmailAlreadyExists:    "Email already in use",
	ErrKeyPasswordHashingFailed: "Failed to secure the password, please try again later.",

	ErrKeyUserNotFound:      "User not found",
	ErrKeyAssistantNotFound: "AI assistant not found",

	ErrKeyInvalidLogin:       "Invalid email or password",
	ErrKeyInvalidOTPCode:     "Invalid OTP",
	ErrKeyAccountNotVerified: "Please verify your email first.",
	ErrKeyLoginFailed:        "Login failed due to an internal error.",

	ErrKeyInvalidObjectID: "Invalid identifier format",
	ErrKeyInvalidRequest:  "Invalid request",

	ErrKeyJWTGenerationFailed: "Failed to generate a session token.",

	ErrKeyMailDeliveryFailed: "Failed to send email after multiple attempts.",

	ErrKeyDatabaseOperationFailed: "A database operation failed.",
}

var ErrorCodeToHttpStatus = map[AccountErrorType]int{
	ErrKeyAccountCreationFailed: http.StatusInternalServerError,
	ErrKeyEmailAlreadyExists:    http.StatusConflict,
	ErrKeyPasswordHashingFailed: http.StatusInternalServerError,

	ErrKeyUserNotFound:      http.StatusNotFound,
	ErrKeyAssistantNotFound: http.StatusNotFound,

	ErrKeyInvalidLogin:       http.StatusUnauthorized,
	ErrKeyInvalidOTPCode:     http.StatusBadRequest,
	ErrKeyAccountNotVerified: http.StatusForbidden,
	ErrKeyLoginFailed:        http.StatusInternalServerError,

	ErrKeyInvalidObjectID: http.StatusBadRequest,
	ErrKeyInvalidRequest:  http.StatusBadRequest,

	ErrKeyJWTGenerationFailed: http.StatusInternalServerError,

	ErrKeyMailDeliveryFailed: http.StatusInternalServerError,

	ErrKeyDatabaseOperationFailed: http.StatusInternalServerError,
}

type AccountError struct {
	Key     AccountErrorType // A unique identifier for the error type
	Message string           // Human-readable error message
	Err     error            // Underlying error, if any
}

func (e *AccountError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

func (e *AccountError) IsErrorType(key AccountErrorType) bool {
	return e.Key == key
}

func (e *AccountError) HttpStatus() int {
	if status, exists := ErrorCodeToHttpStatus[e.Key]; exists {
		return status
	}
	return http.StatusInternalServerError
}

func NewAccountError(key AccountErrorType, err error, customMessage ...string) *AccountError {
	message, exists := defaultErrorMessages[key]
	if !exists {
		message = "An unknown error occurred"
	}
	if len(customMessage) > 0 {
		message = customMessage[0]
	}
	return &AccountError{
		Key:     key,
		Message: message,
		Err:     err,
	}
}

func IsAccountError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*AccountError)

	return ok
}

func AsAccountError(err error) *AccountError {
	if err == nil {
		return nil
	}
	if e, ok := err.(*AccountError); ok {
		return e
	}
	return nil
}
