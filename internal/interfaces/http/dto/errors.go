package dto

import (
	"net/http"

	"github.com/tradekart/backend/internal/domain/shared"
)

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Category tree error codes
const (
	// ErrCodeHasChildren is used when deleting a category with children
	ErrCodeHasChildren = "ERR_HAS_CHILDREN"
	// ErrCodeHasProducts is used when deleting a category with products
	ErrCodeHasProducts = "ERR_HAS_PRODUCTS"
	// ErrCodeCircularReference is used when a reparent would form a cycle
	ErrCodeCircularReference = "ERR_CIRCULAR_REFERENCE"
	// ErrCodeDataIntegrity is used when stored data violates tree invariants
	ErrCodeDataIntegrity = "ERR_DATA_INTEGRITY"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeHasChildren:       http.StatusConflict,
	ErrCodeHasProducts:       http.StatusConflict,
	ErrCodeCircularReference: http.StatusConflict,
	ErrCodeDataIntegrity:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the wire format
var DomainErrorCodeMapping = map[string]string{
	shared.CodeNotFound:          ErrCodeNotFound,
	shared.CodeAlreadyExists:     ErrCodeAlreadyExists,
	shared.CodeValidation:        ErrCodeValidation,
	shared.CodeInvalidInput:      ErrCodeInvalidInput,
	shared.CodeHasChildren:       ErrCodeHasChildren,
	shared.CodeHasProducts:       ErrCodeHasProducts,
	shared.CodeCircularReference: ErrCodeCircularReference,
	shared.CodeDataIntegrity:     ErrCodeDataIntegrity,
}

// NormalizeErrorCode converts a domain error code to the wire format
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
