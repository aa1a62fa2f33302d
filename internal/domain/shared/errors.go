package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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

// Domain error codes
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeHasChildren       = "HAS_CHILDREN"
	CodeHasProducts       = "HAS_PRODUCTS"
	CodeCircularReference = "CIRCULAR_REFERENCE"
	CodeDataIntegrity     = "DATA_INTEGRITY"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
)

// hasCode reports whether err is a DomainError carrying the given code.
func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsNotFound reports whether err represents a missing resource
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsConflict reports whether err represents a state conflict
// (duplicate name or slug, existing children, attached products)
func IsConflict(err error) bool {
	return hasCode(err, CodeAlreadyExists) || hasCode(err, CodeHasChildren) || hasCode(err, CodeHasProducts)
}

// IsValidation reports whether err represents malformed input
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation) || hasCode(err, CodeInvalidInput)
}

// IsCycle reports whether err represents a rejected circular reference
func IsCycle(err error) bool {
	return hasCode(err, CodeCircularReference)
}
