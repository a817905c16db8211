package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidType       ErrorCode = "INVALID_TYPE"
	ErrCodeInvalidDate       ErrorCode = "INVALID_DATE"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	ErrCodeAssetNotFound      ErrorCode = "ASSET_NOT_FOUND"
	ErrCodeStaffNotFound      ErrorCode = "STAFF_NOT_FOUND"
	ErrCodeAssignmentNotFound ErrorCode = "ASSIGNMENT_NOT_FOUND"
	ErrCodeAccessoryNotFound  ErrorCode = "ACCESSORY_NOT_FOUND"
	ErrCodeCameraNotFound     ErrorCode = "CAMERA_NOT_FOUND"
	ErrCodePremiseNotFound    ErrorCode = "PREMISE_NOT_FOUND"
	ErrCodeFloorNotFound      ErrorCode = "FLOOR_NOT_FOUND"

	ErrCodeAssetAlreadyIssued     ErrorCode = "ASSET_ALREADY_ISSUED"
	ErrCodeAccessoryNotAvailable  ErrorCode = "ACCESSORY_NOT_AVAILABLE"
	ErrCodeAccessoryNotInstalled  ErrorCode = "ACCESSORY_NOT_INSTALLED"
	ErrCodeCameraNotInStock       ErrorCode = "CAMERA_NOT_IN_STOCK"
	ErrCodeDuplicateSerialNumber  ErrorCode = "DUPLICATE_SERIAL_NUMBER"
	ErrCodeDuplicateEmployeeID    ErrorCode = "DUPLICATE_EMPLOYEE_ID"
	ErrCodeDuplicateName          ErrorCode = "DUPLICATE_NAME"
	ErrCodeReplacementSameCamera  ErrorCode = "REPLACEMENT_SAME_CAMERA"
	ErrCodeAccessoryHostMismatch  ErrorCode = "ACCESSORY_HOST_MISMATCH"
	ErrCodeReferencedEntityExists ErrorCode = "REFERENCED_ENTITY_EXISTS"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Type and Code so that sentinel errors survive WithCause copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithCause returns a copy of e carrying cause. Sentinels are never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	ErrAssetNotFound      = NewNotFoundError("Asset not found", ErrCodeAssetNotFound)
	ErrStaffNotFound      = NewNotFoundError("Staff member not found", ErrCodeStaffNotFound)
	ErrAssignmentNotFound = NewNotFoundError("Assignment not found", ErrCodeAssignmentNotFound)
	ErrAccessoryNotFound  = NewNotFoundError("Accessory not found", ErrCodeAccessoryNotFound)
	ErrCameraNotFound     = NewNotFoundError("Camera not found", ErrCodeCameraNotFound)
	ErrPremiseNotFound    = NewNotFoundError("Premise not found", ErrCodePremiseNotFound)
	ErrFloorNotFound      = NewNotFoundError("Floor not found", ErrCodeFloorNotFound)

	ErrAssetAlreadyIssued    = NewConflictError("Asset already has an open assignment", ErrCodeAssetAlreadyIssued)
	ErrAccessoryNotAvailable = NewConflictError("Accessory is not available for installation", ErrCodeAccessoryNotAvailable)
	ErrAccessoryNotInstalled = NewConflictError("Accessory is not installed", ErrCodeAccessoryNotInstalled)
	ErrAccessoryHostMismatch = NewConflictError("Accessory is installed in a different asset", ErrCodeAccessoryHostMismatch)
	ErrCameraNotInStock      = NewConflictError("Replacement camera is not in stock", ErrCodeCameraNotInStock)
	ErrReplacementSameCamera = NewValidationError("Replacement camera must differ from the removed camera", ErrCodeReplacementSameCamera)
	ErrInvalidTransition     = NewValidationError("Assets can only become Issued through the issue operation", ErrCodeInvalidTransition)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
