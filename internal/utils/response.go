package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCode is the machine-readable classification returned to API callers.
type ErrorCode string

const (
	CodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"
	CodeBadRequest        ErrorCode = "BAD_REQUEST"
	CodeInvalidJSON       ErrorCode = "INVALID_JSON"
	CodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	CodeMissingField      ErrorCode = "MISSING_FIELD"
	CodeInvalidFieldType  ErrorCode = "INVALID_FIELD_TYPE"
	CodeInvalidFieldValue ErrorCode = "INVALID_FIELD_VALUE"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

type codeInfo struct {
	status  int
	message string
}

var codeTable = map[ErrorCode]codeInfo{
	CodeMethodNotAllowed:  {http.StatusMethodNotAllowed, "Method Not Allowed"},
	CodeBadRequest:        {http.StatusBadRequest, "Bad Request"},
	CodeInvalidJSON:       {http.StatusBadRequest, "Invalid JSON format"},
	CodeInvalidRequest:    {http.StatusBadRequest, "Invalid request body"},
	CodeMissingField:      {http.StatusBadRequest, "Missing required field"},
	CodeInvalidFieldType:  {http.StatusBadRequest, "Invalid field type"},
	CodeInvalidFieldValue: {http.StatusBadRequest, "Invalid field value"},
	CodeNotFound:          {http.StatusNotFound, "Not Found"},
	CodeInternalError:     {http.StatusInternalServerError, "An unexpected error occurred."},
}

// StatusFor returns the HTTP status a code is reported with.
// Codes outside the taxonomy are treated as internal errors.
func StatusFor(code ErrorCode) int {
	if info, ok := codeTable[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// MessageFor returns the default human-readable message for a code.
func MessageFor(code ErrorCode) string {
	if info, ok := codeTable[code]; ok {
		return info.message
	}
	return codeTable[CodeInternalError].message
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string    `json:"error"`
	Code    ErrorCode `json:"code"`
	Details string    `json:"details,omitempty"`
}

// NewErrorResponse builds an envelope with the default message for code.
func NewErrorResponse(code ErrorCode, details string) ErrorResponse {
	return ErrorResponse{
		Error:   MessageFor(code),
		Code:    code,
		Details: details,
	}
}

// AbortWithError writes the envelope for code and stops the handler chain.
// Internal errors never carry details to the caller.
func AbortWithError(c *gin.Context, code ErrorCode, message, details string) {
	resp := NewErrorResponse(code, details)
	if message != "" {
		resp.Error = message
	}
	if code == CodeInternalError {
		resp.Error = MessageFor(CodeInternalError)
		resp.Details = ""
	}
	c.AbortWithStatusJSON(StatusFor(code), resp)
}
