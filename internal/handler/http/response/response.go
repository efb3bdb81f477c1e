package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
	Messages []string          `json:"messages,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// File streams a binary attachment.
func File(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Error responses

// Fail writes an error envelope. data, when not nil, carries the page view
// as it stood after the failed action.
func Fail(w http.ResponseWriter, statusCode int, detail ErrorDetail, data interface{}) {
	writeJSON(w, statusCode, Response{
		Success: false,
		Message: detail.Message,
		Data:    data,
		Error:   &detail,
	})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Fail(w, http.StatusBadRequest, ErrorDetail{
		Code:    "BAD_REQUEST",
		Message: message,
		Details: details,
	}, nil)
}

func ValidationError(w http.ResponseWriter, details map[string]string, messages []string, data interface{}) {
	Fail(w, http.StatusUnprocessableEntity, ErrorDetail{
		Code:     "VALIDATION_ERROR",
		Message:  "Validation failed",
		Details:  details,
		Messages: messages,
	}, data)
}

func NotFound(w http.ResponseWriter, message string, data interface{}) {
	Fail(w, http.StatusNotFound, ErrorDetail{
		Code:    "NOT_FOUND",
		Message: message,
	}, data)
}

func Conflict(w http.ResponseWriter, message string, data interface{}) {
	Fail(w, http.StatusConflict, ErrorDetail{
		Code:    "CONFLICT",
		Message: message,
	}, data)
}

func BadGateway(w http.ResponseWriter, message string, data interface{}) {
	Fail(w, http.StatusBadGateway, ErrorDetail{
		Code:    "BAD_GATEWAY",
		Message: message,
	}, data)
}

func InternalServerError(w http.ResponseWriter, message string, data interface{}) {
	Fail(w, http.StatusInternalServerError, ErrorDetail{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: message,
	}, data)
}
