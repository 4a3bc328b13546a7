package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstats/internal/shared/testutil"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewValidationError("missing required columns"),
			expected: "[VALIDATION] missing required columns",
		},
		{
			name:     "with cause",
			err:      NewParsingError("cannot open workbook", errors.New("zip: not a valid zip file")),
			expected: "[PARSING] cannot open workbook: zip: not a valid zip file",
		},
		{
			name:     "not found",
			err:      NewNotFoundError("report"),
			expected: "[NOT_FOUND] report not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("failed to write report", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewValidationError("column collision").
		WithContext("column", "Date").
		WithContext("sources", []string{"Report date", " REPORT DATE "})

	assert.Equal(t, "Date", err.Context["column"])
	assert.Len(t, err.Context["sources"], 2)
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{name: "direct app error", err: NewConfigError("bad port", nil), expected: ErrTypeConfig},
		{name: "wrapped app error", err: fmt.Errorf("run failed: %w", NewParsingError("bad cell", nil)), expected: ErrTypeParsing},
		{name: "plain error", err: errors.New("boom"), expected: ""},
		{name: "nil", err: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeOf(tt.err))
		})
	}
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewValidationError("inner"))

	assert.True(t, IsType(err, ErrTypeValidation))
	assert.False(t, IsType(err, ErrTypeStorage))
}

func newTestHandler(t *testing.T) *ErrorHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewErrorHandler(logger, false)
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "validation error",
			err:            NewValidationError("missing required columns: Country"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedType:   TypeValidation,
		},
		{
			name:           "parsing error",
			err:            NewParsingError("cannot open workbook", errors.New("corrupt")),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedType:   TypeUnreadable,
		},
		{
			name:           "not found",
			err:            NewNotFoundError("report"),
			expectedStatus: http.StatusNotFound,
			expectedType:   TypeNotFound,
		},
		{
			name:           "storage error",
			err:            NewStorageError("write failed", errors.New("denied")),
			expectedStatus: http.StatusInternalServerError,
			expectedType:   TypeWriteFailed,
		},
		{
			name:           "deadline exceeded",
			err:            context.DeadlineExceeded,
			expectedStatus: http.StatusGatewayTimeout,
			expectedType:   TypeTimeout,
		},
		{
			name:           "plain error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
			problem := handler.ErrorToProblem(tt.err, r)

			assert.Equal(t, tt.expectedStatus, problem.Status)
			assert.Equal(t, tt.expectedType, problem.Type)
			assert.Equal(t, "/api/reports", problem.Instance)
		})
	}
}

func TestErrorHandler_ErrorToProblem_CarriesContext(t *testing.T) {
	handler := newTestHandler(t)
	err := NewValidationError("missing required columns: Date").
		WithContext("missing", []string{"Date"}).
		WithContext("available", []string{"Country", "Sessions"})

	r := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	problem := handler.ErrorToProblem(err, r)

	assert.Equal(t, []string{"Date"}, problem.Extensions["missing"])
	assert.Equal(t, string(ErrTypeValidation), problem.Extensions["error_type"])
}

func TestErrorHandler_HandleError(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/reports/missing.txt", nil)
	handler.HandleError(w, r, NewNotFoundError("report missing.txt"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/errors/not-found")
	assert.Contains(t, w.Body.String(), "report missing.txt not found")
}

func TestErrorHandler_HandleError_LogsRequestContext(t *testing.T) {
	logger, captured := testutil.NewCaptureLogger()
	handler := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	handler.HandleError(w, r, NewStorageError("failed to write report", errors.New("denied")))

	rec, ok := captured.Find("request failed")
	require.True(t, ok)
	assert.Equal(t, "error_handler", rec.Attrs["component"])
	assert.Equal(t, http.MethodPost, rec.Attrs["method"])
	assert.Equal(t, "/api/reports", rec.Attrs["path"])
	assert.Contains(t, rec.Attrs["error"], "failed to write report")
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.NotFound(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/errors/not-found")

	w = httptest.NewRecorder()
	handler.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/reports", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "Method DELETE is not allowed")
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(422, TypeValidation, "Validation Failed", "bad input", "/api/reports").
		WithExtension("missing", []string{"Date"})

	data, err := problem.MarshalJSON()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"status":422`)
	assert.Contains(t, string(data), `"missing":["Date"]`)
}
