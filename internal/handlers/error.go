package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memohai/ssmcontacts/internal/contacts"
	"github.com/memohai/ssmcontacts/internal/metrics"
)

const amzJSONContentType = "application/x-amz-json-1.1"

// Error codes produced by the adapter itself rather than the backend.
const (
	codeUnknownOperation = "UnknownOperationException"
	codeSerialization    = "SerializationException"
	codeInternalFailure  = "InternalFailure"
)

// ErrorResponse is the JSON 1.1 error body.
type ErrorResponse struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

type adapterError struct {
	status int
	code   string
	msg    string
}

func (e *adapterError) Error() string { return e.code + ": " + e.msg }

func outcomeOf(err error) string {
	var apiErr *contacts.Error
	var adErr *adapterError
	if errors.As(err, &apiErr) || errors.As(err, &adErr) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}

func writeJSON(c echo.Context, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, amzJSONContentType, body)
}

func writeError(c echo.Context, log *slog.Logger, err error) error {
	var apiErr *contacts.Error
	if errors.As(err, &apiErr) {
		log.Debug("request rejected", slog.String("type", string(apiErr.Kind)), slog.String("message", apiErr.Message))
		return writeJSON(c, http.StatusBadRequest, ErrorResponse{Type: string(apiErr.Kind), Message: apiErr.Message})
	}
	var adErr *adapterError
	if errors.As(err, &adErr) {
		log.Debug("request rejected", slog.String("type", adErr.code), slog.String("message", adErr.msg))
		return writeJSON(c, adErr.status, ErrorResponse{Type: adErr.code, Message: adErr.msg})
	}
	log.Error("request failed", slog.Any("error", err))
	return writeJSON(c, http.StatusInternalServerError, ErrorResponse{Type: codeInternalFailure, Message: err.Error()})
}
