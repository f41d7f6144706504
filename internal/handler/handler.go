package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tofi-shop/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps service-layer errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var stockErr *model.InsufficientStockError
	if errors.As(err, &stockErr) {
		writeError(w, http.StatusConflict, model.ErrCodeInsufficientStock, stockErr.Error(), logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case model.ErrCodeOrderNotFound, model.ErrCodeProductNotFound:
			status = http.StatusNotFound
		case model.ErrCodeProductUnavailable, model.ErrCodePaymentRecorded, model.ErrCodeTxConflict:
			status = http.StatusConflict
		case model.ErrCodeUndeliverableZip:
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	// Plain validation errors from request checking read like user errors.
	msg := err.Error()
	if strings.Contains(msg, "required") || strings.Contains(msg, "must contain") || strings.Contains(msg, "nil") {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, msg, logger)
		return
	}

	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}
