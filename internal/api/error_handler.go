package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/forohub/forum-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Timestamp  string                  `json:"timestamp"`
	Status     int                     `json:"status"`
	Error      string                  `json:"error"`
	Message    string                  `json:"message"`
	Path       string                  `json:"path"`
	Violations []domain.FieldViolation `json:"violations"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the uniform envelope {timestamp, status, error, message, path, violations}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, label, msg, violations := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Status:     code,
			Error:      label,
			Message:    msg,
			Path:       c.Request().URL.Path,
			Violations: violations,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string, []domain.FieldViolation) {
	violations := []domain.FieldViolation{}

	// Validation failures carry per-field violations.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validación fallida", ve.Error(), ve.Violations
	}

	// Missing or garbled query/path parameters.
	var mpe *domain.MissingParamError
	if errors.As(err, &mpe) {
		violations = append(violations, domain.FieldViolation{Field: mpe.Param, Message: mpe.Message})
		return http.StatusBadRequest, "Parámetro faltante", mpe.Error(), violations
	}

	// Echo's own errors: bind failures, unknown routes, unsupported methods.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		switch he.Code {
		case http.StatusBadRequest:
			return he.Code, "Cuerpo inválido", msg, violations
		case http.StatusMethodNotAllowed:
			return he.Code, "Método no soportado", msg, violations
		case http.StatusNotFound:
			return he.Code, "Recurso no encontrado", msg, violations
		}
		return he.Code, http.StatusText(he.Code), msg, violations
	}

	// Known domain errors → deterministic HTTP codes and labels.
	switch {
	case errors.Is(err, domain.ErrTopicoNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Recurso no encontrado", err.Error(), violations
	case errors.Is(err, domain.ErrDuplicateTopico):
		return http.StatusUnprocessableEntity, "Regla de negocio violada", err.Error(), violations
	case errors.Is(err, domain.ErrStorageConflict):
		return http.StatusConflict, "Conflicto de integridad de datos", err.Error(), violations
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusUnauthorized, "bad_credentials", "usuario o contraseña inválidos", violations
	case errors.Is(err, domain.ErrAccountRestricted):
		return http.StatusForbidden, "account_restricted", err.Error(), violations
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "access_denied", err.Error(), violations
	case errors.Is(err, domain.ErrInvalidLogin):
		return http.StatusBadRequest, "invalid_request", err.Error(), violations
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Error interno", "internal server error", violations
}
