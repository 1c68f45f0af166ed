package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/groups"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/schedule"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/services"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/validation"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
)

// ErrorResponse is the JSON body of every failed request.
// Code is stable and machine-readable; Message is shown to the user.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Action  string               `json:"action,omitempty"`
	Code    string               `json:"code"`
	Errors  *validation.ErrorSet `json:"errors,omitempty"`
}

// requestError is a malformed request detected by a handler
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{code: code, message: message}
}

// blockedError carries the errors of the step that refused to advance
type blockedError struct {
	err    error
	errors validation.ErrorSet
}

func (e *blockedError) Error() string { return e.err.Error() }
func (e *blockedError) Unwrap() error { return e.err }

type errorMapping struct {
	target error
	status int
	code   string
	action string
}

var errorMappings = []errorMapping{
	{wizard.ErrStepBlocked, http.StatusUnprocessableEntity, "VAL001", "Corrige los campos marcados y vuelve a intentarlo."},
	{services.ErrPayloadInvalid, http.StatusUnprocessableEntity, "VAL002", "Revisa el resumen de validación antes de exportar."},
	{groups.ErrBlankName, http.StatusUnprocessableEntity, "VAL003", ""},
	{wizard.ErrBlankTemplateName, http.StatusUnprocessableEntity, "VAL004", ""},
	{schedule.ErrIncompleteBaseShift, http.StatusUnprocessableEntity, "VAL005", ""},

	{schedule.ErrEmptySelection, http.StatusUnprocessableEntity, "BULK001", "Marca al menos un trabajador en la tabla."},
	{schedule.ErrNoDestinations, http.StatusUnprocessableEntity, "BULK002", "Marca al menos un trabajador distinto del origen."},
	{schedule.ErrMissingTemplate, http.StatusUnprocessableEntity, "BULK003", ""},
	{schedule.ErrMissingPeriod, http.StatusUnprocessableEntity, "BULK004", ""},
	{schedule.ErrNoWorkers, http.StatusUnprocessableEntity, "BULK005", ""},
	{schedule.ErrInvalidPeriod, http.StatusUnprocessableEntity, "BULK006", "Usa fechas AAAA-MM-DD y un Hasta posterior al Desde."},

	{ErrSessionNotFound, http.StatusNotFound, "SES001", "Crea una nueva sesión."},
	{wizard.ErrUnknownStep, http.StatusNotFound, "SES002", ""},
	{wizard.ErrWorkerNotFound, http.StatusNotFound, "SES003", ""},
	{schedule.ErrIndexOutOfRange, http.StatusNotFound, "SES003", ""},
	{groups.ErrGroupNotFound, http.StatusNotFound, "SES004", ""},
	{schedule.ErrBaseShiftNotFound, http.StatusNotFound, "SES005", ""},
	{wizard.ErrTemplateNotFound, http.StatusNotFound, "SES006", ""},
	{wizard.ErrAssignmentNotFound, http.StatusNotFound, "SES007", ""},
	{groups.ErrGroupInUse, http.StatusConflict, "SES008", "Reasigna o elimina a sus trabajadores primero."},
}

// respondError logs err with the request id and writes its ErrorResponse
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := mapError(err)

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("code", resp.Code),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", fields...)
	} else {
		s.logger.Debug("Request rejected", fields...)
	}

	writeJSONStatus(w, s.logger, status, resp)
}

func mapError(err error) (int, ErrorResponse) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, ErrorResponse{Error: reqErr.message, Message: reqErr.message, Code: reqErr.code}
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			resp := ErrorResponse{Error: err.Error(), Message: m.target.Error(), Action: m.action, Code: m.code}
			var blocked *blockedError
			if errors.As(err, &blocked) {
				errs := blocked.errors
				resp.Errors = &errs
			}
			return m.status, resp
		}
	}

	msg := "ocurrió un error inesperado"
	return http.StatusInternalServerError, ErrorResponse{Error: msg, Message: msg, Action: "Intenta nuevamente.", Code: "INT001"}
}

// writeJSON encodes v with status 200
func writeJSON(w http.ResponseWriter, logger *zap.Logger, v any) {
	writeJSONStatus(w, logger, http.StatusOK, v)
}

// writeJSONStatus encodes v as JSON. Encoding errors are only logged since
// the header is already sent.
func writeJSONStatus(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", zap.Error(err))
	}
}
