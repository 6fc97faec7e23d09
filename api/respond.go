package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/rs/zerolog"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteData writes a success envelope with the given status code.
func (r Responder) WriteData(w http.ResponseWriter, status int, data any) {
	r.writeJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteDataWithMeta writes a success envelope carrying metadata.
func (r Responder) WriteDataWithMeta(w http.ResponseWriter, status int, data, meta any) {
	r.writeJSON(w, status, Envelope{Success: true, Data: data, Meta: meta})
}

// WriteError translates err into the error envelope. *errs.ApiErr carries its
// own status code; anything else is logged and becomes a 500.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.writeJSON(w, http.StatusInternalServerError, Envelope{
			Success: false,
			Error:   "Internal Server Error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Msg(apiErr.GetFullError())
	}

	message := apiErr.Error()
	if apiErr.Cause != nil && apiErr.StatusCode < http.StatusInternalServerError {
		r.logger.Debug().Msg(apiErr.GetFullError())
	}

	r.writeJSON(w, apiErr.StatusCode, Envelope{Success: false, Error: message})
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
