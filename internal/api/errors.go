// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/debiai-data-provider/internal/breaker"
	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/project"
	"github.com/tomtom215/debiai-data-provider/internal/validation"
)

// Request errors
var (
	// ErrEmptyBody indicates a POST route received no body
	ErrEmptyBody = errors.New("request body is required")

	// ErrDeletionDisabled indicates the deletion is turned off in the configuration
	ErrDeletionDisabled = errors.New("deletion is disabled on this provider")
)

// RespondProjectError maps an error returned by the exposure layer to a
// status code and writes it.
//
//   - *project.LookupError -> 404 NOT_FOUND
//   - *validation.RequestValidationError -> 400 VALIDATION_FAILED
//   - breaker.ErrUnavailable -> 503 SERVICE_UNAVAILABLE
//   - project contract violations -> 500 PROJECT_CONTRACT_VIOLATION
//   - anything else -> 500 INTERNAL_ERROR
func RespondProjectError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	log := logging.Ctx(r.Context())

	var lookup *project.LookupError
	var verr *validation.RequestValidationError

	switch {
	case errors.As(err, &lookup):
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound, lookup.Error(),
			map[string]string{"kind": lookup.Kind, "key": lookup.Key})

	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)

	case errors.Is(err, breaker.ErrUnavailable):
		log.Warn().Err(err).Msg("Project temporarily unavailable")
		rw.ServiceUnavailable("Project is temporarily unavailable, retry later")

	case project.IsContractViolation(err):
		log.Error().Err(err).Msg("Project broke its declaration contract")
		rw.Error(http.StatusInternalServerError, ErrCodeContractViolation, sanitizeLogValue(err.Error()))

	case errors.Is(err, ErrDeletionDisabled):
		rw.Forbidden(err.Error())

	default:
		log.Error().Err(err).Msg("Project call failed")
		rw.InternalError("An internal error occurred")
	}
}
