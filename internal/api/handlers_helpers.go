// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/project"
	"github.com/tomtom215/debiai-data-provider/internal/validation"
)

// maxBodyBytes caps request bodies. The id lists are also bounded by count.
const maxBodyBytes = 32 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// urlParam returns the decoded path parameter. chi matches on the escaped
// path when the URL carries one (e.g. a project name containing %2F).
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// validate runs the request validator and writes a 400 on failure.
func validate(w http.ResponseWriter, r *http.Request, req any) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// exposure resolves the {projectId} path parameter and tags the request
// logger with the project name. It writes the error response itself and
// returns nil when the project cannot be served.
func (h *Handler) exposure(w http.ResponseWriter, r *http.Request) (*project.Exposure, *http.Request) {
	path := ProjectPath{ProjectID: urlParam(r, "projectId")}
	if !validate(w, r, &path) {
		return nil, r
	}
	e, err := h.registry.Resolve(path.ProjectID)
	if err != nil {
		RespondProjectError(w, r, err)
		return nil, r
	}
	ctx := logging.ContextWithProject(r.Context(), e.Name())
	return e, r.WithContext(ctx)
}

// decodeIDList reads a JSON array of sample ids of at most limit elements.
// It writes the error response itself and returns false on failure.
func decodeIDList(w http.ResponseWriter, r *http.Request, limit int) ([]project.ID, bool) {
	rw := NewResponseWriter(w, r)

	var ids []project.ID
	if err := decodeBody(w, r, &ids); err != nil {
		rw.BadRequest(err.Error())
		return nil, false
	}
	if ids == nil {
		rw.BadRequest("request body must be a JSON array of sample ids")
		return nil, false
	}
	if len(ids) > limit {
		rw.RequestTooLarge(fmt.Sprintf("at most %d sample ids may be requested at once, got %d", limit, len(ids)), limit)
		return nil, false
	}
	return ids, true
}

// decodeBody decodes the JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &tooLarge):
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		default:
			var verr *project.ValidationError
			if errors.As(err, &verr) {
				return errors.New(verr.Reason)
			}
			return fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return &v, nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean, got %q", name, raw)
	}
	return &v, nil
}
