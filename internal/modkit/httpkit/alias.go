// Package httpkit gives modules their routing and response surface without
// importing internal/platform/net/http directly
package httpkit

import (
	"encoding/json"
	"net/http"

	perrs "leadhopper/internal/platform/errors"
	phttp "leadhopper/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Page is the pagination metadata type
	Page = phttp.Page

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Data is an alias for OK
func Data(v any) Response { return phttp.Data(v) }

// Error maps an error onto status and envelope
func Error(err error) Response { return phttp.Error(err) }

// List returns a 200 response with items and pagination
func List(items any, total, page, size int, cursor string) Response {
	return phttp.List(items, total, page, size, cursor)
}

// wrap turns a handler result into a Response, honoring handlers that
// build their own
func wrap(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(phttp.Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// JSON adapts a typed handler with strict body decoding and no validation.
// Unknown fields are rejected; handlers wanting struct validation mount
// through phttp.JSONHandler instead
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		var in T
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			// a body we cannot decode is the client's fault, not a 500
			return phttp.Error(perrs.JSONErrf("decode request body: %v", err))
		}
		return wrap(fn(r, in))
	})
}

// Call adapts a handler that reads no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		return wrap(fn(r))
	})
}

// Handle adapts a Response-returning function directly
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}

// RespondError writes the error envelope from a raw handler.
// Endpoints that stream non-JSON bodies on success use this for failures
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	phttp.RespondError(w, r, err)
}
