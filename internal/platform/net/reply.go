package net

import (
	"net/http"

	perr "leadhopper/internal/platform/errors"
)

// Wire is the transport-agnostic envelope. The HTTP layer embeds it and
// the middleware write it directly, so error bodies look the same
// everywhere
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Status starts an envelope for the given status code
func Status(status int, reqID string) Wire {
	return Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
	}
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	w := Status(http.StatusOK, reqID)
	w.Data = data
	return w.StatusCode, w
}

// Created builds a 201 envelope
func Created(data any, reqID string) (int, Wire) {
	w := Status(http.StatusCreated, reqID)
	w.Data = data
	return w.StatusCode, w
}

// NoContent builds a 204 envelope
func NoContent(reqID string) (int, Wire) {
	w := Status(http.StatusNoContent, reqID)
	return w.StatusCode, w
}

// Error builds an envelope from a project error; nil degrades to OK
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	wf := perr.WireFrom(err)
	w := Status(perr.HTTPStatus(err), reqID)
	w.Code = wf.Code
	w.Error = wf.Message
	return w.StatusCode, w
}
