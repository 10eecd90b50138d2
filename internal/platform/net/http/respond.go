// Package http carries the JSON envelope, router seam and server lifecycle
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "leadhopper/internal/platform/net"
)

// Envelope is the response body every endpoint writes. The wire half
// lives in platform/net so middleware produce identical bodies
type Envelope struct {
	pnet.Wire
	Page *Page `json:"page,omitempty"`
}

// Page carries pagination for list responses
type Page struct {
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Cursor   string `json:"cursor,omitempty"`
}

// JSON encodes v to w as application/json under the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONStatus writes a bare status with an empty object body
func JSONStatus(w stdhttp.ResponseWriter, status int) {
	JSON(w, status, map[string]any{})
}

func successEnvelope(status int, reqID string, data any) Envelope {
	w := pnet.Status(status, reqID)
	w.Data = data
	return Envelope{Wire: w}
}

func failureEnvelope(err error, reqID string) (int, Envelope) {
	status, w := pnet.Error(err, reqID)
	return status, Envelope{Wire: w}
}

// Effectful helpers for classic handlers

// RespondOK wraps data in a 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, successEnvelope(stdhttp.StatusOK, pnet.RequestID(r.Context()), data))
}

// RespondCreated wraps data in a 201 envelope
func RespondCreated(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusCreated, successEnvelope(stdhttp.StatusCreated, pnet.RequestID(r.Context()), data))
}

// RespondNoContent answers 204 and nothing else
func RespondNoContent(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	w.WriteHeader(stdhttp.StatusNoContent)
}

// RespondData is another name for RespondOK
func RespondData(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	RespondOK(w, r, data)
}

// RespondList writes items plus a pagination block
func RespondList(w stdhttp.ResponseWriter, r *stdhttp.Request, items any, total, page, pageSize int, cursor string) {
	env := successEnvelope(stdhttp.StatusOK, pnet.RequestID(r.Context()), items)
	env.Page = &Page{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Cursor:   cursor,
	}
	JSON(w, stdhttp.StatusOK, env)
}

// RespondError folds err into an error envelope and writes it under
// the status the error code maps to
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := failureEnvelope(err, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

// Return-style helpers for early returns in handlers

// Response is the value return-style handlers build
type Response struct {
	Status int
	Body   any
	// optional extra headers
	Header stdhttp.Header
}

// Handle bridges a Response-returning handler onto net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	reqID := pnet.RequestID(r.Context())

	// an error Body overrides the declared status
	if err, ok := resp.Body.(error); ok && err != nil {
		st, env := failureEnvelope(err, reqID)
		JSON(w, st, env)
		return
	}

	JSON(w, status, successEnvelope(status, reqID, resp.Body))
}

// OK builds a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created builds a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent builds a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Data is another name for OK
func Data(v any) Response { return OK(v) }

// Error builds a response whose status and envelope come from the error
func Error(err error) Response { return Response{Body: err} }

// List builds a 200 response with items and pagination
func List(items any, total, page, size int, cursor string) Response {
	return OK(struct {
		Items any  `json:"items"`
		Page  Page `json:"page"`
	}{Items: items, Page: Page{Total: total, Page: page, PageSize: size, Cursor: cursor}})
}
