package http

import (
	"net/http"

	"leadhopper/internal/platform/net/http/bind"
)

// result folds a handler's (value, error) return into a Response.
// Handlers that built their own Response pass through untouched
func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// JSONHandler decodes and validates a typed body before calling fn.
// Decode failures come back 400 through the envelope, handler errors
// map by their code
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// JSONHandlerNoBody is JSONHandler for handlers that read nothing from
// the body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return result(fn(r)) })
}
