package http

import "net/http"

// Handler aliases the stdlib signature so plain handlers mount without
// wrapping
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the mounting surface modules build against. It exposes
// deliberately less than chi; anything needing the raw mux goes
// through Mux
type Router interface {
	Get(path string, h Handler)
	Head(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Options(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
