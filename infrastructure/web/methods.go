package web

import "net/http"

func (wh *WebHandler) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodGet, path, handler, middleware...)
}

func (wh *WebHandler) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodPost, path, handler, middleware...)
}

func (wh *WebHandler) PUT(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodPut, path, handler, middleware...)
}

func (wh *WebHandler) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodDelete, path, handler, middleware...)
}

// Group routes share the group prefix and middleware.

func (g *RouteGroup) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodGet, path, handler, middleware...)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodPost, path, handler, middleware...)
}

func (g *RouteGroup) PUT(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodPut, path, handler, middleware...)
}

func (g *RouteGroup) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodDelete, path, handler, middleware...)
}
