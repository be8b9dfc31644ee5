package web

func (wh *WebHandler) buildHandlerChain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	allMiddleware := make([]Middleware, 0, len(wh.globalMiddleware)+len(middleware))
	allMiddleware = append(allMiddleware, wh.globalMiddleware...)
	allMiddleware = append(allMiddleware, middleware...)

	return wrapMiddleware(allMiddleware, handler)
}

// wrapMiddleware applies mw so that mw[0] is the outermost layer.
func wrapMiddleware(mw []Middleware, handler HandlerFunc) HandlerFunc {
	final := handler
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			final = mw[i](final)
		}
	}
	return final
}
