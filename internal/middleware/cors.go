package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

var (
	allowHeaders = []string{echo.HeaderContentType, echo.HeaderAuthorization, "true"}
	allowMethods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}
)

// CORS allows any origin. Preflight requests are answered by echo's CORS
// middleware; every other response, with or without an Origin header, also
// carries the allowed origin, headers and methods.
func CORS() echo.MiddlewareFunc {
	cors := echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: allowHeaders,
		AllowMethods: allowMethods,
	})

	headers := strings.Join(allowHeaders, ",")
	methods := strings.Join(allowMethods, ",")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withHeaders := func(c echo.Context) error {
			res := c.Response()
			res.Before(func() {
				h := res.Header()
				if h.Get(echo.HeaderAccessControlAllowOrigin) == "" {
					h.Set(echo.HeaderAccessControlAllowOrigin, "*")
				}
				if h.Get(echo.HeaderAccessControlAllowHeaders) == "" {
					h.Set(echo.HeaderAccessControlAllowHeaders, headers)
				}
				if h.Get(echo.HeaderAccessControlAllowMethods) == "" {
					h.Set(echo.HeaderAccessControlAllowMethods, methods)
				}
			})
			return next(c)
		}
		return cors(withHeaders)
	}
}
