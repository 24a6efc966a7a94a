package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/csrf"
	"github.com/taskhive-dev/taskhive/internal/types"
)

// CSRFProtection issues a token on safe requests and verifies it on
// mutating ones. Tokens live in the external store keyed by client IP, so
// there is no process-local state to grow or lose across restarts.
func CSRFProtection(store *csrf.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.ClientIP()
		if key == "" {
			key = "anonymous"
		}

		switch ctx.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			token, err := store.Issue(ctx.Request.Context(), key)
			if err == nil {
				// Client-side JavaScript reads this cookie to echo the
				// token back in the request header.
				ctx.SetCookie("XSRF-TOKEN", token, 0, "/", "", false, false)
			}
			ctx.Next()
			return
		}

		token := ctx.GetHeader("X-CSRF-Token")
		if token == "" {
			token = ctx.GetHeader("X-XSRF-Token")
		}

		if err := store.Verify(ctx.Request.Context(), key, token); err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, types.Response{
				Success: false,
				Message: "Invalid or missing CSRF token",
			})
			return
		}

		ctx.Next()
	}
}
