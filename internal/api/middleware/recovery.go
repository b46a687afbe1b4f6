package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pitstop-labs/pitstop/internal/api/response"
)

// Recovery returns middleware that recovers from panics and returns a 500
// envelope. Outside production the panic value is included as detail.
func Recovery(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					slog.Error("panic recovered",
						"error", err,
						"requestId", GetRequestID(r.Context()),
						"path", r.URL.Path,
					)
					if production {
						response.Err(w, http.StatusInternalServerError, response.CodeInternalError, "An unexpected error occurred")
						return
					}
					response.ErrWithDetails(w, http.StatusInternalServerError, response.CodeInternalError,
						"An unexpected error occurred", fmt.Sprint(err))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
