package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

// Recoverer turns a handler panic into a 500 response instead of tearing
// down the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"panic": fmt.Sprint(rec),
						"stack": string(debug.Stack()),
					})
					logg.Error(ctx, "handler panicked", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "request failed"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
