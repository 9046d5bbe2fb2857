package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/tasknest/tasknest-backend/internal/utils"
)

// Recover turns a panicking handler into a 500 response
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				log.Printf("request_id=%s panic: %v\n%s", utils.RequestIDFromContext(r.Context()), v, debug.Stack())
				utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
