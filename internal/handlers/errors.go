package handlers

import (
	"log"
	"net/http"

	"github.com/tasknest/tasknest-backend/internal/apperror"
	"github.com/tasknest/tasknest-backend/internal/utils"
)

// writeError is the single translation point from service errors to HTTP responses
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Printf("request_id=%s method=%s path=%s error: %v",
			utils.RequestIDFromContext(r.Context()), r.Method, r.URL.Path, err)
	}
	utils.WriteErrorResponse(w, kind.HTTPStatus(), apperror.PublicMessage(err))
}

// currentUser returns the id set by the auth middleware
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}
