package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tasknest/tasknest-backend/internal/apperror"
	"github.com/tasknest/tasknest-backend/internal/services"
)

// parseID accepts positive ids that fit the 32-bit id columns
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 32)
	return id, err == nil && id > 0
}

// pathID parses a positive integer path segment
func pathID(r *http.Request, name string) (int64, error) {
	id, ok := parseID(r.PathValue(name))
	if !ok {
		return 0, apperror.Validation("Invalid ID")
	}
	return id, nil
}

// listParams reads page, limit, completed, search and categoryId from the query.
// Malformed page or limit fall back to defaults.
func listParams(r *http.Request) (services.ListParams, error) {
	q := r.URL.Query()
	var p services.ListParams

	if v, err := strconv.ParseInt(q.Get("page"), 10, 32); err == nil {
		p.Page = int(v)
	}
	if v, err := strconv.ParseInt(q.Get("limit"), 10, 32); err == nil {
		p.Limit = int(v)
	}

	if raw := strings.TrimSpace(q.Get("completed")); raw != "" {
		switch strings.ToLower(raw) {
		case "true":
			v := true
			p.Completed = &v
		case "false":
			v := false
			p.Completed = &v
		default:
			return p, apperror.Validation("completed must be true or false")
		}
	}

	p.Search = q.Get("search")
	if !utf8.ValidString(p.Search) || strings.ContainsRune(p.Search, 0) {
		return p, apperror.Validation("Invalid search term")
	}

	if raw := strings.TrimSpace(q.Get("categoryId")); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return p, apperror.Validation("Invalid category ID")
		}
		p.CategoryID = &id
	}

	return services.NormalizeListParams(p), nil
}
