package utils

import (
	"net/http"
	"strconv"
	"strings"
)

// ParsePagination reads page/limit query params and returns skip and limit
// suitable for a Find call. Limit is clamped to maxLimit.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}

// ParseBool reads a query flag; anything but "true"/"1" is false.
func ParseBool(v string) bool {
	return v == "true" || v == "1"
}
