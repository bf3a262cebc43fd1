package util

import (
	"net/http"
	"strconv"

	"github.com/techipro/konnect-admin/types"
)

// Page resolves the page/limit query parameters against a collection
// of the given size, returning the slice bounds and the page metadata
func Page(r *http.Request, total int, defaultLimit int) (start int, end int, info types.PageInfo) {
	page := positiveQueryInt(r, "page", 1)
	limit := positiveQueryInt(r, "limit", defaultLimit)

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	// Pages past the end are empty; checking before multiplying keeps
	// huge page or limit values from overflowing
	start = total
	if page <= totalPages {
		start = (page - 1) * limit
	}
	end = total
	if limit < total-start {
		end = start + limit
	}

	info = types.PageInfo{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
	return start, end, info
}

func positiveQueryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value < 1 {
		return fallback
	}

	return value
}
