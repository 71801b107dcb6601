package services

import (
	"net/url"
	"strconv"
	"strings"
)

// ReadParams parses a URL query string into a map holding the last value of
// each parameter. Values stay strings.
func ReadParams(rawQuery string) map[string]string {
	params := map[string]string{}
	// Malformed pairs are skipped; ParseQuery still returns the valid ones.
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[len(v)-1]
		}
	}
	return params
}

// PageParams are the typed parameters of one page load.
type PageParams struct {
	Page int
	ID   string
}

// ParsePageParams reads page and id. A missing, non-numeric or non-positive
// page falls back to 1, a missing id to defaultID.
func ParsePageParams(params map[string]string, defaultID string) PageParams {
	p := PageParams{Page: 1, ID: defaultID}
	if raw, ok := params["page"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if id := strings.TrimSpace(params["id"]); id != "" {
		p.ID = id
	}
	return p
}
