package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Params holds skip/limit parameters extracted from a request.
type Params struct {
	Skip  int
	Limit int
}

// FromRequest extracts skip/limit query parameters, bounding limit to
// [1, MaxLimit] with DefaultLimit when absent or invalid.
func FromRequest(r *http.Request) Params {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	if skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Skip: skip, Limit: limit}
}
