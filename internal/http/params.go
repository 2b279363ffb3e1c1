package http

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidParam marks a malformed page/limit query value. The
// wrapping error carries the user-facing message.
var ErrInvalidParam = errors.New("invalid parameter")

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// queryValue normalizes the absent / single / repeated states of a URL
// query parameter once, at the boundary. Repeated parameters collapse
// to their first value.
type queryValue []string

func param(q url.Values, name string) queryValue {
	return queryValue(q[name])
}

func (v queryValue) first() (string, bool) {
	if len(v) == 0 || v[0] == "" {
		return "", false
	}
	return v[0], true
}

// Pagination is a validated page request.
type Pagination struct {
	Page  int
	Limit int
}

// Offset is what the storage query skips.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func parsePagination(q url.Values) (Pagination, error) {
	page, err := numericParam(q, "page", defaultPage, 1, 0)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := numericParam(q, "limit", defaultLimit, 1, maxLimit)
	if err != nil {
		return Pagination{}, err
	}
	return Pagination{Page: page, Limit: limit}, nil
}

func numericParam(q url.Values, name string, fallback, min, max int) (int, error) {
	raw, ok := param(q, name).first()
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < min {
		return 0, fmt.Errorf("%w: %q must be an integer greater than or equal to %d", ErrInvalidParam, name, min)
	}
	if max > 0 && parsed > max {
		return 0, fmt.Errorf("%w: %q cannot be greater than %d", ErrInvalidParam, name, max)
	}
	return parsed, nil
}

// parseSearch trims the search term; whitespace-only input means no
// filter. The term is passed to storage unmodified.
func parseSearch(q url.Values) string {
	raw, ok := param(q, "search").first()
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw)
}

// totalPages is zero for an empty result set, ceil(total/limit)
// otherwise.
func totalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}

// singleParam returns the first value of a parameter or "".
func singleParam(q url.Values, name string) string {
	raw, _ := param(q, name).first()
	return raw
}

// userMessage strips the error-kind prefix that wrapping adds, leaving
// what the client should read.
func userMessage(err error) string {
	msg := err.Error()
	if rest, found := strings.CutPrefix(msg, ErrInvalidParam.Error()+": "); found {
		return rest
	}
	return msg
}
