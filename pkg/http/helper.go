package http

import (
	"net/http"
	"strconv"
	"strings"

	"stayrate/pkg/config"
	apperrors "stayrate/pkg/errors"
)

// ExtractLimitOffset reads the limit/offset query parameters and normalizes
// them to the configured pagination bounds.
func ExtractLimitOffset(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	offset := 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractSortOrder reads sort_by/order query parameters. An unknown sort
// field is rejected; the order defaults to the caller's choice and anything
// other than "desc" sorts ascending.
func ExtractSortOrder(r *http.Request, defaultSort, defaultOrder string, validFields ...string) (string, bool, error) {
	query := r.URL.Query()

	sortBy := query.Get("sort_by")
	if sortBy == "" {
		sortBy = defaultSort
	}
	valid := false
	for _, f := range validFields {
		if sortBy == f {
			valid = true
			break
		}
	}
	if !valid {
		return "", false, apperrors.InvalidInput("invalid sort_by parameter: " + sortBy)
	}

	order := strings.ToLower(query.Get("order"))
	if order == "" {
		order = defaultOrder
	}
	return sortBy, order == "desc", nil
}

// ExtractID parses a numeric path parameter.
func ExtractID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("invalid id parameter: " + raw)
	}
	return id, nil
}

// OptionalInt parses an optional integer query parameter, nil when absent.
func OptionalInt(r *http.Request, name string) (*int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return &v, nil
}

// OptionalFloat parses an optional float query parameter, nil when absent.
func OptionalFloat(r *http.Request, name string) (*float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return &v, nil
}

// OptionalBool parses an optional boolean query parameter, nil when absent.
func OptionalBool(r *http.Request, name string) (*bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return &v, nil
}
