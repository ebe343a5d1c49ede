package types

import (
	"maps"
	"net/url"
	"strings"
)

// QueryParams is the search page query, at most one value per key.
// A missing key means no filter is applied for that dimension.
type QueryParams map[string]string

// QueryParamsFromValues keeps the first value of every key.
func QueryParamsFromValues(values url.Values) QueryParams {
	result := make(QueryParams, len(values))
	for key, v := range values {
		if len(v) == 0 {
			continue
		}
		result[key] = v[0]
	}
	return result
}

// ParseQueryParams parses a raw query string, with or without the leading '?'.
func ParseQueryParams(raw string) (QueryParams, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, err
	}
	return QueryParamsFromValues(values), nil
}

func (q QueryParams) Clone() QueryParams {
	result := make(QueryParams, len(q)+1)
	maps.Copy(result, q)
	return result
}

// With returns a copy with key set to value.
func (q QueryParams) With(key, value string) QueryParams {
	result := q.Clone()
	result[key] = value
	return result
}

// Without returns a copy with key removed.
func (q QueryParams) Without(key string) QueryParams {
	result := q.Clone()
	delete(result, key)
	return result
}

func (q QueryParams) Has(key string) bool {
	_, ok := q[key]
	return ok
}

func (q QueryParams) Values() url.Values {
	values := make(url.Values, len(q))
	for key, value := range q {
		values.Set(key, value)
	}
	return values
}

// Encode serializes the params sorted by key, "" when empty.
func (q QueryParams) Encode() string {
	return q.Values().Encode()
}
