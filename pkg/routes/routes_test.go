package routes

import (
	"errors"
	"testing"

	"github.com/matst80/slask-filters/pkg/types"
)

func TestCreateResourceLocatorString(t *testing.T) {
	tests := []struct {
		name       string
		route      string
		pathParams map[string]string
		query      types.QueryParams
		expected   string
	}{
		{"no query", SearchPage, map[string]string{}, types.QueryParams{}, "/s"},
		{"nil query", SearchPage, nil, nil, "/s"},
		{"sorted query", SearchPage, nil, types.QueryParams{"ca_category": "smoke", "address": "Helsinki"}, "/s?address=Helsinki&ca_category=smoke"},
		{"escaped query", SearchMapPage, nil, types.QueryParams{"address": "Södra vägen 1"}, "/s/map?address=S%C3%B6dra+v%C3%A4gen+1"},
		{"path params", ListingPage, map[string]string{"slug": "nice-sauna", "id": "42"}, nil, "/l/nice-sauna/42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreateResourceLocatorString(tt.route, RouteConfiguration(), tt.pathParams, tt.query)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCreateResourceLocatorStringErrors(t *testing.T) {
	_, err := CreateResourceLocatorString("NoSuchPage", RouteConfiguration(), nil, nil)
	if !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("Expected ErrRouteNotFound, got %v", err)
	}
	_, err = CreateResourceLocatorString(ListingPage, RouteConfiguration(), map[string]string{"slug": "x"}, nil)
	if !errors.Is(err, ErrMissingPathParam) {
		t.Errorf("Expected ErrMissingPathParam, got %v", err)
	}
}
