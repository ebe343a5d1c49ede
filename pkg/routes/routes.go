package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/matst80/slask-filters/pkg/types"
)

var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrMissingPathParam = errors.New("missing path parameter")
)

const (
	LandingPage        = "LandingPage"
	SearchPage         = "SearchPage"
	SearchMapPage      = "SearchMapPage"
	SearchFilterSelect = "SearchFilterSelect"
	SearchMapIcon      = "SearchMapIcon"
	ListingPage        = "ListingPage"
)

type Route struct {
	Name string
	Path string
}

type Routes []Route

// RouteConfiguration is the route table of the search site.
func RouteConfiguration() Routes {
	return Routes{
		{Name: LandingPage, Path: "/"},
		{Name: SearchPage, Path: "/s"},
		{Name: SearchMapPage, Path: "/s/map"},
		{Name: SearchFilterSelect, Path: "/s/filters/select"},
		{Name: SearchMapIcon, Path: "/s/filters/map"},
		{Name: ListingPage, Path: "/l/:slug/:id"},
	}
}

func (r Routes) Find(name string) (Route, error) {
	for _, route := range r {
		if route.Name == name {
			return route, nil
		}
	}
	return Route{}, fmt.Errorf("%w: %s", ErrRouteNotFound, name)
}

// PathFor fills the :name segments of the route path from pathParams.
func (route Route) PathFor(pathParams map[string]string) (string, error) {
	segments := strings.Split(route.Path, "/")
	for i, segment := range segments {
		name, isParam := strings.CutPrefix(segment, ":")
		if !isParam {
			continue
		}
		value, ok := pathParams[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %s in %s", ErrMissingPathParam, name, route.Name)
		}
		segments[i] = url.PathEscape(value)
	}
	return strings.Join(segments, "/"), nil
}

// CreateResourceLocatorString builds the location of a named route with the
// given path parameters and query. An empty query gives no '?'.
func CreateResourceLocatorString(name string, routes Routes, pathParams map[string]string, query types.QueryParams) (string, error) {
	route, err := routes.Find(name)
	if err != nil {
		return "", err
	}
	return route.Locator(pathParams, query)
}

func (route Route) Locator(pathParams map[string]string, query types.QueryParams) (string, error) {
	path, err := route.PathFor(pathParams)
	if err != nil {
		return "", err
	}
	if encoded := query.Encode(); encoded != "" {
		return path + "?" + encoded, nil
	}
	return path, nil
}
