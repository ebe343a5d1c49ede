package filters

import (
	"fmt"

	"github.com/matst80/slask-filters/pkg/routes"
	"github.com/matst80/slask-filters/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CustomAttributePrefix namespaces custom attribute filters in the search
// query. No built-in search parameter starts with it.
const CustomAttributePrefix = "ca_"

var (
	noSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filterbar_selections_total",
		Help: "The total number of filter selections",
	}, []string{"action"})
)

// ParamName is the query parameter of a custom attribute, ca_<name>.
func ParamName(attribute string) string {
	return CustomAttributePrefix + attribute
}

// SelectSingle returns the query after selecting option for attribute.
// An empty option clears the filter by removing the key. current is not modified.
func SelectSingle(current types.QueryParams, attribute, option string) types.QueryParams {
	param := ParamName(attribute)
	if option != "" {
		return current.With(param, option)
	}
	return current.Without(param)
}

// Navigator requests a location change, like history.push in a browser.
type Navigator interface {
	Push(location string)
}

type NavigatorFunc func(location string)

func (f NavigatorFunc) Push(location string) {
	f(location)
}

// Synchronizer keeps a single categorical selection in sync with the search
// page query of one request.
type Synchronizer struct {
	current   types.QueryParams
	page      routes.Route
	navigator Navigator
	// OnChange is called with every computed selection before navigating.
	OnChange func(selection types.FilterSelection)
}

func NewSynchronizer(current types.QueryParams, routeTable routes.Routes, navigator Navigator) (*Synchronizer, error) {
	page, err := routeTable.Find(routes.SearchPage)
	if err != nil {
		return nil, fmt.Errorf("search page route: %w", err)
	}
	if _, err = page.PathFor(map[string]string{}); err != nil {
		return nil, fmt.Errorf("search page route: %w", err)
	}
	return &Synchronizer{
		current:   current,
		page:      page,
		navigator: navigator,
	}, nil
}

// OnSelectSingle computes the next query and requests exactly one navigation
// to the search page with it.
func (s *Synchronizer) OnSelectSingle(attribute, option string) {
	next := SelectSingle(s.current, attribute, option)
	// checked in NewSynchronizer, the search page takes no path parameters
	location, _ := s.page.Locator(map[string]string{}, next)

	action := "set"
	if option == "" {
		action = "clear"
	}
	noSelections.WithLabelValues(action).Inc()

	if s.OnChange != nil {
		s.OnChange(types.FilterSelection{
			Attribute: attribute,
			Option:    option,
			Cleared:   option == "",
			Location:  location,
		})
	}
	s.navigator.Push(location)
}
