package presentation

import (
	"github.com/matst80/slask-filters/pkg/filters"
	"github.com/matst80/slask-filters/pkg/routes"
	"github.com/matst80/slask-filters/pkg/types"
)

// SelectFunc receives a selection, an empty option clears the attribute.
type SelectFunc func(attribute, option string)

type FilterOption struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
	Href     string `json:"href,omitempty"`
}

// SelectSingleFilter is the categorical selector of one custom attribute.
type SelectSingleFilter struct {
	Attribute string         `json:"attribute"`
	Label     string         `json:"label"`
	Param     string         `json:"param"`
	Selected  string         `json:"selected,omitempty"`
	Options   []FilterOption `json:"options"`
	ClearHref string         `json:"clearHref,omitempty"`
	onSelect  SelectFunc
}

func NewSelectSingleFilter(attribute *types.CustomAttribute, current types.QueryParams, onSelect SelectFunc) *SelectSingleFilter {
	param := filters.ParamName(attribute.Name)
	selected := current[param]
	label := attribute.Label
	if label == "" {
		label = attribute.Name
	}
	f := &SelectSingleFilter{
		Attribute: attribute.Name,
		Label:     label,
		Param:     param,
		Selected:  selected,
		Options:   make([]FilterOption, 0, len(attribute.Options)),
		onSelect:  onSelect,
	}
	for _, o := range attribute.Options {
		f.Options = append(f.Options, FilterOption{
			Key:      o.Key,
			Label:    o.Label,
			Selected: o.Key == selected,
		})
	}
	return f
}

// Select hands option to the select callback as is.
func (f *SelectSingleFilter) Select(option string) {
	if f.onSelect != nil {
		f.onSelect(f.Attribute, option)
	}
}

func (f *SelectSingleFilter) Clear() {
	f.Select("")
}

// WithLinks sets the hrefs of the options to the selection route, carrying
// the current query so the selection can be applied to it.
func (f *SelectSingleFilter) WithLinks(routeTable routes.Routes, current types.QueryParams) error {
	route, err := routeTable.Find(routes.SearchFilterSelect)
	if err != nil {
		return err
	}
	link := func(option string) (string, error) {
		q := types.QueryParams{
			"attribute": f.Attribute,
			"query":     current.Encode(),
		}
		if option != "" {
			q["option"] = option
		}
		return route.Locator(nil, q)
	}
	for i := range f.Options {
		if f.Options[i].Href, err = link(f.Options[i].Key); err != nil {
			return err
		}
	}
	if f.Selected != "" {
		f.ClearHref, err = link("")
	}
	return err
}
