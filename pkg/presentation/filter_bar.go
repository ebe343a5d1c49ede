package presentation

import (
	"github.com/matst80/slask-filters/pkg/routes"
	"github.com/matst80/slask-filters/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CategoryAttribute is the only custom attribute the filter bar shows.
const CategoryAttribute = "category"

var (
	noRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filterbar_renders_total",
		Help: "The total number of built filter bars",
	}, []string{"layout"})
)

type AttributeSource interface {
	Get(name string) (*types.CustomAttribute, bool)
}

// Props are the inputs of one filter bar, validated by the caller.
type Props struct {
	SearchState
	URLQueryParams types.QueryParams
	Viewport       types.Viewport
	OnMapIconClick func()
	OnSelect       SelectFunc
	Routes         routes.Routes
	Messages       Messages
	RootClassName  string
	ClassName      string
}

type MapIcon struct {
	Text    string `json:"text"`
	Href    string `json:"href,omitempty"`
	onClick func()
}

func NewMapIcon(text, href string, onClick func()) *MapIcon {
	return &MapIcon{Text: text, Href: href, onClick: onClick}
}

// Click calls the map icon callback without arguments.
func (m *MapIcon) Click() {
	if m.onClick != nil {
		m.onClick()
	}
}

type SummaryView struct {
	ResultSummary
	Message        string `json:"message,omitempty"`
	LoadingMessage string `json:"loadingMessage,omitempty"`
}

type FilterBar struct {
	Layout         Layout              `json:"layout"`
	ClassName      string              `json:"className"`
	Summary        SummaryView         `json:"summary"`
	CategoryFilter *SelectSingleFilter `json:"categoryFilter,omitempty"`
	MapIcon        *MapIcon            `json:"mapIcon,omitempty"`
}

func classNames(rootClassName, className string) string {
	if rootClassName == "" {
		rootClassName = "root"
	}
	if className == "" {
		return rootClassName
	}
	return rootClassName + " " + className
}

func summaryView(state SearchState, messages Messages) SummaryView {
	summary := Summarize(state)
	view := SummaryView{ResultSummary: summary}
	switch summary.State {
	case SummaryFound:
		view.Message = messages.Format(FoundResultsMessage, map[string]any{"count": summary.Count})
	case SummaryNoResults:
		view.Message = messages.Format(NoResultsMessage, nil)
	}
	if summary.Loading {
		view.LoadingMessage = messages.Format(LoadingResultsMessage, nil)
	}
	return view
}

// Build picks the layout and summary for props. The category filter is only
// shown on desktop and only when the category attribute is configured.
func Build(props Props, attributes AttributeSource) (*FilterBar, error) {
	messages := props.Messages
	if messages == nil {
		messages = DefaultMessages()
	}
	bar := &FilterBar{
		Layout:    SelectLayout(props.Viewport),
		ClassName: classNames(props.RootClassName, props.ClassName),
		Summary:   summaryView(props.SearchState, messages),
	}
	noRenders.WithLabelValues(bar.Layout.String()).Inc()

	if bar.Layout == Mobile {
		bar.MapIcon = NewMapIcon(messages.Format(OpenMapViewMessage, nil), "", props.OnMapIconClick)
		if props.Routes != nil {
			href, err := routes.CreateResourceLocatorString(routes.SearchMapIcon, props.Routes, nil, types.QueryParams{
				"query": props.URLQueryParams.Encode(),
			})
			if err != nil {
				return nil, err
			}
			bar.MapIcon.Href = href
		}
		return bar, nil
	}

	if attributes == nil {
		return bar, nil
	}
	category, ok := attributes.Get(CategoryAttribute)
	if !ok {
		return bar, nil
	}
	bar.CategoryFilter = NewSelectSingleFilter(category, props.URLQueryParams, props.OnSelect)
	if props.Routes != nil {
		if err := bar.CategoryFilter.WithLinks(props.Routes, props.URLQueryParams); err != nil {
			return nil, err
		}
	}
	return bar, nil
}
