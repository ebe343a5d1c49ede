package presentation

import (
	"fmt"
	"maps"
	"strings"
)

const (
	LoadingResultsMessage = "SearchFilters.loadingResults"
	FoundResultsMessage   = "SearchFilters.foundResults"
	NoResultsMessage      = "SearchFilters.noResults"
	OpenMapViewMessage    = "SearchFilters.openMapView"
)

// Messages maps message ids to translated strings with {name} placeholders.
type Messages map[string]string

func DefaultMessages() Messages {
	return Messages{
		LoadingResultsMessage: "Loading search results…",
		FoundResultsMessage:   "{count} results",
		NoResultsMessage:      "Could not find any listings with your search criteria.",
		OpenMapViewMessage:    "Map",
	}
}

// Merge returns a copy of m with overrides applied.
func (m Messages) Merge(overrides Messages) Messages {
	result := maps.Clone(m)
	if result == nil {
		result = Messages{}
	}
	maps.Copy(result, overrides)
	return result
}

// Format resolves id and fills its placeholders. Unknown ids render as the id.
func (m Messages) Format(id string, values map[string]any) string {
	text, ok := m[id]
	if !ok {
		return id
	}
	for name, value := range values {
		text = strings.ReplaceAll(text, "{"+name+"}", fmt.Sprint(value))
	}
	return text
}
