package presentation

type SearchState struct {
	ListingsAreLoaded bool `json:"listingsAreLoaded"`
	ResultsCount      int  `json:"resultsCount"`
	SearchInProgress  bool `json:"searchInProgress"`
}

type SummaryState int

const (
	SummaryNone SummaryState = iota
	SummaryFound
	SummaryNoResults
)

func (s SummaryState) String() string {
	switch s {
	case SummaryFound:
		return "found"
	case SummaryNoResults:
		return "noResults"
	default:
		return "none"
	}
}

func (s SummaryState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ResultSummary is the indicator above the search results. Loading is
// independent of State, so a found count and the loading indicator can be
// shown together while a new search runs over loaded listings.
type ResultSummary struct {
	State   SummaryState `json:"state"`
	Count   int          `json:"count"`
	Loading bool         `json:"loading"`
}

func Summarize(s SearchState) ResultSummary {
	summary := ResultSummary{
		State:   SummaryNone,
		Loading: s.SearchInProgress,
	}
	switch {
	case s.ListingsAreLoaded && s.ResultsCount > 0:
		summary.State = SummaryFound
		summary.Count = s.ResultsCount
	case s.ListingsAreLoaded && s.ResultsCount == 0:
		summary.State = SummaryNoResults
	}
	return summary
}
