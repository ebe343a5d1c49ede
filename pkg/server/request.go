package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/matst80/slask-filters/pkg/presentation"
	"github.com/matst80/slask-filters/pkg/types"
)

var (
	ErrMissingViewport = errors.New("viewport width is required")
	ErrInvalidQuery    = errors.New("invalid search query")
)

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

var validate = validator.New(validator.WithRequiredStructEnabled())

// FilterBarRequest carries the filter bar props. Query is the raw query
// string of the search page the bar belongs to.
type FilterBarRequest struct {
	ListingsAreLoaded bool   `schema:"listingsAreLoaded"`
	ResultsCount      int    `schema:"resultsCount" validate:"gte=0"`
	SearchInProgress  bool   `schema:"searchInProgress"`
	Width             int    `schema:"width" validate:"required,gt=0"`
	Height            int    `schema:"height" validate:"gte=0"`
	Query             string `schema:"query"`
	RootClassName     string `schema:"rootClassName"`
	ClassName         string `schema:"className"`
}

func (f *FilterBarRequest) SearchState() presentation.SearchState {
	return presentation.SearchState{
		ListingsAreLoaded: f.ListingsAreLoaded,
		ResultsCount:      f.ResultsCount,
		SearchInProgress:  f.SearchInProgress,
	}
}

func (f *FilterBarRequest) Viewport() types.Viewport {
	return types.Viewport{Width: f.Width, Height: f.Height}
}

type SelectRequest struct {
	Attribute string `schema:"attribute" validate:"required"`
	Option    string `schema:"option"`
	Query     string `schema:"query"`
}

type MapIconRequest struct {
	Query string `schema:"query"`
}

// viewportHint reads the width client hint, 0 when absent.
func viewportHint(r *http.Request) int {
	for _, header := range []string{"Sec-CH-Viewport-Width", "Viewport-Width"} {
		if v := r.Header.Get(header); v != "" {
			if width, err := strconv.Atoi(v); err == nil {
				return width
			}
		}
	}
	return 0
}

func decodeQuery(query url.Values, dst any) error {
	if err := decoder.Decode(dst, query); err != nil {
		return err
	}
	return validate.Struct(dst)
}

func GetFilterBarRequest(r *http.Request, result *FilterBarRequest) error {
	err := decoder.Decode(result, r.URL.Query())
	if err != nil {
		return err
	}
	if result.Width == 0 {
		result.Width = viewportHint(r)
	}
	err = validate.Struct(result)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			if fe.Field() == "Width" {
				return fmt.Errorf("%w: %v", ErrMissingViewport, fe)
			}
		}
	}
	return err
}

func GetSelectRequest(r *http.Request, result *SelectRequest) error {
	return decodeQuery(r.URL.Query(), result)
}

func GetMapIconRequest(r *http.Request, result *MapIconRequest) error {
	return decodeQuery(r.URL.Query(), result)
}

func parseSearchQuery(raw string) (types.QueryParams, error) {
	q, err := types.ParseQueryParams(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return q, nil
}
