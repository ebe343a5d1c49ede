package server

import (
	"bytes"
	"net/http"

	"github.com/matst80/slask-filters/pkg/common"
	"github.com/matst80/slask-filters/pkg/common/jsoncompat"
	"github.com/matst80/slask-filters/pkg/filters"
	"github.com/matst80/slask-filters/pkg/presentation"
	"github.com/matst80/slask-filters/pkg/routes"
	"github.com/matst80/slask-filters/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	noMapClicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filterbar_map_clicks_total",
		Help: "The total number of map icon clicks",
	})
)

type FilterServer struct {
	Attributes *types.CustomAttributeConfig
	Messages   presentation.Messages
	Routes     routes.Routes
	Tracking   types.Tracking
}

// redirectNavigator answers the request with a redirect to the pushed location.
type redirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n *redirectNavigator) Push(location string) {
	http.Redirect(n.w, n.r, location, http.StatusSeeOther)
}

func (ws *FilterServer) buildFilterBar(r *http.Request) (*presentation.FilterBar, error) {
	req := FilterBarRequest{}
	if err := GetFilterBarRequest(r, &req); err != nil {
		return nil, common.BadRequest(err)
	}
	current, err := parseSearchQuery(req.Query)
	if err != nil {
		return nil, common.BadRequest(err)
	}
	return presentation.Build(presentation.Props{
		SearchState:    req.SearchState(),
		URLQueryParams: current,
		Viewport:       req.Viewport(),
		Routes:         ws.Routes,
		Messages:       ws.Messages,
		RootClassName:  req.RootClassName,
		ClassName:      req.ClassName,
	}, ws.Attributes)
}

func (ws *FilterServer) FilterBarJson(w http.ResponseWriter, r *http.Request, sessionId int, enc jsoncompat.Encoder) error {
	bar, err := ws.buildFilterBar(r)
	if err != nil {
		return err
	}
	common.DefaultHeaders(w, r, "application/json")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(bar)
}

func (ws *FilterServer) FilterBarHtml(w http.ResponseWriter, r *http.Request, sessionId int) error {
	bar, err := ws.buildFilterBar(r)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = presentation.Render(&buf, bar); err != nil {
		return err
	}
	common.DefaultHeaders(w, r, "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

// SelectFilter applies one categorical selection to the carried search query
// and redirects to the filtered search page.
func (ws *FilterServer) SelectFilter(w http.ResponseWriter, r *http.Request, sessionId int) error {
	req := SelectRequest{}
	if err := GetSelectRequest(r, &req); err != nil {
		return common.BadRequest(err)
	}
	current, err := parseSearchQuery(req.Query)
	if err != nil {
		return common.BadRequest(err)
	}
	synchronizer, err := filters.NewSynchronizer(current, ws.Routes, &redirectNavigator{w: w, r: r})
	if err != nil {
		return err
	}
	if ws.Tracking != nil {
		client := types.ClientInfoFromRequest(r)
		synchronizer.OnChange = func(selection types.FilterSelection) {
			go ws.Tracking.TrackFilterSelection(sessionId, selection, client)
		}
	}

	attribute, ok := ws.Attributes.Get(req.Attribute)
	if !ok {
		// unknown filter keys are ignored by the search itself
		attribute = &types.CustomAttribute{Name: req.Attribute}
	}
	presentation.NewSelectSingleFilter(attribute, current, synchronizer.OnSelectSingle).Select(req.Option)
	return nil
}

func (ws *FilterServer) mapIconClick(w http.ResponseWriter, r *http.Request, sessionId int, current types.QueryParams) func() {
	return func() {
		noMapClicks.Inc()
		if ws.Tracking != nil {
			go ws.Tracking.TrackMapIconClick(sessionId, current, types.ClientInfoFromRequest(r))
		}
		location, err := routes.CreateResourceLocatorString(routes.SearchMapPage, ws.Routes, nil, current)
		if err != nil {
			common.RespondWithError(w, err)
			return
		}
		http.Redirect(w, r, location, http.StatusSeeOther)
	}
}

func (ws *FilterServer) MapIcon(w http.ResponseWriter, r *http.Request, sessionId int) error {
	req := MapIconRequest{}
	if err := GetMapIconRequest(r, &req); err != nil {
		return common.BadRequest(err)
	}
	current, err := parseSearchQuery(req.Query)
	if err != nil {
		return common.BadRequest(err)
	}
	presentation.NewMapIcon("", "", ws.mapIconClick(w, r, sessionId, current)).Click()
	return nil
}

func (ws *FilterServer) Handler() (http.Handler, error) {
	if ws.Routes == nil {
		ws.Routes = routes.RouteConfiguration()
	}
	selectRoute, err := ws.Routes.Find(routes.SearchFilterSelect)
	if err != nil {
		return nil, err
	}
	mapRoute, err := ws.Routes.Find(routes.SearchMapIcon)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	handlers := map[string]http.HandlerFunc{
		"/api/filter-bar": common.JsonHandler(ws.Tracking, ws.FilterBarJson),
		"/filter-bar":     common.SessionHandler(ws.Tracking, ws.FilterBarHtml),
		selectRoute.Path:  common.SessionHandler(ws.Tracking, ws.SelectFilter),
		mapRoute.Path:     common.SessionHandler(ws.Tracking, ws.MapIcon),
	}
	for path, handler := range handlers {
		mux.HandleFunc("GET "+path, handler)
		mux.HandleFunc("OPTIONS "+path, common.RespondToOptions)
	}
	return mux, nil
}
