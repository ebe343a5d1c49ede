package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/matst80/slask-filters/pkg/presentation"
	"github.com/matst80/slask-filters/pkg/types"
)

type recordingTracking struct {
	mu         sync.Mutex
	selections []types.FilterSelection
	mapClicks  []types.QueryParams
	referers   []string
	done       chan struct{}
}

func newRecordingTracking() *recordingTracking {
	return &recordingTracking{done: make(chan struct{}, 8)}
}

func (t *recordingTracking) TrackSession(sessionId int, client types.ClientInfo) {}

func (t *recordingTracking) TrackFilterSelection(sessionId int, selection types.FilterSelection, client types.ClientInfo) {
	t.mu.Lock()
	t.selections = append(t.selections, selection)
	t.referers = append(t.referers, client.Referer)
	t.mu.Unlock()
	t.done <- struct{}{}
}

func (t *recordingTracking) TrackMapIconClick(sessionId int, query types.QueryParams, client types.ClientInfo) {
	t.mu.Lock()
	t.mapClicks = append(t.mapClicks, query)
	t.referers = append(t.referers, client.Referer)
	t.mu.Unlock()
	t.done <- struct{}{}
}

func (t *recordingTracking) Close() error { return nil }

func newTestServer(t *testing.T, trk types.Tracking) http.Handler {
	t.Helper()
	ws := &FilterServer{
		Attributes: types.NewCustomAttributeConfig(&types.CustomAttribute{
			Name:  "category",
			Label: "Category",
			Options: []types.AttributeOption{
				{Key: "smoke", Label: "Smoke sauna"},
				{Key: "wood", Label: "Wooden sauna"},
			},
		}),
		Messages: presentation.DefaultMessages(),
		Tracking: trk,
	}
	h, err := ws.Handler()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return h
}

func get(h http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestFilterBarJsonDesktop(t *testing.T) {
	h := newTestServer(t, nil)
	q := url.Values{
		"listingsAreLoaded": {"true"},
		"resultsCount":      {"5"},
		"searchInProgress":  {"true"},
		"width":             {"1024"},
		"height":            {"768"},
		"query":             {"address=Helsinki&ca_category=smoke"},
	}
	w := get(h, "/api/filter-bar?"+q.Encode(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Layout  string `json:"layout"`
		Summary struct {
			State          string `json:"state"`
			Count          int    `json:"count"`
			Loading        bool   `json:"loading"`
			Message        string `json:"message"`
			LoadingMessage string `json:"loadingMessage"`
		} `json:"summary"`
		CategoryFilter *struct {
			Selected string `json:"selected"`
			Options  []struct {
				Key      string `json:"key"`
				Selected bool   `json:"selected"`
				Href     string `json:"href"`
			} `json:"options"`
		} `json:"categoryFilter"`
		MapIcon *struct{} `json:"mapIcon"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected json, got %v: %s", err, w.Body.String())
	}
	if body.Layout != "desktop" {
		t.Errorf("Expected desktop, got %s", body.Layout)
	}
	if body.Summary.State != "found" || body.Summary.Count != 5 || !body.Summary.Loading {
		t.Errorf("Expected found 5 while loading, got %+v", body.Summary)
	}
	if body.CategoryFilter == nil || body.CategoryFilter.Selected != "smoke" {
		t.Fatalf("Expected category filter with smoke selected, got %+v", body.CategoryFilter)
	}
	if body.MapIcon != nil {
		t.Errorf("Expected no map icon on desktop")
	}
}

func TestFilterBarJsonMobileFromClientHint(t *testing.T) {
	h := newTestServer(t, nil)
	w := get(h, "/api/filter-bar?listingsAreLoaded=true&resultsCount=0", map[string]string{"Sec-CH-Viewport-Width": "375"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected json, got %v", err)
	}
	if body["layout"] != "mobile" {
		t.Errorf("Expected mobile, got %v", body["layout"])
	}
	if _, ok := body["categoryFilter"]; ok {
		t.Errorf("Expected no category filter on mobile")
	}
	if _, ok := body["mapIcon"]; !ok {
		t.Errorf("Expected a map icon on mobile")
	}
}

func TestFilterBarMissingViewport(t *testing.T) {
	h := newTestServer(t, nil)
	w := get(h, "/api/filter-bar?listingsAreLoaded=true", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	w = get(h, "/filter-bar?width=800&resultsCount=-1", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative count, got %d", w.Code)
	}
}

func TestGetFilterBarRequestMissingViewport(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/filter-bar", nil)
	err := GetFilterBarRequest(r, &FilterBarRequest{})
	if !errors.Is(err, ErrMissingViewport) {
		t.Errorf("Expected ErrMissingViewport, got %v", err)
	}
}

func TestFilterBarHtml(t *testing.T) {
	h := newTestServer(t, nil)
	w := get(h, "/filter-bar?width=1200&listingsAreLoaded=true&resultsCount=0", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected html, got %s", w.Header().Get("Content-Type"))
	}
	html := w.Body.String()
	if !strings.Contains(html, "Could not find any listings") || !strings.Contains(html, "Smoke sauna") {
		t.Errorf("Unexpected html %s", html)
	}
}

func TestSelectFilterRedirects(t *testing.T) {
	trk := newRecordingTracking()
	h := newTestServer(t, trk)
	q := url.Values{
		"attribute": {"category"},
		"option":    {"wood"},
		"query":     {"address=Helsinki&ca_category=smoke"},
	}
	w := get(h, "/s/filters/select?"+q.Encode(), map[string]string{"Referer": "https://example.com/s?address=Helsinki"})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/s?address=Helsinki&ca_category=wood" {
		t.Errorf("Unexpected location %s", got)
	}
	<-trk.done
	trk.mu.Lock()
	defer trk.mu.Unlock()
	if len(trk.selections) != 1 || trk.selections[0].Option != "wood" {
		t.Errorf("Expected one tracked selection, got %+v", trk.selections)
	}
	if len(trk.referers) != 1 || trk.referers[0] != "https://example.com/s?address=Helsinki" {
		t.Errorf("Expected referer captured from the request, got %v", trk.referers)
	}
}

func TestSelectFilterClears(t *testing.T) {
	h := newTestServer(t, nil)
	q := url.Values{
		"attribute": {"category"},
		"query":     {"ca_category=smoke&address=Helsinki"},
	}
	w := get(h, "/s/filters/select?"+q.Encode(), nil)
	if got := w.Header().Get("Location"); got != "/s?address=Helsinki" {
		t.Errorf("Unexpected location %s", got)
	}
}

func TestSelectFilterUnknownAttribute(t *testing.T) {
	h := newTestServer(t, nil)
	w := get(h, "/s/filters/select?attribute=amenities&option=pool", nil)
	if got := w.Header().Get("Location"); got != "/s?ca_amenities=pool" {
		t.Errorf("Unexpected location %s", got)
	}
}

func TestSelectFilterRequiresAttribute(t *testing.T) {
	h := newTestServer(t, nil)
	w := get(h, "/s/filters/select?option=pool", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestMapIconRedirectsToMap(t *testing.T) {
	trk := newRecordingTracking()
	h := newTestServer(t, trk)
	w := get(h, "/s/filters/map?query="+url.QueryEscape("ca_category=smoke"), map[string]string{"Referer": "https://example.com/s"})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/s/map?ca_category=smoke" {
		t.Errorf("Unexpected location %s", got)
	}
	<-trk.done
	trk.mu.Lock()
	defer trk.mu.Unlock()
	if len(trk.mapClicks) != 1 || trk.mapClicks[0]["ca_category"] != "smoke" {
		t.Errorf("Expected one tracked map click, got %+v", trk.mapClicks)
	}
	if len(trk.referers) != 1 || trk.referers[0] != "https://example.com/s" {
		t.Errorf("Expected referer captured from the request, got %v", trk.referers)
	}
}

func TestFilterRoutesOnlyAnswerGet(t *testing.T) {
	h := newTestServer(t, nil)
	for _, target := range []string{
		"/api/filter-bar?width=1024",
		"/filter-bar?width=1024",
		"/s/filters/select?attribute=category&option=wood",
		"/s/filters/map",
	} {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", method, target, w.Code)
			}
		}

		r := httptest.NewRequest(http.MethodOptions, target, nil)
		r.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusAccepted {
			t.Errorf("Expected 202 for OPTIONS %s, got %d", target, w.Code)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "https://example.com" {
			t.Errorf("Expected CORS headers for OPTIONS %s", target)
		}
	}
}

func TestDecodeAttributes(t *testing.T) {
	attributes, err := decodeAttributes([]byte(`[{"name":"category","label":"Category","options":[{"key":"smoke","label":"Smoke sauna"}]}]`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(attributes) != 1 || attributes[0].Name != "category" || !attributes[0].HasOption("smoke") {
		t.Errorf("Unexpected attributes %+v", attributes)
	}
	if _, err = decodeAttributes([]byte(`{`)); err == nil {
		t.Errorf("Expected an error for broken json")
	}
}
