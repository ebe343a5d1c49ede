package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/matst80/slask-filters/pkg/common/jsoncompat"
	"github.com/matst80/slask-filters/pkg/types"
)

// HttpError carries the status code a handler error should be answered with.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func BadRequest(err error) error {
	return &HttpError{Status: http.StatusBadRequest, Err: err}
}

// RespondWithError writes err with its status, 500 when it carries none.
func RespondWithError(w http.ResponseWriter, err error) {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Error(), httpErr.Status)
		return
	}
	log.Printf("Error handling request: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

type HandlerWithSession func(w http.ResponseWriter, r *http.Request, sessionId int) error

func SessionHandler(trk types.Tracking, fn HandlerWithSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		if err := fn(w, r, sessionId); err != nil {
			RespondWithError(w, err)
		}
	}
}

func JsonHandler(trk types.Tracking, fn func(w http.ResponseWriter, r *http.Request, sessionId int, enc jsoncompat.Encoder) error) http.HandlerFunc {
	return SessionHandler(trk, func(w http.ResponseWriter, r *http.Request, sessionId int) error {
		return fn(w, r, sessionId, jsoncompat.NewEncoder(w))
	})
}

func DefaultHeaders(w http.ResponseWriter, r *http.Request, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, no-cache")
	w.Header().Set("Accept-CH", "Sec-CH-Viewport-Width, Viewport-Width")
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
