package types

import (
	"net/http"
)

type FilterSelection struct {
	Attribute string `json:"attribute"`
	Option    string `json:"option,omitempty"`
	Cleared   bool   `json:"cleared"`
	Location  string `json:"location"`
}

// ClientInfo is the part of a request tracking needs, read before the
// request is done.
type ClientInfo struct {
	Ip        string
	UserAgent string
	Language  string
	Referer   string
	Pragma    string
}

func ClientInfoFromRequest(r *http.Request) ClientInfo {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ClientInfo{
		Ip:        ip,
		UserAgent: r.UserAgent(),
		Language:  r.Header.Get("Accept-Language"),
		Referer:   r.Header.Get("Referer"),
		Pragma:    r.Header.Get("Pragma"),
	}
}

type Tracking interface {
	TrackSession(sessionId int, client ClientInfo)
	TrackFilterSelection(sessionId int, selection FilterSelection, client ClientInfo)
	TrackMapIconClick(sessionId int, query QueryParams, client ClientInfo)
	Close() error
}
