package tracking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-filters/pkg/messaging"
	"github.com/matst80/slask-filters/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingPrefix = "global"

const (
	SessionEvent         uint16 = 0
	FilterSelectionEvent uint16 = 10
	MapIconClickEvent    uint16 = 11
)

type RabbitTracking struct {
	country    string
	connection *amqp.Connection
}

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	ret := RabbitTracking{
		country: country,
	}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, trackingPrefix, messaging.TrackingTopic)
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) send(data any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return messaging.SendChange(ctx, t.connection, trackingPrefix, messaging.TrackingTopic, data)
}

type BaseEvent struct {
	Id        string `json:"id"`
	SessionId int    `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

func newBaseEvent(event uint16, sessionId int, country string) *BaseEvent {
	return &BaseEvent{
		Id:        uuid.New().String(),
		Event:     event,
		SessionId: sessionId,
		Country:   country,
		Context:   "b2c",
	}
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type FilterSelectionData struct {
	*BaseEvent
	types.FilterSelection
	Referer string `json:"referer,omitempty"`
}

type MapIconClickData struct {
	*BaseEvent
	Query   string `json:"query"`
	Referer string `json:"referer,omitempty"`
}

func newSession(country string, sessionId int, client types.ClientInfo) Session {
	return Session{
		BaseEvent:    newBaseEvent(SessionEvent, sessionId, country),
		Language:     client.Language,
		UserAgent:    client.UserAgent,
		Ip:           client.Ip,
		PragmaHeader: client.Pragma,
	}
}

func (rt *RabbitTracking) TrackSession(sessionId int, client types.ClientInfo) {
	if err := rt.send(newSession(rt.country, sessionId, client)); err != nil {
		log.Println("Error sending session event: ", err)
	}
}

func (rt *RabbitTracking) TrackFilterSelection(sessionId int, selection types.FilterSelection, client types.ClientInfo) {
	err := rt.send(&FilterSelectionData{
		BaseEvent:       newBaseEvent(FilterSelectionEvent, sessionId, rt.country),
		FilterSelection: selection,
		Referer:         client.Referer,
	})
	if err != nil {
		log.Println("Error sending filter selection event: ", err)
	}
}

func (rt *RabbitTracking) TrackMapIconClick(sessionId int, query types.QueryParams, client types.ClientInfo) {
	err := rt.send(&MapIconClickData{
		BaseEvent: newBaseEvent(MapIconClickEvent, sessionId, rt.country),
		Query:     query.Encode(),
		Referer:   client.Referer,
	})
	if err != nil {
		log.Println("Error sending map icon event: ", err)
	}
}
