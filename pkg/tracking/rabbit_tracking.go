package tracking

import (
	"log"
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/messaging"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
)

type RabbitTracking struct {
	country    string
	connection *amqp.Connection
}

const trackingTopic = "tracking"

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	ret := RabbitTracking{
		connection: nil,
		country:    country,
	}
	err := ret.connect(url)
	if err != nil {
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
	return messaging.DefineTopic(ch, "global", trackingTopic)
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) send(data any) error {
	return messaging.SendChange(t.connection, "global", trackingTopic, data)
}

type BaseEvent struct {
	SessionId int    `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Event     uint16 `json:"event"`
}

type SessionEvent struct {
	*BaseEvent
	UserAgent string `json:"user_agent,omitempty"`
	Ip        string `json:"ip,omitempty"`
	Language  string `json:"language,omitempty"`
}

func (t *RabbitTracking) TrackSession(sessionId int, r *http.Request) {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}

	err := t.send(SessionEvent{
		BaseEvent: &BaseEvent{Event: 0, SessionId: sessionId, Country: t.country},
		Language:  r.Header.Get("Accept-Language"),
		UserAgent: r.UserAgent(),
		Ip:        ip,
	})
	if err != nil {
		log.Println("Error sending session event: ", err)
	}
}

type FilterEvent struct {
	*BaseEvent
	*resolve.Request
	NumberOfResults int    `json:"noi"`
	Referer         string `json:"referer,omitempty"`
}

func (t *RabbitTracking) TrackFilter(sessionId int, req *resolve.Request, resultLen int, r *http.Request) {
	err := t.send(&FilterEvent{
		BaseEvent:       &BaseEvent{Event: 1, SessionId: sessionId, Country: t.country},
		Request:         req,
		NumberOfResults: resultLen,
		Referer:         r.Header.Get("Referer"),
	})
	if err != nil {
		log.Println("Error sending filter event: ", err)
	}
}

type ProductViewEvent struct {
	*BaseEvent
	Product uint `json:"product"`
}

func (t *RabbitTracking) TrackProductView(sessionId int, productId uint) {
	err := t.send(&ProductViewEvent{
		BaseEvent: &BaseEvent{Event: 2, SessionId: sessionId, Country: t.country},
		Product:   productId,
	})
	if err != nil {
		log.Println("Error sending product view event: ", err)
	}
}
