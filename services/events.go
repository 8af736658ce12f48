package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yeremiapane/geprek-app/hub"
	"github.com/yeremiapane/geprek-app/utils"
)

type Event struct {
	Type       string      `json:"type"`
	EntityID   uint        `json:"entity_id"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewEvent(eventType string, id uint, data interface{}) Event {
	return Event{Type: eventType, EntityID: id, Data: data, OccurredAt: time.Now()}
}

// Publisher dipanggil setelah commit. Kegagalan cukup dilog,
// tidak pernah menggagalkan request.
type Publisher interface {
	Publish(ctx context.Context, evt Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

// HubPublisher -> broadcast websocket ke dashboard staff
type HubPublisher struct {
	Hub *hub.Hub
}

func (p HubPublisher) Publish(_ context.Context, evt Event) {
	if p.Hub == nil {
		return
	}
	p.Hub.Broadcast(hub.Message{Event: evt.Type, Data: evt.Data}, hub.AudienceFor(evt.Type)...)
}

// MessageWriter dipenuhi oleh *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher menulis event dengan key = id entitas agar urutan per entitas terjaga
type KafkaPublisher struct {
	Writer MessageWriter
}

func (p KafkaPublisher) Publish(ctx context.Context, evt Event) {
	if p.Writer == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to encode event %s: %v", evt.Type, err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(evt.EntityID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
		Time: evt.OccurredAt,
	}
	if err := p.Writer.WriteMessages(ctx, msg); err != nil {
		utils.ErrorLogger.Errorf("Failed to publish event %s #%d to kafka: %v", evt.Type, evt.EntityID, err)
	}
}

type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, evt Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ctx, evt)
		}
	}
}
