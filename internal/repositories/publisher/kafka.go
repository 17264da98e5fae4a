package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher forwards decoded marketplace events to a kafka topic
type KafkaPublisher struct {
	topic  string
	writer MessageWriter
	log    interfaces.ILogger
	now    func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string, log interfaces.ILogger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return NewKafkaPublisherWithWriter(topic, writer, log)
}

func NewKafkaPublisherWithWriter(topic string, writer MessageWriter, log interfaces.ILogger) *KafkaPublisher {
	return &KafkaPublisher{
		topic:  topic,
		writer: writer,
		log:    log,
		now:    time.Now,
	}
}

type envelope struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
	Time time.Time `json:"time"`
}

type EventData struct {
	Name        string    `json:"name"`
	PropertyID  *string   `json:"propertyId,omitempty"`
	Account     *string   `json:"account,omitempty"`
	AmountWei   *string   `json:"amountWei,omitempty"`
	Rating      uint8     `json:"rating,omitempty"`
	TxHash      string    `json:"txHash"`
	BlockNumber uint64    `json:"blockNumber"`
	LogIndex    uint      `json:"logIndex"`
	ObservedAt  time.Time `json:"observedAt"`
}

func NewEventData(ev estate.Event) EventData {
	data := EventData{
		Name:        string(ev.Name),
		Rating:      ev.Rating,
		TxHash:      ev.TxHash.Hex(),
		BlockNumber: ev.BlockNumber,
		LogIndex:    ev.LogIndex,
		ObservedAt:  ev.ObservedAt,
	}
	if ev.PropertyID != nil {
		s := ev.PropertyID.String()
		data.PropertyID = &s
	}
	if ev.Account != nil {
		s := ev.Account.Hex()
		data.Account = &s
	}
	if ev.Amount != nil {
		s := ev.Amount.String()
		data.AmountWei = &s
	}
	return data
}

// Publish writes the event keyed by property id, so events of one property stay ordered
func (k *KafkaPublisher) Publish(ctx context.Context, ev estate.Event) error {
	msg := envelope{
		Type: "marketplace_event",
		Data: NewEventData(ev),
		Time: k.now(),
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event message: %w", err)
	}

	key := string(ev.Name)
	if ev.PropertyID != nil {
		key = ev.PropertyID.String()
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event to kafka topic %s: %w", k.topic, err)
	}

	k.log.Debugf("published %s, tx %s", ev.Name, msg.Data.TxHash)
	return nil
}

func (k *KafkaPublisher) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}
