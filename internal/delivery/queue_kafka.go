// Package delivery hands sealed routing envelopes to the partner
// delivery channel. The queue only ever sees ciphertext.
package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"haven/internal/crypto/envelope"
	id "haven/pkg/domain"
)

// routingRecord is the wire shape produced onto the delivery topic.
type routingRecord struct {
	RoutingID id.RoutingID               `json:"routingId"`
	SignalID  id.SignalID                `json:"signalId"`
	Sealed    *envelope.EncryptedPayload `json:"sealed"`
	QueuedAt  time.Time                  `json:"queuedAt"`
}

// KafkaQueue produces sealed envelopes onto a Kafka topic consumed by
// the partner delivery workers. Records are keyed by signal ID so
// retries for one signal stay ordered on one partition.
type KafkaQueue struct {
	client *kgo.Client
	topic  string
}

// NewKafkaQueue connects to the brokers and ensures the delivery topic
// exists. Topic creation is idempotent; an already-exists response is
// not an error.
func NewKafkaQueue(ctx context.Context, brokers []string, topic string) (*KafkaQueue, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka queue: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka queue: empty topic")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka queue: connect: %w", err)
	}

	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(ctx, 3, 1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka queue: ensure topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("kafka queue: ensure topic %s: %w", topic, resp.Err)
	}

	return &KafkaQueue{client: client, topic: topic}, nil
}

// QueueRouting publishes the sealed envelope and returns the routing ID
// assigned to this delivery attempt. The produce is synchronous so a
// returned nil error means the partition leader accepted the record.
func (q *KafkaQueue) QueueRouting(ctx context.Context, signalID id.SignalID, sealed *envelope.EncryptedPayload) (id.RoutingID, error) {
	if sealed == nil {
		return id.RoutingID{}, fmt.Errorf("queue routing for %s: nil envelope", signalID)
	}
	routingID := id.NewRoutingID()
	payload, err := json.Marshal(routingRecord{
		RoutingID: routingID,
		SignalID:  signalID,
		Sealed:    sealed,
		QueuedAt:  time.Now().UTC(),
	})
	if err != nil {
		return id.RoutingID{}, fmt.Errorf("queue routing for %s: marshal: %w", signalID, err)
	}

	record := &kgo.Record{
		Topic: q.topic,
		Key:   []byte(signalID),
		Value: payload,
	}
	if err := q.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return id.RoutingID{}, fmt.Errorf("queue routing for %s: produce: %w", signalID, err)
	}
	return routingID, nil
}

// Close flushes buffered records and releases the client.
func (q *KafkaQueue) Close() {
	q.client.Close()
}
