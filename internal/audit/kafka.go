package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaForwarder publishes audit events to a Kafka topic so compliance
// tooling can consume the trail independently of this service's database.
// Events are keyed by resource id to keep one record's trail ordered within a
// partition.
type KafkaForwarder struct {
	client *kgo.Client
	topic  string
}

func NewKafkaForwarder(brokers []string, topic string) (*KafkaForwarder, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaForwarder{client: client, topic: topic}, nil
}

func (f *KafkaForwarder) Forward(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: f.topic,
		Key:   []byte(event.ResourceID),
		Value: payload,
	}
	if err := f.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (f *KafkaForwarder) Close() {
	f.client.Close()
}
