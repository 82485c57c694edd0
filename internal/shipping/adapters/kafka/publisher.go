package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher writes new-shipping announcements to Kafka. The message value
// is the bare shipping id, keyed by the same id so one shipping always
// lands on one partition.
type Publisher struct {
	writer  *kafka.Writer
	metrics *Metrics
}

func NewPublisher(brokers []string, topic string, metrics *Metrics) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		metrics: metrics,
	}
}

func (p *Publisher) SendNewShipping(ctx context.Context, shippingID string) error {
	start := time.Now()
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(shippingID),
		Value: []byte(shippingID),
		Time:  time.Now(),
	})

	if p.metrics != nil {
		p.metrics.RecordPublish(ctx, p.writer.Topic, time.Since(start).Seconds(), err == nil)
	}

	return err
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
