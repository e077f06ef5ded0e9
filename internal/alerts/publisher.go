package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/floodwatch/internal/models"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher delivers high-risk assessment alerts to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, assessment *models.Assessment) error
	Close() error
}

// KafkaPublisher produces alert messages to a Kafka topic.
type KafkaPublisher struct {
	writer *kafkago.Writer
	log    *slog.Logger
}

// NewKafkaPublisher creates a Kafka producer for the alert topic.
func NewKafkaPublisher(brokers []string, topic string, log *slog.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &KafkaPublisher{writer: w, log: log}
}

// Publish serializes an assessment and writes it to the alert topic.
// Messages are keyed by location so alerts for one place stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, assessment *models.Assessment) error {
	msg, err := serializeToMessage(assessment)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write alert message: %w", err)
	}
	p.log.Info("published flood alert",
		"latitude", assessment.Location.Latitude,
		"longitude", assessment.Location.Longitude,
		"score", assessment.OverallScore,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an assessment into a Kafka message.
func serializeToMessage(assessment *models.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(assessment)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	key := fmt.Sprintf("%.4f,%.4f", assessment.Location.Latitude, assessment.Location.Longitude)
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(assessment.Level)},
			{Key: "created_at", Value: []byte(assessment.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
