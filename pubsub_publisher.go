package messagecleanup

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
)

// Publisher はメッセージをトピックへ発行します
type Publisher interface {
	Publish(ctx context.Context, topic string, msg *pubsub.Message) (string, error)
}

// PubSubPublisher はGoogle Pub/Subを使った Publisher 実装です
type PubSubPublisher struct {
	client *pubsub.Client
}

func NewPubSubPublisher(ctx context.Context, projectID string) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

func (p *PubSubPublisher) Publish(ctx context.Context, topic string, msg *pubsub.Message) (string, error) {
	t := p.client.Topic(topic)
	defer t.Stop()

	id, err := t.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}

// SweepPublisher はスケジュールを待たずに掃除を依頼します。
// CleanupExpiredMessages と同じトピックに発行します。
type SweepPublisher struct {
	publisher Publisher
	topic     string
}

func NewSweepPublisher(publisher Publisher, topic string) *SweepPublisher {
	return &SweepPublisher{publisher: publisher, topic: topic}
}

// Publish は発行元を source 属性に付けて掃除リクエストを発行し、メッセージIDを返します
func (s *SweepPublisher) Publish(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("source must not be empty")
	}

	id, err := s.publisher.Publish(ctx, s.topic, &pubsub.Message{
		Data:       []byte("{}"),
		Attributes: map[string]string{SourceAttribute: source},
	})
	if err != nil {
		return "", err
	}

	WithField("source", source).Infof("Published sweep request %s to %s", id, s.topic)
	return id, nil
}
