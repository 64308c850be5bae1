// Package event publishes cart domain events.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

// Event types, also used as topic suffixes.
const (
	TypeCartUpdated = "cart.updated"
	TypeCartCleared = "cart.cleared"
)

var (
	TopicCartUpdated = pkgkafka.Topic("cart", "updated")
	TopicCartCleared = pkgkafka.Topic("cart", "cleared")
)

const (
	AggregateTypeCart = "cart"
	Source            = "storefront"
)

// CartUpdatedData is the payload of a cart.updated event.
type CartUpdatedData struct {
	SessionID  string         `json:"session_id"`
	Items      []CartItemData `json:"items"`
	TotalCount int            `json:"total_count"`
	TotalCents int64          `json:"total_cents"`
}

// CartItemData is one line within a cart event.
type CartItemData struct {
	ProductID int    `json:"product_id"`
	Title     string `json:"title"`
	Platform  string `json:"platform"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload of a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// Publisher emits cart events.
type Publisher interface {
	PublishCartUpdated(ctx context.Context, sessionID string, cart domain.CartSnapshot) error
	PublishCartCleared(ctx context.Context, sessionID string) error
}

// Sink is where envelopes go; *pkgkafka.Producer satisfies it.
type Sink interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes cart events to a Sink.
type Producer struct {
	sink   Sink
	logger *slog.Logger
}

var _ Publisher = (*Producer)(nil)

// NewProducer creates a producer writing to sink.
func NewProducer(sink Sink, logger *slog.Logger) *Producer {
	return &Producer{sink: sink, logger: logger}
}

// PublishCartUpdated publishes the full cart state after a mutation.
func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, cart domain.CartSnapshot) error {
	items := make([]CartItemData, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = CartItemData{
			ProductID: line.Product.ID,
			Title:     line.Product.Title,
			Platform:  line.Product.Platform.String(),
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		}
	}

	data := CartUpdatedData{
		SessionID:  sessionID,
		Items:      items,
		TotalCount: cart.TotalCount,
		TotalCents: cart.TotalCents,
	}

	if err := p.publish(ctx, TopicCartUpdated, TypeCartUpdated, sessionID, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", sessionID),
		slog.Int("total_count", cart.TotalCount),
	)
	return nil
}

// PublishCartCleared publishes that the session emptied its cart.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	if err := p.publish(ctx, TopicCartCleared, TypeCartCleared, sessionID, CartClearedData{SessionID: sessionID}); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)
	return nil
}

func (p *Producer) publish(ctx context.Context, topic, eventType, sessionID string, data any) error {
	evt, err := pkgkafka.NewEvent(eventType, sessionID, AggregateTypeCart, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.sink.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return nil
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) PublishCartUpdated(context.Context, string, domain.CartSnapshot) error {
	return nil
}

func (NoopPublisher) PublishCartCleared(context.Context, string) error {
	return nil
}
