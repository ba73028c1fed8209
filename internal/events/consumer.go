package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// ProductEventType represents the type of catalog event.
type ProductEventType string

const (
	ProductEventUpdated      ProductEventType = "product.updated"
	ProductEventPriceChanged ProductEventType = "product.price_changed"
)

// ProductEvent is a catalog change notification.
type ProductEvent struct {
	ID        string           `json:"id"`
	Type      ProductEventType `json:"type"`
	ProductID string           `json:"product_id"`
	Timestamp time.Time        `json:"timestamp"`
}

// Enqueuer schedules product refreshes.
type Enqueuer interface {
	Enqueue(productID string) bool
}

const defaultRetryBackoff = time.Second

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// ProductConsumer turns catalog change events into product cache refreshes.
type ProductConsumer struct {
	reader    messageReader
	refresher Enqueuer
	logger    *slog.Logger

	// pause between failed reads, defaultRetryBackoff when zero
	retryBackoff time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewProductConsumer creates a consumer for the topic. Without brokers the consumer is disabled.
func NewProductConsumer(brokers []string, topic, groupID string, refresher Enqueuer, logger *slog.Logger) *ProductConsumer {
	c := &ProductConsumer{
		refresher: refresher,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
	if len(brokers) == 0 {
		return c
	}
	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
	return c
}

// Enabled reports whether a broker connection is configured.
func (c *ProductConsumer) Enabled() bool {
	return c.reader != nil
}

// Start consumes events until ctx is done or Stop is called.
func (c *ProductConsumer) Start(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	c.logger.Info("starting catalog event consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("catalog event consumer stopped")
			return nil
		default:
		}

		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if c.stopped() || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("failed to read message", slog.String("error", err.Error()))
			if !c.waitRetry(ctx) {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return nil
			}
			continue
		}

		c.handleMessage(msg)
	}
}

// Stop stops the consumer and closes the reader.
func (c *ProductConsumer) Stop() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stopCh)
		if c.reader != nil {
			err = c.reader.Close()
		}
	})
	return err
}

// waitRetry sleeps before the next read. It returns false when the consumer should exit.
func (c *ProductConsumer) waitRetry(ctx context.Context) bool {
	backoff := c.retryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	case <-c.stopCh:
		return false
	}
}

func (c *ProductConsumer) stopped() bool {
	select {
	case <-c.stopCh:
		return true
	default:
		return false
	}
}

func (c *ProductConsumer) handleMessage(msg kafka.Message) {
	c.logger.Debug("received message",
		slog.String("topic", msg.Topic),
		slog.Int("partition", msg.Partition),
		slog.Int64("offset", msg.Offset),
	)

	var event ProductEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("failed to unmarshal event", slog.String("error", err.Error()))
		return
	}

	switch event.Type {
	case ProductEventUpdated, ProductEventPriceChanged:
	default:
		c.logger.Debug("ignoring unknown event type", slog.String("type", string(event.Type)))
		return
	}

	productID := event.ProductID
	if productID == "" {
		productID = string(msg.Key)
	}
	if productID == "" {
		c.logger.Warn("catalog event without product id", slog.String("event_id", event.ID))
		return
	}

	if !c.refresher.Enqueue(productID) {
		c.logger.Warn("product refresh not scheduled", slog.String("product_id", productID))
	}
}
