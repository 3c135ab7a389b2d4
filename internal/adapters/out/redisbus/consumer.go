package redisbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"parcelhub/internal/core/events"

	"github.com/redis/go-redis/v9"
)

const (
	defaultBatchSize     = 16
	defaultBlockTimeout  = 5 * time.Second
	defaultMinIdle       = 30 * time.Second
	defaultMaxDeliveries = 5

	// DLQSuffix is appended to a topic to name its dead letter stream.
	DLQSuffix = ".dlq"
)

// Dispatcher routes a delivered envelope to its handlers.
type Dispatcher interface {
	Dispatch(ctx context.Context, envelope events.Envelope) error
}

// Consumer reads envelopes from topic streams through a consumer group and
// hands them to the dispatcher. Messages are acknowledged only after the
// dispatcher succeeds; failed messages stay pending and are reclaimed until
// the delivery budget is spent, then moved to the topic's dead letter
// stream.
type Consumer struct {
	client     *redis.Client
	dispatcher Dispatcher
	group      string
	consumer   string
	topics     []string
	logger     *slog.Logger

	batchSize     int64
	blockTimeout  time.Duration
	minIdle       time.Duration
	maxDeliveries int64
}

// NewConsumer creates a consumer for the topics under the given group name.
func NewConsumer(
	client *redis.Client,
	dispatcher Dispatcher,
	group, consumer string,
	topics []string,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{
		client:        client,
		dispatcher:    dispatcher,
		group:         group,
		consumer:      consumer,
		topics:        topics,
		logger:        logger.With("component", "redis_consumer", "group", group),
		batchSize:     defaultBatchSize,
		blockTimeout:  defaultBlockTimeout,
		minIdle:       defaultMinIdle,
		maxDeliveries: defaultMaxDeliveries,
	}
}

// Run consumes until the context is canceled. It returns the context error
// on shutdown and any unrecoverable Redis error immediately.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroups(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := c.reclaim(ctx); err != nil {
			return err
		}
		if err := c.poll(ctx); err != nil {
			return err
		}
	}
}

// ensureGroups creates the consumer group on every topic stream, creating
// the streams as needed. Existing groups are left untouched.
func (c *Consumer) ensureGroups(ctx context.Context) error {
	for _, topic := range c.topics {
		err := c.client.XGroupCreateMkStream(ctx, topic, c.group, "0").Err()
		if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
			return fmt.Errorf("create group %s on %s: %w", c.group, topic, err)
		}
	}
	return nil
}

// poll reads one batch of new messages across all topics and dispatches
// them.
func (c *Consumer) poll(ctx context.Context) error {
	streams := make([]string, 0, len(c.topics)*2)
	streams = append(streams, c.topics...)
	for range c.topics {
		streams = append(streams, ">")
	}

	result, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  streams,
		Count:    c.batchSize,
		Block:    c.blockTimeout,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}

	for _, stream := range result {
		for _, message := range stream.Messages {
			c.process(ctx, stream.Stream, message)
		}
	}
	return nil
}

// process dispatches one message and acknowledges it on success. On failure
// the message stays pending for reclaim.
func (c *Consumer) process(ctx context.Context, topic string, message redis.XMessage) {
	envelope, err := envelopeFromValues(topic, message.Values)
	if err != nil {
		c.logger.ErrorContext(ctx, "Malformed envelope, moving to dead letter stream",
			"topic", topic, "messageId", message.ID, "error", err)
		c.deadLetter(ctx, topic, message)
		return
	}

	if err := c.dispatcher.Dispatch(ctx, envelope); err != nil {
		c.logger.ErrorContext(ctx, "Dispatch failed, message stays pending",
			"topic", topic, "messageId", message.ID, "eventId", envelope.EventID, "error", err)
		return
	}

	if err := c.client.XAck(ctx, topic, c.group, message.ID).Err(); err != nil {
		c.logger.ErrorContext(ctx, "Ack failed",
			"topic", topic, "messageId", message.ID, "error", err)
	}
}

// reclaim takes over messages other consumers left pending too long. A
// message past its delivery budget goes to the dead letter stream instead
// of being retried again.
func (c *Consumer) reclaim(ctx context.Context) error {
	for _, topic := range c.topics {
		pending, err := c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
			Stream: topic,
			Group:  c.group,
			Start:  "-",
			End:    "+",
			Count:  c.batchSize,
			Idle:   c.minIdle,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return err
		}

		for _, entry := range pending {
			if entry.RetryCount >= c.maxDeliveries {
				c.deadLetterByID(ctx, topic, entry.ID)
				continue
			}

			claimed, err := c.client.XClaim(ctx, &redis.XClaimArgs{
				Stream:   topic,
				Group:    c.group,
				Consumer: c.consumer,
				MinIdle:  c.minIdle,
				Messages: []string{entry.ID},
			}).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			for _, message := range claimed {
				c.process(ctx, topic, message)
			}
		}
	}
	return nil
}

// deadLetterByID copies a pending message to the dead letter stream and
// acknowledges the original.
func (c *Consumer) deadLetterByID(ctx context.Context, topic, messageID string) {
	messages, err := c.client.XRangeN(ctx, topic, messageID, messageID, 1).Result()
	if err != nil || len(messages) == 0 {
		c.logger.ErrorContext(ctx, "Dead letter candidate vanished from stream",
			"topic", topic, "messageId", messageID, "error", err)
		_ = c.client.XAck(ctx, topic, c.group, messageID).Err()
		return
	}
	c.deadLetter(ctx, topic, messages[0])
}

func (c *Consumer) deadLetter(ctx context.Context, topic string, message redis.XMessage) {
	err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic + DLQSuffix,
		Values: message.Values,
	}).Err()
	if err != nil {
		c.logger.ErrorContext(ctx, "Dead letter write failed, message stays pending",
			"topic", topic, "messageId", message.ID, "error", err)
		return
	}

	if err := c.client.XAck(ctx, topic, c.group, message.ID).Err(); err != nil {
		c.logger.ErrorContext(ctx, "Ack after dead letter failed",
			"topic", topic, "messageId", message.ID, "error", err)
		return
	}

	c.logger.WarnContext(ctx, "Message moved to dead letter stream",
		"topic", topic, "messageId", message.ID)
}

// envelopeFromValues rebuilds an envelope from its stream fields.
func envelopeFromValues(topic string, values map[string]interface{}) (events.Envelope, error) {
	eventID, ok := values[fieldEventID].(string)
	if !ok || eventID == "" {
		return events.Envelope{}, fmt.Errorf("stream %s: missing %s field", topic, fieldEventID)
	}
	key, _ := values[fieldKey].(string)
	payload, ok := values[fieldPayload].(string)
	if !ok {
		return events.Envelope{}, fmt.Errorf("stream %s: missing %s field", topic, fieldPayload)
	}
	if !json.Valid([]byte(payload)) {
		return events.Envelope{}, fmt.Errorf("stream %s: payload is not valid JSON", topic)
	}

	var occurredAt time.Time
	if raw, ok := values[fieldOccurredAt].(string); ok {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return events.Envelope{}, fmt.Errorf("stream %s: bad %s field: %w", topic, fieldOccurredAt, err)
		}
		occurredAt = parsed
	}

	return events.Envelope{
		EventID:    eventID,
		Topic:      topic,
		Key:        key,
		OccurredAt: occurredAt,
		Payload:    json.RawMessage(payload),
	}, nil
}
