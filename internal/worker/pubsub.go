package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/observability"
)

// Control commands carried on the Pub/Sub channel.
const (
	CommandStart   = "start"
	CommandStop    = "stop"
	CommandRefresh = "refresh"
	CommandStatus  = "status"
)

// ErrUnknownCommand is returned for control messages with an unrecognised command.
var ErrUnknownCommand = errors.New("unknown control command")

// ControlMessage is the payload of a simulation control message.
type ControlMessage struct {
	Command         string `json:"command"`
	IntervalSeconds int    `json:"interval_seconds,omitempty"`
}

// Controller is the part of the scheduler driven by control messages.
type Controller interface {
	Start(ctx context.Context, interval time.Duration) (RefreshResult, error)
	Stop() error
	Refresh(ctx context.Context) RefreshResult
	Status() Status
}

// PubSubHandler applies control messages received from a subscription.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	controller       Controller
	logger           zerolog.Logger
	metrics          *observability.Metrics
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Controller       Controller
	Logger           zerolog.Logger
	Metrics          *observability.Metrics
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Control messages are applied one at a time.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 1
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	h := newControlHandler(cfg.Controller, cfg.Logger, cfg.Metrics)
	h.client = client
	h.subscriber = subscriber
	h.subscriptionName = cfg.SubscriptionName
	return h, nil
}

func newControlHandler(c Controller, logger zerolog.Logger, metrics *observability.Metrics) *PubSubHandler {
	return &PubSubHandler{controller: c, logger: logger, metrics: metrics}
}

// Start receives messages until ctx is cancelled.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub control handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	if err := h.apply(ctx, msg.Data); err != nil {
		logger.Error().Err(err).Msg("control message rejected")
	}
	// Malformed and unknown messages would fail again on redelivery.
	msg.Ack()
}

// apply decodes and executes one control message. Starting a running
// simulation or stopping an idle one is not an error.
func (h *PubSubHandler) apply(ctx context.Context, data []byte) error {
	var cm ControlMessage
	if err := json.Unmarshal(data, &cm); err != nil {
		h.count("invalid", "error")
		return fmt.Errorf("decoding control message: %w", err)
	}

	start := time.Now()
	var err error
	switch cm.Command {
	case CommandStart:
		var result RefreshResult
		result, err = h.controller.Start(ctx, time.Duration(cm.IntervalSeconds)*time.Second)
		if err == nil {
			h.logger.Info().Int("stations_updated", result.StationsUpdated).Msg("simulation started by control message")
		}
	case CommandStop:
		err = h.controller.Stop()
	case CommandRefresh:
		result := h.controller.Refresh(ctx)
		h.logger.Info().
			Time("timestamp", result.Timestamp).
			Int("stations_updated", result.StationsUpdated).
			Int("failed", result.Failed).
			Msg("refresh requested by control message")
	case CommandStatus:
		st := h.controller.Status()
		h.logger.Info().
			Str("state", st.State.String()).
			Int("stations", st.Stations).
			Int64("total_ticks", st.Metrics.TotalTicks).
			Msg("simulation status")
	default:
		h.count("unknown", "error")
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cm.Command)
	}

	if errors.Is(err, ErrAlreadyRunning) || errors.Is(err, ErrNotRunning) {
		h.logger.Info().Str("command", cm.Command).Err(err).Msg("control message had no effect")
		h.count(cm.Command, "noop")
		return nil
	}
	if err != nil {
		h.count(cm.Command, "error")
		return err
	}

	h.count(cm.Command, "ok")
	h.logger.Debug().Str("command", cm.Command).Dur("duration", time.Since(start)).Msg("control message applied")
	return nil
}

func (h *PubSubHandler) count(command, outcome string) {
	if h.metrics != nil {
		h.metrics.ControlMessagesTotal.WithLabelValues(command, outcome).Inc()
	}
}

// PublishControl publishes a control message to a topic and waits for the
// server to accept it. It returns the server assigned message id.
func PublishControl(ctx context.Context, client *pubsub.Client, topic string, cm ControlMessage) (string, error) {
	switch cm.Command {
	case CommandStart, CommandStop, CommandRefresh, CommandStatus:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cm.Command)
	}

	data, err := json.Marshal(cm)
	if err != nil {
		return "", fmt.Errorf("encoding control message: %w", err)
	}

	publisher := client.Publisher(topic)
	defer publisher.Stop()

	id, err := publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"command": cm.Command},
	}).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publishing control message: %w", err)
	}
	return id, nil
}
