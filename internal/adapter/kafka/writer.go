// Package kafka publishes readings and alerts to Kafka topics.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/aquasentinel/aquasentinel/internal/observability"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// Default topic names.
const (
	DefaultReadingsTopic = "water-quality-readings"
	DefaultAlertsTopic   = "water-quality-alerts"
)

// Config holds configuration for the Kafka writer.
type Config struct {
	Brokers       []string
	ReadingsTopic string
	AlertsTopic   string

	// BatchTimeout bounds how long the writer buffers before flushing.
	// Default: 100ms
	BatchTimeout time.Duration
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces reading and alert messages.
type Writer struct {
	readings messageWriter
	alerts   messageWriter
	topics   [2]string
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// NewWriter creates producers for the readings and alerts topics.
func NewWriter(cfg Config, logger zerolog.Logger, metrics *observability.Metrics) (*Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if cfg.ReadingsTopic == "" {
		cfg.ReadingsTopic = DefaultReadingsTopic
	}
	if cfg.AlertsTopic == "" {
		cfg.AlertsTopic = DefaultAlertsTopic
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 100 * time.Millisecond
	}

	newWriter := func(topic string) *kafkago.Writer {
		return &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
			BatchTimeout: cfg.BatchTimeout,
		}
	}
	return newWithWriters(newWriter(cfg.ReadingsTopic), newWriter(cfg.AlertsTopic),
		cfg.ReadingsTopic, cfg.AlertsTopic, logger, metrics), nil
}

func newWithWriters(readings, alerts messageWriter, readingsTopic, alertsTopic string, logger zerolog.Logger, metrics *observability.Metrics) *Writer {
	return &Writer{
		readings: readings,
		alerts:   alerts,
		topics:   [2]string{readingsTopic, alertsTopic},
		logger:   logger,
		metrics:  metrics,
	}
}

// Publish writes every reading to the readings topic and every reading with
// alerts to the alerts topic, one WriteMessages call per topic.
func (w *Writer) Publish(ctx context.Context, readings []*waterquality.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	readingMsgs := make([]kafkago.Message, 0, len(readings))
	var alertMsgs []kafkago.Message
	for _, r := range readings {
		msg, err := serializeReading(r)
		if err != nil {
			return err
		}
		readingMsgs = append(readingMsgs, msg)

		if r.AlertCount() > 0 {
			amsg, err := serializeAlerts(r)
			if err != nil {
				return err
			}
			alertMsgs = append(alertMsgs, amsg)
		}
	}

	var errs []error
	if err := w.write(ctx, w.readings, w.topics[0], readingMsgs); err != nil {
		errs = append(errs, err)
	}
	if err := w.write(ctx, w.alerts, w.topics[1], alertMsgs); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (w *Writer) write(ctx context.Context, mw messageWriter, topic string, msgs []kafkago.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if err := mw.WriteMessages(ctx, msgs...); err != nil {
		if w.metrics != nil {
			w.metrics.PublishErrors.WithLabelValues(topic).Inc()
		}
		w.logger.Error().Err(err).Str("topic", topic).Int("messages", len(msgs)).Msg("kafka write failed")
		return fmt.Errorf("writing %d messages to %s: %w", len(msgs), topic, err)
	}
	if w.metrics != nil {
		w.metrics.PublishedReadings.WithLabelValues(topic).Add(float64(len(msgs)))
	}
	return nil
}

// Close flushes and closes both producers.
func (w *Writer) Close() error {
	return errors.Join(w.readings.Close(), w.alerts.Close())
}

// alertEnvelope is the payload of an alerts topic message.
type alertEnvelope struct {
	StationID string               `json:"station_id"`
	Timestamp time.Time            `json:"timestamp"`
	WQI       float64              `json:"wqi"`
	Status    waterquality.Status  `json:"status"`
	Alerts    []waterquality.Alert `json:"alerts"`
}

func serializeReading(r *waterquality.Reading) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize reading %s: %w", r.StationID, err)
	}
	return kafkago.Message{
		Key:     []byte(r.StationID),
		Value:   data,
		Time:    r.Timestamp,
		Headers: headers(r),
	}, nil
}

func serializeAlerts(r *waterquality.Reading) (kafkago.Message, error) {
	data, err := json.Marshal(alertEnvelope{
		StationID: r.StationID,
		Timestamp: r.Timestamp,
		WQI:       r.WQI,
		Status:    r.Status,
		Alerts:    r.Alerts,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alerts %s: %w", r.StationID, err)
	}
	return kafkago.Message{
		Key:     []byte(r.StationID),
		Value:   data,
		Time:    r.Timestamp,
		Headers: headers(r),
	}, nil
}

func headers(r *waterquality.Reading) []kafkago.Header {
	return []kafkago.Header{
		{Key: "season", Value: []byte(r.Season.String())},
		{Key: "status", Value: []byte(r.Status.String())},
		{Key: "alert_count", Value: []byte(strconv.Itoa(r.AlertCount()))},
	}
}
