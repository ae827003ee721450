package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasentinel/aquasentinel/internal/observability"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

type recordingWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func testReading(id string, alerts int) *waterquality.Reading {
	var v waterquality.Values
	v.Set(waterquality.PH, 7.2)
	r := &waterquality.Reading{
		StationID: id,
		Timestamp: time.Date(2024, time.July, 1, 6, 0, 0, 0, time.UTC),
		Season:    waterquality.Monsoon,
		Values:    v,
		WQI:       72.5,
		Status:    waterquality.StatusGood,
	}
	for i := 0; i < alerts; i++ {
		r.Alerts = append(r.Alerts, waterquality.Alert{Parameter: waterquality.Nitrates, Value: 50, Threshold: 45, Severity: waterquality.SeverityWarning})
	}
	return r
}

func TestSerializeReading(t *testing.T) {
	msg, err := serializeReading(testReading("MH-PUN-SW-001", 2))
	require.NoError(t, err)

	assert.Equal(t, []byte("MH-PUN-SW-001"), msg.Key)
	assert.Contains(t, string(msg.Value), `"station_id":"MH-PUN-SW-001"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "season", msg.Headers[0].Key)
	assert.Equal(t, []byte("Monsoon"), msg.Headers[0].Value)
	assert.Equal(t, []byte("Good"), msg.Headers[1].Value)
	assert.Equal(t, []byte("2"), msg.Headers[2].Value)
}

func TestWriter_PublishRoutesAlerts(t *testing.T) {
	readings, alerts := &recordingWriter{}, &recordingWriter{}
	metrics := observability.NewMetricsForTesting()
	w := newWithWriters(readings, alerts, DefaultReadingsTopic, DefaultAlertsTopic, zerolog.Nop(), metrics)

	err := w.Publish(context.Background(), []*waterquality.Reading{
		testReading("MH-PUN-SW-001", 0),
		testReading("MH-PUN-SW-002", 1),
	})
	require.NoError(t, err)

	assert.Len(t, readings.msgs, 2)
	require.Len(t, alerts.msgs, 1)
	assert.Equal(t, []byte("MH-PUN-SW-002"), alerts.msgs[0].Key)
	assert.Contains(t, string(alerts.msgs[0].Value), `"alerts":[`)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.PublishedReadings.WithLabelValues(DefaultReadingsTopic)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PublishedReadings.WithLabelValues(DefaultAlertsTopic)))

	require.NoError(t, w.Close())
	assert.True(t, readings.closed)
	assert.True(t, alerts.closed)
}

func TestWriter_PublishErrorCounted(t *testing.T) {
	readings := &recordingWriter{err: errors.New("broker down")}
	metrics := observability.NewMetricsForTesting()
	w := newWithWriters(readings, &recordingWriter{}, DefaultReadingsTopic, DefaultAlertsTopic, zerolog.Nop(), metrics)

	err := w.Publish(context.Background(), []*waterquality.Reading{testReading("MH-PUN-SW-001", 0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultReadingsTopic)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PublishErrors.WithLabelValues(DefaultReadingsTopic)))
}

func TestWriter_PublishEmpty(t *testing.T) {
	readings := &recordingWriter{}
	w := newWithWriters(readings, &recordingWriter{}, "r", "a", zerolog.Nop(), nil)

	require.NoError(t, w.Publish(context.Background(), nil))
	assert.Empty(t, readings.msgs)
}

func TestNewWriter_RequiresBrokers(t *testing.T) {
	_, err := NewWriter(Config{}, zerolog.Nop(), nil)
	assert.Error(t, err)
}
