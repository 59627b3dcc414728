package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/pothole-viewer/internal/config"
	"github.com/couchcryptid/pothole-viewer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	event := domain.ActivityEvent{
		ID:               "0b7d3c1e-2f9a-4d55-9b59-0f3c1a7e2d10",
		Kind:             domain.ActivitySeverityUpdated,
		PotholeID:        42,
		Severity:         4,
		PreviousSeverity: 2,
		RecordedAt:       now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("42"), msg.Key)
	assert.Equal(t, now, msg.Time)
	assert.JSONEq(t, `{
		"id": "0b7d3c1e-2f9a-4d55-9b59-0f3c1a7e2d10",
		"kind": "severity_updated",
		"pothole_id": 42,
		"severity": 4,
		"previous_severity": 2,
		"recorded_at": "2024-04-26T15:10:00Z"
	}`, string(msg.Value))

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "kind", msg.Headers[0].Key)
	assert.Equal(t, []byte("severity_updated"), msg.Headers[0].Value)
	assert.Equal(t, "event_id", msg.Headers[1].Key)
	assert.Equal(t, []byte(event.ID), msg.Headers[1].Value)
	assert.Equal(t, "recorded_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestSerializeToMessage_NoteOmitsSeverity(t *testing.T) {
	msg, err := serializeToMessage(domain.ActivityEvent{
		ID:        "evt-1",
		Kind:      domain.ActivityNoteAdded,
		PotholeID: 7,
		Note:      "deep, near curb",
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "deep, near curb", decoded["note"])
	assert.NotContains(t, decoded, "severity")
	assert.NotContains(t, decoded, "previous_severity")
}

func TestNewWriter_UsesActivityTopic(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:       []string{"localhost:9092"},
		KafkaActivityTopic: "pothole-activity",
	}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "pothole-activity", w.writer.Topic)
}

func TestLoadBatch_EmptyIsNoop(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:       []string{"127.0.0.1:1"},
		KafkaActivityTopic: "pothole-activity",
	}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.NoError(t, w.LoadBatch(context.Background(), nil))
}
