package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryEventMarshalling(t *testing.T) {
	event := NewDeliveryEvent("evt-123", "178541", "+917588348865", "success", SourceBatch)
	event.StatusCode = 200

	body, err := json.Marshal(event)
	assert.NoError(t, err)

	var received DeliveryEvent
	assert.NoError(t, json.Unmarshal(body, &received))

	assert.Equal(t, "evt-123", received.EventID)
	assert.Equal(t, "178541", received.OrderID)
	assert.Equal(t, "+917588348865", received.Phone)
	assert.Equal(t, "success", received.Status)
	assert.Equal(t, 200, received.StatusCode)
	assert.Equal(t, SourceBatch, received.Source)

	sentAt, err := time.Parse(time.RFC3339, received.SentAt)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), sentAt, time.Minute)
}

func TestDeliveryEventOmitsEmptyOptionals(t *testing.T) {
	event := NewDeliveryEvent("evt-123", "178541", "", "skipped", SourceWorker)

	body, _ := json.Marshal(event)

	var data map[string]any
	json.Unmarshal(body, &data)

	assert.NotContains(t, data, "phone")
	assert.NotContains(t, data, "status_code")
	assert.NotContains(t, data, "reason")
	assert.Contains(t, data, "event_id")
	assert.Contains(t, data, "sent_at")
}
