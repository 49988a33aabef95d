package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-scheduler/internal/logger"
)

func TestHandleMessageAppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := NewScheduleConsumer("", dir, logger.Nop())
	start := time.Date(2025, 9, 25, 20, 22, 0, 0, time.UTC)

	scheduled, err := json.Marshal(FunctionScheduledEvent{
		FunctionID:     "f1",
		MovieTitle:     "Inception",
		AuditoriumName: "Sala 1",
		CinemaID:       "c1",
		StartTime:      start,
		EndTime:        start.Add(98 * time.Minute),
		PriceCents:     1200,
		AvailableSeats: 80,
		ScheduledAt:    start.Add(-time.Hour),
	})
	require.NoError(t, err)
	cancelled, err := json.Marshal(FunctionCancelledEvent{
		FunctionID:   "f1",
		AuditoriumID: "a1",
		StartTime:    start,
		EndTime:      start.Add(98 * time.Minute),
		CancelledAt:  start.Add(-time.Minute),
	})
	require.NoError(t, err)

	require.NoError(t, c.handleMessage(FunctionScheduledQueue, scheduled))
	require.NoError(t, c.handleMessage(FunctionCancelledQueue, cancelled))

	data, err := os.ReadFile(filepath.Join(dir, scheduleLogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Function scheduled | function_id=f1")
	assert.Contains(t, lines[0], `movie="Inception"`)
	assert.Contains(t, lines[0], "start=2025-09-25T20:22:00Z")
	assert.Contains(t, lines[0], "price=1200 cents | seats=80")
	assert.Contains(t, lines[1], "Function cancelled | function_id=f1 | auditorium_id=a1")
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
	c := NewScheduleConsumer("", t.TempDir(), logger.Nop())

	tests := []struct {
		name  string
		queue string
		body  string
	}{
		{"not json", FunctionScheduledQueue, "{"},
		{"missing id", FunctionCancelledQueue, `{"auditorium_id":"a1"}`},
		{"unknown queue", "booking.confirmed", `{"function_id":"f1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, c.handleMessage(tt.queue, []byte(tt.body)))
		})
	}
}

func TestFormatLineRescheduled(t *testing.T) {
	body, err := json.Marshal(FunctionScheduledEvent{FunctionID: "f2", Rescheduled: true})
	require.NoError(t, err)

	line, err := formatLine(FunctionScheduledQueue, body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(line, "Function rescheduled | function_id=f2"))
	assert.True(t, strings.HasSuffix(line, "\n"))
}
