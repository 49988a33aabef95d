package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-scheduler/internal/logger"
)

const scheduleLogFile = "schedule.log"

// ScheduleConsumer appends every scheduling event to <dir>/schedule.log.
type ScheduleConsumer struct {
	url string
	dir string
	log *logger.Logger
}

// NewScheduleConsumer returns a consumer that appends every event it
// receives to dir/<queue>.log.
func NewScheduleConsumer(url, dir string, log *logger.Logger) *ScheduleConsumer {
	return &ScheduleConsumer{url: url, dir: dir, log: log}
}

// Run connects, consumes both scheduling queues and reconnects with
// exponential backoff (capped at 30s) until ctx is cancelled.
func (c *ScheduleConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("schedule consumer: dial failed", "error", err, "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("schedule consumer: loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *ScheduleConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("schedule consumer: set QoS failed", "error", err)
	}

	scheduled, err := declareAndConsume(ch, FunctionScheduledQueue)
	if err != nil {
		return err
	}
	cancelled, err := declareAndConsume(ch, FunctionCancelledQueue)
	if err != nil {
		return err
	}

	for {
		var d amqp.Delivery
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok = <-scheduled:
		case d, ok = <-cancelled:
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := c.handleMessage(d.RoutingKey, d.Body); err != nil {
			c.log.Error("schedule consumer: handle message failed", "queue", d.RoutingKey, "error", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func declareAndConsume(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", queue, err)
	}
	return msgs, nil
}

func (c *ScheduleConsumer) handleMessage(queue string, body []byte) error {
	line, err := formatLine(queue, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.dir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.dir, scheduleLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatLine(queue string, body []byte) (string, error) {
	switch queue {
	case FunctionScheduledQueue:
		var ev FunctionScheduledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		if ev.FunctionID == "" {
			return "", errors.New("event without function_id")
		}
		verb := "Function scheduled"
		if ev.Rescheduled {
			verb = "Function rescheduled"
		}
		return fmt.Sprintf("[%s] %s | function_id=%s | movie=%q | auditorium=%q | cinema_id=%s | start=%s | end=%s | price=%d cents | seats=%d\n",
			ev.ScheduledAt.Format(time.RFC3339), verb, ev.FunctionID, ev.MovieTitle, ev.AuditoriumName, ev.CinemaID,
			ev.StartTime.Format(time.RFC3339), ev.EndTime.Format(time.RFC3339), ev.PriceCents, ev.AvailableSeats), nil
	case FunctionCancelledQueue:
		var ev FunctionCancelledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		if ev.FunctionID == "" {
			return "", errors.New("event without function_id")
		}
		return fmt.Sprintf("[%s] Function cancelled | function_id=%s | auditorium_id=%s | start=%s | end=%s\n",
			ev.CancelledAt.Format(time.RFC3339), ev.FunctionID, ev.AuditoriumID,
			ev.StartTime.Format(time.RFC3339), ev.EndTime.Format(time.RFC3339)), nil
	default:
		return "", fmt.Errorf("unknown queue %q", queue)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
