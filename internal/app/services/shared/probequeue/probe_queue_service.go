package probequeue

import (
	"context"
	"fmt"
	"sync"

	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	StandardQueueName   = "registry_probe_queue"
	DeadLetterQueueName = "registry_probe_dlq"
)

// ProbeJob is the payload stored in RabbitMQ for one availability check.
type ProbeJob struct {
	ID          string `json:"id"`
	EntryID     string `json:"entry_id"`
	FailedCount int    `json:"failed_count"`
}

// Service manages the RabbitMQ queues backing the probe workflow.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	prefetch int
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService declares durable queues, enables publisher confirms, and sets QoS.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		StandardQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:       ch,
		log:      log,
		prefetch: prefetch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

// QueuedItem represents a fetched delivery and its decoded payload.
type QueuedItem struct {
	DeliveryTag uint64
	Job         ProbeJob
}

// Enqueue publishes a probe job to the standard queue with persistence and waits for confirm.
func (s *Service) Enqueue(ctx context.Context, job ProbeJob) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("ProbeQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProbeJobIDKey, job.ID),
	)

	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, StandardQueueName, body)
}

// EnqueueToDeadQueue publishes a job that exhausted its retries to the DLQ.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, job ProbeJob) error {
	s.log.Info("ProbeQueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingProbeJobIDKey, job.ID),
	)

	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, DeadLetterQueueName, body)
}

// FetchN retrieves up to N jobs using basic.get without auto-ack.
func (s *Service) FetchN(ctx context.Context, max int) ([]QueuedItem, error) {
	n := max
	if n <= 0 {
		n = 1
	}
	items := make([]QueuedItem, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(StandardQueueName, false)
		if err != nil {
			return nil, exceptions.ErrQueueConsumeMessage(err, StandardQueueName)
		}
		if !ok {
			break
		}
		var job ProbeJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			// invalid payload goes straight to DLQ to avoid a poison message loop
			_ = d.Ack(false)
			_ = s.publish(ctx, DeadLetterQueueName, d.Body)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Job: job})
	}

	return items, nil
}

// AckMessage acknowledges a job by delivery tag.
func (s *Service) AckMessage(deliveryTag uint64) error {
	if err := s.ch.Ack(deliveryTag, false); err != nil {
		return exceptions.ErrQueueConsumeMessage(err, StandardQueueName)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrQueuePublishMessage(err, queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueuePublishMessage(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublishMessage(ctx.Err(), queue)
	}
	return nil
}
