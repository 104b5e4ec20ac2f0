package probes

import (
	"context"
	"fmt"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/contracts"
	"providercard-service/internal/app/services/shared/probequeue"
	"providercard-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Worker drains the probe queue on a ticker with at-least-once semantics.
// A redis lock keeps replicas from probing the same sources concurrently.
type Worker struct {
	log    *zap.Logger
	cfg    *config.InternalConfig
	locker contracts.LockerService
	queue  *probequeue.Service
	probes contracts.ProbeUsecase
	stop   chan struct{}
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue *probequeue.Service,
	probes contracts.ProbeUsecase,
) *Worker {
	return &Worker{
		log:    log,
		cfg:    cfg,
		locker: lockerSvc,
		queue:  queue,
		probes: probes,
		stop:   make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	interval := time.Duration(w.cfg.Probe.IntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	stopped := make(chan struct{})

	fmt.Println("Probe worker started")

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time) {
	w.log.Info("probes.worker.runOnce tick", zap.Time("now", now))

	ttl := time.Duration(w.cfg.Probe.LockTTLInSeconds) * time.Second
	if ttl < time.Second {
		ttl = time.Second
	}
	acquired, lockVal, err := w.locker.TryLock(ctx, constvars.RedisKeyProbeWorkerLock, ttl)
	if err != nil {
		w.log.Info("worker lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Warn("worker lock not acquired; another instance is running")
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.RedisKeyProbeWorkerLock, lockVal); err != nil {
			w.log.Error("worker unlock failed", zap.Error(err))
		}
	}()

	batch := w.cfg.Probe.BatchSize
	if batch <= 0 {
		batch = 1
	}
	items, err := w.queue.FetchN(ctx, batch)
	if err != nil {
		w.log.Info("queue.FetchN error", zap.Error(err))
		return
	}

	w.log.Info("queue.FetchN success", zap.Int("fetched_count", len(items)))

	for _, item := range items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item probequeue.QueuedItem) {
	job := item.Job
	w.log.Info("processing probe job",
		zap.String(constvars.LoggingProbeJobIDKey, job.ID),
		zap.String(constvars.LoggingEntryIDKey, job.EntryID),
	)

	_, err := w.probes.ExecuteProbe(ctx, job.EntryID)
	if err == nil {
		if ackErr := w.queue.AckMessage(item.DeliveryTag); ackErr != nil {
			w.log.Error("ack failed", zap.Error(ackErr))
		}
		return
	}

	w.log.Error("probe job failed",
		zap.String(constvars.LoggingProbeJobIDKey, job.ID),
		zap.Error(err),
	)

	// retry until the threshold, then park the job in the DLQ
	if ackErr := w.queue.AckMessage(item.DeliveryTag); ackErr != nil {
		w.log.Error("ack failed", zap.Error(ackErr))
		return
	}
	job.FailedCount++
	if job.FailedCount >= w.cfg.Probe.FailureThreshold {
		if dlqErr := w.queue.EnqueueToDeadQueue(ctx, job); dlqErr != nil {
			w.log.Error("enqueue to DLQ failed", zap.Error(dlqErr))
		}
		return
	}
	if requeueErr := w.queue.Enqueue(ctx, job); requeueErr != nil {
		w.log.Error("requeue failed", zap.Error(requeueErr))
	}
}
