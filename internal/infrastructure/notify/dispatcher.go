package notify

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fieldops/dispatch-system/internal/api/metrics"
	"github.com/fieldops/dispatch-system/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Sender delivers one notification over one channel. Delivery mechanics live
// behind this interface; the dispatcher only cares about success or failure.
type Sender interface {
	Send(ctx context.Context, n domain.AssignmentNotification, ch domain.Channel) error
}

// AuditRecorder persists a record of each dispatched notification.
type AuditRecorder interface {
	Insert(ctx context.Context, n *domain.AssignmentNotification) error
}

// Dispatcher fans assignment notifications out to a fixed set of workers,
// sharded by technician ID so one technician's notifications stay ordered.
// Everything here is best-effort: a full queue drops, a failed send logs,
// and neither ever reaches the assignment path.
type Dispatcher struct {
	workers []chan domain.AssignmentNotification
	sender  Sender
	audit   AuditRecorder
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. audit may be nil.
func NewDispatcher(numWorkers int, sender Sender, audit AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AssignmentNotification, numWorkers),
		sender:  sender,
		audit:   audit,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AssignmentNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Dispatch enqueues a notification without blocking. When the responsible
// worker's buffer is full the notification is dropped and logged.
func (d *Dispatcher) Dispatch(n domain.AssignmentNotification) {
	idx := d.shardIndex(n.TechnicianID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.log.Warn().
			Str("order_id", n.OrderID).
			Str("technician_id", n.TechnicianID).
			Msg("notification queue full, dropping")
	}
}

// shardIndex maps a technician ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(technicianID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(technicianID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AssignmentNotification) {
	gauge := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			gauge.Dec()
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, n domain.AssignmentNotification) {
	for _, channel := range n.Channels {
		if err := d.sender.Send(ctx, n, channel); err != nil {
			metrics.NotificationErrorsTotal.WithLabelValues(string(channel)).Inc()
			d.log.Error().Err(err).
				Str("order_id", n.OrderID).
				Str("technician_id", n.TechnicianID).
				Str("channel", string(channel)).
				Int("worker_id", workerID).
				Msg("notification send failed")
			continue
		}
		metrics.NotificationsSentTotal.WithLabelValues(string(channel)).Inc()
	}

	if d.audit != nil {
		if err := d.audit.Insert(ctx, &n); err != nil {
			d.log.Warn().Err(err).
				Str("order_id", n.OrderID).
				Msg("failed to record notification audit entry")
		}
	}
}

// LogSender is the default Sender: it logs the would-be delivery. Real
// email/SMS providers plug in behind the Sender interface.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n domain.AssignmentNotification, ch domain.Channel) error {
	s.log.Info().
		Str("order_id", n.OrderID).
		Str("technician_id", n.TechnicianID).
		Str("assigned_by", n.AssignedBy).
		Str("channel", string(ch)).
		Msg("assignment notification sent")
	return nil
}
