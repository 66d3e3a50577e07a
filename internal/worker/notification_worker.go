package worker

import (
	"context"
	"log/slog"
	"time"
)

// NotificationExpirer hides a notification once it is older than ttl.
type NotificationExpirer interface {
	ExpireNotification(now time.Time, ttl time.Duration) bool
}

// NotificationWorker auto-hides the checkout notification after a fixed delay.
type NotificationWorker struct {
	session  NotificationExpirer
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func NewNotificationWorker(
	session NotificationExpirer,
	interval time.Duration,
	ttl time.Duration,
	logger *slog.Logger,
) *NotificationWorker {
	return &NotificationWorker{
		session:  session,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	w.logger.Info("notification worker started", "interval", w.interval, "ttl", w.ttl)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notification worker stopping")
			return
		case <-ticker.C:
			w.expire()
		}
	}
}

func (w *NotificationWorker) expire() bool {
	hidden := w.session.ExpireNotification(w.now(), w.ttl)
	if hidden {
		w.logger.Debug("notification auto-hidden", "ttl", w.ttl)
	}
	return hidden
}
