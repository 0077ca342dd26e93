package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository"
	"go.uber.org/zap"
)

// Outbox источник недоставленных уведомлений
type Outbox interface {
	ListUndelivered(ctx context.Context, limit int) ([]repository.PendingDelivery, error)
	MarkDelivered(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, giveUp bool) error
}

// После стольких неудачных попыток уведомление больше не отправляется
const maxDeliveryAttempts = 5

// Pusher отправляет уведомление в чат пользователя
type Pusher interface {
	Push(ctx context.Context, chatID int64, n *model.Notification) error
}

// Dispatcher периодически отправляет уведомления из входящих в Telegram.
// Уведомление помечается доставленным только после успешной отправки.
// Неудачная попытка уводит его в конец очереди, недоступный чат снимает с доставки сразу.
type Dispatcher struct {
	outbox   Outbox
	pusher   Pusher
	interval time.Duration
	batch    int
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	started  bool
	done     chan struct{}
}

// NewDispatcher создаёт новый диспетчер доставки
func NewDispatcher(outbox Outbox, pusher Pusher, interval time.Duration, batch int, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		outbox:   outbox,
		pusher:   pusher,
		interval: interval,
		batch:    batch,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую доставку
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("Starting notification dispatcher",
		zap.Duration("interval", d.interval),
		zap.Int("batch", d.batch))

	d.started = true
	go d.run(ctx)
}

// Stop останавливает доставку и ждёт завершения текущего прохода
func (d *Dispatcher) Stop() {
	if !d.started {
		return
	}
	d.stopOnce.Do(func() {
		d.logger.Info("Stopping notification dispatcher")
		close(d.stopChan)
	})
	<-d.done
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)

	// Первый проход сразу при старте
	d.Deliver(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.Deliver(ctx)
		case <-d.stopChan:
			d.logger.Info("Notification dispatcher stopped")
			return
		case <-ctx.Done():
			d.logger.Info("Notification dispatcher cancelled")
			return
		}
	}
}

// Deliver выполняет один проход: отправляет пачку недоставленных уведомлений.
// Возвращает количество доставленных.
func (d *Dispatcher) Deliver(ctx context.Context) int {
	pending, err := d.outbox.ListUndelivered(ctx, d.batch)
	if err != nil {
		d.logger.Error("Failed to load undelivered notifications", zap.Error(err))
		return 0
	}

	delivered := 0
	for _, p := range pending {
		if ctx.Err() != nil {
			break
		}

		if err := d.pusher.Push(ctx, p.ChatID, p.Notification); err != nil {
			d.recordFailure(ctx, p, err)
			continue
		}

		if err := d.outbox.MarkDelivered(ctx, p.Notification.ID); err != nil {
			d.logger.Error("Failed to mark notification delivered",
				zap.Int64("notification_id", p.Notification.ID),
				zap.Error(err))
			continue
		}
		delivered++
	}

	if delivered > 0 {
		d.logger.Info("Notifications delivered", zap.Int("count", delivered))
	}
	return delivered
}

func (d *Dispatcher) recordFailure(ctx context.Context, p repository.PendingDelivery, pushErr error) {
	giveUp := errors.Is(pushErr, model.ErrChatUnreachable) || p.Attempts+1 >= maxDeliveryAttempts

	d.logger.Warn("Failed to push notification",
		zap.Int64("notification_id", p.Notification.ID),
		zap.Int64("chat_id", p.ChatID),
		zap.Int("attempt", p.Attempts+1),
		zap.Bool("give_up", giveUp),
		zap.Error(pushErr))

	if err := d.outbox.MarkFailed(ctx, p.Notification.ID, giveUp); err != nil {
		d.logger.Error("Failed to record delivery attempt",
			zap.Int64("notification_id", p.Notification.ID),
			zap.Error(err))
	}
}
