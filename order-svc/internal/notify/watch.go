package notify

import (
	"context"
	"log"
	"time"

	"tableside/order-svc/internal/domain"
)

type RefreshFunc func(ctx context.Context) error

// Watch calls refresh once immediately, then again on every matching event
// and on every tick of interval (no polling when interval is zero). Events
// that pile up while a refresh runs are coalesced into one refresh. The
// subscription is closed when Watch returns.
func Watch(ctx context.Context, sub *Subscription, interval time.Duration, refresh RefreshFunc) error {
	defer sub.Close()

	if err := refresh(ctx); err != nil {
		return err
	}

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-sub.Events():
			if !ok {
				return nil
			}
			drain(sub.Events())
		case <-tick:
		}
		if err := refresh(ctx); err != nil {
			return err
		}
	}
}

func drain(events <-chan domain.ChangeEvent) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Consume hands every event to handle until ctx is done or the
// subscription is closed.
func Consume(ctx context.Context, sub *Subscription, handle func(context.Context, domain.ChangeEvent)) {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			handle(ctx, event)
		}
	}
}

type ChangePublisher interface {
	PublishChange(ctx context.Context, event domain.ChangeEvent) error
}

// Relay republishes row changes to an external broker. Resync markers are
// local to this process and are not forwarded.
func Relay(ctx context.Context, sub *Subscription, publisher ChangePublisher) {
	Consume(ctx, sub, func(ctx context.Context, event domain.ChangeEvent) {
		if event.IsResync() {
			return
		}
		if err := publisher.PublishChange(ctx, event); err != nil {
			log.Printf("[notify] relay of order %s failed: %v", event.OrderID, err)
		}
	})
}
