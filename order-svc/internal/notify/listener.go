package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/lib/pq"
)

// Listener is the part of *pq.Listener the bridge needs.
type Listener interface {
	NotificationChannel() <-chan *pq.Notification
	Ping() error
}

var _ Listener = (*pq.Listener)(nil)

const pingInterval = 90 * time.Second

func ParseNotification(n *pq.Notification) (domain.ChangeEvent, error) {
	var event domain.ChangeEvent
	if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
		return domain.ChangeEvent{}, err
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	return event, nil
}

// Listen forwards database notifications to the bridge until ctx is done.
// pq delivers a nil notification after it reconnects; anything may have
// changed in between, so that becomes a resync.
func (b *Bridge) Listen(ctx context.Context, listener Listener) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-listener.NotificationChannel():
			if !ok {
				log.Println("[notify] listener channel closed")
				return
			}
			b.handleNotification(n)
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					log.Printf("[notify] listener ping failed: %v", err)
				}
			}()
		}
	}
}

func (b *Bridge) handleNotification(n *pq.Notification) {
	if n == nil {
		log.Println("[notify] listener reconnected, forcing resync")
		b.Publish(domain.ResyncEvent())
		return
	}
	event, err := ParseNotification(n)
	if err != nil {
		log.Printf("[notify] bad payload on %s: %v", n.Channel, err)
		b.Publish(domain.ResyncEvent())
		return
	}
	b.Publish(event)
}
