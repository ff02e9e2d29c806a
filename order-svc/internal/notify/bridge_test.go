package notify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func orderEvent(id string, status domain.Status) domain.ChangeEvent {
	return domain.ChangeEvent{Table: domain.TableOrders, Op: domain.OpUpdate, OrderID: id, Status: status}
}

func TestFilter_Matches(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		event    domain.ChangeEvent
		expected bool
	}{
		{"all_orders", Filter{Table: domain.TableOrders}, orderEvent("a", domain.StatusReady), true},
		{"same_order", Filter{Table: domain.TableOrders, OrderID: "a"}, orderEvent("a", domain.StatusReady), true},
		{"other_order", Filter{Table: domain.TableOrders, OrderID: "a"}, orderEvent("b", domain.StatusReady), false},
		{"other_table", Filter{Table: "dishes"}, orderEvent("a", domain.StatusReady), false},
		{"resync_reaches_everyone", Filter{Table: domain.TableOrders, OrderID: "a"}, domain.ResyncEvent(), true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.filter.Matches(testCase.event))
		})
	}
}

func TestBridge_PublishToMatchingSubscribers(t *testing.T) {
	bridge := NewBridge()
	all := bridge.Subscribe(Filter{Table: domain.TableOrders}, 4)
	one := bridge.Subscribe(Filter{Table: domain.TableOrders, OrderID: "b"}, 4)
	defer all.Close()
	defer one.Close()

	bridge.Publish(orderEvent("a", domain.StatusPreparing))
	bridge.Publish(orderEvent("b", domain.StatusReady))

	assert.Equal(t, "a", (<-all.Events()).OrderID)
	assert.Equal(t, "b", (<-all.Events()).OrderID)
	assert.Equal(t, "b", (<-one.Events()).OrderID)
	assert.Len(t, one.Events(), 0)
}

func TestBridge_OverflowBecomesResync(t *testing.T) {
	bridge := NewBridge()
	sub := bridge.Subscribe(Filter{}, 2)
	defer sub.Close()

	bridge.Publish(orderEvent("a", domain.StatusPending))
	bridge.Publish(orderEvent("b", domain.StatusPending))
	bridge.Publish(orderEvent("c", domain.StatusPending))

	assert.Equal(t, "b", (<-sub.Events()).OrderID)
	assert.True(t, (<-sub.Events()).IsResync())
}

func TestSubscription_CloseReleases(t *testing.T) {
	bridge := NewBridge()
	sub := bridge.Subscribe(Filter{}, 1)
	assert.Equal(t, 1, bridge.Len())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, bridge.Len())

	_, ok := <-sub.Events()
	assert.False(t, ok)

	assert.NotPanics(t, func() { bridge.Publish(orderEvent("a", domain.StatusReady)) })
}

func TestBridge_ConcurrentPublishAndClose(t *testing.T) {
	bridge := NewBridge()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		sub := bridge.Subscribe(Filter{}, 1)
		go func() {
			defer wg.Done()
			bridge.Publish(orderEvent("x", domain.StatusReady))
		}()
		go func() {
			defer wg.Done()
			sub.Close()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, bridge.Len())
}

type fakeListener struct {
	ch    chan *pq.Notification
	pings int32
}

func (f *fakeListener) NotificationChannel() <-chan *pq.Notification { return f.ch }

func (f *fakeListener) Ping() error {
	atomic.AddInt32(&f.pings, 1)
	return nil
}

func TestBridge_Listen(t *testing.T) {
	bridge := NewBridge()
	sub := bridge.Subscribe(Filter{Table: domain.TableOrders}, 8)
	defer sub.Close()

	listener := &fakeListener{ch: make(chan *pq.Notification, 4)}
	listener.ch <- &pq.Notification{Channel: "order_changes", Extra: `{"table":"orders","op":"INSERT","id":"o-1","status":"pending","is_paid":false,"is_archived":false,"at":"2026-10-17T09:30:00.123456+00:00"}`}
	listener.ch <- nil
	listener.ch <- &pq.Notification{Channel: "order_changes", Extra: `not json`}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bridge.Listen(ctx, listener)
		close(done)
	}()

	first := <-sub.Events()
	assert.Equal(t, domain.OpInsert, first.Op)
	assert.Equal(t, "o-1", first.OrderID)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.Equal(t, 2026, first.At.Year())

	assert.True(t, (<-sub.Events()).IsResync())
	assert.True(t, (<-sub.Events()).IsResync())

	cancel()
	<-done
}

func TestWatch_RefreshesOnEventsAndTicks(t *testing.T) {
	bridge := NewBridge()
	sub := bridge.Subscribe(Filter{Table: domain.TableOrders, OrderID: "o-1"}, 4)

	var calls int32
	refreshed := make(chan struct{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, sub, 20*time.Millisecond, func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			select {
			case refreshed <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	<-refreshed
	bridge.Publish(orderEvent("o-1", domain.StatusReady))
	<-refreshed
	<-refreshed

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
	assert.Equal(t, 0, bridge.Len())
}

func TestWatch_StopsOnRefreshError(t *testing.T) {
	bridge := NewBridge()
	sub := bridge.Subscribe(Filter{}, 1)
	errWrite := errors.New("client gone")

	err := Watch(context.Background(), sub, 0, func(ctx context.Context) error {
		return errWrite
	})

	assert.ErrorIs(t, err, errWrite)
	assert.Equal(t, 0, bridge.Len())
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
	sent   chan struct{}
}

func (p *recordingPublisher) PublishChange(ctx context.Context, event domain.ChangeEvent) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.sent <- struct{}{}
	return nil
}

func TestRelay_SkipsResync(t *testing.T) {
	bridge := NewBridge()
	sub := bridge.Subscribe(Filter{Table: domain.TableOrders}, 8)
	publisher := &recordingPublisher{sent: make(chan struct{}, 4)}

	ctx, cancel := context.WithCancel(context.Background())
	go Relay(ctx, sub, publisher)

	bridge.Publish(domain.ResyncEvent())
	bridge.Publish(orderEvent("o-9", domain.StatusCompleted))
	<-publisher.sent
	cancel()

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	assert.Len(t, publisher.events, 1)
	assert.Equal(t, "o-9", publisher.events[0].OrderID)
}

type invalidatorFunc func(ctx context.Context, event domain.ChangeEvent)

func (f invalidatorFunc) Invalidate(ctx context.Context, event domain.ChangeEvent) { f(ctx, event) }

func TestBridge_InvalidatesBeforeDelivery(t *testing.T) {
	var (
		bridge *Bridge
		sub    *Subscription
		seen   []string
	)
	bridge = NewBridge(invalidatorFunc(func(_ context.Context, event domain.ChangeEvent) {
		assert.Len(t, sub.Events(), 0, "subscriber woke before invalidation")
		seen = append(seen, event.OrderID)
	}))
	sub = bridge.Subscribe(Filter{Table: domain.TableOrders}, 4)
	defer sub.Close()

	bridge.Publish(orderEvent("a", domain.StatusPreparing))

	assert.Equal(t, []string{"a"}, seen)
	assert.Equal(t, "a", (<-sub.Events()).OrderID)
}
