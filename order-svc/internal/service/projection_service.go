package service

import (
	"context"
	"log"
	"time"

	"tableside/order-svc/internal/currency"
	"tableside/order-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	KitchenHistoryLimit = 50

	viewKitchenActive  = "kitchen:active"
	viewKitchenHistory = "kitchen:history"
	viewCaisse         = "caisse"
	viewOrder          = "order"
)

// OrderView is an order as shown on a screen: item names resolved, the
// total converted to the display currency.
type OrderView struct {
	domain.Order
	Ticket         string         `json:"short_id"`
	Total          currency.Money `json:"total"`
	CanSendMessage bool           `json:"can_send_message"`
}

type CaisseView struct {
	Date       string         `json:"date"`
	ToPay      []OrderView    `json:"to_pay"`
	Active     []OrderView    `json:"active"`
	Paid       []OrderView    `json:"paid"`
	RevenueEUR float64        `json:"revenue_eur"`
	Revenue    currency.Money `json:"revenue"`
}

// ProjectionService builds the kitchen, caisse and guest views. Results are
// cached until a change notification for orders invalidates them.
type ProjectionService struct {
	orders   OrderRepository
	settings SettingsRepository
	cache    ProjectionCache
	location *time.Location
	now      func() time.Time
}

// NewProjectionService accepts a nil cache, in which case every read goes
// to the database.
func NewProjectionService(orders OrderRepository, settings SettingsRepository, cache ProjectionCache, location *time.Location) *ProjectionService {
	if location == nil {
		location = time.Local
	}
	return &ProjectionService{
		orders:   orders,
		settings: settings,
		cache:    cache,
		location: location,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for "today" and session expiry.
func (s *ProjectionService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ProjectionService) KitchenActive(ctx context.Context) ([]OrderView, error) {
	var views []OrderView
	err := s.cached(ctx, s.key(viewKitchenActive), &views, func() error {
		orders, err := s.orders.ListOrdersByStatus(domain.ActiveStatuses, false, 0)
		if err != nil {
			return storeError("load active orders", err)
		}
		views = s.render(orders)
		return nil
	})
	return views, err
}

func (s *ProjectionService) KitchenHistory(ctx context.Context) ([]OrderView, error) {
	var views []OrderView
	err := s.cached(ctx, s.key(viewKitchenHistory), &views, func() error {
		orders, err := s.orders.ListOrdersByStatus([]domain.Status{domain.StatusCompleted}, true, KitchenHistoryLimit)
		if err != nil {
			return storeError("load order history", err)
		}
		views = s.render(orders)
		return nil
	})
	return views, err
}

// Caisse covers orders created today in the restaurant's time zone, from
// local midnight to the next one.
func (s *ProjectionService) Caisse(ctx context.Context, session Session) (*CaisseView, error) {
	now := s.now().In(s.location)
	if err := session.Require(ScopeAdmin, now); err != nil {
		return nil, err
	}
	start, end := DayBounds(now)
	date := start.Format("2006-01-02")

	var view CaisseView
	err := s.cached(ctx, s.key(viewCaisse, date), &view, func() error {
		orders, err := s.orders.ListOrdersCreatedBetween(start, end)
		if err != nil {
			return storeError("load today's orders", err)
		}
		settings := s.loadSettings()
		toPay, active, paid := SplitCaisse(orders)
		revenue := Revenue(paid)
		view = CaisseView{
			Date:       date,
			ToPay:      s.renderWith(toPay, settings),
			Active:     s.renderWith(active, settings),
			Paid:       s.renderWith(paid, settings),
			RevenueEUR: revenue,
			Revenue:    currency.FromEUR(revenue, settings),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *ProjectionService) GuestStatus(ctx context.Context, id string) (*OrderView, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrOrderNotFound
	}
	var view OrderView
	err := s.cached(ctx, s.key(viewOrder, id), &view, func() error {
		order, err := s.orders.GetOrder(id)
		if err != nil {
			return storeError("load order", err)
		}
		view = s.renderWith([]domain.Order{*order}, s.loadSettings())[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Invalidate drops every cached view the change can affect. A resync drops
// all of them.
func (s *ProjectionService) Invalidate(ctx context.Context, event domain.ChangeEvent) {
	if s.cache == nil {
		return
	}
	if event.IsResync() || event.OrderID == "" {
		s.InvalidateAll(ctx)
		return
	}
	if err := s.cache.Delete(ctx,
		s.key(viewKitchenActive),
		s.key(viewKitchenHistory),
		s.key(viewOrder, event.OrderID),
	); err != nil {
		log.Printf("[order-svc] cache invalidation for %s failed: %v", event.OrderID, err)
	}
	if err := s.cache.DeleteMatching(ctx, s.key(viewCaisse, "*")); err != nil {
		log.Printf("[order-svc] caisse cache invalidation failed: %v", err)
	}
}

func (s *ProjectionService) InvalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteMatching(ctx, s.cache.ProjectionKey("*")); err != nil {
		log.Printf("[order-svc] cache flush failed: %v", err)
	}
}

func (s *ProjectionService) key(view string, parts ...string) string {
	if s.cache == nil {
		return ""
	}
	return s.cache.ProjectionKey(view, parts...)
}

// cached serves dest from the cache when possible. Otherwise load fills
// dest and the result is stored, unless an invalidation ran while it was
// loading. Cache errors only cost a database read.
func (s *ProjectionService) cached(ctx context.Context, key string, dest interface{}, load func() error) error {
	generation := int64(-1)
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, dest)
		if err != nil {
			log.Printf("[order-svc] cache read %s failed: %v", key, err)
		}
		if hit {
			return nil
		}
		if generation, err = s.cache.Generation(ctx); err != nil {
			log.Printf("[order-svc] cache generation unavailable, not caching %s: %v", key, err)
			generation = -1
		}
	}
	if err := load(); err != nil {
		return err
	}
	if generation >= 0 {
		if _, err := s.cache.SetIfGeneration(ctx, key, dest, generation); err != nil {
			log.Printf("[order-svc] cache write %s failed: %v", key, err)
		}
	}
	return nil
}

// loadSettings falls back to EUR display when settings cannot be read.
func (s *ProjectionService) loadSettings() *domain.RestaurantSettings {
	if s.settings == nil {
		return nil
	}
	settings, err := s.settings.GetSettings()
	if err != nil {
		log.Printf("[order-svc] settings unavailable, showing EUR: %v", err)
		return nil
	}
	return settings
}

func (s *ProjectionService) render(orders []domain.Order) []OrderView {
	return s.renderWith(orders, s.loadSettings())
}

func (s *ProjectionService) renderWith(orders []domain.Order, settings *domain.RestaurantSettings) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		items := make([]domain.OrderItem, len(order.Items))
		for i, item := range order.Items {
			item.DishName = item.DisplayName()
			items[i] = item
		}
		order.Items = items
		views = append(views, OrderView{
			Order:          order,
			Ticket:         order.ShortID(),
			Total:          currency.FromEUR(order.TotalPrice, settings),
			CanSendMessage: order.Status.AcceptsGuestMessage(),
		})
	}
	return views
}

// DayBounds returns local midnight of t's day and the following midnight.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// SplitCaisse sorts non-archived orders into the three caisse tabs. Paid
// orders go to the paid tab whatever their status.
func SplitCaisse(orders []domain.Order) (toPay, active, paid []domain.Order) {
	toPay, active, paid = []domain.Order{}, []domain.Order{}, []domain.Order{}
	for _, order := range orders {
		if order.IsArchived {
			continue
		}
		switch {
		case order.IsPaid:
			paid = append(paid, order)
		case order.Status == domain.StatusCompleted:
			toPay = append(toPay, order)
		case order.Status.IsActive():
			active = append(active, order)
		}
	}
	return toPay, active, paid
}

// Revenue sums the EUR totals of the given orders.
func Revenue(orders []domain.Order) float64 {
	sum := decimal.Zero
	for _, order := range orders {
		sum = sum.Add(decimal.NewFromFloat(order.TotalPrice))
	}
	f, _ := sum.Float64()
	return f
}
