package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"tableside/order-svc/internal/domain"

	"github.com/google/uuid"
)

const MaxMessageLength = 500

type OrderService struct {
	repo        OrderRepository
	invalidator Invalidator
	now         func() time.Time
}

func NewOrderService(repo OrderRepository, invalidator Invalidator) *OrderService {
	return &OrderService{repo: repo, invalidator: invalidator, now: time.Now}
}

func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	req.TableNumber = strings.TrimSpace(req.TableNumber)
	req.CustomerMessage = strings.TrimSpace(req.CustomerMessage)
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	order, err := s.repo.CreateOrder(req)
	if err != nil {
		return nil, storeError("create order", err)
	}

	log.Printf("[order-svc] order %s created for table %s: %d items, total %.2f EUR",
		order.ShortID(), order.TableNumber, len(order.Items), order.TotalPrice)
	s.changed(ctx, domain.OpInsert, order)
	return order, nil
}

func validateCreate(req domain.CreateOrderRequest) error {
	if req.TableNumber == "" {
		return domain.NewValidationError("table_number", "table number is required")
	}
	if len(req.Items) == 0 {
		return domain.NewValidationError("items", "cart is empty")
	}
	for i, item := range req.Items {
		if item.DishID <= 0 {
			return domain.NewValidationError("items", fmt.Sprintf("item %d has no dish", i+1))
		}
		if item.Quantity <= 0 {
			return domain.NewValidationError("items", fmt.Sprintf("item %d quantity must be positive", i+1))
		}
		// order_items.quantity is a Postgres INTEGER.
		if int64(item.Quantity) > math.MaxInt32 {
			return domain.NewValidationError("items", fmt.Sprintf("item %d quantity is too large", i+1))
		}
	}
	if utf8.RuneCountInString(req.CustomerMessage) > MaxMessageLength {
		return domain.NewValidationError("customer_message", fmt.Sprintf("message is limited to %d characters", MaxMessageLength))
	}
	return nil
}

// Get returns the order with its items. Ids that are not UUIDs cannot exist
// and are reported as not found without a database round-trip.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.repo.GetOrder(id)
	if err != nil {
		return nil, storeError("load order", err)
	}
	return order, nil
}

// UpdateStatus moves the order exactly one step forward. The update is
// conditional on the status read here, so a concurrent change by another
// screen surfaces as ErrStatusConflict instead of being overwritten.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, status)
	}

	rows, err := s.repo.UpdateStatus(id, order.Status, status)
	if err != nil {
		return nil, storeError("update status", err)
	}
	if rows == 0 {
		return nil, domain.ErrStatusConflict
	}

	log.Printf("[order-svc] order %s: %s -> %s", order.ShortID(), order.Status, status)
	order.Status = status
	order.UpdatedAt = s.now()
	s.changed(ctx, domain.OpUpdate, order)
	return order, nil
}

// MarkPaid requires a completed order. Paying twice is a no-op.
func (s *OrderService) MarkPaid(ctx context.Context, session Session, id string) (*domain.Order, error) {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return nil, err
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusCompleted {
		return nil, domain.ErrNotCompleted
	}
	if order.IsPaid {
		return order, nil
	}

	rows, err := s.repo.MarkPaid(id)
	if err != nil {
		return nil, storeError("mark order paid", err)
	}
	if rows == 0 {
		return nil, domain.ErrStatusConflict
	}

	log.Printf("[order-svc] order %s marked paid", order.ShortID())
	order.IsPaid = true
	order.UpdatedAt = s.now()
	s.changed(ctx, domain.OpUpdate, order)
	return order, nil
}

// SetAdditionalMessage replaces the guest's note to the staff. It is only
// accepted while the kitchen has not finished the order.
func (s *OrderService) SetAdditionalMessage(ctx context.Context, id, text string) (*domain.Order, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("additional_message", "message is empty")
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return nil, domain.NewValidationError("additional_message", fmt.Sprintf("message is limited to %d characters", MaxMessageLength))
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.AcceptsGuestMessage() {
		return nil, domain.ErrMessageClosed
	}

	rows, err := s.repo.SetAdditionalMessage(id, text, []domain.Status{domain.StatusPending, domain.StatusPreparing})
	if err != nil {
		return nil, storeError("save message", err)
	}
	if rows == 0 {
		return nil, domain.ErrMessageClosed
	}

	order.AdditionalMessage = text
	order.UpdatedAt = s.now()
	s.changed(ctx, domain.OpUpdate, order)
	return order, nil
}

// ArchiveCompleted clears the kitchen history. Calling it again archives
// nothing and is not an error.
func (s *OrderService) ArchiveCompleted(ctx context.Context) (int64, error) {
	n, err := s.repo.ArchiveCompleted()
	if err != nil {
		return 0, storeError("archive completed orders", err)
	}
	s.archived(ctx, "completed", n)
	return n, nil
}

func (s *OrderService) ArchivePaid(ctx context.Context, session Session) (int64, error) {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return 0, err
	}
	n, err := s.repo.ArchivePaid()
	if err != nil {
		return 0, storeError("archive paid orders", err)
	}
	s.archived(ctx, "paid", n)
	return n, nil
}

func (s *OrderService) archived(ctx context.Context, kind string, n int64) {
	if n == 0 {
		return
	}
	log.Printf("[order-svc] archived %d %s orders", n, kind)
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, domain.ResyncEvent())
	}
}

// changed drops cached views right away so the caller's next read sees its
// own write even before the database notification arrives.
func (s *OrderService) changed(ctx context.Context, op domain.ChangeOp, order *domain.Order) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.Invalidate(ctx, domain.ChangeEvent{
		Table:      domain.TableOrders,
		Op:         op,
		OrderID:    order.ID,
		Status:     order.Status,
		IsPaid:     order.IsPaid,
		IsArchived: order.IsArchived,
		At:         s.now(),
	})
}
