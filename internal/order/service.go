package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/SankurTW/Restaurant-Management-System/internal/notifier"
	"github.com/rs/zerolog/log"
)

// totalTolerance absorbs float jitter from JSON decoding when comparing
// the submitted total against the recomputed one. Anything larger than
// half a cent is a real mismatch.
const totalTolerance = 0.005

type Service interface {
	PlaceOrder(ctx context.Context, ord *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, to OrderStatus) (*Order, error)
}

type service struct {
	repo     Repository
	notifier notifier.Notifier
}

func NewService(repo Repository, n notifier.Notifier) Service {
	return &service{repo: repo, notifier: n}
}

// PlaceOrder validates the submitted order, stores it atomically, and
// sends the confirmation email afterwards. Validation failures never
// reach the repository; a failed email never fails the placed order.
func (s *service) PlaceOrder(ctx context.Context, ord *Order) error {
	ord.CustomerName = strings.TrimSpace(ord.CustomerName)
	ord.CustomerPhone = strings.TrimSpace(ord.CustomerPhone)
	ord.CustomerEmail = strings.TrimSpace(ord.CustomerEmail)

	if err := validatePlacement(ord); err != nil {
		return err
	}

	ord.Status = StatusPending
	ord.PaymentStatus = PaymentPending

	if err := s.repo.PlaceOrder(ctx, ord); err != nil {
		var insufficient *InsufficientInventoryError
		if errors.As(err, &insufficient) || errors.Is(err, ErrMenuItemUnknown) {
			return err
		}
		return fmt.Errorf("service: failed to place order: %w", err)
	}

	log.Info().
		Int64("order_id", ord.ID).
		Float64("total", ord.TotalAmount).
		Int("items", len(ord.Items)).
		Msg("order placed")

	if ord.CustomerEmail != "" {
		subject := fmt.Sprintf("Order #%d confirmed", ord.ID)
		body := fmt.Sprintf(
			"Hi %s,\n\nYour order #%d has been received and is being prepared.\nTotal: $%.2f\n\nThank you!\n",
			ord.CustomerName, ord.ID, ord.TotalAmount,
		)
		if err := s.notifier.Send(ctx, ord.CustomerEmail, subject, body); err != nil {
			log.Error().Err(err).Int64("order_id", ord.ID).Msg("failed to send order confirmation")
		}
	}

	return nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidOrder)
	}

	ord, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to get order: %w", err)
	}

	return ord, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, filter.Status)
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus moves an order through its lifecycle. The current status
// is read first so the caller gets a precise rejection, then the update
// re-checks it so a concurrent change surfaces as ErrStatusConflict.
func (s *service) UpdateStatus(ctx context.Context, id int64, to OrderStatus) (*Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidOrder)
	}
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, to)
	}

	ord, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to load order for status update: %w", err)
	}

	if !CanTransition(ord.Status, to) {
		return nil, &InvalidTransitionError{From: ord.Status, To: to}
	}

	if err := s.repo.UpdateStatus(ctx, id, ord.Status, to); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().
		Int64("order_id", id).
		Str("from", ord.Status.String()).
		Str("to", to.String()).
		Msg("order status updated")

	ord.Status = to

	return ord, nil
}

func validatePlacement(ord *Order) error {
	if ord.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	}
	if ord.CustomerPhone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidOrder)
	}
	if ord.CustomerEmail != "" {
		if _, err := mail.ParseAddress(ord.CustomerEmail); err != nil {
			return fmt.Errorf("%w: malformed customer email %q", ErrInvalidOrder, ord.CustomerEmail)
		}
	}
	if len(ord.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}

	var sum float64
	for i, item := range ord.Items {
		if item.MenuItemID <= 0 {
			return fmt.Errorf("%w: item %d has no menu item id", ErrInvalidOrder, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidOrder, i)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: item %d price must be non-negative", ErrInvalidOrder, i)
		}
		sum += item.Price * float64(item.Quantity)
	}

	if ord.TotalAmount < 0 {
		return fmt.Errorf("%w: total amount must be non-negative", ErrInvalidOrder)
	}
	if math.Abs(ord.TotalAmount-sum) > totalTolerance {
		return fmt.Errorf("%w: total amount %.2f does not match item sum %.2f", ErrInvalidOrder, ord.TotalAmount, sum)
	}

	return nil
}
