package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidPayment = errors.New("invalid payment")

type Service interface {
	GetByOrderID(ctx context.Context, orderID int64) (*Payment, error)
	UpdateStatus(ctx context.Context, id int64, to Status, transactionID string) (*Payment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByOrderID(ctx context.Context, orderID int64) (*Payment, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order id must be positive", ErrInvalidPayment)
	}

	p, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to get payment: %w", err)
	}

	return p, nil
}

// UpdateStatus finalizes a pending payment as completed or failed.
// Completion records the gateway's transaction reference; when the
// gateway supplied none, a uuid is generated so every completed payment
// stays individually traceable.
func (s *service) UpdateStatus(ctx context.Context, id int64, to Status, transactionID string) (*Payment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidPayment)
	}
	if to != StatusCompleted && to != StatusFailed {
		return nil, fmt.Errorf("%w: a pending payment can only become completed or failed, not %q", ErrInvalidPayment, to)
	}

	transactionID = strings.TrimSpace(transactionID)
	if to == StatusCompleted && transactionID == "" {
		generated, err := uuid.NewV4()
		if err != nil {
			return nil, fmt.Errorf("service: failed to generate transaction id: %w", err)
		}
		transactionID = generated.String()
	}
	if to == StatusFailed {
		transactionID = ""
	}

	p, err := s.repo.UpdateStatus(ctx, id, to, transactionID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) || errors.Is(err, ErrPaymentFinalized) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to update payment status: %w", err)
	}

	log.Info().
		Int64("payment_id", p.ID).
		Int64("order_id", p.OrderID).
		Str("status", p.Status.String()).
		Msg("payment finalized")

	return p, nil
}
