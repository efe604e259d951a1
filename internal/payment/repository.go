package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPaymentFinalized = errors.New("payment is already completed or failed")
)

type Repository interface {
	GetByOrderID(ctx context.Context, orderID int64) (*Payment, error)
	UpdateStatus(ctx context.Context, id int64, status Status, transactionID string) (*Payment, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByOrderID(ctx context.Context, orderID int64) (*Payment, error) {
	query := `
		SELECT id, order_id, amount, payment_method, COALESCE(transaction_id, ''), status, created_at, updated_at
		FROM payments
		WHERE order_id = $1
	`

	var p Payment
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&p.ID,
		&p.OrderID,
		&p.Amount,
		&p.PaymentMethod,
		&p.TransactionID,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("repository: failed to select payment for order %d: %w", orderID, err)
	}

	return &p, nil
}

// UpdateStatus finalizes a pending payment and mirrors the new status
// onto the owning order in the same transaction, so the two rows can
// never disagree. Only pending payments can be finalized.
func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status Status, transactionID string) (p *Payment, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if pnc := recover(); pnc != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("repository: failed to rollback after panic in UpdateStatus")
			}
			panic(pnc)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Int64("payment_id", id).Msg("repository: failed to rollback payment status update")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Int64("payment_id", id).Msg("repository: failed to commit payment status update")
				p = nil
				err = fmt.Errorf("repository: failed to commit payment status update: %w", commitErr)
			}
		}
	}()

	queryPayment := `
		UPDATE payments
		SET status = $1, transaction_id = $2, updated_at = now()
		WHERE id = $3 AND status = $4
		RETURNING id, order_id, amount, payment_method, COALESCE(transaction_id, ''), status, created_at, updated_at
	`

	p = &Payment{}
	err = tx.QueryRow(ctx, queryPayment, string(status), nullIfEmpty(transactionID), id, string(StatusPending)).Scan(
		&p.ID,
		&p.OrderID,
		&p.Amount,
		&p.PaymentMethod,
		&p.TransactionID,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p = nil
			err = r.classifyMissedUpdate(ctx, tx, id)
			return nil, err
		}
		p = nil
		err = fmt.Errorf("repository: failed to update payment %d: %w", id, err)
		return nil, err
	}

	queryOrder := `
		UPDATE orders
		SET payment_status = $1, updated_at = now()
		WHERE id = $2
	`
	orderID := p.OrderID
	if _, err = tx.Exec(ctx, queryOrder, string(status), orderID); err != nil {
		p = nil
		err = fmt.Errorf("repository: failed to sync payment status onto order %d: %w", orderID, err)
		return nil, err
	}

	return p, nil
}

// classifyMissedUpdate tells a missing payment apart from one that was
// already finalized, after the guarded update matched no row.
func (r *postgresRepository) classifyMissedUpdate(ctx context.Context, tx pgx.Tx, id int64) error {
	var current Status
	err := tx.QueryRow(ctx, `SELECT status FROM payments WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("repository: failed to inspect payment %d: %w", id, err)
	}
	return ErrPaymentFinalized
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
