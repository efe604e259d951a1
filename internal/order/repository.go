package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type Repository interface {
	PlaceOrder(ctx context.Context, ord *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, from, to OrderStatus) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// ingredientRequirement is one recipe line resolved inside the placement
// transaction: which mapping row to consume and the ingredient's name for
// the error message when stock runs out.
type ingredientRequirement struct {
	mappingID        int64
	inventoryID      int64
	quantityRequired float64
	name             string
}

// PlaceOrder writes the order, its items, the stock decrements, and the
// pending payment as one transaction. Any failure, including a single
// exhausted ingredient, rolls the whole unit back; on success the order
// id and timestamps are written back into ord.
func (r *postgresRepository) PlaceOrder(ctx context.Context, ord *Order) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("repository: failed to rollback after panic in PlaceOrder")
			}
			panic(p)
		} else if err != nil {
			log.Warn().Err(err).Msg("repository: rolling back order placement")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("repository: failed to rollback order placement")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Int64("order_id", ord.ID).Msg("repository: failed to commit order placement")
				err = fmt.Errorf("repository: failed to commit order placement: %w", commitErr)
			}
		}
	}()

	queryOrder := `
		INSERT INTO orders (customer_name, customer_phone, customer_email, total_amount, status, payment_status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, queryOrder,
		ord.CustomerName,
		ord.CustomerPhone,
		nullIfEmpty(ord.CustomerEmail),
		ord.TotalAmount,
		string(ord.Status),
		string(ord.PaymentStatus),
		ord.PaymentMethod,
	).Scan(&ord.ID, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		err = fmt.Errorf("repository: failed to insert order: %w", err)
		return err
	}

	queryItem := `
		INSERT INTO order_items (order_id, menu_item_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	batch := &pgx.Batch{}
	for i := range ord.Items {
		item := &ord.Items[i]
		batch.Queue(queryItem, ord.ID, item.MenuItemID, item.Quantity, item.Price)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range ord.Items {
		if err = br.QueryRow().Scan(&ord.Items[i].ID); err != nil {
			break
		}
		ord.Items[i].OrderID = ord.ID
	}
	if closeErr := br.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			err = ErrMenuItemUnknown
			return err
		}
		err = fmt.Errorf("repository: failed to insert order items for order %d: %w", ord.ID, err)
		return err
	}

	for i := range ord.Items {
		item := &ord.Items[i]

		var reqs []ingredientRequirement
		reqs, err = r.requirementsForMenuItem(ctx, tx, item.MenuItemID)
		if err != nil {
			return err
		}

		for _, req := range reqs {
			// The decrement and the sufficiency check are one statement, so
			// two concurrent orders can never both pass the check and drive
			// the quantity negative. Arithmetic runs on the NUMERIC columns.
			queryConsume := `
				UPDATE inventory i
				SET quantity = i.quantity - (m.quantity_required * $1), updated_at = now()
				FROM menu_inventory_mapping m
				WHERE m.id = $2
				  AND i.id = m.inventory_id
				  AND i.quantity >= (m.quantity_required * $1)
			`
			var cmdTag pgconn.CommandTag
			cmdTag, err = tx.Exec(ctx, queryConsume, item.Quantity, req.mappingID)
			if err != nil {
				err = fmt.Errorf("repository: failed to consume ingredient %q for order %d: %w", req.name, ord.ID, err)
				return err
			}
			if cmdTag.RowsAffected() == 0 {
				err = &InsufficientInventoryError{MenuItemID: item.MenuItemID, Ingredient: req.name}
				return err
			}
		}
	}

	queryPayment := `
		INSERT INTO payments (order_id, amount, payment_method, status)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.Exec(ctx, queryPayment, ord.ID, ord.TotalAmount, ord.PaymentMethod, string(PaymentPending))
	if err != nil {
		err = fmt.Errorf("repository: failed to insert payment for order %d: %w", ord.ID, err)
		return err
	}

	return nil
}

// requirementsForMenuItem resolves the recipe inside the placement
// transaction, ordered by ingredient id so concurrent placements touch
// inventory rows in the same order.
func (r *postgresRepository) requirementsForMenuItem(ctx context.Context, tx pgx.Tx, menuItemID int64) ([]ingredientRequirement, error) {
	query := `
		SELECT m.id, m.inventory_id, m.quantity_required, i.name
		FROM menu_inventory_mapping m
		JOIN inventory i ON i.id = m.inventory_id
		WHERE m.menu_item_id = $1
		ORDER BY m.inventory_id
	`

	rows, err := tx.Query(ctx, query, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query recipe for menu item %d: %w", menuItemID, err)
	}
	defer rows.Close()

	var reqs []ingredientRequirement
	for rows.Next() {
		var req ingredientRequirement
		if err := rows.Scan(&req.mappingID, &req.inventoryID, &req.quantityRequired, &req.name); err != nil {
			return nil, fmt.Errorf("repository: failed to scan recipe line for menu item %d: %w", menuItemID, err)
		}
		reqs = append(reqs, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating recipe for menu item %d: %w", menuItemID, err)
	}

	return reqs, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	queryOrder := `
		SELECT id, customer_name, customer_phone, COALESCE(customer_email, ''), total_amount, status, payment_status, payment_method, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var ord Order
	err := r.db.QueryRow(ctx, queryOrder, id).Scan(
		&ord.ID,
		&ord.CustomerName,
		&ord.CustomerPhone,
		&ord.CustomerEmail,
		&ord.TotalAmount,
		&ord.Status,
		&ord.PaymentStatus,
		&ord.PaymentMethod,
		&ord.CreatedAt,
		&ord.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order %d: %w", id, err)
	}

	queryItems := `
		SELECT id, order_id, menu_item_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, queryItems, id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query items for order %d: %w", id, err)
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("repository: failed to scan item for order %d: %w", id, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating items for order %d: %w", id, err)
	}

	ord.Items = items

	return &ord, nil
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	queryOrders := `
		SELECT id, customer_name, customer_phone, COALESCE(customer_email, ''), total_amount, status, payment_status, payment_method, created_at, updated_at
		FROM orders
	`
	var args []any
	if filter.Status != "" {
		queryOrders += " WHERE status = $1"
		args = append(args, string(filter.Status))
	}
	queryOrders += " ORDER BY created_at DESC"

	orderRows, err := r.db.Query(ctx, queryOrders, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer orderRows.Close()

	ordersMap := make(map[int64]*Order)
	var orderIDs []int64

	for orderRows.Next() {
		var ord Order
		err := orderRows.Scan(
			&ord.ID,
			&ord.CustomerName,
			&ord.CustomerPhone,
			&ord.CustomerEmail,
			&ord.TotalAmount,
			&ord.Status,
			&ord.PaymentStatus,
			&ord.PaymentMethod,
			&ord.CreatedAt,
			&ord.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		ord.Items = make([]OrderItem, 0)
		ordersMap[ord.ID] = &ord
		orderIDs = append(orderIDs, ord.ID)
	}

	if err = orderRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	if len(orderIDs) == 0 {
		return []Order{}, nil
	}

	queryItems := `
		SELECT id, order_id, menu_item_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`
	itemRows, err := r.db.Query(ctx, queryItems, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}
		if ord, ok := ordersMap[item.OrderID]; ok {
			ord.Items = append(ord.Items, item)
		}
	}

	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}

	orders := make([]Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		if ord, ok := ordersMap[id]; ok {
			orders = append(orders, *ord)
		}
	}

	return orders, nil
}

// UpdateStatus applies a transition the service already validated. The
// WHERE clause re-checks the source status so a concurrent change makes
// the update a no-op instead of silently skipping a lifecycle step.
func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, from, to OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, string(to), id, string(from))
	if err != nil {
		log.Error().Err(err).Int64("order_id", id).Str("new_status", to.String()).Msg("repository: failed to update order status")
		return fmt.Errorf("repository: failed to update status for order %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		log.Warn().Int64("order_id", id).Str("expected_status", from.String()).Msg("repository: order status changed concurrently")
		return ErrStatusConflict
	}

	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
