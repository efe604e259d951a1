package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrMenuItemInUse    = errors.New("menu item is referenced by existing orders")
)

type Repository interface {
	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, id int64) (*MenuItem, error)
	List(ctx context.Context, filter ListFilter) ([]MenuItem, error)
	Update(ctx context.Context, id int64, update MenuItemUpdate) error
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, item *MenuItem) error {
	query := `
		INSERT INTO menu_items (name, description, price, category, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		string(item.Category),
		item.IsAvailable,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to insert menu item: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, is_available, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`

	var item MenuItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.IsAvailable,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("repository: failed to select menu item %d: %w", id, err)
	}

	return &item, nil
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, is_available, created_at, updated_at
		FROM menu_items
	`

	var conds []string
	var args []any
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.AvailableOnly {
		conds = append(conds, "is_available")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY category, name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := make([]MenuItem, 0)
	for rows.Next() {
		var item MenuItem
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Category,
			&item.IsAvailable,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating menu items: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, update MenuItemUpdate) error {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, is_available = $5, updated_at = now()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		update.Name,
		update.Description,
		update.Price,
		string(update.Category),
		update.IsAvailable,
		id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update menu item %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			log.Warn().Int64("menu_item_id", id).Msg("repository: menu item still referenced by order items")
			return ErrMenuItemInUse
		}
		return fmt.Errorf("repository: failed to delete menu item %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}

	return nil
}
