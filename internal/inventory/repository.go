package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInventoryNameExists   = errors.New("inventory item with this name already exists")
	ErrNegativeQuantity      = errors.New("inventory quantity must stay non-negative")
	ErrMappingNotFound       = errors.New("menu inventory mapping not found")
	ErrMappingExists         = errors.New("mapping for this menu item and ingredient already exists")
	ErrMappingBadReference   = errors.New("mapping references a missing menu item or ingredient")
)

type Repository interface {
	Create(ctx context.Context, item *InventoryItem) error
	GetByID(ctx context.Context, id int64) (*InventoryItem, error)
	List(ctx context.Context) ([]InventoryItem, error)
	Update(ctx context.Context, id int64, update InventoryItemUpdate) error
	Delete(ctx context.Context, id int64) error
	Restock(ctx context.Context, id int64, amount float64) (*InventoryItem, error)
	ListLowStock(ctx context.Context) ([]InventoryItem, error)
	CreateMapping(ctx context.Context, m *Mapping) error
	ListMappingsByMenuItem(ctx context.Context, menuItemID int64) ([]Mapping, error)
	DeleteMapping(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, item *InventoryItem) error {
	query := `
		INSERT INTO inventory (name, quantity, unit, min_quantity, cost_per_unit, supplier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.Quantity,
		item.Unit,
		item.MinQuantity,
		item.CostPerUnit,
		item.Supplier,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrInventoryNameExists
		}
		return fmt.Errorf("repository: failed to insert inventory item: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*InventoryItem, error) {
	query := `
		SELECT id, name, quantity, unit, min_quantity, cost_per_unit, supplier, created_at, updated_at
		FROM inventory
		WHERE id = $1
	`

	var item InventoryItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.MinQuantity,
		&item.CostPerUnit,
		&item.Supplier,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("repository: failed to select inventory item %d: %w", id, err)
	}

	return &item, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]InventoryItem, error) {
	query := `
		SELECT id, name, quantity, unit, min_quantity, cost_per_unit, supplier, created_at, updated_at
		FROM inventory
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query inventory: %w", err)
	}
	defer rows.Close()

	return scanInventoryItems(rows)
}

func (r *postgresRepository) Update(ctx context.Context, id int64, update InventoryItemUpdate) error {
	query := `
		UPDATE inventory
		SET name = $1, quantity = $2, unit = $3, min_quantity = $4, cost_per_unit = $5, supplier = $6, updated_at = now()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		update.Name,
		update.Quantity,
		update.Unit,
		update.MinQuantity,
		update.CostPerUnit,
		update.Supplier,
		id,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrInventoryNameExists
			case pgerrcode.CheckViolation:
				return ErrNegativeQuantity
			}
		}
		return fmt.Errorf("repository: failed to update inventory item %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrInventoryItemNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete inventory item %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrInventoryItemNotFound
	}

	return nil
}

// Restock adds amount to the stored quantity atomically and returns the
// updated row, so concurrent deliveries never clobber each other.
func (r *postgresRepository) Restock(ctx context.Context, id int64, amount float64) (*InventoryItem, error) {
	query := `
		UPDATE inventory
		SET quantity = quantity + $1, updated_at = now()
		WHERE id = $2
		RETURNING id, name, quantity, unit, min_quantity, cost_per_unit, supplier, created_at, updated_at
	`

	var item InventoryItem
	err := r.db.QueryRow(ctx, query, amount, id).Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.MinQuantity,
		&item.CostPerUnit,
		&item.Supplier,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("repository: failed to restock inventory item %d: %w", id, err)
	}

	return &item, nil
}

func (r *postgresRepository) ListLowStock(ctx context.Context) ([]InventoryItem, error) {
	query := `
		SELECT id, name, quantity, unit, min_quantity, cost_per_unit, supplier, created_at, updated_at
		FROM inventory
		WHERE quantity <= min_quantity
		ORDER BY quantity / NULLIF(min_quantity, 0) NULLS FIRST, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query low stock items: %w", err)
	}
	defer rows.Close()

	return scanInventoryItems(rows)
}

func (r *postgresRepository) CreateMapping(ctx context.Context, m *Mapping) error {
	query := `
		INSERT INTO menu_inventory_mapping (menu_item_id, inventory_id, quantity_required)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, m.MenuItemID, m.InventoryID, m.QuantityRequired).Scan(&m.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrMappingExists
			case pgerrcode.ForeignKeyViolation:
				return ErrMappingBadReference
			}
		}
		return fmt.Errorf("repository: failed to insert mapping: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListMappingsByMenuItem(ctx context.Context, menuItemID int64) ([]Mapping, error) {
	query := `
		SELECT id, menu_item_id, inventory_id, quantity_required
		FROM menu_inventory_mapping
		WHERE menu_item_id = $1
		ORDER BY inventory_id
	`

	rows, err := r.db.Query(ctx, query, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query mappings for menu item %d: %w", menuItemID, err)
	}
	defer rows.Close()

	mappings := make([]Mapping, 0)
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(&m.ID, &m.MenuItemID, &m.InventoryID, &m.QuantityRequired); err != nil {
			return nil, fmt.Errorf("repository: failed to scan mapping: %w", err)
		}
		mappings = append(mappings, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating mappings: %w", err)
	}

	return mappings, nil
}

func (r *postgresRepository) DeleteMapping(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM menu_inventory_mapping WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete mapping %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrMappingNotFound
	}

	return nil
}

func scanInventoryItems(rows pgx.Rows) ([]InventoryItem, error) {
	items := make([]InventoryItem, 0)
	for rows.Next() {
		var item InventoryItem
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Quantity,
			&item.Unit,
			&item.MinQuantity,
			&item.CostPerUnit,
			&item.Supplier,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating inventory: %w", err)
	}

	return items, nil
}
