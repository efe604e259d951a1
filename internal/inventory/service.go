package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidInventoryItem = errors.New("invalid inventory item")

// knownErrs are repository sentinels passed through to callers unchanged
// so handlers can map them to status codes.
var knownErrs = []error{
	ErrInventoryItemNotFound,
	ErrInventoryNameExists,
	ErrNegativeQuantity,
	ErrMappingNotFound,
	ErrMappingExists,
	ErrMappingBadReference,
}

type Service interface {
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

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, item *InventoryItem) error {
	if err := validateItemFields(item.Name, item.Quantity, item.Unit, item.MinQuantity, item.CostPerUnit); err != nil {
		return err
	}

	item.Name = strings.TrimSpace(item.Name)
	if err := s.repo.Create(ctx, item); err != nil {
		return passThrough("create inventory item", err)
	}

	return nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*InventoryItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInventoryItem)
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, passThrough("get inventory item", err)
	}

	return item, nil
}

func (s *service) List(ctx context.Context) ([]InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list inventory: %w", err)
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, id int64, update InventoryItemUpdate) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInventoryItem)
	}
	if err := validateItemFields(update.Name, update.Quantity, update.Unit, update.MinQuantity, update.CostPerUnit); err != nil {
		return err
	}

	update.Name = strings.TrimSpace(update.Name)
	if err := s.repo.Update(ctx, id, update); err != nil {
		return passThrough("update inventory item", err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInventoryItem)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return passThrough("delete inventory item", err)
	}

	return nil
}

func (s *service) Restock(ctx context.Context, id int64, amount float64) (*InventoryItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInventoryItem)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: restock amount must be positive", ErrInvalidInventoryItem)
	}

	item, err := s.repo.Restock(ctx, id, amount)
	if err != nil {
		return nil, passThrough("restock inventory item", err)
	}

	return item, nil
}

func (s *service) ListLowStock(ctx context.Context) ([]InventoryItem, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list low stock items: %w", err)
	}
	return items, nil
}

func (s *service) CreateMapping(ctx context.Context, m *Mapping) error {
	if m.MenuItemID <= 0 || m.InventoryID <= 0 {
		return fmt.Errorf("%w: mapping ids must be positive", ErrInvalidInventoryItem)
	}
	if m.QuantityRequired <= 0 {
		return fmt.Errorf("%w: quantity required must be positive", ErrInvalidInventoryItem)
	}

	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return passThrough("create mapping", err)
	}

	return nil
}

func (s *service) ListMappingsByMenuItem(ctx context.Context, menuItemID int64) ([]Mapping, error) {
	if menuItemID <= 0 {
		return nil, fmt.Errorf("%w: menu item id must be positive", ErrInvalidInventoryItem)
	}

	mappings, err := s.repo.ListMappingsByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list mappings: %w", err)
	}

	return mappings, nil
}

func (s *service) DeleteMapping(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInventoryItem)
	}

	if err := s.repo.DeleteMapping(ctx, id); err != nil {
		return passThrough("delete mapping", err)
	}

	return nil
}

func validateItemFields(name string, quantity float64, unit string, minQuantity, costPerUnit float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInventoryItem)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInventoryItem)
	}
	if strings.TrimSpace(unit) == "" {
		return fmt.Errorf("%w: unit is required", ErrInvalidInventoryItem)
	}
	if minQuantity < 0 {
		return fmt.Errorf("%w: min quantity must be non-negative", ErrInvalidInventoryItem)
	}
	if costPerUnit < 0 {
		return fmt.Errorf("%w: cost per unit must be non-negative", ErrInvalidInventoryItem)
	}
	return nil
}

func passThrough(op string, err error) error {
	for _, known := range knownErrs {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("service: failed to %s: %w", op, err)
}
