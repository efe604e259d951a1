package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMenuItem = errors.New("invalid menu item")

type Service interface {
	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, id int64) (*MenuItem, error)
	List(ctx context.Context, filter ListFilter) ([]MenuItem, error)
	Update(ctx context.Context, id int64, update MenuItemUpdate) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, item *MenuItem) error {
	if err := validateFields(item.Name, item.Price, item.Category); err != nil {
		return err
	}

	item.Name = strings.TrimSpace(item.Name)
	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("service: failed to create menu item: %w", err)
	}

	return nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*MenuItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidMenuItem)
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMenuItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to get menu item: %w", err)
	}

	return item, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]MenuItem, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidMenuItem, filter.Category)
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list menu items: %w", err)
	}

	return items, nil
}

func (s *service) Update(ctx context.Context, id int64, update MenuItemUpdate) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidMenuItem)
	}
	if err := validateFields(update.Name, update.Price, update.Category); err != nil {
		return err
	}

	update.Name = strings.TrimSpace(update.Name)
	if err := s.repo.Update(ctx, id, update); err != nil {
		if errors.Is(err, ErrMenuItemNotFound) {
			return err
		}
		return fmt.Errorf("service: failed to update menu item: %w", err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidMenuItem)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrMenuItemNotFound) || errors.Is(err, ErrMenuItemInUse) {
			return err
		}
		return fmt.Errorf("service: failed to delete menu item: %w", err)
	}

	return nil
}

func validateFields(name string, price float64, category Category) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMenuItem)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidMenuItem)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidMenuItem, category)
	}
	return nil
}
