package menu_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SankurTW/Restaurant-Management-System/internal/menu"
	"github.com/stretchr/testify/assert"
)

type mockMenuRepository struct {
	createFunc  func(ctx context.Context, item *menu.MenuItem) error
	getByIDFunc func(ctx context.Context, id int64) (*menu.MenuItem, error)
	listFunc    func(ctx context.Context, filter menu.ListFilter) ([]menu.MenuItem, error)
	updateFunc  func(ctx context.Context, id int64, update menu.MenuItemUpdate) error
	deleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockMenuRepository) Create(ctx context.Context, item *menu.MenuItem) error {
	return m.createFunc(ctx, item)
}

func (m *mockMenuRepository) GetByID(ctx context.Context, id int64) (*menu.MenuItem, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockMenuRepository) List(ctx context.Context, filter menu.ListFilter) ([]menu.MenuItem, error) {
	return m.listFunc(ctx, filter)
}

func (m *mockMenuRepository) Update(ctx context.Context, id int64, update menu.MenuItemUpdate) error {
	return m.updateFunc(ctx, id, update)
}

func (m *mockMenuRepository) Delete(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

func TestMenuService_Create(t *testing.T) {
	tests := []struct {
		name       string
		item       *menu.MenuItem
		createFunc func(ctx context.Context, item *menu.MenuItem) error
		wantErr    bool
		wantErrIs  error
	}{
		{
			name: "empty_name",
			item: &menu.MenuItem{
				Name:     "   ",
				Price:    9.99,
				Category: menu.CategoryMainCourse,
			},
			createFunc: func(ctx context.Context, item *menu.MenuItem) error { return nil },
			wantErr:    true,
			wantErrIs:  menu.ErrInvalidMenuItem,
		},
		{
			name: "negative_price",
			item: &menu.MenuItem{
				Name:     "Margherita Pizza",
				Price:    -0.01,
				Category: menu.CategoryMainCourse,
			},
			createFunc: func(ctx context.Context, item *menu.MenuItem) error { return nil },
			wantErr:    true,
			wantErrIs:  menu.ErrInvalidMenuItem,
		},
		{
			name: "zero_price_allowed",
			item: &menu.MenuItem{
				Name:     "Tap Water",
				Price:    0,
				Category: menu.CategoryBeverage,
			},
			createFunc: func(ctx context.Context, item *menu.MenuItem) error {
				item.ID = 2
				return nil
			},
			wantErr: false,
		},
		{
			name: "unknown_category",
			item: &menu.MenuItem{
				Name:     "Margherita Pizza",
				Price:    9.99,
				Category: menu.Category("snack"),
			},
			createFunc: func(ctx context.Context, item *menu.MenuItem) error { return nil },
			wantErr:    true,
			wantErrIs:  menu.ErrInvalidMenuItem,
		},
		{
			name: "repository_failure",
			item: &menu.MenuItem{
				Name:     "Margherita Pizza",
				Price:    9.99,
				Category: menu.CategoryMainCourse,
			},
			createFunc: func(ctx context.Context, item *menu.MenuItem) error {
				return errors.New("connection refused")
			},
			wantErr: true,
		},
		{
			name: "successful_creation",
			item: &menu.MenuItem{
				Name:        "Margherita Pizza",
				Description: "Tomato, mozzarella, basil",
				Price:       9.99,
				Category:    menu.CategoryMainCourse,
				IsAvailable: true,
			},
			createFunc: func(ctx context.Context, item *menu.MenuItem) error {
				item.ID = 1
				item.CreatedAt = time.Now()
				item.UpdatedAt = time.Now()
				return nil
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockMenuRepository{createFunc: tt.createFunc}
			svc := menu.NewService(mockRepo)
			err := svc.Create(context.Background(), tt.item)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs))
				}
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.item.ID)
			}
		})
	}
}

func TestMenuService_Create_TrimsName(t *testing.T) {
	var stored string
	mockRepo := &mockMenuRepository{
		createFunc: func(ctx context.Context, item *menu.MenuItem) error {
			stored = item.Name
			return nil
		},
	}

	svc := menu.NewService(mockRepo)
	err := svc.Create(context.Background(), &menu.MenuItem{
		Name:     "  Caesar Salad  ",
		Price:    7.50,
		Category: menu.CategoryAppetizer,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Caesar Salad", stored)
}

func TestMenuService_GetByID(t *testing.T) {
	want := &menu.MenuItem{
		ID:          3,
		Name:        "Tiramisu",
		Price:       6.00,
		Category:    menu.CategoryDessert,
		IsAvailable: true,
	}

	tests := []struct {
		name        string
		id          int64
		getByIDFunc func(ctx context.Context, id int64) (*menu.MenuItem, error)
		expected    *menu.MenuItem
		wantErr     bool
		wantErrIs   error
	}{
		{
			name: "success",
			id:   3,
			getByIDFunc: func(ctx context.Context, id int64) (*menu.MenuItem, error) {
				return want, nil
			},
			expected: want,
			wantErr:  false,
		},
		{
			name: "not_found",
			id:   999,
			getByIDFunc: func(ctx context.Context, id int64) (*menu.MenuItem, error) {
				return nil, menu.ErrMenuItemNotFound
			},
			wantErr:   true,
			wantErrIs: menu.ErrMenuItemNotFound,
		},
		{
			name:        "non_positive_id",
			id:          0,
			getByIDFunc: func(ctx context.Context, id int64) (*menu.MenuItem, error) { return nil, nil },
			wantErr:     true,
			wantErrIs:   menu.ErrInvalidMenuItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockMenuRepository{getByIDFunc: tt.getByIDFunc}
			svc := menu.NewService(mockRepo)
			item, err := svc.GetByID(context.Background(), tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, item)
			}
		})
	}
}

func TestMenuService_List(t *testing.T) {
	tests := []struct {
		name      string
		filter    menu.ListFilter
		listFunc  func(ctx context.Context, filter menu.ListFilter) ([]menu.MenuItem, error)
		wantLen   int
		wantErr   bool
		wantErrIs error
	}{
		{
			name:   "all_items",
			filter: menu.ListFilter{},
			listFunc: func(ctx context.Context, filter menu.ListFilter) ([]menu.MenuItem, error) {
				return []menu.MenuItem{{ID: 1}, {ID: 2}}, nil
			},
			wantLen: 2,
		},
		{
			name:   "filtered_by_category",
			filter: menu.ListFilter{Category: menu.CategoryBeverage},
			listFunc: func(ctx context.Context, filter menu.ListFilter) ([]menu.MenuItem, error) {
				return []menu.MenuItem{{ID: 5, Category: menu.CategoryBeverage}}, nil
			},
			wantLen: 1,
		},
		{
			name:      "invalid_category",
			filter:    menu.ListFilter{Category: menu.Category("junk")},
			listFunc:  func(ctx context.Context, filter menu.ListFilter) ([]menu.MenuItem, error) { return nil, nil },
			wantErr:   true,
			wantErrIs: menu.ErrInvalidMenuItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockMenuRepository{listFunc: tt.listFunc}
			svc := menu.NewService(mockRepo)
			items, err := svc.List(context.Background(), tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs))
				}
			} else {
				assert.NoError(t, err)
				assert.Len(t, items, tt.wantLen)
			}
		})
	}
}

func TestMenuService_Delete(t *testing.T) {
	tests := []struct {
		name       string
		id         int64
		deleteFunc func(ctx context.Context, id int64) error
		wantErr    bool
		wantErrIs  error
	}{
		{
			name:       "success",
			id:         4,
			deleteFunc: func(ctx context.Context, id int64) error { return nil },
			wantErr:    false,
		},
		{
			name:       "referenced_by_orders",
			id:         4,
			deleteFunc: func(ctx context.Context, id int64) error { return menu.ErrMenuItemInUse },
			wantErr:    true,
			wantErrIs:  menu.ErrMenuItemInUse,
		},
		{
			name:       "not_found",
			id:         999,
			deleteFunc: func(ctx context.Context, id int64) error { return menu.ErrMenuItemNotFound },
			wantErr:    true,
			wantErrIs:  menu.ErrMenuItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockMenuRepository{deleteFunc: tt.deleteFunc}
			svc := menu.NewService(mockRepo)
			err := svc.Delete(context.Background(), tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
