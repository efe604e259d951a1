package report

import (
	"context"
	"fmt"
)

type Service interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build dashboard stats: %w", err)
	}
	return stats, nil
}
