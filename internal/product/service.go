package product

import "context"

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	return s.repo.List(ctx, opts)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}
