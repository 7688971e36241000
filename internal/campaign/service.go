package campaign

import (
	"context"
	"time"
)

// DetailView decorates a campaign with the derived fields the detail
// page renders: progress percentage and expiry.
type DetailView struct {
	*Campaign
	Progress  float64 `json:"progress"`
	Unlimited bool    `json:"unlimited"`
	Expired   bool    `json:"expired"`
}

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]*DetailView, error)
	GetBySlug(ctx context.Context, slug string) (*DetailView, error)
	ListUpdates(ctx context.Context, slug string) ([]*Update, error)
	// EnsureAcceptsDonations rejects donations against inactive or
	// expired campaigns before any payment work starts.
	EnsureAcceptsDonations(ctx context.Context, slug string) (*Campaign, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) view(c *Campaign) *DetailView {
	return &DetailView{
		Campaign:  c,
		Progress:  c.Progress(),
		Unlimited: c.Unlimited(),
		Expired:   c.Expired(s.now()),
	}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*DetailView, error) {
	campaigns, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	views := make([]*DetailView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, s.view(c))
	}
	return views, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*DetailView, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *service) ListUpdates(ctx context.Context, slug string) ([]*Update, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListUpdates(ctx, c.ID)
}

func (s *service) EnsureAcceptsDonations(ctx context.Context, slug string) (*Campaign, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, ErrInactive
	}
	if c.Expired(s.now()) {
		return nil, ErrExpired
	}
	return c, nil
}
