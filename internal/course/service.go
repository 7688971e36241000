package course

import (
	"context"

	"github.com/nj-ramadhan/barakah-be/internal/logger"

	"go.uber.org/zap"
)

type DetailView struct {
	*Course
	FinalPrice int64 `json:"final_price"`
	Free       bool  `json:"free"`
	Enrolled   bool  `json:"enrolled"`
}

type Service interface {
	List(ctx context.Context, f ListFilter) ([]*Course, error)
	GetBySlug(ctx context.Context, slug string, userID uint) (*DetailView, error)
	Enroll(ctx context.Context, userID uint, slug string) error
	MyCourses(ctx context.Context, userID uint) ([]*Enrollment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, f ListFilter) ([]*Course, error) {
	return s.repo.List(ctx, f)
}

// GetBySlug includes whether the requesting user is enrolled;
// userID 0 means an anonymous visitor.
func (s *service) GetBySlug(ctx context.Context, slug string, userID uint) (*DetailView, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	view := &DetailView{
		Course:     c,
		FinalPrice: c.FinalPrice(),
		Free:       c.Free(),
	}
	if userID != 0 {
		enrolled, err := s.repo.IsEnrolled(ctx, userID, c.ID)
		if err != nil {
			return nil, err
		}
		view.Enrolled = enrolled
	}
	return view, nil
}

func (s *service) Enroll(ctx context.Context, userID uint, slug string) error {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !c.IsActive {
		return ErrInactive
	}

	if err := s.repo.Enroll(ctx, userID, c.ID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("user enrolled",
		zap.Uint("user_id", userID),
		zap.String("course", c.Slug),
	)
	return nil
}

func (s *service) MyCourses(ctx context.Context, userID uint) ([]*Enrollment, error) {
	return s.repo.ListEnrollments(ctx, userID)
}
