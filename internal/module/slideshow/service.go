// Package slideshow wraps the home page carousel: dashboard management under
// /api/slideshow and the public list and click counter.
package slideshow

import (
	"context"
	"fmt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

const (
	adminBase  = "/api/slideshow"
	publicBase = "/api/home/slideshow"
)

// Service defines carousel operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*domain.Slideshow, error)
	Update(ctx context.Context, req UpdateRequest) (*domain.Slideshow, error)
	Delete(ctx context.Context, slideshowID int64) error
	BatchDelete(ctx context.Context, slideshowIDs []int64) error
	List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.Slideshow], error)
	Detail(ctx context.Context, slideshowID int64) (*domain.Slideshow, error)
	Active(ctx context.Context) ([]domain.Slideshow, error)

	// Public returns the entries currently shown on the home page.
	Public(ctx context.Context) ([]domain.Slideshow, error)
	// Click counts a click on an entry. Failures are returned but callers
	// usually ignore them.
	Click(ctx context.Context, slideshowID int64) error
}

type slideshowService struct {
	client *httpclient.Client
}

// NewService creates a carousel Service.
func NewService(client *httpclient.Client) Service {
	return &slideshowService{client: client}
}

func (s *slideshowService) Create(ctx context.Context, req CreateRequest) (*domain.Slideshow, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	if err := validWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	return httpclient.Post[*domain.Slideshow](ctx, s.client, adminBase+"/create", req)
}

func (s *slideshowService) Update(ctx context.Context, req UpdateRequest) (*domain.Slideshow, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	if err := validWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	return httpclient.Put[*domain.Slideshow](ctx, s.client, adminBase+"/update", req)
}

func (s *slideshowService) Delete(ctx context.Context, slideshowID int64) error {
	if err := pkg.ValidateID("slideshowId", slideshowID); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, fmt.Sprintf("%s/delete/%d", adminBase, slideshowID), nil)
	return err
}

func (s *slideshowService) BatchDelete(ctx context.Context, slideshowIDs []int64) error {
	if err := pkg.ValidateIDs("slideshowIds", slideshowIDs); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, adminBase+"/batch-delete", slideshowIDs)
	return err
}

func (s *slideshowService) List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.Slideshow], error) {
	query, err := pkg.ListQuery(&req)
	if err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.PageResult[domain.Slideshow]](ctx, s.client, adminBase+"/list", query)
}

func (s *slideshowService) Detail(ctx context.Context, slideshowID int64) (*domain.Slideshow, error) {
	if err := pkg.ValidateID("slideshowId", slideshowID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.Slideshow](ctx, s.client, fmt.Sprintf("%s/detail/%d", adminBase, slideshowID), nil)
}

func (s *slideshowService) Active(ctx context.Context) ([]domain.Slideshow, error) {
	return httpclient.Get[[]domain.Slideshow](ctx, s.client, adminBase+"/active", nil)
}

func (s *slideshowService) Public(ctx context.Context) ([]domain.Slideshow, error) {
	return httpclient.Get[[]domain.Slideshow](ctx, s.client, publicBase+"/list", nil)
}

func (s *slideshowService) Click(ctx context.Context, slideshowID int64) error {
	if err := pkg.ValidateID("slideshowId", slideshowID); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, fmt.Sprintf("%s/click/%d", publicBase, slideshowID), nil)
	return err
}
