// Package city lists public city cards.
package city

import (
	"context"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

// QueryRequest filters the public city list.
type QueryRequest struct {
	domain.PageQuery
	CityName string `json:"cityName,omitempty"`
	Country  string `json:"country,omitempty"`
	Status   *int   `json:"status,omitempty"`
}

type Service interface {
	List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.CityCard], error)
}

type cityService struct {
	client *httpclient.Client
}

func NewService(client *httpclient.Client) Service {
	return &cityService{client: client}
}

func (s *cityService) List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.CityCard], error) {
	if req.PageNum == 0 {
		req.PageNum = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Post[*domain.PageResult[domain.CityCard]](ctx, s.client, "/api/city/list", req)
}
