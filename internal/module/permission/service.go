// Package permission wraps the dashboard permission endpoints.
package permission

import (
	"context"
	"fmt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*domain.AdminPermission, error)
	Update(ctx context.Context, req UpdateRequest) (*domain.AdminPermission, error)
	Delete(ctx context.Context, permissionID int64) error
	BatchDelete(ctx context.Context, permissionIDs []int64) error
	List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.AdminPermission], error)
	Detail(ctx context.Context, permissionID int64) (*domain.AdminPermission, error)
	All(ctx context.Context) ([]domain.AdminPermission, error)
}

type permissionService struct {
	client *httpclient.Client
	prefix string
}

func NewService(client *httpclient.Client, prefix string) Service {
	return &permissionService{client: client, prefix: prefix + "/permission"}
}

func (s *permissionService) path(format string, args ...any) string {
	return s.prefix + fmt.Sprintf(format, args...)
}

func (s *permissionService) Create(ctx context.Context, req CreateRequest) (*domain.AdminPermission, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Post[*domain.AdminPermission](ctx, s.client, s.path("/create"), req)
}

func (s *permissionService) Update(ctx context.Context, req UpdateRequest) (*domain.AdminPermission, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Put[*domain.AdminPermission](ctx, s.client, s.path("/update"), req)
}

func (s *permissionService) Delete(ctx context.Context, permissionID int64) error {
	if err := pkg.ValidateID("permissionId", permissionID); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.path("/delete/%d", permissionID), nil)
	return err
}

func (s *permissionService) BatchDelete(ctx context.Context, permissionIDs []int64) error {
	if err := pkg.ValidateIDs("permissionIds", permissionIDs); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.path("/batch-delete"), permissionIDs)
	return err
}

func (s *permissionService) List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.AdminPermission], error) {
	query, err := pkg.ListQuery(&req)
	if err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.PageResult[domain.AdminPermission]](ctx, s.client, s.path("/list"), query)
}

func (s *permissionService) Detail(ctx context.Context, permissionID int64) (*domain.AdminPermission, error) {
	if err := pkg.ValidateID("permissionId", permissionID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.AdminPermission](ctx, s.client, s.path("/detail/%d", permissionID), nil)
}

func (s *permissionService) All(ctx context.Context) ([]domain.AdminPermission, error) {
	return httpclient.Get[[]domain.AdminPermission](ctx, s.client, s.path("/all"), nil)
}
