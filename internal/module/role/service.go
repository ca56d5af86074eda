// Package role wraps the dashboard role endpoints and role-permission bindings.
package role

import (
	"context"
	"fmt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

// Service defines role operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*domain.AdminRole, error)
	Update(ctx context.Context, req UpdateRequest) (*domain.AdminRole, error)
	Delete(ctx context.Context, roleID int64) error
	BatchDelete(ctx context.Context, roleIDs []int64) error
	List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.AdminRole], error)
	Detail(ctx context.Context, roleID int64) (*domain.AdminRole, error)
	All(ctx context.Context) ([]domain.AdminRole, error)

	BindPermissions(ctx context.Context, req PermissionBindRequest) error
	UnbindPermissions(ctx context.Context, req PermissionBindRequest) error
	UnbindAllPermissions(ctx context.Context, roleID int64) error
	Permissions(ctx context.Context, roleID int64) ([]domain.AdminPermission, error)
}

type roleService struct {
	client *httpclient.Client
	prefix string
}

// NewService creates a role Service under the admin prefix.
func NewService(client *httpclient.Client, prefix string) Service {
	return &roleService{client: client, prefix: prefix}
}

func (s *roleService) path(format string, args ...any) string {
	return s.prefix + fmt.Sprintf(format, args...)
}

func (s *roleService) Create(ctx context.Context, req CreateRequest) (*domain.AdminRole, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Post[*domain.AdminRole](ctx, s.client, s.path("/role/create"), req)
}

func (s *roleService) Update(ctx context.Context, req UpdateRequest) (*domain.AdminRole, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Put[*domain.AdminRole](ctx, s.client, s.path("/role/update"), req)
}

func (s *roleService) Delete(ctx context.Context, roleID int64) error {
	if err := pkg.ValidateID("roleId", roleID); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.path("/role/delete/%d", roleID), nil)
	return err
}

func (s *roleService) BatchDelete(ctx context.Context, roleIDs []int64) error {
	if err := pkg.ValidateIDs("roleIds", roleIDs); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.path("/role/batch-delete"), roleIDs)
	return err
}

func (s *roleService) List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.AdminRole], error) {
	query, err := pkg.ListQuery(&req)
	if err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.PageResult[domain.AdminRole]](ctx, s.client, s.path("/role/list"), query)
}

func (s *roleService) Detail(ctx context.Context, roleID int64) (*domain.AdminRole, error) {
	if err := pkg.ValidateID("roleId", roleID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.AdminRole](ctx, s.client, s.path("/role/detail/%d", roleID), nil)
}

func (s *roleService) All(ctx context.Context) ([]domain.AdminRole, error) {
	return httpclient.Get[[]domain.AdminRole](ctx, s.client, s.path("/role/all"), nil)
}

func (s *roleService) BindPermissions(ctx context.Context, req PermissionBindRequest) error {
	return s.postBinding(ctx, "/role-permission/bind", req)
}

func (s *roleService) UnbindPermissions(ctx context.Context, req PermissionBindRequest) error {
	return s.postBinding(ctx, "/role-permission/unbind", req)
}

func (s *roleService) postBinding(ctx context.Context, path string, req PermissionBindRequest) error {
	if err := pkg.Validate(&req); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, s.path("%s", path), req)
	return err
}

func (s *roleService) UnbindAllPermissions(ctx context.Context, roleID int64) error {
	if err := pkg.ValidateID("roleId", roleID); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, s.path("/role-permission/unbind-all/%d", roleID), nil)
	return err
}

func (s *roleService) Permissions(ctx context.Context, roleID int64) ([]domain.AdminPermission, error) {
	if err := pkg.ValidateID("roleId", roleID); err != nil {
		return nil, err
	}
	return httpclient.Get[[]domain.AdminPermission](ctx, s.client, s.path("/role-permission/list/%d", roleID), nil)
}
