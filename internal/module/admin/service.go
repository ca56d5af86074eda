// Package admin wraps the dashboard endpoints for admin sign-in, admin
// accounts and admin-role bindings.
package admin

import (
	"context"
	"fmt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

// Service defines admin operations.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*domain.AdminSession, error)
	Logout(ctx context.Context) error
	Permissions(ctx context.Context) ([]string, error)

	Create(ctx context.Context, req CreateRequest) (*domain.Admin, error)
	Update(ctx context.Context, req UpdateRequest) (*domain.Admin, error)
	UpdatePassword(ctx context.Context, req PasswordRequest) error
	Delete(ctx context.Context, adminID int64) error
	BatchDelete(ctx context.Context, adminIDs []int64) error
	List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.Admin], error)
	Detail(ctx context.Context, adminID int64) (*domain.Admin, error)

	BindRoles(ctx context.Context, req RoleBindRequest) error
	UnbindRoles(ctx context.Context, req RoleBindRequest) error
	UnbindAllRoles(ctx context.Context, adminID int64) error
	Roles(ctx context.Context, adminID int64) ([]domain.AdminRole, error)
}

type adminService struct {
	client *httpclient.Client
	prefix string
}

// NewService creates an admin Service rooted at prefix (e.g. "/api/admin").
func NewService(client *httpclient.Client, prefix string) Service {
	return &adminService{client: client, prefix: prefix}
}

func (s *adminService) path(format string, args ...any) string {
	return s.prefix + fmt.Sprintf(format, args...)
}

func (s *adminService) Login(ctx context.Context, req LoginRequest) (*domain.AdminSession, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	sess, err := httpclient.Post[*domain.AdminSession](ctx, s.client, s.path("/login"), req)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Token == "" {
		return nil, domain.NewAppError(domain.CodeBusiness, "login failed", nil)
	}
	sess.Avatar = AvatarURL(sess.FullName, sess.Username)
	return sess, nil
}

func (s *adminService) Logout(ctx context.Context) error {
	_, err := httpclient.Post[any](ctx, s.client, s.path("/logout"), nil)
	return err
}

func (s *adminService) Permissions(ctx context.Context) ([]string, error) {
	data, err := httpclient.Get[struct {
		Permissions []string `json:"permissions"`
	}](ctx, s.client, s.path("/permissions"), nil)
	if err != nil {
		return nil, err
	}
	return data.Permissions, nil
}

func (s *adminService) Create(ctx context.Context, req CreateRequest) (*domain.Admin, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Post[*domain.Admin](ctx, s.client, s.path("/create"), req)
}

func (s *adminService) Update(ctx context.Context, req UpdateRequest) (*domain.Admin, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Put[*domain.Admin](ctx, s.client, s.path("/update"), req)
}

func (s *adminService) UpdatePassword(ctx context.Context, req PasswordRequest) error {
	if err := pkg.Validate(&req); err != nil {
		return err
	}
	_, err := httpclient.Put[any](ctx, s.client, s.path("/update-password"), req)
	return err
}

func (s *adminService) Delete(ctx context.Context, adminID int64) error {
	if err := pkg.ValidateID("adminId", adminID); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.path("/delete/%d", adminID), nil)
	return err
}

func (s *adminService) BatchDelete(ctx context.Context, adminIDs []int64) error {
	if err := pkg.ValidateIDs("adminIds", adminIDs); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.path("/batch-delete"), adminIDs)
	return err
}

func (s *adminService) List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.Admin], error) {
	query, err := pkg.ListQuery(&req)
	if err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.PageResult[domain.Admin]](ctx, s.client, s.path("/list"), query)
}

func (s *adminService) Detail(ctx context.Context, adminID int64) (*domain.Admin, error) {
	if err := pkg.ValidateID("adminId", adminID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.Admin](ctx, s.client, s.path("/detail/%d", adminID), nil)
}

func (s *adminService) BindRoles(ctx context.Context, req RoleBindRequest) error {
	return s.postRoles(ctx, "/admin-role/bind", req)
}

func (s *adminService) UnbindRoles(ctx context.Context, req RoleBindRequest) error {
	return s.postRoles(ctx, "/admin-role/unbind", req)
}

func (s *adminService) postRoles(ctx context.Context, path string, req RoleBindRequest) error {
	if err := pkg.Validate(&req); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, s.path("%s", path), req)
	return err
}

func (s *adminService) UnbindAllRoles(ctx context.Context, adminID int64) error {
	if err := pkg.ValidateID("adminId", adminID); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, s.path("/admin-role/unbind-all/%d", adminID), nil)
	return err
}

func (s *adminService) Roles(ctx context.Context, adminID int64) ([]domain.AdminRole, error) {
	if err := pkg.ValidateID("adminId", adminID); err != nil {
		return nil, err
	}
	return httpclient.Get[[]domain.AdminRole](ctx, s.client, s.path("/admin-role/list/%d", adminID), nil)
}
