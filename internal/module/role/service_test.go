package role

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/simp-lee/waystar/internal/apitest"
	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
)

func newTestService(t *testing.T) (Service, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(t)
	client, err := httpclient.New(httpclient.Options{BaseURL: srv.URL, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		t.Fatalf("httpclient.New() error = %v", err)
	}
	return NewService(client, "/api/admin"), srv
}

func TestRoleService_Requests(t *testing.T) {
	svc, srv := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"create", func() error { _, err := svc.Create(ctx, CreateRequest{RoleName: "editor"}); return err }, http.MethodPost, "/api/admin/role/create"},
		{"update", func() error { _, err := svc.Update(ctx, UpdateRequest{RoleID: 3, RoleDesc: "d"}); return err }, http.MethodPut, "/api/admin/role/update"},
		{"delete", func() error { return svc.Delete(ctx, 3) }, http.MethodDelete, "/api/admin/role/delete/3"},
		{"batch delete", func() error { return svc.BatchDelete(ctx, []int64{3, 4}) }, http.MethodDelete, "/api/admin/role/batch-delete"},
		{"detail", func() error { _, err := svc.Detail(ctx, 3); return err }, http.MethodGet, "/api/admin/role/detail/3"},
		{"all", func() error { _, err := svc.All(ctx); return err }, http.MethodGet, "/api/admin/role/all"},
		{"bind", func() error {
			return svc.BindPermissions(ctx, PermissionBindRequest{RoleID: 3, PermissionIDs: []int64{7, 8}})
		}, http.MethodPost, "/api/admin/role-permission/bind"},
		{"unbind", func() error {
			return svc.UnbindPermissions(ctx, PermissionBindRequest{RoleID: 3, PermissionIDs: []int64{7}})
		}, http.MethodPost, "/api/admin/role-permission/unbind"},
		{"unbind all", func() error { return svc.UnbindAllPermissions(ctx, 3) }, http.MethodPost, "/api/admin/role-permission/unbind-all/3"},
		{"permissions", func() error { _, err := svc.Permissions(ctx, 3); return err }, http.MethodGet, "/api/admin/role-permission/list/3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("error = %v", err)
			}
			if last := srv.Last(); last.Method != tt.method || last.Path != tt.path {
				t.Errorf("request = %s %s; want %s %s", last.Method, last.Path, tt.method, tt.path)
			}
		})
	}
}

func TestRoleService_BindBody(t *testing.T) {
	svc, srv := newTestService(t)
	if err := svc.BindPermissions(context.Background(), PermissionBindRequest{RoleID: 2, PermissionIDs: []int64{5, 6}}); err != nil {
		t.Fatalf("BindPermissions() error = %v", err)
	}
	var body struct {
		RoleID        int64   `json:"roleId"`
		PermissionIDs []int64 `json:"permissionIds"`
	}
	if err := srv.Last().Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.RoleID != 2 || len(body.PermissionIDs) != 2 {
		t.Errorf("body = %+v", body)
	}
}

func TestRoleService_ListAndDecode(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Data(http.MethodGet, "/api/admin/role/all", []domain.AdminRole{{RoleID: 1, RoleName: "super"}, {RoleID: 2, RoleName: "editor"}})

	roles, err := svc.All(context.Background())
	if err != nil || len(roles) != 2 || roles[1].RoleName != "editor" {
		t.Fatalf("All() = %v, %v", roles, err)
	}

	if _, err := svc.List(context.Background(), QueryRequest{RoleName: "ed"}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := srv.Last().Query.Get("roleName"); got != "ed" {
		t.Errorf("roleName = %q", got)
	}
}

func TestRoleService_Validation(t *testing.T) {
	svc, srv := newTestService(t)
	ctx := context.Background()

	_, createErr := svc.Create(ctx, CreateRequest{})
	errs := map[string]error{
		"create":     createErr,
		"delete":     svc.Delete(ctx, 0),
		"batch":      svc.BatchDelete(ctx, []int64{1, 0}),
		"bind empty": svc.BindPermissions(ctx, PermissionBindRequest{RoleID: 1}),
		"unbind all": svc.UnbindAllPermissions(ctx, 0),
	}
	for name, err := range errs {
		if !domain.IsValidation(err) {
			t.Errorf("%s: error = %v; want validation", name, err)
		}
	}
	if n := len(srv.Calls()); n != 0 {
		t.Errorf("invalid input sent %d requests", n)
	}
}
