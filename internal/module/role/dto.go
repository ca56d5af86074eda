package role

import "github.com/simp-lee/waystar/internal/domain"

// CreateRequest creates a role.
type CreateRequest struct {
	RoleName string `json:"roleName" validate:"required,max=50"`
	RoleDesc string `json:"roleDesc,omitempty" validate:"omitempty,max=200"`
	Status   *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// UpdateRequest changes a role.
type UpdateRequest struct {
	RoleID   int64  `json:"roleId" validate:"required,gt=0"`
	RoleName string `json:"roleName,omitempty" validate:"omitempty,max=50"`
	RoleDesc string `json:"roleDesc,omitempty" validate:"omitempty,max=200"`
	Status   *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// QueryRequest filters the role list.
type QueryRequest struct {
	domain.PageQuery
	RoleName string `json:"roleName,omitempty"`
	Status   *int   `json:"status,omitempty"`
}

// PermissionBindRequest binds or unbinds permissions of one role.
type PermissionBindRequest struct {
	RoleID        int64   `json:"roleId" validate:"required,gt=0"`
	PermissionIDs []int64 `json:"permissionIds" validate:"required,min=1,dive,gt=0"`
}
