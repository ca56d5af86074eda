package permission

import "github.com/simp-lee/waystar/internal/domain"

// CreateRequest creates a permission.
type CreateRequest struct {
	PermissionCode string `json:"permissionCode" validate:"required,max=100"`
	PermissionName string `json:"permissionName" validate:"required,max=50"`
	ResourceType   string `json:"resourceType" validate:"required,max=20"`
	ResourcePath   string `json:"resourcePath,omitempty" validate:"omitempty,max=200"`
	IsSensitive    *int   `json:"isSensitive,omitempty" validate:"omitempty,oneof=0 1"`
	SortOrder      *int   `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

// UpdateRequest changes a permission.
type UpdateRequest struct {
	PermissionID   int64  `json:"permissionId" validate:"required,gt=0"`
	PermissionCode string `json:"permissionCode,omitempty" validate:"omitempty,max=100"`
	PermissionName string `json:"permissionName,omitempty" validate:"omitempty,max=50"`
	ResourceType   string `json:"resourceType,omitempty" validate:"omitempty,max=20"`
	ResourcePath   string `json:"resourcePath,omitempty" validate:"omitempty,max=200"`
	IsSensitive    *int   `json:"isSensitive,omitempty" validate:"omitempty,oneof=0 1"`
	SortOrder      *int   `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

// QueryRequest filters the permission list.
type QueryRequest struct {
	domain.PageQuery
	PermissionCode string `json:"permissionCode,omitempty"`
	PermissionName string `json:"permissionName,omitempty"`
	ResourceType   string `json:"resourceType,omitempty"`
	IsSensitive    *int   `json:"isSensitive,omitempty"`
}
