package admin

import "github.com/simp-lee/waystar/internal/domain"

// LoginRequest is the dashboard sign-in form.
type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// CreateRequest creates an admin account.
type CreateRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=6,max=30"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,len=11,numeric"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Status   *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// UpdateRequest changes admin profile fields. Unset fields are left alone.
type UpdateRequest struct {
	AdminID  int64  `json:"adminId" validate:"required,gt=0"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,len=11,numeric"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Status   *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// PasswordRequest resets an admin password.
type PasswordRequest struct {
	AdminID     int64  `json:"adminId" validate:"required,gt=0"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=30"`
}

// QueryRequest filters the admin list.
type QueryRequest struct {
	domain.PageQuery
	Username string `json:"username,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Status   *int   `json:"status,omitempty"`
}

// RoleBindRequest binds or unbinds roles of one admin.
type RoleBindRequest struct {
	AdminID int64   `json:"adminId" validate:"required,gt=0"`
	RoleIDs []int64 `json:"roleIds" validate:"required,min=1,dive,gt=0"`
}
