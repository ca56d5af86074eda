package session

import (
	"context"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/module/admin"
	"github.com/simp-lee/waystar/internal/module/auth"
)

// UserAuthenticator signs in to the public site.
type UserAuthenticator struct {
	Auth auth.Service
}

func (a UserAuthenticator) Login(ctx context.Context, creds Credentials) (string, *domain.UserInfo, error) {
	res, err := a.Auth.Login(ctx, auth.LoginRequest{
		Username:   creds.Username,
		Password:   creds.Password,
		RememberMe: creds.RememberMe,
	})
	if err != nil {
		return "", nil, err
	}
	return res.Token, &domain.UserInfo{
		UserID:   res.UserID,
		Username: res.Username,
		Email:    res.Email,
		FullName: res.FullName,
		Avatar:   res.Avatar,
	}, nil
}

func (a UserAuthenticator) Logout(ctx context.Context) error {
	return a.Auth.Logout(ctx)
}

func (a UserAuthenticator) Current(ctx context.Context) (*domain.UserInfo, error) {
	return a.Auth.Info(ctx)
}

// AdminAuthenticator signs in to the dashboard. The dashboard has no profile
// endpoint, so Current refreshes the permission list of the snapshot
// returned by Snapshot.
type AdminAuthenticator struct {
	Admin    admin.Service
	Snapshot func() *domain.AdminSession
}

func (a AdminAuthenticator) Login(ctx context.Context, creds Credentials) (string, *domain.AdminSession, error) {
	sess, err := a.Admin.Login(ctx, admin.LoginRequest{
		Username:   creds.Username,
		Password:   creds.Password,
		RememberMe: creds.RememberMe,
	})
	if err != nil {
		return "", nil, err
	}
	return sess.Token, sess, nil
}

func (a AdminAuthenticator) Logout(ctx context.Context) error {
	return a.Admin.Logout(ctx)
}

func (a AdminAuthenticator) Current(ctx context.Context) (*domain.AdminSession, error) {
	perms, err := a.Admin.Permissions(ctx)
	if err != nil {
		return nil, err
	}
	var sess domain.AdminSession
	if a.Snapshot != nil {
		if snap := a.Snapshot(); snap != nil {
			sess = *snap
		}
	}
	sess.Permissions = perms
	return &sess, nil
}
