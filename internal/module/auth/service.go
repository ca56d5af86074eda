// Package auth wraps public site sign-up and sign-in.
package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

const base = "/api/user"

// Service defines site user authentication operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.UserLogin, error)
	Login(ctx context.Context, req LoginRequest) (*domain.UserLogin, error)
	Logout(ctx context.Context) error
	Info(ctx context.Context) (*domain.UserInfo, error)

	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	SendEmailCode(ctx context.Context, email string) error
}

type authService struct {
	client *httpclient.Client
}

// NewService creates an auth Service.
func NewService(client *httpclient.Client) Service {
	return &authService{client: client}
}

// Register trims identifiers before validation, like the sign-up form does.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.UserLogin, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	res, err := httpclient.Post[*domain.UserLogin](ctx, s.client, base+"/register", req)
	if err != nil {
		return nil, err
	}
	return checkLogin(res, "registration failed")
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*domain.UserLogin, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	res, err := httpclient.Post[*domain.UserLogin](ctx, s.client, base+"/login", req)
	if err != nil {
		return nil, err
	}
	return checkLogin(res, "login failed")
}

// checkLogin rejects results that the envelope reported as successful but
// that carry no usable token.
func checkLogin(res *domain.UserLogin, fallback string) (*domain.UserLogin, error) {
	if res == nil || !res.Success || res.Token == "" {
		msg := fallback
		if res != nil && res.Message != "" {
			msg = res.Message
		}
		return nil, domain.NewAppError(domain.CodeBusiness, msg, nil)
	}
	return res, nil
}

func (s *authService) Logout(ctx context.Context) error {
	_, err := httpclient.Post[any](ctx, s.client, base+"/logout", nil)
	return err
}

func (s *authService) Info(ctx context.Context) (*domain.UserInfo, error) {
	return httpclient.Get[*domain.UserInfo](ctx, s.client, base+"/info", nil)
}

func (s *authService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if err := pkg.ValidateVar("username", username, "required"); err != nil {
		return false, err
	}
	return httpclient.Get[bool](ctx, s.client, base+"/check/username", url.Values{"username": {username}})
}

func (s *authService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if err := pkg.ValidateVar("email", email, "required,email"); err != nil {
		return false, err
	}
	return httpclient.Get[bool](ctx, s.client, base+"/check/email", url.Values{"email": {email}})
}

func (s *authService) SendEmailCode(ctx context.Context, email string) error {
	req := EmailCodeRequest{Email: strings.TrimSpace(email)}
	if err := pkg.Validate(&req); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, "/api/email/sendCode", req)
	return err
}
