// Package user wraps the site user endpoints: the dashboard user directory
// and tag dictionary, and the signed-in user's profile, avatar, preference
// and statistics.
package user

import (
	"context"
	"fmt"
	"io"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

// Service defines dashboard user directory operations.
type Service interface {
	List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.UserDetail], error)
	Detail(ctx context.Context, userID int64) (*domain.UserDetail, error)
	Count(ctx context.Context, userID int64) (*domain.UserCount, error)

	CreateTagDict(ctx context.Context, req TagDictCreateRequest) (*domain.UserTagDict, error)
	UpdateTagDict(ctx context.Context, req TagDictUpdateRequest) (*domain.UserTagDict, error)
	DeleteTagDict(ctx context.Context, tagDictID int64) error
	BatchDeleteTagDicts(ctx context.Context, tagDictIDs []int64) error
	ListTagDicts(ctx context.Context, req TagDictQuery) (*domain.PageResult[domain.UserTagDict], error)
	TagDictDetail(ctx context.Context, tagDictID int64) (*domain.UserTagDict, error)
	AllTagDicts(ctx context.Context) ([]domain.UserTagDict, error)

	BindTag(ctx context.Context, req TagBindRequest) error
	UnbindTag(ctx context.Context, req TagBindRequest) error
	BatchBindTags(ctx context.Context, req TagBatchRequest) error
	BatchUnbindTags(ctx context.Context, req TagBatchRequest) error
	Tags(ctx context.Context, userID int64) ([]domain.UserTagDict, error)
}

type userService struct {
	client *httpclient.Client
	base   string
}

// NewService creates the dashboard user Service under the admin prefix.
func NewService(client *httpclient.Client, prefix string) Service {
	return &userService{client: client, base: prefix + "/user"}
}

func (s *userService) path(format string, args ...any) string {
	return s.base + fmt.Sprintf(format, args...)
}

func (s *userService) List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.UserDetail], error) {
	query, err := pkg.ListQuery(&req)
	if err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.PageResult[domain.UserDetail]](ctx, s.client, s.path("/list"), query)
}

func (s *userService) Detail(ctx context.Context, userID int64) (*domain.UserDetail, error) {
	if err := pkg.ValidateID("userId", userID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.UserDetail](ctx, s.client, s.path("/detail/%d", userID), nil)
}

func (s *userService) Count(ctx context.Context, userID int64) (*domain.UserCount, error) {
	if err := pkg.ValidateID("userId", userID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.UserCount](ctx, s.client, s.path("/count/%d", userID), nil)
}

func (s *userService) CreateTagDict(ctx context.Context, req TagDictCreateRequest) (*domain.UserTagDict, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Post[*domain.UserTagDict](ctx, s.client, s.path("/tag-dict/create"), req)
}

func (s *userService) UpdateTagDict(ctx context.Context, req TagDictUpdateRequest) (*domain.UserTagDict, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Put[*domain.UserTagDict](ctx, s.client, s.path("/tag-dict/update"), req)
}

func (s *userService) DeleteTagDict(ctx context.Context, tagDictID int64) error {
	if err := pkg.ValidateID("tagDictId", tagDictID); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.path("/tag-dict/delete/%d", tagDictID), nil)
	return err
}

func (s *userService) BatchDeleteTagDicts(ctx context.Context, tagDictIDs []int64) error {
	if err := pkg.ValidateIDs("tagDictIds", tagDictIDs); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.path("/tag-dict/batch-delete"), tagDictIDs)
	return err
}

func (s *userService) ListTagDicts(ctx context.Context, req TagDictQuery) (*domain.PageResult[domain.UserTagDict], error) {
	query, err := pkg.ListQuery(&req)
	if err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.PageResult[domain.UserTagDict]](ctx, s.client, s.path("/tag-dict/list"), query)
}

func (s *userService) TagDictDetail(ctx context.Context, tagDictID int64) (*domain.UserTagDict, error) {
	if err := pkg.ValidateID("tagDictId", tagDictID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.UserTagDict](ctx, s.client, s.path("/tag-dict/detail/%d", tagDictID), nil)
}

func (s *userService) AllTagDicts(ctx context.Context) ([]domain.UserTagDict, error) {
	return httpclient.Get[[]domain.UserTagDict](ctx, s.client, s.path("/tag-dict/all"), nil)
}

func (s *userService) BindTag(ctx context.Context, req TagBindRequest) error {
	return s.postTag(ctx, "/tag/bind", &req)
}

func (s *userService) UnbindTag(ctx context.Context, req TagBindRequest) error {
	return s.postTag(ctx, "/tag/unbind", &req)
}

func (s *userService) BatchBindTags(ctx context.Context, req TagBatchRequest) error {
	return s.postTag(ctx, "/tag/batch-bind", &req)
}

func (s *userService) BatchUnbindTags(ctx context.Context, req TagBatchRequest) error {
	return s.postTag(ctx, "/tag/batch-unbind", &req)
}

func (s *userService) postTag(ctx context.Context, path string, req any) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, s.path("%s", path), req)
	return err
}

func (s *userService) Tags(ctx context.Context, userID int64) ([]domain.UserTagDict, error) {
	if err := pkg.ValidateID("userId", userID); err != nil {
		return nil, err
	}
	return httpclient.Get[[]domain.UserTagDict](ctx, s.client, s.path("/tag/list/%d", userID), nil)
}

const accountBase = "/api/user"

// AccountService defines operations on the signed-in user's own account.
type AccountService interface {
	Profile(ctx context.Context) (*domain.UserProfileInfo, error)
	UpdateProfile(ctx context.Context, req ProfileRequest) (*domain.UserProfileInfo, error)
	// UploadAvatar replaces the avatar. The result carries a reissued token
	// that embeds the new avatar URL.
	UploadAvatar(ctx context.Context, name string, r io.Reader) (*domain.AvatarUpload, error)

	Preference(ctx context.Context) (*domain.UserPreference, error)
	UpdatePreference(ctx context.Context, req PreferenceRequest) (*domain.UserPreference, error)
	DeletePreference(ctx context.Context) error

	Stats(ctx context.Context, userID int64) (*domain.UserCount, error)
}

type accountService struct {
	client *httpclient.Client
}

// NewAccountService creates the signed-in user's AccountService.
func NewAccountService(client *httpclient.Client) AccountService {
	return &accountService{client: client}
}

func (s *accountService) Profile(ctx context.Context) (*domain.UserProfileInfo, error) {
	return httpclient.Get[*domain.UserProfileInfo](ctx, s.client, accountBase+"/profile", nil)
}

func (s *accountService) UpdateProfile(ctx context.Context, req ProfileRequest) (*domain.UserProfileInfo, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Put[*domain.UserProfileInfo](ctx, s.client, accountBase+"/profile", req)
}

func (s *accountService) UploadAvatar(ctx context.Context, name string, r io.Reader) (*domain.AvatarUpload, error) {
	return httpclient.Upload[*domain.AvatarUpload](ctx, s.client, accountBase+"/avatar", "file", httpclient.File{Name: name, Reader: r})
}

func (s *accountService) Preference(ctx context.Context) (*domain.UserPreference, error) {
	return httpclient.Get[*domain.UserPreference](ctx, s.client, accountBase+"/preference", nil)
}

func (s *accountService) UpdatePreference(ctx context.Context, req PreferenceRequest) (*domain.UserPreference, error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Put[*domain.UserPreference](ctx, s.client, accountBase+"/preference", req)
}

func (s *accountService) DeletePreference(ctx context.Context) error {
	_, err := httpclient.Delete[any](ctx, s.client, accountBase+"/preference", nil)
	return err
}

func (s *accountService) Stats(ctx context.Context, userID int64) (*domain.UserCount, error) {
	if err := pkg.ValidateID("userId", userID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.UserCount](ctx, s.client, fmt.Sprintf("%s/stats/%d", accountBase, userID), nil)
}
