// Package attraction wraps the attraction endpoints: the dashboard catalog
// (attractions, types, cities, tags and tag relations) and the public site
// listing and favorites.
package attraction

import (
	"context"
	"fmt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

// Service defines dashboard catalog operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (int64, error)
	Update(ctx context.Context, req UpdateRequest) error
	Delete(ctx context.Context, attractionID int64) error
	List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.AttractionListItem], error)
	Detail(ctx context.Context, attractionID int64) (*domain.AttractionDetail, error)

	CreateType(ctx context.Context, req TypeCreateRequest) (*domain.AttractionType, error)
	UpdateType(ctx context.Context, req TypeUpdateRequest) (*domain.AttractionType, error)
	DeleteType(ctx context.Context, typeID int64) error
	BatchDeleteTypes(ctx context.Context, typeIDs []int64) error
	ListTypes(ctx context.Context, req TypeQuery) (*domain.PageResult[domain.AttractionType], error)
	TypeDetail(ctx context.Context, typeID int64) (*domain.AttractionType, error)

	CreateCity(ctx context.Context, req CityCreateRequest) (*domain.City, error)
	UpdateCity(ctx context.Context, req CityUpdateRequest) (*domain.City, error)
	DeleteCity(ctx context.Context, cityID int64) error
	BatchDeleteCities(ctx context.Context, cityIDs []int64) error
	ListCities(ctx context.Context, req CityQuery) (*domain.PageResult[domain.City], error)
	CityDetail(ctx context.Context, cityID int64) (*domain.City, error)
	AllCities(ctx context.Context) ([]domain.City, error)

	CreateTag(ctx context.Context, req TagCreateRequest) (*domain.AttractionTag, error)
	UpdateTag(ctx context.Context, req TagUpdateRequest) (*domain.AttractionTag, error)
	DeleteTag(ctx context.Context, tagID int64) error
	BatchDeleteTags(ctx context.Context, tagIDs []int64) error
	ListTags(ctx context.Context, req TagQuery) (*domain.PageResult[domain.AttractionTag], error)
	TagDetail(ctx context.Context, tagID int64) (*domain.AttractionTag, error)
	AllTags(ctx context.Context) ([]domain.AttractionTag, error)

	BindTag(ctx context.Context, req TagBindRequest) error
	UnbindTag(ctx context.Context, req TagBindRequest) error
	BatchBindTags(ctx context.Context, req TagBatchRequest) error
	BatchUnbindTags(ctx context.Context, req TagBatchRequest) error
	Tags(ctx context.Context, attractionID int64) ([]domain.TagInfo, error)
}

type attractionService struct {
	client *httpclient.Client
	base   string
	types  resource[domain.AttractionType]
	cities resource[domain.City]
	tags   resource[domain.AttractionTag]
}

// NewService creates the dashboard catalog Service under the admin prefix.
func NewService(client *httpclient.Client, prefix string) Service {
	base := prefix + "/attraction"
	return &attractionService{
		client: client,
		base:   base,
		types:  resource[domain.AttractionType]{client: client, base: base + "/type", idField: "typeId"},
		cities: resource[domain.City]{client: client, base: base + "/city", idField: "cityId"},
		tags:   resource[domain.AttractionTag]{client: client, base: base + "/tag", idField: "tagId"},
	}
}

func (s *attractionService) Create(ctx context.Context, req CreateRequest) (int64, error) {
	if err := pkg.Validate(&req); err != nil {
		return 0, err
	}
	return httpclient.Post[int64](ctx, s.client, s.base+"/create", req)
}

func (s *attractionService) Update(ctx context.Context, req UpdateRequest) error {
	if err := pkg.Validate(&req); err != nil {
		return err
	}
	_, err := httpclient.Put[any](ctx, s.client, s.base+"/update", req)
	return err
}

func (s *attractionService) Delete(ctx context.Context, attractionID int64) error {
	if err := pkg.ValidateID("attractionId", attractionID); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, fmt.Sprintf("%s/delete/%d", s.base, attractionID), nil)
	return err
}

// List posts the filter as a JSON body; the attraction list is the one
// dashboard listing that is not a GET.
func (s *attractionService) List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.AttractionListItem], error) {
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Post[*domain.PageResult[domain.AttractionListItem]](ctx, s.client, s.base+"/list", req)
}

func (s *attractionService) Detail(ctx context.Context, attractionID int64) (*domain.AttractionDetail, error) {
	if err := pkg.ValidateID("attractionId", attractionID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.AttractionDetail](ctx, s.client, fmt.Sprintf("%s/detail/%d", s.base, attractionID), nil)
}

func (s *attractionService) CreateType(ctx context.Context, req TypeCreateRequest) (*domain.AttractionType, error) {
	return s.types.create(ctx, &req)
}

func (s *attractionService) UpdateType(ctx context.Context, req TypeUpdateRequest) (*domain.AttractionType, error) {
	return s.types.update(ctx, &req)
}

func (s *attractionService) DeleteType(ctx context.Context, typeID int64) error {
	return s.types.remove(ctx, typeID)
}

func (s *attractionService) BatchDeleteTypes(ctx context.Context, typeIDs []int64) error {
	return s.types.removeMany(ctx, typeIDs)
}

func (s *attractionService) ListTypes(ctx context.Context, req TypeQuery) (*domain.PageResult[domain.AttractionType], error) {
	return s.types.list(ctx, &req)
}

func (s *attractionService) TypeDetail(ctx context.Context, typeID int64) (*domain.AttractionType, error) {
	return s.types.detail(ctx, typeID)
}

func (s *attractionService) CreateCity(ctx context.Context, req CityCreateRequest) (*domain.City, error) {
	return s.cities.create(ctx, &req)
}

func (s *attractionService) UpdateCity(ctx context.Context, req CityUpdateRequest) (*domain.City, error) {
	return s.cities.update(ctx, &req)
}

func (s *attractionService) DeleteCity(ctx context.Context, cityID int64) error {
	return s.cities.remove(ctx, cityID)
}

func (s *attractionService) BatchDeleteCities(ctx context.Context, cityIDs []int64) error {
	return s.cities.removeMany(ctx, cityIDs)
}

func (s *attractionService) ListCities(ctx context.Context, req CityQuery) (*domain.PageResult[domain.City], error) {
	return s.cities.list(ctx, &req)
}

func (s *attractionService) CityDetail(ctx context.Context, cityID int64) (*domain.City, error) {
	return s.cities.detail(ctx, cityID)
}

func (s *attractionService) AllCities(ctx context.Context) ([]domain.City, error) {
	return s.cities.all(ctx)
}

func (s *attractionService) CreateTag(ctx context.Context, req TagCreateRequest) (*domain.AttractionTag, error) {
	return s.tags.create(ctx, &req)
}

func (s *attractionService) UpdateTag(ctx context.Context, req TagUpdateRequest) (*domain.AttractionTag, error) {
	return s.tags.update(ctx, &req)
}

func (s *attractionService) DeleteTag(ctx context.Context, tagID int64) error {
	return s.tags.remove(ctx, tagID)
}

func (s *attractionService) BatchDeleteTags(ctx context.Context, tagIDs []int64) error {
	return s.tags.removeMany(ctx, tagIDs)
}

func (s *attractionService) ListTags(ctx context.Context, req TagQuery) (*domain.PageResult[domain.AttractionTag], error) {
	return s.tags.list(ctx, &req)
}

func (s *attractionService) TagDetail(ctx context.Context, tagID int64) (*domain.AttractionTag, error) {
	return s.tags.detail(ctx, tagID)
}

func (s *attractionService) AllTags(ctx context.Context) ([]domain.AttractionTag, error) {
	return s.tags.all(ctx)
}

func (s *attractionService) BindTag(ctx context.Context, req TagBindRequest) error {
	return s.postRelation(ctx, "/bind", &req)
}

func (s *attractionService) UnbindTag(ctx context.Context, req TagBindRequest) error {
	return s.postRelation(ctx, "/unbind", &req)
}

func (s *attractionService) BatchBindTags(ctx context.Context, req TagBatchRequest) error {
	return s.postRelation(ctx, "/batch-bind", &req)
}

func (s *attractionService) BatchUnbindTags(ctx context.Context, req TagBatchRequest) error {
	return s.postRelation(ctx, "/batch-unbind", &req)
}

func (s *attractionService) postRelation(ctx context.Context, action string, req any) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, s.base+"/tag-relation"+action, req)
	return err
}

func (s *attractionService) Tags(ctx context.Context, attractionID int64) ([]domain.TagInfo, error) {
	if err := pkg.ValidateID("attractionId", attractionID); err != nil {
		return nil, err
	}
	return httpclient.Get[[]domain.TagInfo](ctx, s.client, fmt.Sprintf("%s/tag-relation/list/%d", s.base, attractionID), nil)
}
