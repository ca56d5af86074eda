package attraction

import (
	"context"
	"fmt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

const publicBase = "/api/attraction"

// PublicService defines public site attraction operations, including the
// favorites endpoints that require a signed-in user.
type PublicService interface {
	List(ctx context.Context, req CardQuery) (*domain.PageResult[domain.AttractionCard], error)
	Detail(ctx context.Context, attractionID int64) (*domain.AttractionDetail, error)
	Types(ctx context.Context) ([]domain.AttractionType, error)
	Batch(ctx context.Context, attractionIDs []int64) ([]domain.AttractionCard, error)

	Collect(ctx context.Context, attractionID int64) error
	Uncollect(ctx context.Context, attractionID int64) error
	CollectedIDs(ctx context.Context) ([]int64, error)
	CollectStatus(ctx context.Context, attractionID int64) (bool, error)
}

type publicService struct {
	client *httpclient.Client
}

// NewPublicService creates the public attraction Service.
func NewPublicService(client *httpclient.Client) PublicService {
	return &publicService{client: client}
}

func (s *publicService) List(ctx context.Context, req CardQuery) (*domain.PageResult[domain.AttractionCard], error) {
	req.applyDefaults()
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	return httpclient.Post[*domain.PageResult[domain.AttractionCard]](ctx, s.client, publicBase+"/list", req)
}

func (s *publicService) Detail(ctx context.Context, attractionID int64) (*domain.AttractionDetail, error) {
	if err := pkg.ValidateID("attractionId", attractionID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.AttractionDetail](ctx, s.client, fmt.Sprintf("%s/detail/%d", publicBase, attractionID), nil)
}

func (s *publicService) Types(ctx context.Context) ([]domain.AttractionType, error) {
	return httpclient.Get[[]domain.AttractionType](ctx, s.client, publicBase+"/type/all", nil)
}

// Batch fetches cards for ids, e.g. to render the favorites page. An empty
// id list short-circuits without a request.
func (s *publicService) Batch(ctx context.Context, attractionIDs []int64) ([]domain.AttractionCard, error) {
	if len(attractionIDs) == 0 {
		return nil, nil
	}
	if err := pkg.ValidateIDs("attractionIds", attractionIDs); err != nil {
		return nil, err
	}
	return httpclient.Post[[]domain.AttractionCard](ctx, s.client, publicBase+"/batch", attractionIDs)
}

func (s *publicService) Collect(ctx context.Context, attractionID int64) error {
	if err := pkg.ValidateID("attractionId", attractionID); err != nil {
		return err
	}
	res, err := httpclient.Post[domain.CollectResult](ctx, s.client, collectionPath(attractionID), nil)
	if err != nil {
		return err
	}
	if res.Collected != nil && !*res.Collected {
		return domain.NewAppError(domain.CodeBusiness, "collect failed", nil)
	}
	return nil
}

func (s *publicService) Uncollect(ctx context.Context, attractionID int64) error {
	if err := pkg.ValidateID("attractionId", attractionID); err != nil {
		return err
	}
	res, err := httpclient.Delete[domain.CollectResult](ctx, s.client, collectionPath(attractionID), nil)
	if err != nil {
		return err
	}
	if res.Uncollected != nil && !*res.Uncollected {
		return domain.NewAppError(domain.CodeBusiness, "uncollect failed", nil)
	}
	return nil
}

func (s *publicService) CollectedIDs(ctx context.Context) ([]int64, error) {
	ids, err := httpclient.Get[[]int64](ctx, s.client, publicBase+"/collection/ids", nil)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (s *publicService) CollectStatus(ctx context.Context, attractionID int64) (bool, error) {
	if err := pkg.ValidateID("attractionId", attractionID); err != nil {
		return false, err
	}
	res, err := httpclient.Get[domain.CollectResult](ctx, s.client, collectionPath(attractionID)+"/status", nil)
	if err != nil {
		return false, err
	}
	return res.Collected != nil && *res.Collected, nil
}

func collectionPath(attractionID int64) string {
	return fmt.Sprintf("%s/collection/%d", publicBase, attractionID)
}
