// Package browse records browse durations and reads browse statistics.
package browse

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

const (
	base = "/api/browse"

	// RecordPath is where browse records are posted, by the service and
	// by beacons alike.
	RecordPath = base + "/record"

	defaultHistorySize = 10
	defaultPopular     = 10
)

// Service defines browse operations.
type Service interface {
	// Record stores one browse duration. It satisfies tracker.Reporter.
	Record(ctx context.Context, rec domain.BrowseRecord) error
	AttractionStats(ctx context.Context, attractionID int64) (*domain.BrowseStatistics, error)
	History(ctx context.Context, userID int64, page, size int) ([]domain.BrowseHistory, error)
	Popular(ctx context.Context, limit int) ([]domain.BrowseStatistics, error)
}

type browseService struct {
	client *httpclient.Client
}

// NewService creates a browse Service.
func NewService(client *httpclient.Client) Service {
	return &browseService{client: client}
}

func (s *browseService) Record(ctx context.Context, rec domain.BrowseRecord) error {
	if err := pkg.Validate(&rec); err != nil {
		return err
	}
	_, err := httpclient.Post[any](ctx, s.client, RecordPath, rec)
	return err
}

func (s *browseService) AttractionStats(ctx context.Context, attractionID int64) (*domain.BrowseStatistics, error) {
	if err := pkg.ValidateID("attractionId", attractionID); err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.BrowseStatistics](ctx, s.client, fmt.Sprintf("%s/stats/attraction/%d", base, attractionID), nil)
}

// History returns a page of the user's browse history. Non-positive page
// and size fall back to the first page of ten.
func (s *browseService) History(ctx context.Context, userID int64, page, size int) ([]domain.BrowseHistory, error) {
	if err := pkg.ValidateID("userId", userID); err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = defaultHistorySize
	}
	query := url.Values{
		"userId": {strconv.FormatInt(userID, 10)},
		"page":   {strconv.Itoa(page)},
		"size":   {strconv.Itoa(size)},
	}
	return httpclient.Get[[]domain.BrowseHistory](ctx, s.client, base+"/history", query)
}

func (s *browseService) Popular(ctx context.Context, limit int) ([]domain.BrowseStatistics, error) {
	if limit <= 0 {
		limit = defaultPopular
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	return httpclient.Get[[]domain.BrowseStatistics](ctx, s.client, base+"/stats/popular", query)
}
