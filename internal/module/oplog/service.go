// Package oplog reads and prunes the admin operation log.
package oplog

import (
	"context"
	"fmt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

// Service defines operation log operations.
type Service interface {
	List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.OperationLog], error)
	Delete(ctx context.Context, logID int64) error
	BatchDelete(ctx context.Context, logIDs []int64) error
}

type oplogService struct {
	client *httpclient.Client
	prefix string
}

// NewService creates an operation log Service under the admin prefix.
func NewService(client *httpclient.Client, prefix string) Service {
	return &oplogService{client: client, prefix: prefix + "/operation-log"}
}

func (s *oplogService) List(ctx context.Context, req QueryRequest) (*domain.PageResult[domain.OperationLog], error) {
	if !req.StartTime.IsZero() && !req.EndTime.IsZero() && req.EndTime.Before(req.StartTime.Time) {
		return nil, &domain.AppError{
			Code:    domain.CodeValidation,
			Message: domain.ErrValidation.Message,
			Fields:  map[string]string{"endTime": "gtefield=startTime"},
		}
	}
	query, err := pkg.ListQuery(&req)
	if err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.PageResult[domain.OperationLog]](ctx, s.client, s.prefix+"/list", query)
}

func (s *oplogService) Delete(ctx context.Context, logID int64) error {
	if err := pkg.ValidateID("operationLogId", logID); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, fmt.Sprintf("%s/delete/%d", s.prefix, logID), nil)
	return err
}

func (s *oplogService) BatchDelete(ctx context.Context, logIDs []int64) error {
	if err := pkg.ValidateIDs("operationLogIds", logIDs); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, s.client, s.prefix+"/batch-delete", logIDs)
	return err
}
