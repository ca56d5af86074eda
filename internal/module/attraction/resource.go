package attraction

import (
	"context"
	"fmt"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

// resource issues the CRUD calls shared by the type, city and tag
// dictionaries, all of which follow the same path layout under base.
type resource[T any] struct {
	client  *httpclient.Client
	base    string
	idField string
}

func (r resource[T]) create(ctx context.Context, req any) (*T, error) {
	if err := pkg.Validate(req); err != nil {
		return nil, err
	}
	return httpclient.Post[*T](ctx, r.client, r.base+"/create", req)
}

func (r resource[T]) update(ctx context.Context, req any) (*T, error) {
	if err := pkg.Validate(req); err != nil {
		return nil, err
	}
	return httpclient.Put[*T](ctx, r.client, r.base+"/update", req)
}

func (r resource[T]) remove(ctx context.Context, id int64) error {
	if err := pkg.ValidateID(r.idField, id); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, r.client, fmt.Sprintf("%s/delete/%d", r.base, id), nil)
	return err
}

func (r resource[T]) removeMany(ctx context.Context, ids []int64) error {
	if err := pkg.ValidateIDs(r.idField+"s", ids); err != nil {
		return err
	}
	_, err := httpclient.Delete[any](ctx, r.client, r.base+"/batch-delete", ids)
	return err
}

func (r resource[T]) list(ctx context.Context, req any) (*domain.PageResult[T], error) {
	query, err := pkg.ListQuery(req)
	if err != nil {
		return nil, err
	}
	return httpclient.Get[*domain.PageResult[T]](ctx, r.client, r.base+"/list", query)
}

func (r resource[T]) detail(ctx context.Context, id int64) (*T, error) {
	if err := pkg.ValidateID(r.idField, id); err != nil {
		return nil, err
	}
	return httpclient.Get[*T](ctx, r.client, fmt.Sprintf("%s/detail/%d", r.base, id), nil)
}

func (r resource[T]) all(ctx context.Context) ([]T, error) {
	return httpclient.Get[[]T](ctx, r.client, r.base+"/all", nil)
}
