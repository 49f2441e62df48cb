// Package gateway holds the typed request builders of the workforce
// intelligence API. Gateways are stateless: they attach query parameters,
// unwrap response bodies and propagate every failure as returned by the
// api package, without retrying.
package gateway

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// Params selects one page of a collection.
type Params struct {
	// Page is 1-based.
	Page int
	// Size is the page size; zero lets the server pick.
	Size int
	// Filters maps query keys to values; empty values are not sent.
	Filters map[string]string
}

// Values encodes p as query parameters.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	for k, val := range p.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// resource implements the operations every collection endpoint shares.
type resource[T any] struct {
	client *api.Client
	path   string
}

func (r resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List fetches one page of the collection.
func (r resource[T]) List(ctx context.Context, p Params) (*models.ListResult[T], error) {
	var out models.ListResult[T]
	if err := r.client.Get(ctx, r.path, p.Values(), &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return &out, nil
}

// Get fetches a single record.
func (r resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.client.Get(ctx, r.item(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create submits payload and returns the record as stored by the server.
func (r resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	var out T
	if err := r.client.Post(ctx, r.path, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update submits a full or partial payload for id.
func (r resource[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	var out T
	if err := r.client.Put(ctx, r.item(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the record.
func (r resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.item(id), nil)
}
