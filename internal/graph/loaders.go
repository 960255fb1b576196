package graph

import (
	"context"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/service"

	"github.com/graph-gophers/dataloader/v7"
)

type loadersKey struct{}

// batchWait is how long a loader collects keys before issuing one lookup.
const batchWait = 2 * time.Millisecond

// Loaders batch the Product.category and Product.brand lookups of a single
// request into one fetch per collection.
type Loaders struct {
	Categories *dataloader.Loader[string, *domain.Category]
	Brands     *dataloader.Loader[string, *domain.Brand]
}

// NewLoaders builds request-scoped loaders. Never share them across requests.
func NewLoaders(services *service.Services) *Loaders {
	return &Loaders{
		Categories: dataloader.NewBatchedLoader(
			batchByID(services.Categories.GetMany, func(c *domain.Category) string { return c.ID }),
			dataloader.WithWait[string, *domain.Category](batchWait),
		),
		Brands: dataloader.NewBatchedLoader(
			batchByID(services.Brands.GetMany, func(b *domain.Brand) string { return b.ID }),
			dataloader.WithWait[string, *domain.Brand](batchWait),
		),
	}
}

// batchByID adapts a multi-get into a dataloader batch function. Keys with
// no matching record resolve to a nil value without an error.
func batchByID[V any](fetch func(context.Context, []string) ([]V, error), idOf func(V) string) dataloader.BatchFunc[string, V] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[V] {
		results := make([]*dataloader.Result[V], len(keys))

		items, err := fetch(ctx, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[V]{Error: err}
			}
			return results
		}

		byID := make(map[string]V, len(items))
		for _, item := range items {
			byID[idOf(item)] = item
		}
		for i, key := range keys {
			results[i] = &dataloader.Result[V]{Data: byID[key]}
		}
		return results
	}
}

func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, loaders)
}

func loadersFrom(ctx context.Context) *Loaders {
	loaders, _ := ctx.Value(loadersKey{}).(*Loaders)
	return loaders
}
