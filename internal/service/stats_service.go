package service

import (
	"context"
	"sort"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
)

// TopRatedLimit is the number of products reported in CatalogStats.TopRated.
const TopRatedLimit = 5

// StatsService computes dashboard aggregates over the whole catalog.
type StatsService interface {
	CatalogStats(ctx context.Context) (*domain.CatalogStats, error)
}

type statsService struct {
	store repository.Store
}

func NewStatsService(store repository.Store) StatsService {
	return &statsService{store: store}
}

func (s *statsService) CatalogStats(ctx context.Context) (*domain.CatalogStats, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, translate("computing catalog stats", err)
	}
	categories, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, translate("computing catalog stats", err)
	}
	brands, err := s.store.Brands().List(ctx)
	if err != nil {
		return nil, translate("computing catalog stats", err)
	}

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	brandNames := make(map[string]string, len(brands))
	for _, b := range brands {
		brandNames[b.ID] = b.Name
	}

	stats := &domain.CatalogStats{
		TotalProducts:   len(products),
		TotalBrands:     len(brands),
		TotalCategories: len(categories),
	}

	byCategory := newCounter()
	byBrand := newCounter()
	for _, p := range products {
		stats.TotalValue += p.Value()
		byCategory.add(labelFor(categoryNames, p.CategoryID))
		byBrand.add(labelFor(brandNames, p.BrandID))
	}
	stats.ProductsByCategory = byCategory.counts
	stats.ProductsByBrand = byBrand.counts
	stats.TopRated = topRated(products, TopRatedLimit)

	return stats, nil
}

func labelFor(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return domain.UnknownBucket
}

// counter tallies labels in order of first appearance.
type counter struct {
	index  map[string]int
	counts []domain.NamedCount
}

func newCounter() *counter {
	return &counter{index: map[string]int{}, counts: []domain.NamedCount{}}
}

func (c *counter) add(name string) {
	if i, ok := c.index[name]; ok {
		c.counts[i].Count++
		return
	}
	c.index[name] = len(c.counts)
	c.counts = append(c.counts, domain.NamedCount{Name: name, Count: 1})
}

func topRated(products []*domain.Product, limit int) []*domain.Product {
	sorted := make([]*domain.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
