// Package service holds the catalog business rules: partial updates,
// validation, the reference policy and dashboard statistics.
package service

import (
	"catalog-admin/internal/repository"

	"go.uber.org/zap"
)

// Services bundles the catalog services built over one store.
type Services struct {
	Products   ProductService
	Categories CategoryService
	Brands     BrandService
	Stats      StatsService
}

// New builds every service over store. strict selects the strict
// reference policy for product category and brand ids.
func New(store repository.Store, strict bool, logger *zap.Logger) *Services {
	return &Services{
		Products:   NewProductService(store, strict, logger),
		Categories: NewCategoryService(store, strict),
		Brands:     NewBrandService(store, strict),
		Stats:      NewStatsService(store),
	}
}
