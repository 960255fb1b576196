// Package seed fills a catalog with the demo data set and optional
// generated products. All writes go through the catalog services so the
// usual validation and timestamps apply.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/service"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Summary counts what a seeding run created.
type Summary struct {
	Categories int
	Brands     int
	Products   []*domain.Product
}

type Seeder struct {
	services *service.Services
	logger   *zap.Logger
	rng      *rand.Rand
}

func New(services *service.Services, logger *zap.Logger, rng *rand.Rand) *Seeder {
	return &Seeder{services: services, logger: logger, rng: rng}
}

// Clear removes every product, then every category and brand.
func (s *Seeder) Clear(ctx context.Context) error {
	products, err := s.services.Products.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		if err := s.services.Products.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("failed to delete product %s: %w", p.ID, err)
		}
	}

	categories, err := s.services.Categories.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if err := s.services.Categories.Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("failed to delete category %s: %w", c.ID, err)
		}
	}

	brands, err := s.services.Brands.List(ctx)
	if err != nil {
		return err
	}
	for _, b := range brands {
		if err := s.services.Brands.Delete(ctx, b.ID); err != nil {
			return fmt.Errorf("failed to delete brand %s: %w", b.ID, err)
		}
	}

	s.logger.Info("Cleared existing data",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
		zap.Int("brands", len(brands)),
	)
	return nil
}

// Sample inserts the demo categories, brands and products.
func (s *Seeder) Sample(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	categoryIDs := make(map[string]string, len(sampleCategories))
	for _, c := range sampleCategories {
		created, err := s.services.Categories.Create(ctx, service.CategoryInput{
			Name:        &c.Name,
			Description: &c.Description,
			Slug:        &c.Slug,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", c.Name, err)
		}
		categoryIDs[c.Name] = created.ID
		summary.Categories++
	}

	brandIDs := make(map[string]string, len(sampleBrands))
	for _, b := range sampleBrands {
		created, err := s.services.Brands.Create(ctx, service.BrandInput{
			Name:    &b.Name,
			Country: &b.Country,
			Website: &b.Website,
			Logo:    &b.Logo,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create brand %q: %w", b.Name, err)
		}
		brandIDs[b.Name] = created.ID
		summary.Brands++
	}

	for _, p := range sampleProducts {
		categoryID := categoryIDs[p.category]
		brandID := brandIDs[p.brand]
		specs := p.specifications

		created, err := s.services.Products.Create(ctx, service.ProductInput{
			Name:           &p.name,
			Description:    &p.description,
			Price:          &p.price,
			Stock:          &p.stock,
			CategoryID:     &categoryID,
			BrandID:        &brandID,
			ImageURL:       &p.imageURL,
			Specifications: &specs,
			Rating:         &p.rating,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create product %q: %w", p.name, err)
		}
		summary.Products = append(summary.Products, created)
	}

	s.logger.Info("Sample data created",
		zap.Int("categories", summary.Categories),
		zap.Int("brands", summary.Brands),
		zap.Int("products", len(summary.Products)),
	)
	return summary, nil
}

// Fake adds n generated products spread over the existing categories and
// brands. One generated category and brand are created when none exist.
func (s *Seeder) Fake(ctx context.Context, n int) ([]*domain.Product, error) {
	categories, err := s.services.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		c, err := s.fakeCategory(ctx)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	brands, err := s.services.Brands.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		b, err := s.fakeBrand(ctx)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}

	products := make([]*domain.Product, 0, n)
	for i := 0; i < n; i++ {
		name := faker.Word() + " " + faker.Word() + " " + uuid.NewString()[:4]
		description := faker.Sentence()
		price := s.fakePrice()
		stock := s.rng.Intn(100)
		rating := float64(s.rng.Intn(51)) / 10
		categoryID := categories[s.rng.Intn(len(categories))].ID
		brandID := brands[s.rng.Intn(len(brands))].ID
		specs := []domain.Specification{
			{Key: "Color", Value: faker.Word()},
			{Key: "Warranty", Value: fmt.Sprintf("%d months", 6*(s.rng.Intn(4)+1))},
		}

		p, err := s.services.Products.Create(ctx, service.ProductInput{
			Name:           &name,
			Description:    &description,
			Price:          &price,
			Stock:          &stock,
			CategoryID:     &categoryID,
			BrandID:        &brandID,
			Specifications: &specs,
			Rating:         &rating,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create generated product: %w", err)
		}
		products = append(products, p)
	}

	s.logger.Info("Generated products created", zap.Int("count", len(products)))
	return products, nil
}

func (s *Seeder) fakeCategory(ctx context.Context) (*domain.Category, error) {
	name := faker.Word() + " " + uuid.NewString()[:6]
	slugText := slug.Make(name)
	description := faker.Sentence()

	return s.services.Categories.Create(ctx, service.CategoryInput{
		Name:        &name,
		Description: &description,
		Slug:        &slugText,
	})
}

func (s *Seeder) fakeBrand(ctx context.Context) (*domain.Brand, error) {
	name := faker.LastName() + " " + uuid.NewString()[:6]
	website := "https://www." + slug.Make(name) + ".example"

	return s.services.Brands.Create(ctx, service.BrandInput{
		Name:    &name,
		Website: &website,
	})
}

// fakePrice returns a price between 1 and 5000 with two decimals.
func (s *Seeder) fakePrice() float64 {
	return math.Round((1+s.rng.Float64()*4999)*100) / 100
}
