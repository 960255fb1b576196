package seed

import "catalog-admin/internal/domain"

type sampleProduct struct {
	name           string
	description    string
	price          float64
	stock          int
	category       string
	brand          string
	imageURL       string
	rating         float64
	specifications []domain.Specification
}

var sampleCategories = []domain.Category{
	{Name: "Electronics", Description: "Electronic devices and gadgets", Slug: "electronics"},
	{Name: "Smartphones", Description: "Mobile phones and accessories", Slug: "smartphones"},
	{Name: "Laptops", Description: "Portable computers", Slug: "laptops"},
}

var sampleBrands = []domain.Brand{
	{Name: "Apple", Country: "USA", Website: "https://www.apple.com", Logo: "https://logo.clearbit.com/apple.com"},
	{Name: "Samsung", Country: "South Korea", Website: "https://www.samsung.com", Logo: "https://logo.clearbit.com/samsung.com"},
	{Name: "Dell", Country: "USA", Website: "https://www.dell.com", Logo: "https://logo.clearbit.com/dell.com"},
}

var sampleProducts = []sampleProduct{
	{
		name:        "iPhone 15 Pro",
		description: "The latest flagship smartphone from Apple with A17 Pro chip, titanium design, and advanced camera system.",
		price:       999.99,
		stock:       50,
		category:    "Smartphones",
		brand:       "Apple",
		imageURL:    "https://via.placeholder.com/400x400?text=iPhone+15+Pro",
		rating:      4.8,
		specifications: []domain.Specification{
			{Key: "Display", Value: "6.1-inch Super Retina XDR"},
			{Key: "Processor", Value: "A17 Pro chip"},
			{Key: "Camera", Value: "48MP Main | 12MP Ultra Wide | 12MP Telephoto"},
			{Key: "Storage", Value: "256GB"},
			{Key: "Battery", Value: "Up to 23 hours video playback"},
			{Key: "OS", Value: "iOS 17"},
		},
	},
	{
		name:        "Samsung Galaxy S24 Ultra",
		description: "Premium Android smartphone with S Pen, powerful camera, and long-lasting battery.",
		price:       1199.99,
		stock:       35,
		category:    "Smartphones",
		brand:       "Samsung",
		imageURL:    "https://via.placeholder.com/400x400?text=Galaxy+S24+Ultra",
		rating:      4.7,
		specifications: []domain.Specification{
			{Key: "Display", Value: "6.8-inch Dynamic AMOLED 2X"},
			{Key: "Processor", Value: "Snapdragon 8 Gen 3"},
			{Key: "Camera", Value: "200MP Main | 12MP Ultra Wide | 50MP Telephoto | 10MP Telephoto"},
			{Key: "Storage", Value: "512GB"},
			{Key: "RAM", Value: "12GB"},
			{Key: "Battery", Value: "5000mAh"},
			{Key: "OS", Value: "Android 14"},
		},
	},
	{
		name:        "Dell XPS 15",
		description: "High-performance laptop with stunning InfinityEdge display and powerful Intel processor.",
		price:       1799.99,
		stock:       20,
		category:    "Laptops",
		brand:       "Dell",
		imageURL:    "https://via.placeholder.com/400x400?text=Dell+XPS+15",
		rating:      4.6,
		specifications: []domain.Specification{
			{Key: "Display", Value: "15.6-inch FHD+ (1920 x 1200)"},
			{Key: "Processor", Value: "Intel Core i7-13700H"},
			{Key: "RAM", Value: "16GB DDR5"},
			{Key: "Storage", Value: "512GB PCIe NVMe SSD"},
			{Key: "Graphics", Value: "NVIDIA GeForce RTX 4050"},
			{Key: "Battery", Value: "Up to 13 hours"},
			{Key: "Weight", Value: "4.23 lbs (1.92 kg)"},
			{Key: "OS", Value: "Windows 11 Pro"},
		},
	},
	{
		name:        `MacBook Pro 14"`,
		description: "Supercharged by M3 Pro chip, featuring a stunning Liquid Retina XDR display.",
		price:       1999.99,
		stock:       15,
		category:    "Laptops",
		brand:       "Apple",
		imageURL:    "https://via.placeholder.com/400x400?text=MacBook+Pro+14",
		rating:      4.9,
		specifications: []domain.Specification{
			{Key: "Display", Value: "14.2-inch Liquid Retina XDR"},
			{Key: "Processor", Value: "Apple M3 Pro chip"},
			{Key: "RAM", Value: "18GB unified memory"},
			{Key: "Storage", Value: "512GB SSD"},
			{Key: "Battery", Value: "Up to 18 hours"},
			{Key: "Weight", Value: "3.5 lbs (1.6 kg)"},
			{Key: "OS", Value: "macOS Sonoma"},
		},
	},
}
