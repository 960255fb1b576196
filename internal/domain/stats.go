package domain

// UnknownBucket labels products whose category or brand reference is dangling.
const UnknownBucket = "Unknown"

// CatalogStats holds the aggregates shown on the admin dashboard.
type CatalogStats struct {
	TotalProducts      int
	TotalBrands        int
	TotalCategories    int
	TotalValue         float64
	ProductsByCategory []NamedCount
	ProductsByBrand    []NamedCount
	TopRated           []*Product
}

// NamedCount is a label with the number of products carrying it.
type NamedCount struct {
	Name  string
	Count int
}
