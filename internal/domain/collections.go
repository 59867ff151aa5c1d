package domain

// Mongo collection names, one per entity.
const (
	CollectionUsers       = "users"
	CollectionProducts    = "products"
	CollectionCategories  = "categories"
	CollectionInventories = "inventories"
	CollectionCatalogs    = "catalogs"
	CollectionOrders      = "orders"
)

// Collections lists every collection the application owns.
var Collections = []string{
	CollectionUsers,
	CollectionProducts,
	CollectionCategories,
	CollectionInventories,
	CollectionCatalogs,
	CollectionOrders,
}
