package domain

// Soup is a catalog entry. Field names on the wire match the upstream API's
// JSON, which the storefront passes through unmodified.
type Soup struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	ImageURL     string   `json:"imageUrl"`
	Ingredients  []string `json:"ingredients"`
	Category     string   `json:"category"`
	IsSpicy      bool     `json:"isSpicy"`
	IsVegetarian bool     `json:"isVegetarian"`
	IsVegan      bool     `json:"isVegan"`
	IsGlutenFree bool     `json:"isGlutenFree"`
	IsAvailable  bool     `json:"isAvailable"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
}
