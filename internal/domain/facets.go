package domain

// FacetCount is one value of a facet with the number of products carrying it.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets summarises a product list for the filter sidebar. Value lists keep
// first-seen order.
type Facets struct {
	Brands     []FacetCount `json:"brands"`
	Platforms  []FacetCount `json:"platforms"`
	Categories []FacetCount `json:"categories"`
	InStock    int          `json:"in_stock"`
	OutOfStock int          `json:"out_of_stock"`
	MinPrice   int64        `json:"min_price"`
	MaxPrice   int64        `json:"max_price"`
	Total      int          `json:"total"`
}
