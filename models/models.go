package models

// UnavailableLabel is the display price shown when no usable price was found.
const UnavailableLabel = "Not available"

// PriceQuote is one store's price-finding result for a query. Every store
// attempted produces exactly one quote; failure degrades to an unavailable
// quote instead of dropping the store from the response.
type PriceQuote struct {
	Store        string   `json:"store"`
	Title        string   `json:"title"`
	Price        *float64 `json:"price"`
	DisplayPrice *string  `json:"displayPrice"`
	Link         *string  `json:"link"`
	Unavailable  bool     `json:"unavailable"`
	Message      *string  `json:"message"`
	Approximate  bool     `json:"approximate"`
}

// UnavailableQuote builds the degraded quote for a store that produced no
// usable price. Title falls back to the query so the client still has
// something to render.
func UnavailableQuote(store, query, reason string) PriceQuote {
	label := UnavailableLabel
	return PriceQuote{
		Store:        store,
		Title:        query,
		DisplayPrice: &label,
		Unavailable:  true,
		Message:      &reason,
	}
}

// HasPrice reports whether the quote carries a usable positive price.
func (q *PriceQuote) HasPrice() bool {
	return !q.Unavailable && q.Price != nil && *q.Price > 0
}

// AggregateResult is the full response for one query: one quote per
// configured store, in store iteration order.
type AggregateResult struct {
	Query  string       `json:"product"`
	Quotes []PriceQuote `json:"prices"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	ProductName string `json:"productName"`
}
