package config

import (
	"net/url"
	"strings"
	"time"
)

// StoreConfig is the per-store extraction record consumed by the generic
// store extractor. Each store is data, not code: a search URL template plus
// ordered selector fallback lists per field. Selector order is priority
// order (most reliable first) and is part of the extraction contract:
// reordering changes which markup wins.
type StoreConfig struct {
	Name   string
	Origin string

	// SearchURLTemplate contains "{query}" placeholders replaced with the
	// URL-escaped query. The placeholder may appear more than once.
	SearchURLTemplate string

	ResultWaitSelectors       []string
	ListingLinkSelectors      []string
	ListingContainerSelectors []string
	ListingTitleSelectors     []string
	ListingPriceSelectors     []string

	// InlineListingPrice terminates the extraction on the search page when a
	// valid positive price is visible on the selected listing.
	InlineListingPrice bool

	ProductTitleSelectors     []string
	ProductPriceSelectors     []string
	ProductPriceWaitSelectors []string

	// CanonicalLink prefers link[rel=canonical] over the current URL for the
	// result link on the product page.
	CanonicalLink bool

	// ListingPricePattern is a JS regex the inline listing price text must
	// match before it is trusted.
	ListingPricePattern string

	SearchNavTimeout   time.Duration
	ResultWaitTimeout  time.Duration
	ProductNavTimeout  time.Duration
	ProductWaitTimeout time.Duration
	SettleDelay        time.Duration
}

// SearchURL renders the store's search URL for a query.
func (c *StoreConfig) SearchURL(query string) string {
	return strings.ReplaceAll(c.SearchURLTemplate, "{query}", url.QueryEscape(query))
}

// ResolveLink resolves a listing href against the store origin.
func (c *StoreConfig) ResolveLink(href string) string {
	if strings.HasPrefix(href, "/") {
		return c.Origin + href
	}
	return href
}

// rupeePattern guards inline listing prices against picking up stray digits
// (ratings, counts) from the result card.
const rupeePattern = `₹\s*\d`

// AmazonStore returns the extraction record for amazon.in. Amazon result
// cards carry no trustworthy inline price, so the extractor always navigates
// to the product page.
func AmazonStore() StoreConfig {
	return StoreConfig{
		Name:              "Amazon",
		Origin:            "https://www.amazon.in",
		SearchURLTemplate: "https://www.amazon.in/s?k={query}",
		ResultWaitSelectors: []string{
			"div.s-main-slot div[data-component-type='s-search-result']",
		},
		ListingLinkSelectors: []string{
			"div.s-main-slot div[data-component-type='s-search-result'] h2 a",
			"div.s-main-slot a.a-link-normal.a-text-normal",
		},
		ListingContainerSelectors: []string{
			"div[data-component-type='s-search-result']",
		},
		ListingTitleSelectors: []string{"h2 a span", "h2 span", "h2"},
		ProductTitleSelectors: []string{"#productTitle"},
		ProductPriceSelectors: []string{
			"#priceblock_ourprice",
			"#priceblock_dealprice",
			".a-price .a-offscreen",
		},
		ProductPriceWaitSelectors: []string{
			"#priceblock_ourprice",
			"#priceblock_dealprice",
			".a-price .a-offscreen",
		},
		CanonicalLink:       true,
		ListingPricePattern: rupeePattern,
		SearchNavTimeout:    15 * time.Second,
		ResultWaitTimeout:   15 * time.Second,
		ProductNavTimeout:   15 * time.Second,
		ProductWaitTimeout:  8 * time.Second,
		SettleDelay:         time.Second,
	}
}

// FlipkartStore returns the extraction record for flipkart.com. Flipkart
// rotates its obfuscated class names frequently, hence the deep fallback
// cascades; the listing usually exposes a usable inline price.
func FlipkartStore() StoreConfig {
	return StoreConfig{
		Name:              "Flipkart",
		Origin:            "https://www.flipkart.com",
		SearchURLTemplate: "https://www.flipkart.com/search?q={query}",
		ResultWaitSelectors: []string{
			"div[data-id] a",
			"div._1AtVbE a",
			"div._13oc-S a",
		},
		ListingLinkSelectors: []string{
			"div[data-id] a._1fQZEK",
			"div[data-id] a.s1Q9rs",
			"div._1AtVbE a._1fQZEK",
			"div._1AtVbE a.s1Q9rs",
			"div._13oc-S a",
			"div[data-id] a",
			"div._1AtVbE a",
		},
		ListingContainerSelectors: []string{
			"div[data-id]",
			"div._1AtVbE",
			"div._13oc-S",
		},
		ListingTitleSelectors: []string{
			"div._4rR01T",
			"a.s1Q9rs",
			"div.KzDlHZ",
			"div._2WkVRV",
		},
		ListingPriceSelectors: []string{
			"div._30jeq3._1_WHN1",
			"div._30jeq3._16Jk6d",
			"div._30jeq3",
			"div._25b18c",
			"div.Nx9bqj",
			"div.hl05eU",
			"div.cN1yYO",
			"span.Nx9bqj",
			"div._2Tpdn3",
		},
		InlineListingPrice: true,
		ProductTitleSelectors: []string{
			"span.B_NuCI",
			"span._35KyD6",
			"span.VU-ZEz",
		},
		ProductPriceSelectors: []string{
			"div._30jeq3._16Jk6d",
			"div._25b18c",
			"div.Nx9bqj",
			"span.Nx9bqj",
			"div._30jeq3._1_WHN1",
			"div._30jeq3",
			"div.hl05eU",
			"div.cN1yYO",
			"div._2Tpdn3",
		},
		ProductPriceWaitSelectors: []string{
			"div._30jeq3._1_WHN1",
			"div._30jeq3._16Jk6d",
			"div._30jeq3",
			"div._25b18c",
			"div.Nx9bqj",
			"div.hl05eU",
			"div.cN1yYO",
			"span.Nx9bqj",
			"div._2Tpdn3",
		},
		ListingPricePattern: rupeePattern,
		SearchNavTimeout:    45 * time.Second,
		ResultWaitTimeout:   15 * time.Second,
		ProductNavTimeout:   15 * time.Second,
		ProductWaitTimeout:  8 * time.Second,
		SettleDelay:         800 * time.Millisecond,
	}
}

// CromaStore returns the extraction record for croma.com.
func CromaStore() StoreConfig {
	return StoreConfig{
		Name:              "Croma",
		Origin:            "https://www.croma.com",
		SearchURLTemplate: "https://www.croma.com/searchB?q={query}%3Arelevance&text={query}",
		ResultWaitSelectors: []string{
			"li.product-item a[href*='/p/']",
		},
		ListingLinkSelectors: []string{
			"li.product-item a[href*='/p/']",
		},
		ListingContainerSelectors: []string{"li.product-item"},
		ListingTitleSelectors: []string{
			"h3",
			".product-title",
			"[data-testid='product-title']",
		},
		ListingPriceSelectors: []string{
			".new-price",
			".cp-price",
			"[data-testid='prod-price']",
			".product-price",
		},
		InlineListingPrice: true,
		ProductTitleSelectors: []string{
			"h1.page-title span",
			"h1.product-name",
		},
		ProductPriceSelectors: []string{
			"span.price",
			".product-info-price .special-price .price",
			".new-price",
			".cp-price",
		},
		ProductPriceWaitSelectors: []string{
			"span.price",
			".product-info-price .special-price .price",
			".new-price",
			".cp-price",
		},
		CanonicalLink:       true,
		ListingPricePattern: rupeePattern,
		SearchNavTimeout:    15 * time.Second,
		ResultWaitTimeout:   15 * time.Second,
		ProductNavTimeout:   15 * time.Second,
		ProductWaitTimeout:  12 * time.Second,
		SettleDelay:         800 * time.Millisecond,
	}
}

// Stores returns the configured stores in response order.
func Stores() []StoreConfig {
	return []StoreConfig{AmazonStore(), FlipkartStore(), CromaStore()}
}
