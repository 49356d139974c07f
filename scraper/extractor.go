package scraper

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"pricescout/config"
	"pricescout/models"
)

// StoreExtractor runs one store's navigate→locate→extract pipeline for a
// query. Fetch never fails: every error path degrades to an unavailable
// quote carrying the store's name.
type StoreExtractor interface {
	Store() string
	Fetch(ctx context.Context, session *BrowserSession, query string) models.PriceQuote
}

// siteExtractor is the generic state machine shared by all stores,
// parameterized entirely by the store's config record.
type siteExtractor struct {
	cfg    config.StoreConfig
	blocks *BlockDetector
}

// NewStoreExtractor builds an extractor for one store config.
func NewStoreExtractor(cfg config.StoreConfig) StoreExtractor {
	return &siteExtractor{cfg: cfg, blocks: NewBlockDetector()}
}

// DefaultExtractors returns extractors for every configured store, in
// response order.
func DefaultExtractors() []StoreExtractor {
	stores := config.Stores()
	extractors := make([]StoreExtractor, 0, len(stores))
	for _, store := range stores {
		extractors = append(extractors, NewStoreExtractor(store))
	}
	return extractors
}

func (e *siteExtractor) Store() string { return e.cfg.Name }

// Fetch opens an isolated page, runs the pipeline and converts any panic or
// timeout at this boundary into an unavailable quote. One store failing must
// never abort the other stores' fetches.
func (e *siteExtractor) Fetch(ctx context.Context, session *BrowserSession, query string) models.PriceQuote {
	page, err := session.NewPage(ctx)
	if err != nil {
		log.Printf("[%s] Failed to open page: %v", e.cfg.Name, err)
		return models.UnavailableQuote(e.cfg.Name, query, models.UnavailableLabel)
	}
	defer closePage(e.cfg.Name, page)

	quote := models.UnavailableQuote(e.cfg.Name, query, models.UnavailableLabel)
	if err := rod.Try(func() {
		quote = e.run(page, query)
	}); err != nil {
		log.Printf("[%s] Scrape failed: %v", e.cfg.Name, err)
		return models.UnavailableQuote(e.cfg.Name, query, models.UnavailableLabel)
	}
	return quote
}

// run walks the search page, picks a listing, and extracts a price either
// inline or from the product page.
func (e *siteExtractor) run(page *rod.Page, query string) models.PriceQuote {
	cfg := &e.cfg

	searchURL := cfg.SearchURL(query)
	log.Printf("[%s] Searching: %s", cfg.Name, searchURL)
	nav := page.Timeout(cfg.SearchNavTimeout)
	nav.MustNavigate(searchURL)
	nav.MustWaitLoad()

	// Best-effort wait; whether results exist is decided by the listing
	// selection, not by this timeout.
	if err := rod.Try(func() {
		page.Timeout(cfg.ResultWaitTimeout).MustElement(strings.Join(cfg.ResultWaitSelectors, ", "))
	}); err != nil {
		log.Printf("[%s] No result container within %v, continuing anyway", cfg.Name, cfg.ResultWaitTimeout)
	}

	if text, title := pageText(page); text != "" || title != "" {
		if blocked, reason := e.blocks.Detect(text, title); blocked {
			log.Printf("[%s] Blocked (%s), giving up on this store", cfg.Name, reason)
			return models.UnavailableQuote(cfg.Name, query, models.UnavailableLabel)
		}
	}

	listing, ok := e.selectListing(page, query)
	if !ok {
		log.Printf("[%s] No listings found for query: %q", cfg.Name, query)
		return models.UnavailableQuote(cfg.Name, query, models.UnavailableLabel)
	}
	log.Printf("[%s] Listing pick: title=%q price=%q approximate=%v",
		cfg.Name, listing.Title, listing.DisplayPrice, listing.Approximate)

	link := cfg.ResolveLink(listing.Link)

	// Some stores expose a usable price on the result card; take it and skip
	// the product page entirely.
	if cfg.InlineListingPrice && link != "" {
		if price, ok := ParsePriceValue(listing.DisplayPrice); ok && price > 0 {
			return e.finalize(query, listing.Title, price, listing.DisplayPrice, link, listing.Approximate)
		}
	}

	if link == "" {
		log.Printf("[%s] Listing did not provide a product link", cfg.Name)
		return models.UnavailableQuote(cfg.Name, query, models.UnavailableLabel)
	}

	nav = page.Timeout(cfg.ProductNavTimeout)
	nav.MustNavigate(link)
	nav.MustWaitLoad()

	if err := rod.Try(func() {
		page.Timeout(cfg.ProductWaitTimeout).MustElement(strings.Join(cfg.ProductPriceWaitSelectors, ", "))
	}); err != nil {
		log.Printf("[%s] No price element within %v, trying extraction anyway", cfg.Name, cfg.ProductWaitTimeout)
	}
	time.Sleep(cfg.SettleDelay)

	title := firstText(page, cfg.ProductTitleSelectors)
	if title == "" {
		title = listing.Title
	}
	displayPrice := firstText(page, cfg.ProductPriceSelectors)

	price, ok := ParsePriceValue(displayPrice)
	if !ok || price <= 0 {
		log.Printf("[%s] Product page missing price: title=%q displayPrice=%q", cfg.Name, title, displayPrice)
		return models.UnavailableQuote(cfg.Name, query, models.UnavailableLabel)
	}

	return e.finalize(query, title, price, displayPrice, e.resultLink(page, link), listing.Approximate)
}

// listingChoice is the outcome of in-page listing selection.
type listingChoice struct {
	Title        string
	DisplayPrice string
	Link         string
	Approximate  bool
}

// listingPickScript enumerates candidate anchors over the selector fallback
// cascade and picks the first whose title token-matches the query, falling
// back to the first candidate marked approximate. Runs in the page so a
// single round trip covers arbitrarily many candidates.
const listingPickScript = `(linkSelectors, containerSelectors, titleSelectors, priceSelectors, pricePattern, searchTerm) => {
	const priceRe = new RegExp(pricePattern);
	const normalize = str =>
		(str || "")
			.toLowerCase()
			.replace(/[^a-z0-9]+/g, " ")
			.trim();
	const tokenize = str => normalize(str).split(/\s+/).filter(Boolean);
	const matchesTerm = title => {
		const titleTokens = new Set(tokenize(title));
		const queryTokens = tokenize(searchTerm);
		if (!queryTokens.length || !titleTokens.size) return false;
		return queryTokens.every(token => titleTokens.has(token));
	};
	const findWithin = (root, selectors) => {
		for (const selector of selectors) {
			const el = root.querySelector(selector);
			if (el) return el;
		}
		return null;
	};
	const extractPrice = root => {
		if (!root) return "";
		for (const selector of priceSelectors) {
			const el = root.querySelector(selector);
			if (el && priceRe.test(el.innerText || "")) return el.innerText;
		}
		return "";
	};
	const containerSelector = containerSelectors.join(", ");
	const resolveContainer = anchor =>
		(containerSelector && anchor.closest(containerSelector)) || anchor.parentElement || document.body;

	const seen = new Set();
	const anchors = [];
	for (const selector of linkSelectors) {
		document.querySelectorAll(selector).forEach(anchor => {
			if (!seen.has(anchor)) {
				seen.add(anchor);
				anchors.push(anchor);
			}
		});
	}
	if (!anchors.length) return null;

	const describe = anchor => {
		const container = resolveContainer(anchor);
		const titleEl = findWithin(container, titleSelectors);
		const img = container.querySelector("img");
		const title = (titleEl && titleEl.innerText) || (img && img.getAttribute("alt")) || anchor.innerText || "";
		return {
			title: title,
			displayPrice: extractPrice(container),
			link: anchor.getAttribute("href") || anchor.href || "",
			approximate: !matchesTerm(title)
		};
	};

	for (const anchor of anchors) {
		const candidate = describe(anchor);
		if (candidate.link && !candidate.approximate) return candidate;
	}
	const fallback = describe(anchors[0]);
	if (!fallback.link) return null;
	fallback.approximate = true;
	return fallback;
}`

func (e *siteExtractor) selectListing(page *rod.Page, query string) (listingChoice, bool) {
	cfg := &e.cfg
	var choice listingChoice
	ok := false
	err := rod.Try(func() {
		result := page.Timeout(10 * time.Second).MustEval(listingPickScript,
			cfg.ListingLinkSelectors,
			cfg.ListingContainerSelectors,
			cfg.ListingTitleSelectors,
			cfg.ListingPriceSelectors,
			cfg.ListingPricePattern,
			query,
		)
		if result.Nil() {
			return
		}
		choice = listingChoice{
			Title:        strings.TrimSpace(result.Get("title").Str()),
			DisplayPrice: strings.TrimSpace(result.Get("displayPrice").Str()),
			Link:         strings.TrimSpace(result.Get("link").Str()),
			Approximate:  result.Get("approximate").Bool(),
		}
		ok = choice.Link != ""
	})
	if err != nil {
		log.Printf("[%s] Listing evaluation failed: %v", cfg.Name, err)
		return listingChoice{}, false
	}
	return choice, ok
}

// finalize assembles the success quote. The approximate flag is OR-only: a
// listing-level approximate pick is never downgraded by a later exact title
// match on the product page.
func (e *siteExtractor) finalize(query, title string, price float64, displayPrice, link string, listingApproximate bool) models.PriceQuote {
	if title == "" {
		title = query
	}
	quote := models.PriceQuote{
		Store:       e.cfg.Name,
		Title:       title,
		Price:       &price,
		Approximate: listingApproximate || !TitleMatchesQuery(title, query),
	}
	if display := strings.TrimSpace(displayPrice); display != "" {
		quote.DisplayPrice = &display
	}
	if link != "" {
		quote.Link = &link
	}
	log.Printf("[%s] Scraped: title=%q price=%.2f link=%q approximate=%v",
		e.cfg.Name, quote.Title, price, link, quote.Approximate)
	return quote
}

// resultLink prefers the canonical URL when the store config asks for it,
// then the current URL, then the navigated link.
func (e *siteExtractor) resultLink(page *rod.Page, fallback string) string {
	if e.cfg.CanonicalLink {
		var canonical string
		err := rod.Try(func() {
			canonical = page.Timeout(5 * time.Second).MustEval(`() => {
				const c = document.querySelector("link[rel='canonical']");
				return c ? c.href : location.href;
			}`).Str()
		})
		if err == nil && canonical != "" {
			return canonical
		}
	}

	var current string
	err := rod.Try(func() {
		current = page.Timeout(5 * time.Second).MustEval(`() => location.href`).Str()
	})
	if err == nil && current != "" {
		return current
	}
	return fallback
}

// firstText returns the first non-empty trimmed text over the selector
// fallback list. Selector misses are non-fatal; only exhausting the whole
// list yields "".
func firstText(page *rod.Page, selectors []string) string {
	for _, selector := range selectors {
		has, el, err := page.Has(selector)
		if err != nil || !has {
			continue
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// pageText grabs the rendered body text and title for block detection.
func pageText(page *rod.Page) (text, title string) {
	_ = rod.Try(func() {
		text = page.Timeout(5 * time.Second).MustEval(`() => document.body ? document.body.innerText : ""`).Str()
		title = page.Timeout(5 * time.Second).MustEval(`() => document.title`).Str()
	})
	return text, title
}
