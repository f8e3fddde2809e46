package steamstore

import (
	"slices"
	"time"
)

const (
	DefaultBaseURL = "https://store.steampowered.com"

	searchPath     = "/search/"
	appDetailsPath = "/api/appdetails"
	reviewsPath    = "/appreviews/"

	currencyRegion  = "us"
	listingLanguage = "english"
	detailsLanguage = "en"

	listingTimeout = 15 * time.Second
	reviewsTimeout = 10 * time.Second

	// pacing observed to stay clear of the store rate limit
	DefaultRequestInterval = 250 * time.Millisecond
	DefaultPageInterval    = 600 * time.Millisecond

	DefaultFilter = "topsellers"
)

// Filters are the listing orderings the search page understands.
var Filters = []string{"topsellers", "popularnew", "wishlist", "toprated", "specials"}

func ValidFilter(filter string) bool {
	return slices.Contains(Filters, filter)
}

// BrowserHeaders are sent with every store request, the search page serves
// a reduced document to clients that do not look like a browser.
var BrowserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://store.steampowered.com/",
}
