package game

import (
	"time"

	"tavernbot/internal/store"
)

// MarketBlob is the global blob name holding the shared listing table.
const MarketBlob = "market"

// Listing is one marketplace offer. Listings live in a global blob
// keyed by listing id, not on any player record.
type Listing struct {
	ID         string `json:"id"`
	Seller     string `json:"seller"`
	SellerName string `json:"sellerName"`
	Item       string `json:"item"`
	Category   string `json:"category"`
	Price      int    `json:"price"`
	Quantity   int    `json:"quantity"`
	ListedAt   int64  `json:"listedAt"`
	ExpiresAt  int64  `json:"expiresAt"`
}

// DecodeListings turns the market blob into typed listings. Unreadable
// entries are dropped rather than failing the whole table.
func DecodeListings(doc store.Doc) map[string]Listing {
	listings := map[string]Listing{}
	for id, raw := range doc {
		entry, ok := raw.(store.Doc)
		if !ok {
			continue
		}
		var listing Listing
		if err := decodeDoc(entry, &listing); err != nil {
			continue
		}
		listing.ID = id
		listings[id] = listing
	}
	return listings
}

// EncodeListings renders the listing table back to blob form.
func EncodeListings(listings map[string]Listing) store.Doc {
	doc := store.Doc{}
	for id, listing := range listings {
		entry, err := encodeDoc(listing)
		if err != nil {
			continue
		}
		doc[id] = entry
	}
	return doc
}

// PurgeExpiredListings drops every listing past its expiry and returns
// how many were removed. Expired goods are not returned to the seller.
func PurgeExpiredListings(listings map[string]Listing, now time.Time) int {
	purged := 0
	for id, listing := range listings {
		if now.UnixMilli() >= listing.ExpiresAt {
			delete(listings, id)
			purged++
		}
	}
	return purged
}
