package game

import (
	"testing"
	"time"

	"tavernbot/internal/store"
)

func TestListings_EncodeDecodeRoundTrip(t *testing.T) {
	listings := map[string]Listing{
		"l1": {ID: "l1", Seller: "alice", SellerName: "Alice", Item: "herb",
			Category: "materials", Price: 10, Quantity: 5,
			ListedAt: 1000, ExpiresAt: 2000},
	}

	decoded := DecodeListings(EncodeListings(listings))
	if len(decoded) != 1 {
		t.Fatalf("round trip produced %d listings", len(decoded))
	}
	if decoded["l1"] != listings["l1"] {
		t.Errorf("round trip changed the listing:\n%+v\n%+v", decoded["l1"], listings["l1"])
	}
}

func TestDecodeListings_DropsGarbageEntries(t *testing.T) {
	doc := store.Doc{
		"good":    store.Doc{"seller": "alice", "item": "herb", "price": 10, "quantity": 1},
		"garbage": "not a listing",
	}

	decoded := DecodeListings(doc)
	if _, ok := decoded["good"]; !ok {
		t.Error("valid listing was dropped")
	}
	if _, ok := decoded["garbage"]; ok {
		t.Error("garbage entry survived decoding")
	}
}

func TestPurgeExpiredListings(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	listings := map[string]Listing{
		"fresh":   {ID: "fresh", ExpiresAt: now.Add(time.Hour).UnixMilli()},
		"expired": {ID: "expired", ExpiresAt: now.Add(-time.Hour).UnixMilli()},
		"on-edge": {ID: "on-edge", ExpiresAt: now.UnixMilli()},
	}

	if purged := PurgeExpiredListings(listings, now); purged != 2 {
		t.Errorf("purged %d listings, want 2", purged)
	}
	if _, ok := listings["fresh"]; !ok {
		t.Error("fresh listing was purged")
	}
	if _, ok := listings["expired"]; ok {
		t.Error("expired listing survived")
	}
}
