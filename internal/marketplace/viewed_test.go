package marketplace_test

import (
	"context"
	"strconv"
	"testing"

	"MarketStore/internal/marketplace"
)

func TestRecentlyViewedCapAndOrder(t *testing.T) {
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})
	ctx := context.Background()

	// view 25 distinct products; only the 20 most recent survive
	for i := 0; i < 25; i++ {
		p := mustProduct(t, svc, strconv.Itoa(1000+i))
		svc.RecordView(ctx, p)
	}

	viewed := svc.RecentlyViewed()
	if len(viewed) != 20 {
		t.Fatalf("ring holds %d entries, want 20", len(viewed))
	}
	if viewed[0].ID != 1024 {
		t.Fatalf("most recent first: got id %d, want 1024", viewed[0].ID)
	}
	if viewed[19].ID != 1005 {
		t.Fatalf("oldest kept: got id %d, want 1005", viewed[19].ID)
	}

	seen := map[int64]bool{}
	for _, p := range viewed {
		if seen[p.ID] {
			t.Fatalf("duplicate identity %d in ring", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestRecentlyViewedReviewMovesToFront(t *testing.T) {
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})
	ctx := context.Background()

	a := mustProduct(t, svc, "p-alpha")
	b := mustProduct(t, svc, "p-beta")
	c := mustProduct(t, svc, "p-gamma")

	svc.RecordView(ctx, a)
	svc.RecordView(ctx, b)
	svc.RecordView(ctx, c)
	svc.RecordView(ctx, a)

	viewed := svc.RecentlyViewed()
	if len(viewed) != 3 {
		t.Fatalf("re-view must not change size: got %d", len(viewed))
	}
	if viewed[0].ID != a.ID || viewed[1].ID != c.ID || viewed[2].ID != b.ID {
		t.Fatalf("unexpected order: %d %d %d", viewed[0].ID, viewed[1].ID, viewed[2].ID)
	}
}
