package deals

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/basaaj/basaaj-go/internal/api"
	"github.com/basaaj/basaaj-go/internal/models"
	"github.com/basaaj/basaaj-go/internal/store"
	"github.com/basaaj/basaaj-go/internal/validator"
)

type captureServer struct {
	srv  *httptest.Server
	hits atomic.Int64
	last atomic.Value // *http.Request URL string
}

func newService(t *testing.T, handler http.HandlerFunc) (*Service, *store.Store, *captureServer) {
	t.Helper()
	cs := &captureServer{}
	cs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.hits.Add(1)
		cs.last.Store(r.URL.String())
		handler(w, r)
	}))
	t.Cleanup(cs.srv.Close)
	st := store.Memory()
	return NewService(api.New(cs.srv.URL, st, 0), validator.New(), st), st, cs
}

func okDeal(w http.ResponseWriter) {
	fmt.Fprint(w, `{"success":true,"data":{"id":"d1","title":"Half-price thali"}}`)
}

func TestDiscover_QueryParameterMapping(t *testing.T) {
	svc, _, cs := newService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"content":[],"totalElements":0}}`)
	})

	_, err := svc.Discover(context.Background(), models.DiscoverParams{
		Latitude:  18.52,
		Longitude: 73.85,
		Radius:    5,
		Query:     "thali",
		Category:  "food_beverage",
		Tags:      []string{"veg", "lunch"},
		Page:      2,
		Size:      10,
		Sort:      "distance",
	})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	req, _ := http.NewRequest(http.MethodGet, cs.srv.URL+cs.last.Load().(string), nil)
	q := req.URL.Query()
	for key, want := range map[string]string{
		"latitude":  "18.52",
		"longitude": "73.85",
		"radius":    "5",
		"q":         "thali",
		"category":  "food_beverage",
		"tags":      "veg,lunch",
		"page":      "2",
		"size":      "10",
		"sort":      "distance",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("Query %s: got %q, want %q", key, got, want)
		}
	}
	if q.Has("subcategory") || q.Has("dealType") {
		t.Error("Unset parameters must be omitted entirely")
	}
}

func TestDiscover_UnsetOptionalsOmitted(t *testing.T) {
	svc, _, cs := newService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"content":[]}}`)
	})
	if _, err := svc.Discover(context.Background(), models.DiscoverParams{Latitude: 1, Longitude: 2}); err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest(http.MethodGet, cs.srv.URL+cs.last.Load().(string), nil)
	q := req.URL.Query()
	if len(q) != 2 {
		t.Errorf("Only latitude and longitude expected, got %v", q)
	}
}

func TestCreate(t *testing.T) {
	valid := models.CreateDealRequest{
		PostType:        "OFFER",
		Title:           "Half-price thali",
		SubcategoryCode: "restaurants",
	}

	t.Run("success records the recent category", func(t *testing.T) {
		svc, st, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
			okDeal(w)
		})
		deal, err := svc.Create(context.Background(), valid)
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if deal.ID != "d1" {
			t.Errorf("Deal ID: got %q", deal.ID)
		}
		if got := st.RecentCategories(); len(got) != 1 || got[0] != "restaurants" {
			t.Errorf("Recent categories: got %v", got)
		}
	})

	t.Run("missing title blocked before the network", func(t *testing.T) {
		svc, _, cs := newService(t, func(w http.ResponseWriter, r *http.Request) {
			okDeal(w)
		})
		req := valid
		req.Title = ""
		_, err := svc.Create(context.Background(), req)
		var apiErr *api.Error
		if !errors.As(err, &apiErr) || apiErr.Kind != api.KindValidation {
			t.Fatalf("Expected a validation error, got %v", err)
		}
		if cs.hits.Load() != 0 {
			t.Errorf("Validation failures must not reach the network, got %d hits", cs.hits.Load())
		}
	})

	t.Run("expiry before start rejected", func(t *testing.T) {
		svc, _, cs := newService(t, func(w http.ResponseWriter, r *http.Request) {
			okDeal(w)
		})
		req := valid
		req.StartTime = "2026-09-02T10:00:00Z"
		req.ExpiryTime = "2026-09-01T10:00:00Z"
		_, err := svc.Create(context.Background(), req)
		var apiErr *api.Error
		if !errors.As(err, &apiErr) || apiErr.Kind != api.KindValidation {
			t.Fatalf("Expected a validation error, got %v", err)
		}
		if cs.hits.Load() != 0 {
			t.Error("Date-order failures must not reach the network")
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		svc, _, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
			okDeal(w)
		})
		req := valid
		req.DealPrice = -10
		if _, err := svc.Create(context.Background(), req); err == nil {
			t.Error("Expected a validation error for a negative price")
		}
	})
}

func TestMyDeals_Defaults(t *testing.T) {
	svc, _, cs := newService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"content":[]}}`)
	})
	if _, err := svc.MyDeals(context.Background(), "ACTIVE", "", 0, 0); err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest(http.MethodGet, cs.srv.URL+cs.last.Load().(string), nil)
	q := req.URL.Query()
	if q.Get("size") != "20" {
		t.Errorf("Default page size: got %q, want 20", q.Get("size"))
	}
	if q.Get("state") != "ACTIVE" {
		t.Errorf("state: got %q", q.Get("state"))
	}
	if q.Has("search") {
		t.Error("Empty search must be omitted")
	}
}

func TestToggleReaction_PostsTypeAndReturnsTuple(t *testing.T) {
	svc, _, cs := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method: got %s", r.Method)
		}
		fmt.Fprint(w, `{"success":true,"data":{"userReaction":"LIKE","likeCount":6,"dislikeCount":1}}`)
	})
	st, err := svc.ToggleReaction(context.Background(), "d1", models.ReactionLike)
	if err != nil {
		t.Fatalf("ToggleReaction() error: %v", err)
	}
	if st.UserReaction != models.ReactionLike || st.LikeCount != 6 || st.DislikeCount != 1 {
		t.Errorf("Unexpected tuple: %+v", st)
	}
	if got := cs.last.Load().(string); got != "/api/v1/deals/d1/reactions" {
		t.Errorf("Path: got %q", got)
	}
}

func TestMyStats(t *testing.T) {
	svc, _, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"totalDeals":3,"activeDeals":2,"totalLikes":40}}`)
	})
	stats, err := svc.MyStats(context.Background())
	if err != nil {
		t.Fatalf("MyStats() error: %v", err)
	}
	if stats.TotalDeals != 3 || stats.ActiveDeals != 2 || stats.TotalLikes != 40 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
