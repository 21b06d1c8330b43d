package maps

import (
	"context"
	"hospital-locator-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GoogleMapsClient, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGoogleMapsClient("test-key", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client.baseURL = srv.URL

	return client, srv
}

func TestNearbySearchOK(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/place/nearbysearch/json" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("type") != "hospital" {
			t.Fatalf("type = %q, want hospital", q.Get("type"))
		}
		if q.Get("radius") != "5000" {
			t.Fatalf("radius = %q, want 5000", q.Get("radius"))
		}
		if q.Get("key") != "test-key" {
			t.Fatalf("key = %q", q.Get("key"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"place_id": "abc",
					"name": "General Hospital",
					"vicinity": "12 Main St",
					"rating": 4.2,
					"geometry": {"location": {"lat": 22.69, "lng": 75.88}}
				}
			]
		}`))
	})

	res, err := client.NearbySearch(context.Background(), domain.Coordinates{Lat: 22.681014, Lng: 75.879484}, 5000, "hospital")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != domain.PlacesStatusOK {
		t.Fatalf("status = %q, want OK", res.Status)
	}
	if len(res.Places) != 1 {
		t.Fatalf("places = %d, want 1", len(res.Places))
	}

	p := res.Places[0]
	if p.PlaceID != "abc" || p.Name != "General Hospital" {
		t.Fatalf("unexpected place %+v", p)
	}
	if p.Location.Lat != 22.69 || p.Location.Lng != 75.88 {
		t.Fatalf("unexpected location %+v", p.Location)
	}
}

func TestNearbySearchNonOKStatusIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	})

	res, err := client.NearbySearch(context.Background(), domain.Coordinates{}, 5000, "hospital")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.PlacesStatus("REQUEST_DENIED") {
		t.Fatalf("status = %q", res.Status)
	}
	if len(res.Places) != 0 {
		t.Fatalf("places = %d, want 0", len(res.Places))
	}
}

func TestNearbySearchInvalidRadius(t *testing.T) {
	client, err := NewGoogleMapsClient("test-key", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.NearbySearch(context.Background(), domain.Coordinates{}, 0, "hospital"); err == nil {
		t.Fatal("expected error for zero radius")
	}
}
