package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/basaaj/basaaj-go/internal/api"
	"github.com/basaaj/basaaj-go/internal/store"
)

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(api.New(srv.URL, store.Memory(), 0))
}

func TestRecentActivityFailureIsRecoverable(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := svc.RecentActivity(context.Background())
	if err == nil {
		t.Fatal("Expected error")
	}
	if !api.IsRecoverable(err) {
		t.Errorf("Supplementary lookup failures must be recoverable, got %v", err)
	}
}

func TestSavedAddresses(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":[{"id":"a1","label":"Home"}]}`)
	})
	addrs, err := svc.SavedAddresses(context.Background())
	if err != nil {
		t.Fatalf("SavedAddresses() error: %v", err)
	}
	if len(addrs) != 1 || addrs[0].Label != "Home" {
		t.Errorf("Unexpected addresses: %+v", addrs)
	}
}

func TestAddSavedAddress_Payload(t *testing.T) {
	var got addAddressRequest
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method: got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		fmt.Fprint(w, `{"success":true}`)
	})
	if err := svc.AddSavedAddress(context.Background(), "Home", "12 MG Road, Pune", 18.52, 73.85); err != nil {
		t.Fatalf("AddSavedAddress() error: %v", err)
	}
	if got.Label != "Home" || got.Location.Address != "12 MG Road, Pune" || got.Location.Latitude != 18.52 {
		t.Errorf("Unexpected payload: %+v", got)
	}
}

func TestDeleteSavedAddress_EscapesID(t *testing.T) {
	var path string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		fmt.Fprint(w, `{"success":true}`)
	})
	if err := svc.DeleteSavedAddress(context.Background(), "a/1"); err != nil {
		t.Fatalf("DeleteSavedAddress() error: %v", err)
	}
	if path != "/api/v1/users/locations/a%2F1" {
		t.Errorf("Path: got %q", path)
	}
}
