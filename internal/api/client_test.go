package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

type memTokens struct {
	access  string
	refresh string
}

func (m *memTokens) Token() string { return m.access }
func (m *memTokens) SetTokens(access, refresh string) error {
	m.access = access
	if refresh != "" {
		m.refresh = refresh
	}
	return nil
}
func (m *memTokens) ClearTokens() error {
	m.access, m.refresh = "", ""
	return nil
}

func TestClient_AttachesBearerWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{"id":"u1"}}`))
	}))
	defer srv.Close()

	tokens := &memTokens{access: "tok-123"}
	c := New(srv.URL, tokens, time.Second)

	var out struct {
		ID string `json:"id"`
	}
	if err := c.Get(context.Background(), "/api/v1/users/profile", nil, &out); err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Expected Authorization 'Bearer tok-123', got %q", gotAuth)
	}
	if out.ID != "u1" {
		t.Errorf("Expected unwrapped data id u1, got %q", out.ID)
	}
}

func TestClient_AnonymousRequestsProceedWithoutHeader(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{}, time.Second)
	var out []string
	if err := c.Get(context.Background(), "/api/v1/categories", nil, &out); err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if sawHeader {
		t.Error("Anonymous request should not carry an Authorization header")
	}
}

func TestClient_401ClearsTokensAndPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"token expired"}`))
	}))
	defer srv.Close()

	tokens := &memTokens{access: "stale", refresh: "stale-r"}
	c := New(srv.URL, tokens, time.Second)

	err := c.Get(context.Background(), "/api/v1/users/profile", nil, nil)
	if err == nil {
		t.Fatal("Expected error from 401 response")
	}
	if !IsAuth(err) {
		t.Errorf("Expected auth error, got %v", err)
	}
	if tokens.access != "" || tokens.refresh != "" {
		t.Errorf("Expected tokens cleared after 401, got access=%q refresh=%q", tokens.access, tokens.refresh)
	}
	if !strings.Contains(Message(err), "token expired") {
		t.Errorf("Expected backend message preserved, got %q", Message(err))
	}
}

func TestClient_BusinessErrorInsideSuccessfulTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"deal limit reached"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{}, time.Second)
	err := c.Post(context.Background(), "/api/v1/deals", map[string]string{"title": "x"}, nil)
	if err == nil {
		t.Fatal("Expected business error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Kind != KindBusiness {
		t.Errorf("Expected KindBusiness, got %v", apiErr.Kind)
	}
	if apiErr.Message != "deal limit reached" {
		t.Errorf("Expected envelope message, got %q", apiErr.Message)
	}
}

func TestClient_Non2xxCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"database unavailable"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{}, time.Second)
	err := c.Get(context.Background(), "/api/v1/deals/my-stats", nil, nil)
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Status != 500 || apiErr.Kind != KindTransport {
		t.Errorf("Expected transport error with status 500, got status=%d kind=%v", apiErr.Status, apiErr.Kind)
	}
	if apiErr.Message != "database unavailable" {
		t.Errorf("Expected backend message, got %q", apiErr.Message)
	}
}

func TestClient_QueryParamsEncoded(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"success":true,"data":{"content":[]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{}, time.Second)
	q := url.Values{}
	q.Set("latitude", "19.076")
	q.Set("q", "pizza & pasta")
	if err := c.Get(context.Background(), "/api/v1/discovery/deals", q, nil); err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if gotQuery.Get("latitude") != "19.076" {
		t.Errorf("Expected latitude pass-through, got %q", gotQuery.Get("latitude"))
	}
	if gotQuery.Get("q") != "pizza & pasta" {
		t.Errorf("Expected query round-trip, got %q", gotQuery.Get("q"))
	}
}

func TestClient_PostMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Failed to parse multipart body: %v", err)
		}
		if got := r.FormValue("data"); got != `{"name":"Chai Point"}` {
			t.Errorf("Expected data field, got %q", got)
		}
		f, hdr, err := r.FormFile("profilePicture")
		if err != nil {
			t.Errorf("Expected profilePicture part: %v", err)
		} else {
			f.Close()
			if hdr.Filename != "logo.png" {
				t.Errorf("Expected filename logo.png, got %q", hdr.Filename)
			}
		}
		w.Write([]byte(`{"success":true,"data":{"id":"u1"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{access: "tok"}, time.Second)
	fields := map[string]string{"data": `{"name":"Chai Point"}`}
	files := []FilePart{{Field: "profilePicture", Filename: "logo.png", ContentType: "image/png", Data: []byte("png-bytes")}}
	if err := c.PostMultipart(context.Background(), "/api/v1/users/seller-profile/onboard", fields, files, nil); err != nil {
		t.Fatalf("PostMultipart() returned unexpected error: %v", err)
	}
}

func TestRecoverable(t *testing.T) {
	base := &Error{Kind: KindTransport, Message: "boom"}
	wrapped := Recoverable(base)
	if !IsRecoverable(wrapped) {
		t.Error("Expected wrapped error to be recoverable")
	}
	var apiErr *Error
	if !errors.As(wrapped, &apiErr) {
		t.Error("Expected the underlying *Error to remain reachable")
	}
	if IsRecoverable(base) {
		t.Error("Unwrapped error must not be recoverable")
	}
	if Recoverable(nil) != nil {
		t.Error("Recoverable(nil) must stay nil")
	}
}
