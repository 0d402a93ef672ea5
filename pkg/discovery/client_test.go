package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientDoPostsBodyAndDecodesPage(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody searchBody

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Page{
			Data:       []Business{{ID: "a", Name: "Corner Shop"}},
			TotalCount: 1,
			Limit:      12,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/v1/")
	strategy := SelectStrategy(baseQuery(), 0, 12)

	page, err := client.Do(context.Background(), strategy)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q", gotMethod)
	}
	if gotPath != "/api/v1/discovery/nearest" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody.Latitude != DefaultCoordinate.Latitude {
		t.Fatalf("latitude = %v", gotBody.Latitude)
	}
	if len(page.Data) != 1 || page.Data[0].Name != "Corner Shop" {
		t.Fatalf("page = %+v", page)
	}
}

func TestClientDoFilterPathCarriesPagination(t *testing.T) {
	var gotPath string
	var gotBody searchBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Page{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	q := baseQuery()
	q.Filters.Province = "Kigali"

	if _, err := client.Do(context.Background(), SelectStrategy(q, 24, 12)); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotPath != "/discovery/filter/province/Kigali" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody.Skip != 24 || gotBody.Limit != 12 {
		t.Fatalf("skip/limit = %d/%d, want 24/12", gotBody.Skip, gotBody.Limit)
	}
}

func TestClientErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"invalid coordinates"}`, "invalid coordinates"},
		{"message field", `{"message":"rate limited"}`, "rate limited"},
		{"both prefers error", `{"error":"a","message":"b"}`, "a"},
		{"unparseable", `<html>gateway</html>`, genericErrorMessage},
		{"empty object", `{}`, genericErrorMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Do(context.Background(), SelectStrategy(baseQuery(), 0, 12))
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", apiErr.StatusCode)
			}
			if apiErr.Message != tc.want {
				t.Fatalf("message = %q, want %q", apiErr.Message, tc.want)
			}
		})
	}
}

func TestClientGetByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q", r.Method)
		}
		if r.URL.Path != "/discovery/get-by-id/abc-123" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Business{ID: "abc-123", Name: "Corner Shop"})
	}))
	defer server.Close()

	business, err := NewClient(server.URL).GetByID(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if business.Name != "Corner Shop" {
		t.Fatalf("business = %+v", business)
	}
}

func TestClientGetByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"business not found"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetByID(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v", err)
	}
	if apiErr.Message != "business not found" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}
