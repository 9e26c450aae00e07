package nps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://developer.nps.gov/api/v1", "test-key")

	if client.baseURL != "https://developer.nps.gov/api/v1" {
		t.Errorf("baseURL = %s", client.baseURL)
	}
	if client.pageSize != defaultPageSize {
		t.Errorf("pageSize = %d, want %d", client.pageSize, defaultPageSize)
	}
	if client.httpClient.Timeout == 0 {
		t.Error("client should have a request timeout")
	}
}

func TestFlexIntAcceptsStringAndNumber(t *testing.T) {
	var env envelope
	if err := json.Unmarshal([]byte(`{"data":[],"total":"516"}`), &env); err != nil {
		t.Fatalf("quoted total: %v", err)
	}
	if env.Total != 516 {
		t.Errorf("Total = %d, want 516", env.Total)
	}
	if err := json.Unmarshal([]byte(`{"data":[],"total":42}`), &env); err != nil {
		t.Fatalf("bare total: %v", err)
	}
	if env.Total != 42 {
		t.Errorf("Total = %d, want 42", env.Total)
	}
}

// refServer pages through items using start/limit, reporting total like the
// live API does (as a quoted string).
func refServer(t *testing.T, items []map[string]string, wantKey string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantKey != "" && r.Header.Get("X-Api-Key") != wantKey {
			t.Errorf("X-Api-Key = %q, want %q", r.Header.Get("X-Api-Key"), wantKey)
		}

		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		end := start + limit
		if end > len(items) {
			end = len(items)
		}
		page := []map[string]string{}
		if start < len(items) {
			page = items[start:end]
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data":  page,
			"total": strconv.Itoa(len(items)),
		})
	}))
}

func TestListActivitiesPagination(t *testing.T) {
	items := make([]map[string]string, 0, 5)
	for _, name := range []string{"Hiking", "Camping", "Biking", "Fishing", "Climbing"} {
		items = append(items, map[string]string{"id": "id-" + name, "name": name})
	}
	server := refServer(t, items, "test-key")
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	client.pageSize = 2 // force multiple pages

	got, err := client.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("got %d items, want %d", len(got), len(items))
	}
	for i, item := range items {
		if got[i].ID != item["id"] || got[i].Name != item["name"] {
			t.Errorf("item %d = %+v, want %+v (page order preserved)", i, got[i], item)
		}
	}
}

func TestPagerStopsOnShortPage(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Misreported total with a short page: the short page wins.
		json.NewEncoder(w).Encode(map[string]any{
			"data":  []map[string]string{{"id": "only", "name": "Only"}},
			"total": "999",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	got, err := client.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want pager to stop after the short page", requests)
	}
	if len(got) != 1 {
		t.Errorf("got %d items, want 1", len(got))
	}
}

func TestParksForActivityCollectsCodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "act-1" {
			t.Errorf("id = %q, want act-1", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"id":    "act-1",
					"name":  "Hiking",
					"parks": []map[string]string{{"parkCode": "yose"}, {"parkCode": "grca"}},
				},
			},
			"total": "1",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	codes, err := client.ParksForActivity(context.Background(), "act-1")
	if err != nil {
		t.Fatalf("ParksForActivity() error = %v", err)
	}
	if len(codes) != 2 || codes[0] != "yose" || codes[1] != "grca" {
		t.Errorf("codes = %v, want [yose grca]", codes)
	}
}

func TestParkDetailsBatches(t *testing.T) {
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		codes := r.URL.Query().Get("parkCode")
		n := 1
		for _, ch := range codes {
			if ch == ',' {
				n++
			}
		}
		batchSizes = append(batchSizes, n)
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]string{}})
	}))
	defer server.Close()

	codes := make([]string, 85)
	for i := range codes {
		codes[i] = "p" + strconv.Itoa(i)
	}

	client := NewClient(server.URL, "")
	if _, err := client.ParkDetails(context.Background(), codes); err != nil {
		t.Fatalf("ParkDetails() error = %v", err)
	}

	want := []int{40, 40, 5}
	if len(batchSizes) != len(want) {
		t.Fatalf("batches = %v, want %v", batchSizes, want)
	}
	for i := range want {
		if batchSizes[i] != want[i] {
			t.Errorf("batch %d size = %d, want %d", i, batchSizes[i], want[i])
		}
	}
}

func TestUpstreamErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over rate limit", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.ListTopics(context.Background()); err == nil {
		t.Fatal("want error for non-2xx upstream status")
	}
}
