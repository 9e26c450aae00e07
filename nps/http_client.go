package nps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"parkscout/models"
)

const (
	// DetailBatchSize is the hard upstream limit on parkCode values per
	// details request.
	DetailBatchSize = 40

	defaultPageSize = 200
)

// HTTPClient implements API against the NPS REST service.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

// NewClient creates an NPS client. key may be empty when requests are routed
// through the server-side proxy, which injects its own key.
func NewClient(baseURL, key string) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		apiKey:   key,
		pageSize: defaultPageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is the upstream response shape {data: [...], total: N}. The live
// API quotes total as a string, so accept both forms.
type envelope struct {
	Data  []json.RawMessage `json:"data"`
	Total flexInt           `json:"total"`
}

type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("total is not a number: %q", s)
	}
	*f = flexInt(n)
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("NPS returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// fetchAllPages walks a paginated listing endpoint using start/limit offsets,
// accumulating rows until a short page is returned or the running offset
// reaches the reported total.
func (c *HTTPClient) fetchAllPages(ctx context.Context, base string) ([]json.RawMessage, error) {
	size := c.pageSize
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}

	start := 0
	var rows []json.RawMessage
	for {
		pageURL := fmt.Sprintf("%s%sstart=%d&limit=%d", base, sep, start, size)
		var page envelope
		if err := c.getJSON(ctx, pageURL, &page); err != nil {
			return nil, err
		}
		rows = append(rows, page.Data...)

		total := int(page.Total)
		if total == 0 {
			total = len(rows)
		}
		start += size
		if len(page.Data) < size || start >= total {
			break
		}
	}
	return rows, nil
}

func (c *HTTPClient) listRef(ctx context.Context, endpoint string) ([]models.RefItem, error) {
	rows, err := c.fetchAllPages(ctx, c.baseURL+endpoint)
	if err != nil {
		return nil, err
	}
	items := make([]models.RefItem, 0, len(rows))
	for _, raw := range rows {
		var item models.RefItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to parse %s row: %w", endpoint, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *HTTPClient) ListActivities(ctx context.Context) ([]models.RefItem, error) {
	return c.listRef(ctx, "/activities")
}

func (c *HTTPClient) ListTopics(ctx context.Context) ([]models.RefItem, error) {
	return c.listRef(ctx, "/topics")
}

// assocRow is one row of the /activities/parks and /topics/parks endpoints.
type assocRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Parks []struct {
		ParkCode string `json:"parkCode"`
	} `json:"parks"`
}

func (c *HTTPClient) parksForRef(ctx context.Context, endpoint, id string) ([]string, error) {
	base := fmt.Sprintf("%s%s?id=%s", c.baseURL, endpoint, url.QueryEscape(id))
	rows, err := c.fetchAllPages(ctx, base)
	if err != nil {
		return nil, err
	}

	var codes []string
	for _, raw := range rows {
		var row assocRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("failed to parse %s row: %w", endpoint, err)
		}
		for _, p := range row.Parks {
			codes = append(codes, p.ParkCode)
		}
	}
	return codes, nil
}

func (c *HTTPClient) ParksForActivity(ctx context.Context, id string) ([]string, error) {
	return c.parksForRef(ctx, "/activities/parks", id)
}

func (c *HTTPClient) ParksForTopic(ctx context.Context, id string) ([]string, error) {
	return c.parksForRef(ctx, "/topics/parks", id)
}

func (c *HTTPClient) ParkDetails(ctx context.Context, codes []string) ([]models.Park, error) {
	var all []models.Park
	for i := 0; i < len(codes); i += DetailBatchSize {
		end := i + DetailBatchSize
		if end > len(codes) {
			end = len(codes)
		}
		chunk := codes[i:end]

		escaped := make([]string, len(chunk))
		for j, code := range chunk {
			escaped[j] = url.QueryEscape(code)
		}
		detailURL := fmt.Sprintf(
			"%s/parks?parkCode=%s&fields=latLong,fullName,states,images,description,url&limit=500",
			c.baseURL, strings.Join(escaped, ","),
		)

		var page struct {
			Data []models.Park `json:"data"`
		}
		if err := c.getJSON(ctx, detailURL, &page); err != nil {
			return nil, fmt.Errorf("parks details error: %w", err)
		}
		all = append(all, page.Data...)
	}
	return all, nil
}
