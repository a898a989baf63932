// Package cms fetches blog post listings from a WordPress REST API.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:8000/wp-json/wp/v2"

const (
	listFields   = "id,slug,title,excerpt"
	maxBodyBytes = 4 << 20
)

// postsSchema is the shape the listing endpoint must return.
var postsSchema = mustSchema(`{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "slug", "title", "excerpt"],
    "properties": {
      "id": {"type": "integer"},
      "slug": {"type": "string", "minLength": 1},
      "title": {
        "type": "object",
        "required": ["rendered"],
        "properties": {"rendered": {"type": "string"}}
      },
      "excerpt": {
        "type": "object",
        "required": ["rendered"],
        "properties": {"rendered": {"type": "string"}}
      }
    }
  }
}`)

func mustSchema(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic("cms: invalid posts schema: " + err.Error())
	}
	return s
}

// Post is a listed blog post with rendered HTML reduced to text.
type Post struct {
	ID      int64
	Slug    string
	Title   string
	Excerpt string
	Link    string
}

// StatusError reports a non-2xx response from the CMS.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cms: %s returned status %d", e.URL, e.StatusCode)
}

// Client talks to one WordPress site.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type wpRendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID      int64      `json:"id"`
	Slug    string     `json:"slug"`
	Title   wpRendered `json:"title"`
	Excerpt wpRendered `json:"excerpt"`
}

// ListPosts fetches the post listing in the order the CMS returns it.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	endpoint := c.BaseURL + "/posts?" + url.Values{"_fields": {listFields}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms: fetch posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("cms: read posts: %w", err)
	}
	return parsePosts(body)
}

func parsePosts(body []byte) ([]Post, error) {
	result, err := postsSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("cms: parse posts: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("cms: unexpected posts payload: %s", strings.Join(msgs, "; "))
	}

	var raw []wpPost
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("cms: decode posts: %w", err)
	}
	posts := make([]Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, Post{
			ID:      p.ID,
			Slug:    p.Slug,
			Title:   HTMLText(p.Title.Rendered),
			Excerpt: HTMLText(p.Excerpt.Rendered),
			Link:    "/post/" + url.PathEscape(p.Slug),
		})
	}
	return posts, nil
}

// HTMLText returns the visible text of an HTML fragment with entities
// decoded and whitespace collapsed.
func HTMLText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
