package reddit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"costofliving/models"
)

const (
	userAgent   = "costofliving/1.0 (city cost of living estimator)"
	permalinkTo = "https://www.reddit.com"
	searchLimit = 10
)

type searchResponse struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	Title       string `json:"title"`
	Subreddit   string `json:"subreddit"`
	Permalink   string `json:"permalink"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
}

// Client searches Reddit for cost-of-living threads.
type Client struct {
	searchURL string
	http      *resty.Client
}

// NewClient creates a Client against searchURL (the search.json endpoint)
// whose requests give up after timeout.
func NewClient(searchURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "application/json")
	return &Client{searchURL: searchURL, http: client}
}

// Search returns threads matching "<city> cost of living", in relevance order.
func (c *Client) Search(ctx context.Context, city string) ([]models.Discussion, error) {
	var out searchResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     city + " cost of living",
			"limit": strconv.Itoa(searchLimit),
			"sort":  "relevance",
		}).
		ForceContentType("application/json").
		SetResult(&out).
		Get(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("reddit: search: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("reddit: search: unexpected status %d", res.StatusCode())
	}

	discussions := make([]models.Discussion, 0, len(out.Data.Children))
	for _, child := range out.Data.Children {
		p := child.Data
		if p.Title == "" {
			continue
		}
		discussions = append(discussions, models.Discussion{
			Title:     p.Title,
			Subreddit: p.Subreddit,
			URL:       permalinkTo + p.Permalink,
			Score:     p.Score,
			Comments:  p.NumComments,
		})
	}
	return discussions, nil
}
