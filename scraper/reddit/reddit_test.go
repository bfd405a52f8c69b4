package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{"data":{"children":[
 {"data":{"title":"Is $5k/month enough for NYC?","subreddit":"AskNYC","permalink":"/r/AskNYC/comments/abc/","score":412,"num_comments":230}},
 {"data":{"title":"","subreddit":"nyc","permalink":"/r/nyc/comments/empty/","score":1,"num_comments":0}},
 {"data":{"title":"Cost of living breakdown","subreddit":"personalfinance","permalink":"/r/personalfinance/comments/def/","score":98,"num_comments":41}}
]}}`

func TestSearch(t *testing.T) {
	var gotQuery, gotLimit, gotSort, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotSort = r.URL.Query().Get("sort")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/search.json", time.Second)
	found, err := c.Search(context.Background(), "New York")
	require.NoError(t, err)

	assert.Equal(t, "New York cost of living", gotQuery)
	assert.Equal(t, "10", gotLimit)
	assert.Equal(t, "relevance", gotSort)
	assert.Equal(t, userAgent, gotUA)

	require.Len(t, found, 2)
	assert.Equal(t, "Is $5k/month enough for NYC?", found[0].Title)
	assert.Equal(t, "AskNYC", found[0].Subreddit)
	assert.Equal(t, "https://www.reddit.com/r/AskNYC/comments/abc/", found[0].URL)
	assert.Equal(t, 412, found[0].Score)
	assert.Equal(t, 230, found[0].Comments)
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Search(context.Background(), "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSearchHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, 5*time.Second).Search(ctx, "Paris")
	assert.Error(t, err)
}
