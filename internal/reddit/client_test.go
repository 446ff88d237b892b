package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadsense/internal/types"
)

const listingBody = `{
  "data": {
    "after": "",
    "children": [
      {"kind": "t3", "data": {"id": "p1", "title": "Pothole on 700 East", "selftext": "it ate my tire", "url": "https://reddit.com/p1", "score": 12, "created_utc": 1756700000}}
    ]
  }
}`

const commentsBody = `[
  {"data": {"children": [{"kind": "t3", "data": {"id": "p1"}}]}},
  {"data": {"children": [
    {"kind": "t1", "data": {"id": "c1", "body": "same thing happened to me", "score": 4, "created_utc": 1756700100}},
    {"kind": "more", "data": {"id": "m1"}}
  ]}}
]`

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient("roadsense-test/0.1")
	c.baseURL = srv.URL
	return c
}

func TestFetchAll(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		switch {
		case strings.Contains(r.URL.Path, "/comments/"):
			w.Write([]byte(commentsBody))
		default:
			w.Write([]byte(listingBody))
		}
	}))
	defer srv.Close()

	records := newTestClient(srv).FetchAll(context.Background(), []string{"SaltLakeCity"}, 10)

	require.Len(t, records, 2)
	assert.Equal(t, "roadsense-test/0.1", userAgent)

	post := records[0]
	assert.Equal(t, types.KindPost, post.Kind)
	assert.Equal(t, "Pothole on 700 East", post.Title)
	assert.Equal(t, types.Score(12), post.Score)
	assert.Equal(t, "p1", post.ID)

	comment := records[1]
	assert.Equal(t, types.KindComment, comment.Kind)
	assert.Equal(t, "Comment on: Pothole on 700 East", comment.Title)
	assert.Equal(t, "same thing happened to me", comment.Body)
	assert.Equal(t, "https://reddit.com/p1", comment.URL, "comments inherit the post URL")
}

func TestFetchAll_SubredditFailureSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/r/private/") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if strings.Contains(r.URL.Path, "/comments/") {
			w.Write([]byte(commentsBody))
			return
		}
		w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	records := newTestClient(srv).FetchAll(context.Background(), []string{"private", "SaltLakeCity"}, 10)

	require.Len(t, records, 2, "a failing subreddit does not abort the rest")
	assert.Equal(t, "SaltLakeCity", records[0].Subreddit)
}
