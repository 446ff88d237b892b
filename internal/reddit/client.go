package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"roadsense/internal/logger"
	"roadsense/internal/types"
)

const baseURL = "https://www.reddit.com"

// pageSize is the listing API maximum per request.
const pageSize = 100

// Client reads subreddit listings through Reddit's public JSON endpoints.
// Listing GETs are idempotent, so transient failures retry with backoff;
// this is the only place in the pipeline that retries.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(userAgent string) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 12 * time.Second},
		log:        logger.New(),
	}
}

type thing struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Body       string  `json:"body"`
	URL        string  `json:"url"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

type listing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string `json:"kind"`
			Data thing  `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchAll gathers posts and their top-level comments across the
// configured subreddits. A subreddit that fails entirely is logged and
// skipped so the remaining sources still produce records.
func (c *Client) FetchAll(ctx context.Context, subreddits []string, postLimit int) []types.RawRecord {
	var out []types.RawRecord
	for _, sub := range subreddits {
		records, err := c.fetchSubreddit(ctx, sub, postLimit)
		if err != nil {
			c.log.WithError(err).WithField("subreddit", sub).Warn("subreddit fetch failed")
			continue
		}
		c.log.WithFields(logrus.Fields{
			"subreddit": sub,
			"records":   len(records),
		}).Info("subreddit ingested")
		out = append(out, records...)
	}
	return out
}

func (c *Client) fetchSubreddit(ctx context.Context, sub string, postLimit int) ([]types.RawRecord, error) {
	var out []types.RawRecord
	after := ""
	posts := 0

	for posts < postLimit {
		size := postLimit - posts
		if size > pageSize {
			size = pageSize
		}

		q := url.Values{}
		q.Set("limit", strconv.Itoa(size))
		if after != "" {
			q.Set("after", after)
		}
		var page listing
		if err := c.getJSON(ctx, fmt.Sprintf("%s/r/%s/new.json?%s", c.baseURL, sub, q.Encode()), &page); err != nil {
			return nil, fmt.Errorf("list r/%s: %w", sub, err)
		}
		if len(page.Data.Children) == 0 {
			break
		}

		for _, child := range page.Data.Children {
			if child.Kind != "t3" || posts >= postLimit {
				continue
			}
			post := child.Data
			posts++
			out = append(out, types.RawRecord{
				Subreddit: sub,
				Kind:      types.KindPost,
				Title:     post.Title,
				Body:      post.Selftext,
				URL:       post.URL,
				Score:     types.Score(post.Score),
				CreatedAt: types.Timestamp{Time: time.Unix(int64(post.CreatedUTC), 0).UTC()},
				ID:        post.ID,
			})

			comments, err := c.fetchComments(ctx, sub, post)
			if err != nil {
				// keep the post; comments are best effort
				c.log.WithError(err).WithField("post_id", post.ID).Warn("comment fetch failed")
				continue
			}
			out = append(out, comments...)
		}

		after = page.Data.After
		if after == "" {
			break
		}
	}

	return out, nil
}

func (c *Client) fetchComments(ctx context.Context, sub string, post thing) ([]types.RawRecord, error) {
	var pages []listing
	u := fmt.Sprintf("%s/r/%s/comments/%s.json", c.baseURL, sub, post.ID)
	if err := c.getJSON(ctx, u, &pages); err != nil {
		return nil, err
	}
	if len(pages) < 2 {
		return nil, nil
	}

	var out []types.RawRecord
	for _, child := range pages[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		comment := child.Data
		out = append(out, types.RawRecord{
			Subreddit: sub,
			Kind:      types.KindComment,
			Title:     "Comment on: " + post.Title,
			Body:      comment.Body,
			URL:       post.URL,
			Score:     types.Score(comment.Score),
			CreatedAt: types.Timestamp{Time: time.Unix(int64(comment.CreatedUTC), 0).UTC()},
			ID:        comment.ID,
		})
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, target any) error {
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("reddit %s", resp.Status)
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("reddit %s", resp.Status)
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("decode listing: %w", err)
			return lastErr
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}
