package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/proxy"

	"github.com/mascanho/ruddit/data"
	"github.com/mascanho/ruddit/enums"
	"github.com/mascanho/ruddit/matchers"
)

const (
	defaultAuthURL  = "https://www.reddit.com"
	defaultOAuthURL = "https://oauth.reddit.com"

	listingLimit = 100
)

type listing struct {
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	URL        string  `json:"url"`
	Subreddit  string  `json:"subreddit"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

type redditComment struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	Permalink  string  `json:"permalink"`
	ParentID   string  `json:"parent_id"`
	CreatedUTC float64 `json:"created_utc"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// RedditClient fetches listings from the Reddit API using an OAuth2
// client-credentials token.
type RedditClient struct {
	logger   *slog.Logger
	client   *resty.Client
	authURL  string
	oauthURL string

	clientID     string
	clientSecret string
	userAgent    string

	tagger *matchers.LanguageTagger
	token  string
}

type RedditOption func(*RedditClient)

// WithBaseURLs overrides the auth and oauth endpoints, used by tests.
func WithBaseURLs(authURL, oauthURL string) RedditOption {
	return func(c *RedditClient) {
		c.authURL = authURL
		c.oauthURL = oauthURL
	}
}

// WithLanguageTagger enables language tagging on fetched posts.
func WithLanguageTagger(tagger *matchers.LanguageTagger) RedditOption {
	return func(c *RedditClient) {
		c.tagger = tagger
	}
}

func NewRedditClient(logger *slog.Logger, httpClient *http.Client, clientID, clientSecret, userAgent string, opts ...RedditOption) *RedditClient {
	client := resty.NewWithClient(httpClient)
	client.SetHeader("User-Agent", userAgent)

	c := &RedditClient{
		logger:       logger,
		client:       client,
		authURL:      defaultAuthURL,
		oauthURL:     defaultOAuthURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient builds the transport shared by all upstream calls. A SOCKS5
// proxy URL routes requests through the proxy, anything else is used direct.
func HTTPClient(logger *slog.Logger, proxyURL string) (*http.Client, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	if proxyURL == "" {
		return client, nil
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if parsedURL.Scheme != "socks5" {
		return client, nil
	}

	var auth *proxy.Auth
	if parsedURL.User != nil {
		password, _ := parsedURL.User.Password()
		auth = &proxy.Auth{
			User:     parsedURL.User.Username(),
			Password: password,
		}
	}

	dialer, err := proxy.SOCKS5("tcp", parsedURL.Host, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("create socks5 dialer: %w", err)
	}

	client.Transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}
	logger.Info("using SOCKS5 proxy", "proxy", parsedURL.Host)

	return client, nil
}

// Authenticate exchanges the client credentials for an access token.
func (c *RedditClient) Authenticate(ctx context.Context) error {
	if c.clientID == "" || c.clientSecret == "" {
		return fmt.Errorf("reddit credentials are not configured")
	}

	var token tokenResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&token).
		Post(c.authURL + "/api/v1/access_token")
	if err != nil {
		return fmt.Errorf("request access token: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("access token request returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if token.AccessToken == "" {
		return fmt.Errorf("received an empty access token, check your API credentials")
	}

	c.token = token.AccessToken
	return nil
}

// FetchSubreddit returns the current listing for a subreddit. The sort
// is recorded on each post as its relevance tag.
func (c *RedditClient) FetchSubreddit(ctx context.Context, subreddit string, sort enums.Sort) ([]data.Post, error) {
	endpoint := fmt.Sprintf("%s/r/%s/%s", c.oauthURL, subreddit, sort)
	return c.fetchPosts(ctx, endpoint, map[string]string{"limit": fmt.Sprint(listingLimit)}, sort)
}

// Search runs a sitewide search query.
func (c *RedditClient) Search(ctx context.Context, query string, sort enums.Sort) ([]data.Post, error) {
	endpoint := c.oauthURL + "/search"
	params := map[string]string{
		"q":     query,
		"limit": fmt.Sprint(listingLimit),
		"t":     "all",
	}
	return c.fetchPosts(ctx, endpoint, params, sort)
}

func (c *RedditClient) fetchPosts(ctx context.Context, endpoint string, params map[string]string, sort enums.Sort) ([]data.Post, error) {
	var result listing
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetQueryParams(params).
		SetResult(&result).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("reddit returned status %d: %s", resp.StatusCode(), resp.String())
	}

	posts := make([]data.Post, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post redditPost
		if err := json.Unmarshal(child.Data, &post); err != nil {
			c.logger.Warn("skipping undecodable post", "error", err)
			continue
		}
		posts = append(posts, c.toPost(post, sort))
	}

	return posts, nil
}

func (c *RedditClient) toPost(post redditPost, sort enums.Sort) data.Post {
	ts := int64(post.CreatedUTC)
	out := data.Post{
		ID:            post.ID,
		Timestamp:     ts,
		FormattedDate: data.FormatTimestamp(ts),
		Title:         post.Title,
		URL:           post.URL,
		Relevance:     string(sort),
		Subreddit:     post.Subreddit,
		Permalink:     "https://reddit.com" + post.Permalink,
	}
	if c.tagger != nil {
		out.Language = c.tagger.Detect(post.Title + " " + post.Selftext)
	}
	return out
}

// FetchComments returns the top-level comments of a post. The comments
// endpoint responds with two listings, the post itself and its comment
// tree; anything else yields an empty result.
func (c *RedditClient) FetchComments(ctx context.Context, postID string) ([]data.Comment, error) {
	var listings []listing
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetResult(&listings).
		Get(fmt.Sprintf("%s/comments/%s", c.oauthURL, postID))
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("reddit returned status %d: %s", resp.StatusCode(), resp.String())
	}

	if len(listings) < 2 {
		c.logger.Warn("unexpected comments response format", "post_id", postID, "listings", len(listings))
		return nil, nil
	}

	var postTitle, subreddit string
	for _, child := range listings[0].Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post redditPost
		if err := json.Unmarshal(child.Data, &post); err == nil {
			postTitle = post.Title
			subreddit = post.Subreddit
		}
		break
	}

	comments := make([]data.Comment, 0, len(listings[1].Data.Children))
	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var comment redditComment
		if err := json.Unmarshal(child.Data, &comment); err != nil {
			c.logger.Warn("skipping undecodable comment", "error", err)
			continue
		}
		ts := int64(comment.CreatedUTC)
		comments = append(comments, data.Comment{
			ID:            comment.ID,
			PostID:        postID,
			Body:          comment.Body,
			Author:        comment.Author,
			Timestamp:     ts,
			FormattedDate: data.FormatTimestamp(ts),
			Score:         comment.Score,
			Permalink:     comment.Permalink,
			ParentID:      comment.ParentID,
			Subreddit:     subreddit,
			PostTitle:     postTitle,
		})
	}

	return comments, nil
}
