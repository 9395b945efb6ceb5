package data

import "time"

// Post is a normalized Reddit post persisted by the store. ID is the
// Reddit base36 id and the primary key; re-inserting an existing id
// is a no-op.
type Post struct {
	ID            string `db:"id" json:"id"`
	Timestamp     int64  `db:"timestamp" json:"timestamp"`
	FormattedDate string `db:"formatted_date" json:"formatted_date"`
	Title         string `db:"title" json:"title"`
	URL           string `db:"url" json:"url"`
	Relevance     string `db:"relevance" json:"relevance"`
	Subreddit     string `db:"subreddit" json:"subreddit"`
	Permalink     string `db:"permalink" json:"permalink"`
	Language      string `db:"language" json:"language,omitempty"`
}

// Comment is a normalized Reddit comment with a back-reference to its post.
type Comment struct {
	ID            string `db:"id" json:"id"`
	PostID        string `db:"post_id" json:"post_id"`
	Body          string `db:"body" json:"body"`
	Author        string `db:"author" json:"author"`
	Timestamp     int64  `db:"timestamp" json:"timestamp"`
	FormattedDate string `db:"formatted_date" json:"formatted_date"`
	Score         int    `db:"score" json:"score"`
	Permalink     string `db:"permalink" json:"permalink"`
	ParentID      string `db:"parent_id" json:"parent_id"`
	Subreddit     string `db:"subreddit" json:"subreddit"`
	PostTitle     string `db:"post_title" json:"post_title"`
}

// FormatTimestamp renders a unix timestamp the way exported rows
// and prompts display dates.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05")
}
