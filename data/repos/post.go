package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mascanho/ruddit/data"
)

type PostRepo struct {
	db *sqlx.DB
}

func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db}
}

// InsertPosts stores posts, skipping ids that already exist.
// Returns the number of rows actually inserted.
func (r *PostRepo) InsertPosts(posts []data.Post) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin insert posts: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO reddit_posts (id, timestamp, formatted_date, title, url, relevance, subreddit, permalink, language)
		VALUES (:id, :timestamp, :formatted_date, :title, :url, :relevance, :subreddit, :permalink, :language)
		ON CONFLICT (id) DO NOTHING`

	inserted := 0
	for _, post := range posts {
		res, err := tx.NamedExec(query, post)
		if err != nil {
			return 0, fmt.Errorf("insert post %s: %w", post.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert posts: %w", err)
	}

	return inserted, nil
}

func (r *PostRepo) AllPosts() ([]data.Post, error) {
	var posts []data.Post
	query := `
		SELECT id, timestamp, formatted_date, title, url, relevance, subreddit, permalink, language
		FROM reddit_posts
		ORDER BY timestamp DESC`

	err := r.db.Select(&posts, query)
	if err != nil {
		return nil, fmt.Errorf("get all posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepo) ClearPosts() error {
	if _, err := r.db.Exec("DELETE FROM reddit_posts"); err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	return nil
}
