package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mascanho/ruddit/data"
)

type CommentRepo struct {
	db *sqlx.DB
}

func NewCommentRepo(db *sqlx.DB) *CommentRepo {
	return &CommentRepo{db}
}

// InsertComments stores comments, skipping ids that already exist.
// Returns the number of rows actually inserted.
func (r *CommentRepo) InsertComments(comments []data.Comment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin insert comments: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO reddit_comments (id, post_id, body, author, timestamp, formatted_date, score, permalink, parent_id, subreddit, post_title)
		VALUES (:id, :post_id, :body, :author, :timestamp, :formatted_date, :score, :permalink, :parent_id, :subreddit, :post_title)
		ON CONFLICT (id) DO NOTHING`

	inserted := 0
	for _, comment := range comments {
		res, err := tx.NamedExec(query, comment)
		if err != nil {
			return 0, fmt.Errorf("insert comment %s: %w", comment.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert comments: %w", err)
	}

	return inserted, nil
}

func (r *CommentRepo) CommentsForPost(postID string) ([]data.Comment, error) {
	var comments []data.Comment
	query := `
		SELECT id, post_id, body, author, timestamp, formatted_date, score, permalink, parent_id, subreddit, post_title
		FROM reddit_comments
		WHERE post_id = ?
		ORDER BY timestamp DESC`

	err := r.db.Select(&comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("get comments for post %s: %w", postID, err)
	}

	return comments, nil
}

func (r *CommentRepo) ClearComments() error {
	if _, err := r.db.Exec("DELETE FROM reddit_comments"); err != nil {
		return fmt.Errorf("clear comments: %w", err)
	}
	return nil
}
