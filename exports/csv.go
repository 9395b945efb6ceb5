package exports

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mascanho/ruddit/data"
)

// ExportPostsCSV writes the stored posts to a timestamped CSV file and
// returns the file path.
func ExportPostsCSV(posts []data.Post, dir string) (string, error) {
	path := filepath.Join(dir, stampedName("Reddit_data", "csv"))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Date", "Title", "URL", "Relevance", "Subreddit"}); err != nil {
		return "", err
	}
	for _, post := range posts {
		record := []string{post.FormattedDate, post.Title, post.URL, post.Relevance, post.Subreddit}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return path, nil
}
