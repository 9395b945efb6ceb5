package exports

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/mascanho/ruddit/data"
)

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, cell := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, cell); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := writeRow(f, sheet, 1, cells); err != nil {
		return err
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

// ExportPosts writes the stored posts to a timestamped workbook and
// returns the file path.
func ExportPosts(posts []data.Post, dir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reddit Posts"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}

	if err := writeHeader(f, sheet, []string{"Date", "Title", "URL", "Relevance", "Subreddit"}); err != nil {
		return "", err
	}
	for i, post := range posts {
		row := []any{post.FormattedDate, post.Title, post.URL, post.Relevance, post.Subreddit}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}
	if err := setWidths(f, sheet, []float64{20, 50, 30, 15, 20}); err != nil {
		return "", err
	}

	path := filepath.Join(dir, stampedName("Reddit_data", "xlsx"))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// ExportComments writes the comments of one post to a workbook.
func ExportComments(comments []data.Comment, postID, dir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Comments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}

	headers := []string{"Subreddit", "Post Title", "Author", "Comment", "Score", "Date", "Link"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return "", err
	}
	for i, comment := range comments {
		row := []any{
			comment.Subreddit,
			comment.PostTitle,
			comment.Author,
			comment.Body,
			comment.Score,
			comment.FormattedDate,
			"https://reddit.com" + comment.Permalink,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}
	if err := setWidths(f, sheet, []float64{20, 50, 20, 100, 10, 20, 50}); err != nil {
		return "", err
	}

	path := filepath.Join(dir, stampedName("Reddit_comments_"+postID, "xlsx"))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// LeadsSink writes extraction results to a leads workbook: one sheet of
// leads, one sheet flattening their top comments. It accepts a JSON
// array or a single object.
type LeadsSink struct {
	Dir string

	// LastPath holds the file written by the most recent Export call.
	LastPath string
}

func (s *LeadsSink) Export(jsonText string) error {
	leads, err := decodeLeads(jsonText)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const leadsSheet = "Leads"
	if err := f.SetSheetName("Sheet1", leadsSheet); err != nil {
		return err
	}
	if err := writeHeader(f, leadsSheet, []string{"Title", "URL", "Date", "Relevance", "Subreddit", "Sentiment"}); err != nil {
		return err
	}
	for i, lead := range leads {
		row := []any{
			str(lead, "title"),
			str(lead, "url"),
			str(lead, "formatted_date"),
			str(lead, "relevance"),
			str(lead, "subreddit"),
			str(lead, "sentiment"),
		}
		if err := writeRow(f, leadsSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := setWidths(f, leadsSheet, []float64{50, 30, 20, 15, 20, 15}); err != nil {
		return err
	}

	const commentsSheet = "Comments"
	if _, err := f.NewSheet(commentsSheet); err != nil {
		return err
	}
	if err := writeHeader(f, commentsSheet, []string{"Post Title", "Author", "Comment", "Sentiment", "URL"}); err != nil {
		return err
	}
	row := 2
	for _, lead := range leads {
		comments, _ := lead["top_comments"].([]any)
		for _, raw := range comments {
			comment, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			cells := []any{
				str(lead, "title"),
				str(comment, "author"),
				str(comment, "text"),
				str(comment, "sentiment"),
				str(lead, "url"),
			}
			if err := writeRow(f, commentsSheet, row, cells); err != nil {
				return err
			}
			row++
		}
	}
	if err := setWidths(f, commentsSheet, []float64{50, 20, 100, 15, 30}); err != nil {
		return err
	}

	path := filepath.Join(s.Dir, stampedName("Ruddit_leads", "xlsx"))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	s.LastPath = path
	return nil
}

func decodeLeads(jsonText string) ([]map[string]any, error) {
	var value any
	if err := json.Unmarshal([]byte(jsonText), &value); err != nil {
		return nil, fmt.Errorf("decode leads JSON: %w", err)
	}

	switch v := value.(type) {
	case []any:
		leads := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				leads = append(leads, obj)
			}
		}
		return leads, nil
	case map[string]any:
		return []map[string]any{v}, nil
	default:
		return nil, fmt.Errorf("leads JSON is neither an array nor an object")
	}
}

func str(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
