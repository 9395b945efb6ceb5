package exports

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mascanho/ruddit/data"
)

func samplePosts() []data.Post {
	return []data.Post{
		{
			ID:            "abc1",
			FormattedDate: "2024-01-01 00:00:00",
			Title:         "Looking for a CRM",
			URL:           "https://x",
			Relevance:     "hot",
			Subreddit:     "sales",
		},
		{
			ID:            "abc2",
			FormattedDate: "2024-01-02 00:00:00",
			Title:         "Inventory headaches",
			URL:           "https://y",
			Relevance:     "hot",
			Subreddit:     "supplychain",
		},
	}
}

func TestExportPosts(t *testing.T) {
	dir := t.TempDir()

	path, err := ExportPosts(samplePosts(), dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reddit Posts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Title", "URL", "Relevance", "Subreddit"}, rows[0])
	assert.Equal(t, "Looking for a CRM", rows[1][1])
	assert.Equal(t, "supplychain", rows[2][4])
}

func TestExportPostsCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := ExportPostsCSV(samplePosts(), dir)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Date,Title,URL,Relevance,Subreddit")
	assert.Contains(t, content, "Looking for a CRM")
}

func TestExportComments(t *testing.T) {
	dir := t.TempDir()
	comments := []data.Comment{{
		ID:            "c1",
		PostID:        "abc1",
		Subreddit:     "sales",
		PostTitle:     "Looking for a CRM",
		Author:        "someone",
		Body:          "try this",
		Score:         3,
		FormattedDate: "2024-01-01 00:00:00",
		Permalink:     "/r/sales/comments/abc1/c1",
	}}

	path, err := ExportComments(comments, "abc1", dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Comments")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "try this", rows[1][3])
	assert.Equal(t, "https://reddit.com/r/sales/comments/abc1/c1", rows[1][6])
}

func TestLeadsSink_Array(t *testing.T) {
	sink := &LeadsSink{Dir: t.TempDir()}

	err := sink.Export(`[
		{"title":"Looking for a CRM","url":"https://x","formatted_date":"2024-01-01","relevance":"HIGH","subreddit":"sales","sentiment":"neutral",
		 "top_comments":[{"author":"a","text":"we need one too","sentiment":"positive"}]}
	]`)
	require.NoError(t, err)
	require.NotEmpty(t, sink.LastPath)

	f, err := excelize.OpenFile(sink.LastPath)
	require.NoError(t, err)
	defer f.Close()

	leads, err := f.GetRows("Leads")
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "HIGH", leads[1][3])

	comments, err := f.GetRows("Comments")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "we need one too", comments[1][2])
	assert.Equal(t, "Looking for a CRM", comments[1][0])
}

func TestLeadsSink_SingleObject(t *testing.T) {
	sink := &LeadsSink{Dir: t.TempDir()}

	err := sink.Export(`{"title":"t","url":"u","relevance":"LOW"}`)
	require.NoError(t, err)

	f, err := excelize.OpenFile(sink.LastPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "t", rows[1][0])
}

func TestLeadsSink_InvalidJSON(t *testing.T) {
	sink := &LeadsSink{Dir: t.TempDir()}
	assert.Error(t, sink.Export("not json"))
	assert.Error(t, sink.Export(`"just a string"`))
}

func TestResolveDir_Configured(t *testing.T) {
	dir := t.TempDir() + "/nested/exports"

	resolved, err := ResolveDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, resolved)
	assert.DirExists(t, resolved)
}
