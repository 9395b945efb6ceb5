package ai

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mascanho/ruddit/data"
	"github.com/mascanho/ruddit/enums"
)

type fakeStore struct {
	posts    []data.Post
	comments map[string][]data.Comment
	err      error
}

func (s *fakeStore) AllPosts() ([]data.Post, error) {
	return s.posts, s.err
}

func (s *fakeStore) CommentsForPost(postID string) ([]data.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.comments[postID], nil
}

type fakeSink struct {
	exported []string
	err      error
}

func (s *fakeSink) Export(jsonText string) error {
	s.exported = append(s.exported, jsonText)
	return s.err
}

func newTestService(gen Generator, store *fakeStore) *Service {
	logger := slog.New(slog.DiscardHandler)
	return NewService(NewExtractor(gen, logger), store, store, logger)
}

func leadCriteria() LeadCriteria {
	return LeadCriteria{
		Keywords:   []string{"crm"},
		Sentiments: []string{"neutral"},
		MatchMode:  enums.MatchModeAny,
	}
}

func TestAsk(t *testing.T) {
	gen := &scriptedGenerator{responses: []response{{text: `{"answer":"yes"}`}}}
	store := &fakeStore{posts: testSnapshot().Posts}

	result, err := newTestService(gen, store).Ask(context.Background(), "any CRM posts?")
	require.NoError(t, err)
	assert.Equal(t, `{"answer":"yes"}`, result.JSON)
	assert.Contains(t, gen.calls[0].instruction, "Looking for a CRM")
}

func TestAsk_EmptyQuestion(t *testing.T) {
	svc := newTestService(&scriptedGenerator{}, &fakeStore{})

	_, err := svc.Ask(context.Background(), "  ")
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestAsk_StoreFailureDoesNotConsumeAttempts(t *testing.T) {
	gen := &scriptedGenerator{}
	store := &fakeStore{err: errors.New("disk gone")}

	_, err := newTestService(gen, store).Ask(context.Background(), "q")

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Empty(t, gen.calls, "no provider calls after a store failure")
}

func TestGenerateLeads_NoKeywords(t *testing.T) {
	gen := &scriptedGenerator{}
	svc := newTestService(gen, &fakeStore{})

	_, err := svc.GenerateLeads(context.Background(), LeadCriteria{}, nil, false)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, gen.calls)
}

func TestGenerateLeads_ExportsOnSuccess(t *testing.T) {
	gen := &scriptedGenerator{responses: []response{{text: `[{"title":"t"}]`}}}
	store := &fakeStore{
		posts:    testSnapshot().Posts,
		comments: map[string][]data.Comment{"1": {{ID: "c1", PostID: "1", Body: "comment body"}}},
	}
	sink := &fakeSink{}

	result, err := newTestService(gen, store).GenerateLeads(context.Background(), leadCriteria(), sink, false)
	require.NoError(t, err)

	assert.Equal(t, []string{`[{"title":"t"}]`}, sink.exported)
	assert.Equal(t, `[{"title":"t"}]`, result.JSON)
	assert.Contains(t, gen.calls[0].instruction, "comment body", "comments are part of the payload")
}

func TestGenerateLeads_SinkFailureLenient(t *testing.T) {
	gen := &scriptedGenerator{responses: []response{{text: `[]`}}}
	store := &fakeStore{posts: testSnapshot().Posts, comments: map[string][]data.Comment{}}
	sink := &fakeSink{err: errors.New("disk full")}

	result, err := newTestService(gen, store).GenerateLeads(context.Background(), leadCriteria(), sink, false)
	require.NoError(t, err, "lenient policy keeps the extraction result")
	assert.NotNil(t, result)
}

func TestGenerateLeads_SinkFailureStrict(t *testing.T) {
	gen := &scriptedGenerator{responses: []response{{text: `[]`}}}
	store := &fakeStore{posts: testSnapshot().Posts, comments: map[string][]data.Comment{}}
	sink := &fakeSink{err: errors.New("disk full")}

	_, err := newTestService(gen, store).GenerateLeads(context.Background(), leadCriteria(), sink, true)
	assert.ErrorContains(t, err, "disk full")
}

func TestGenerateLeads_Prefilter(t *testing.T) {
	gen := &scriptedGenerator{responses: []response{{text: `[]`}}}
	matching := testSnapshot().Posts[0]
	other := data.Post{ID: "2", Title: "cat pictures"}
	store := &fakeStore{posts: []data.Post{matching, other}, comments: map[string][]data.Comment{}}

	criteria := leadCriteria()
	criteria.Prefilter = true

	_, err := newTestService(gen, store).GenerateLeads(context.Background(), criteria, nil, false)
	require.NoError(t, err)

	assert.Contains(t, gen.calls[0].instruction, "Looking for a CRM")
	assert.NotContains(t, gen.calls[0].instruction, "cat pictures")
}

func TestGenerateLeads_LanguageFilter(t *testing.T) {
	gen := &scriptedGenerator{responses: []response{{text: `[]`}}}
	english := testSnapshot().Posts[0]
	english.Language = "en"
	german := data.Post{ID: "2", Title: "Suche ein CRM", Language: "de"}
	store := &fakeStore{posts: []data.Post{english, german}, comments: map[string][]data.Comment{}}

	criteria := leadCriteria()
	criteria.Languages = []string{"en"}

	_, err := newTestService(gen, store).GenerateLeads(context.Background(), criteria, nil, false)
	require.NoError(t, err)

	assert.Contains(t, gen.calls[0].instruction, "Looking for a CRM")
	assert.NotContains(t, gen.calls[0].instruction, "Suche ein CRM")
}
