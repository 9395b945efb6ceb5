package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mascanho/ruddit/data"
	"github.com/mascanho/ruddit/enums"
	"github.com/mascanho/ruddit/matchers"
)

// PostSource and CommentSource are the read-only slice of the record
// store the extraction flow needs.
type PostSource interface {
	AllPosts() ([]data.Post, error)
}

type CommentSource interface {
	CommentsForPost(postID string) ([]data.Comment, error)
}

// Sink receives the validated JSON text of a successful extraction.
type Sink interface {
	Export(jsonText string) error
}

// LeadCriteria is the operator-configured filter for a leads run.
type LeadCriteria struct {
	Keywords   []string
	Sentiments []string
	MatchMode  enums.MatchMode

	// Languages restricts the snapshot to posts tagged with one of the
	// given language codes. Empty means no restriction.
	Languages []string

	// Prefilter drops posts whose title misses the keyword criteria
	// before the prompt is built, shrinking the payload.
	Prefilter bool
}

// Service wires the extraction loop to the record store and an export
// sink. It owns no state across calls; every call re-reads the store.
type Service struct {
	extractor *Extractor
	posts     PostSource
	comments  CommentSource
	logger    *slog.Logger
}

func NewService(extractor *Extractor, posts PostSource, comments CommentSource, logger *slog.Logger) *Service {
	return &Service{
		extractor: extractor,
		posts:     posts,
		comments:  comments,
		logger:    logger,
	}
}

// Ask answers a free-form question over the stored posts.
func (s *Service) Ask(ctx context.Context, question string) (*Result, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &ConfigError{Reason: "question must not be empty"}
	}

	posts, err := s.posts.AllPosts()
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	return s.extractor.Extract(ctx, FreeForm{Question: question}, Snapshot{Posts: posts})
}

// GenerateLeads classifies the stored posts and comments into leads and,
// on success, hands the JSON to the sink. Whether a sink failure is fatal
// is the caller's policy: when strict is false the error is only logged
// and the result is still returned.
func (s *Service) GenerateLeads(ctx context.Context, criteria LeadCriteria, sink Sink, strict bool) (*Result, error) {
	if len(criteria.Keywords) == 0 {
		return nil, &ConfigError{Reason: "no lead keywords configured; add keywords to the settings file"}
	}

	posts, err := s.posts.AllPosts()
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	posts = s.filterPosts(posts, criteria)

	snapshot := Snapshot{Posts: posts}
	for _, post := range posts {
		comments, err := s.comments.CommentsForPost(post.ID)
		if err != nil {
			return nil, &StoreError{Err: err}
		}
		snapshot.Comments = append(snapshot.Comments, comments...)
	}

	query := LeadFilter{
		Keywords:   criteria.Keywords,
		MatchMode:  criteria.MatchMode,
		Sentiments: criteria.Sentiments,
	}

	result, err := s.extractor.Extract(ctx, query, snapshot)
	if err != nil {
		return nil, err
	}

	if sink != nil {
		if err := sink.Export(result.JSON); err != nil {
			if strict {
				return nil, err
			}
			s.logger.Error("export failed, keeping extraction result", "error", err)
		}
	}

	return result, nil
}

func (s *Service) filterPosts(posts []data.Post, criteria LeadCriteria) []data.Post {
	if !criteria.Prefilter && len(criteria.Languages) == 0 {
		return posts
	}

	kept := make([]data.Post, 0, len(posts))
	for _, post := range posts {
		if !matchers.LanguageAllowed(post.Language, criteria.Languages) {
			continue
		}
		if criteria.Prefilter && !matchers.MatchesKeywords(post.Title, criteria.Keywords, criteria.MatchMode) {
			continue
		}
		kept = append(kept, post)
	}

	s.logger.Debug("filtered snapshot", "before", len(posts), "after", len(kept))
	return kept
}
